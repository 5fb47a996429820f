// Package storetest provides a conformance suite for store implementations.
package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/grupo-nexus/planner/internal/model"
	"github.com/grupo-nexus/planner/internal/store"
)

// Run exercises a compliance suite against a store.Store implementation.
// makeStore must return a clean, isolated store.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	s := makeStore(t)
	ctx := context.Background()

	if err := s.HealthPing(ctx); err != nil {
		t.Fatalf("HealthPing: %v", err)
	}

	// Users
	email := "u-" + uuid.New().String() + "@example.test"
	u, err := s.Users().Create(ctx, &model.User{Email: email, DisplayName: "Suite User", PasswordHash: "$2a$10$hash"})
	if err != nil {
		t.Fatalf("Users.Create: %v", err)
	}
	if u.UserID == "" {
		t.Fatal("Users.Create: empty user id")
	}
	if got, err := s.Users().GetByEmail(ctx, email); err != nil || got.UserID != u.UserID {
		t.Fatalf("Users.GetByEmail: got=%v err=%v", got, err)
	}
	if _, err := s.Users().Get(ctx, "missing-user"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("Users.Get missing: expected ErrNotFound, got %v", err)
	}

	// Posts: create assigns id and timestamps.
	draft := &model.PostDraft{
		Theme:        "Launch",
		ContentType:  model.ContentImage,
		Channel:      model.ChannelInstagram,
		Status:       model.StatusPlanned,
		Date:         "01/04/2025",
		Description:  "spring campaign",
		Account:      "grupo-nexus",
		Responsibles: []string{"pedro", "lavinia"},
	}
	first, err := s.Posts().Create(ctx, draft)
	if err != nil {
		t.Fatalf("Posts.Create: %v", err)
	}
	if first.ID == "" || first.CreatedAt.IsZero() || first.UpdatedAt.IsZero() {
		t.Fatalf("Posts.Create: missing id or timestamps: %+v", first)
	}

	got, err := s.Posts().Get(ctx, first.ID)
	if err != nil {
		t.Fatalf("Posts.Get: %v", err)
	}
	if got.Theme != "Launch" || got.Account != "grupo-nexus" || len(got.Responsibles) != 2 {
		t.Fatalf("Posts.Get: round-trip mismatch: %+v", got)
	}
	if got.Responsibles[0] != "pedro" || got.Responsibles[1] != "lavinia" {
		t.Fatalf("Posts.Get: responsibles order not preserved: %v", got.Responsibles)
	}

	// Legacy schema round-trips too.
	legacy, err := s.Posts().Create(ctx, &model.PostDraft{
		Theme:   "Legacy",
		Status:  model.StatusPlanned,
		Channel: model.ChannelLinkedIn,
		Date:    "15/03/2025",
		Owners:  []string{"lavinia"},
	})
	if err != nil {
		t.Fatalf("Posts.Create legacy: %v", err)
	}
	gotLegacy, err := s.Posts().Get(ctx, legacy.ID)
	if err != nil {
		t.Fatalf("Posts.Get legacy: %v", err)
	}
	if len(gotLegacy.Owners) != 1 || gotLegacy.Owners[0] != "lavinia" {
		t.Fatalf("Posts.Get legacy: owners mismatch: %v", gotLegacy.Owners)
	}

	// List is ordered by creation time descending.
	list, err := s.Posts().List(ctx)
	if err != nil {
		t.Fatalf("Posts.List: %v", err)
	}
	if len(list) < 2 {
		t.Fatalf("Posts.List: expected at least 2 posts, got %d", len(list))
	}
	if list[0].ID != legacy.ID {
		t.Fatalf("Posts.List: expected newest first, got %s", list[0].ID)
	}
	for i := 1; i < len(list); i++ {
		if list[i].CreatedAt.After(list[i-1].CreatedAt) {
			t.Fatalf("Posts.List: not ordered by created_at desc at index %d", i)
		}
	}

	// Update replaces all fields and refreshes UpdatedAt.
	time.Sleep(5 * time.Millisecond)
	updated, err := s.Posts().Update(ctx, first.ID, &model.PostDraft{
		Theme:       "Launch v2",
		ContentType: model.ContentReel,
		Channel:     model.ChannelTikTok,
		Status:      model.StatusApproved,
		Date:        "02/04/2025",
	})
	if err != nil {
		t.Fatalf("Posts.Update: %v", err)
	}
	if updated.Theme != "Launch v2" || updated.Status != model.StatusApproved {
		t.Fatalf("Posts.Update: fields not replaced: %+v", updated)
	}
	if updated.Account != "" || len(updated.Responsibles) != 0 {
		t.Fatalf("Posts.Update: expected full-field replace to clear ownership, got %+v", updated)
	}
	if !updated.UpdatedAt.After(first.UpdatedAt) {
		t.Fatalf("Posts.Update: UpdatedAt not refreshed: %v vs %v", updated.UpdatedAt, first.UpdatedAt)
	}

	// Updating or deleting an unknown id reports not-found.
	if _, err := s.Posts().Update(ctx, "missing-post", draft); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("Posts.Update missing: expected ErrNotFound, got %v", err)
	}
	if err := s.Posts().Delete(ctx, "missing-post"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("Posts.Delete missing: expected ErrNotFound, got %v", err)
	}

	// Delete makes the id unresolvable.
	if err := s.Posts().Delete(ctx, first.ID); err != nil {
		t.Fatalf("Posts.Delete: %v", err)
	}
	if _, err := s.Posts().Get(ctx, first.ID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("Posts.Get after delete: expected ErrNotFound, got %v", err)
	}
}
