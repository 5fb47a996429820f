package services

import (
	"context"
	"testing"

	"github.com/grupo-nexus/planner/internal/model"
)

func TestSummarize(t *testing.T) {
	fs := &fakeStore{}
	posts := NewPostService(fs)
	ctx := context.Background()

	drafts := []*model.PostDraft{
		{Theme: "a", Status: model.StatusPlanned, Channel: model.ChannelInstagram},
		{Theme: "b", Status: model.StatusPlanned, Channel: model.ChannelLinkedIn},
		{Theme: "c", Status: model.StatusPosted, Channel: model.ChannelInstagram},
	}
	for _, d := range drafts {
		if _, err := posts.CreatePost(ctx, d); err != nil {
			t.Fatalf("CreatePost: %v", err)
		}
	}

	sum, err := NewAnalyticsService(fs).Summarize(ctx)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if sum.TotalPosts != 3 {
		t.Errorf("expected 3 posts, got %d", sum.TotalPosts)
	}
	if sum.ByStatus[model.StatusPlanned] != 2 || sum.ByStatus[model.StatusPosted] != 1 {
		t.Errorf("status counts wrong: %v", sum.ByStatus)
	}
	if sum.ByChannel[model.ChannelInstagram] != 2 || sum.ByChannel[model.ChannelLinkedIn] != 1 {
		t.Errorf("channel counts wrong: %v", sum.ByChannel)
	}
}

func TestSummarize_Empty(t *testing.T) {
	sum, err := NewAnalyticsService(&fakeStore{}).Summarize(context.Background())
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if sum.TotalPosts != 0 || len(sum.ByStatus) != 0 {
		t.Errorf("expected empty summary, got %+v", sum)
	}
}
