package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grupo-nexus/planner/internal/model"
)

// fakeGateway records calls and serves a canned snapshot. Hooks let tests
// block or fail individual operations.
type fakeGateway struct {
	mu          sync.Mutex
	posts       []model.Post
	createCalls int
	updateCalls int
	deleteCalls int
	nextID      int

	createHook func() error
	deleteErr  error
}

func (f *fakeGateway) Login(ctx context.Context, email, password string) error { return nil }
func (f *fakeGateway) Logout(ctx context.Context) error                        { return nil }

func (f *fakeGateway) FetchPosts(ctx context.Context) ([]model.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Post, len(f.posts))
	copy(out, f.posts)
	return out, nil
}

func (f *fakeGateway) CreatePost(ctx context.Context, draft model.PostDraft) (*model.Post, error) {
	f.mu.Lock()
	f.createCalls++
	hook := f.createHook
	f.nextID++
	id := fmt.Sprintf("post-%d", f.nextID)
	f.mu.Unlock()

	if hook != nil {
		if err := hook(); err != nil {
			return nil, err
		}
	}
	return &model.Post{
		ID:      id,
		Theme:   draft.Theme,
		Date:    draft.Date,
		Status:  draft.Status,
		Account: draft.Account,
	}, nil
}

func (f *fakeGateway) UpdatePost(ctx context.Context, id string, draft model.PostDraft) (*model.Post, error) {
	f.mu.Lock()
	f.updateCalls++
	f.mu.Unlock()
	return &model.Post{ID: id, Theme: draft.Theme, Date: draft.Date, Status: draft.Status}, nil
}

func (f *fakeGateway) DeletePost(ctx context.Context, id string) error {
	f.mu.Lock()
	f.deleteCalls++
	err := f.deleteErr
	f.mu.Unlock()
	return err
}

func TestCoordinator_RefreshAndVisiblePosts(t *testing.T) {
	gw := &fakeGateway{posts: []model.Post{
		{ID: "a", Theme: "one", Date: "05/03/2025", Account: "grupo-nexus"},
		{ID: "b", Theme: "two", Date: "06/03/2025", Owners: []string{"lavinia"}},
	}}
	c := NewCoordinator(gw)
	require.NoError(t, c.Refresh(context.Background()))

	// Empty selection shows everything.
	assert.Len(t, c.VisiblePosts(), 2)

	// Selecting lavinia keeps only the legacy-owned post.
	c.ToggleOwner("lavinia")
	visible := c.VisiblePosts()
	require.Len(t, visible, 1)
	assert.Equal(t, "b", visible[0].ID)

	// Clearing restores the full set.
	c.ClearSelection()
	assert.Len(t, c.VisiblePosts(), 2)
}

func TestCoordinator_NavigateMonthAcrossYears(t *testing.T) {
	c := NewCoordinator(&fakeGateway{})

	c.mu.Lock()
	c.year, c.month = 2025, 12
	c.mu.Unlock()

	c.NavigateMonth(1)
	y, m := c.Cursor()
	assert.Equal(t, 2026, y)
	assert.Equal(t, 1, m)

	c.NavigateMonth(-1)
	y, m = c.Cursor()
	assert.Equal(t, 2025, y)
	assert.Equal(t, 12, m)

	c.NavigateMonth(-12)
	y, m = c.Cursor()
	assert.Equal(t, 2024, y)
	assert.Equal(t, 12, m)
}

func TestCoordinator_SaveRejectsEmptyThemeWithoutGatewayCall(t *testing.T) {
	gw := &fakeGateway{}
	c := NewCoordinator(gw)

	_, err := c.SavePost(context.Background(), "", model.PostDraft{Theme: "   ", Date: "01/04/2025"})
	require.ErrorIs(t, err, model.ErrValidation)
	assert.Equal(t, 0, gw.createCalls)

	// The in-flight slot was released; a valid save goes through.
	post, err := c.SavePost(context.Background(), "", model.PostDraft{Theme: "ok", Date: "01/04/2025"})
	require.NoError(t, err)
	assert.NotEmpty(t, post.ID)
	assert.Equal(t, 1, gw.createCalls)
}

func TestCoordinator_SaveUpsertsSnapshot(t *testing.T) {
	gw := &fakeGateway{posts: []model.Post{{ID: "a", Theme: "old", Date: "01/03/2025"}}}
	c := NewCoordinator(gw)
	require.NoError(t, c.Refresh(context.Background()))

	// Create lands at the front, matching newest-first listing.
	created, err := c.SavePost(context.Background(), "", model.PostDraft{Theme: "new", Date: "02/03/2025"})
	require.NoError(t, err)
	visible := c.VisiblePosts()
	require.Len(t, visible, 2)
	assert.Equal(t, created.ID, visible[0].ID)

	// Update replaces in place.
	_, err = c.SavePost(context.Background(), "a", model.PostDraft{Theme: "renamed", Date: "01/03/2025"})
	require.NoError(t, err)
	assert.Equal(t, 1, gw.updateCalls)
	for _, p := range c.VisiblePosts() {
		if p.ID == "a" {
			assert.Equal(t, "renamed", p.Theme)
		}
	}
}

func TestCoordinator_SingleOperationInFlight(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	gw := &fakeGateway{createHook: func() error {
		close(entered)
		<-release
		return nil
	}}
	c := NewCoordinator(gw)

	done := make(chan error, 1)
	go func() {
		_, err := c.SavePost(context.Background(), "", model.PostDraft{Theme: "slow", Date: "01/04/2025"})
		done <- err
	}()
	<-entered

	// A second save while the first is in flight is refused outright.
	assert.True(t, c.Busy())
	_, err := c.SavePost(context.Background(), "", model.PostDraft{Theme: "fast", Date: "01/04/2025"})
	assert.ErrorIs(t, err, ErrOperationInFlight)
	err = c.DeletePost(context.Background(), "whatever")
	assert.ErrorIs(t, err, ErrOperationInFlight)

	close(release)
	require.NoError(t, <-done)
	assert.False(t, c.Busy())
	assert.Equal(t, 1, gw.createCalls)
}

func TestCoordinator_ReturnedSnapshotsAreStable(t *testing.T) {
	gw := &fakeGateway{posts: []model.Post{
		{ID: "a", Theme: "first", Date: "01/03/2025"},
		{ID: "b", Theme: "second", Date: "02/03/2025"},
	}}
	c := NewCoordinator(gw)
	require.NoError(t, c.Refresh(context.Background()))

	// Take a snapshot with the empty selection, then mutate through the
	// coordinator. The snapshot must keep its original contents.
	snap := c.VisiblePosts()
	require.Len(t, snap, 2)

	require.NoError(t, c.DeletePost(context.Background(), "a"))
	assert.Equal(t, "a", snap[0].ID)
	assert.Equal(t, "b", snap[1].ID)

	_, err := c.SavePost(context.Background(), "b", model.PostDraft{Theme: "renamed", Date: "02/03/2025"})
	require.NoError(t, err)
	assert.Equal(t, "second", snap[1].Theme)

	// The live view reflects both changes.
	visible := c.VisiblePosts()
	require.Len(t, visible, 1)
	assert.Equal(t, "b", visible[0].ID)
	assert.Equal(t, "renamed", visible[0].Theme)
}

func TestCoordinator_DeleteRemovesFromSnapshot(t *testing.T) {
	gw := &fakeGateway{posts: []model.Post{
		{ID: "a", Theme: "keep", Date: "01/03/2025"},
		{ID: "b", Theme: "drop", Date: "02/03/2025"},
	}}
	c := NewCoordinator(gw)
	require.NoError(t, c.Refresh(context.Background()))

	require.NoError(t, c.DeletePost(context.Background(), "b"))
	visible := c.VisiblePosts()
	require.Len(t, visible, 1)
	assert.Equal(t, "a", visible[0].ID)
}

func TestCoordinator_DeleteFailureReleasesSlot(t *testing.T) {
	gw := &fakeGateway{
		posts:     []model.Post{{ID: "a", Theme: "keep", Date: "01/03/2025"}},
		deleteErr: errors.New("boom"),
	}
	c := NewCoordinator(gw)
	require.NoError(t, c.Refresh(context.Background()))

	err := c.DeletePost(context.Background(), "a")
	require.Error(t, err)
	assert.False(t, c.Busy())

	// Snapshot untouched on failure.
	assert.Len(t, c.VisiblePosts(), 1)
}

func TestCoordinator_GridBucketsVisiblePosts(t *testing.T) {
	gw := &fakeGateway{posts: []model.Post{
		{ID: "a", Theme: "mid-month", Date: "15/03/2025"},
		{ID: "b", Theme: "spillover", Date: "01/04/2025"},
	}}
	c := NewCoordinator(gw)
	require.NoError(t, c.Refresh(context.Background()))

	c.mu.Lock()
	c.year, c.month = 2025, 3
	c.mu.Unlock()

	cells := c.Grid()
	require.Len(t, cells, 42)

	var onFifteenth, onAprilFirst int
	for _, cell := range cells {
		if cell.Date.Day == 15 && cell.Date.Month == 3 {
			onFifteenth = len(cell.Posts)
			assert.True(t, cell.InMonth)
		}
		// March 2025 ends mid-row, so April 1st appears as spillover.
		if cell.Date.Day == 1 && cell.Date.Month == 4 {
			onAprilFirst = len(cell.Posts)
			assert.False(t, cell.InMonth)
		}
	}
	assert.Equal(t, 1, onFifteenth)
	assert.Equal(t, 1, onAprilFirst)
}
