package client

import (
	"context"
	"errors"
	"sync"

	"github.com/grupo-nexus/planner/internal/calendar"
	"github.com/grupo-nexus/planner/internal/filter"
	"github.com/grupo-nexus/planner/internal/model"
	"github.com/grupo-nexus/planner/internal/validate"
)

// ErrOperationInFlight is returned when a save or delete is requested while a
// previous one has not finished. Callers should disable their submit action
// instead of queueing.
var ErrOperationInFlight = errors.New("a save or delete is already in flight")

// Coordinator holds the planning state a frontend renders: the post snapshot,
// the month being viewed and the active owner selection. All methods are safe
// for concurrent use.
type Coordinator struct {
	gw Gateway

	mu        sync.Mutex
	posts     []model.Post
	year      int
	month     int
	selection *filter.Selection
	busy      bool
}

// NewCoordinator creates a coordinator positioned on the current month with
// an empty owner selection.
func NewCoordinator(gw Gateway) *Coordinator {
	today := calendar.Today()
	return &Coordinator{
		gw:        gw,
		year:      today.Year,
		month:     today.Month,
		selection: filter.NewSelection(),
	}
}

// Refresh replaces the post snapshot with the server's current state. The
// fetched slice is copied so later gateway reuse cannot reach the snapshot.
func (c *Coordinator) Refresh(ctx context.Context) error {
	posts, err := c.gw.FetchPosts(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.posts = clonePosts(posts)
	c.mu.Unlock()
	return nil
}

// Cursor returns the month currently in view.
func (c *Coordinator) Cursor() (year, month int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.year, c.month
}

// NavigateMonth moves the view by delta months. Negative values go back;
// year boundaries carry over in both directions.
func (c *Coordinator) NavigateMonth(delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	m := c.year*12 + (c.month - 1) + delta
	c.year = m / 12
	c.month = m%12 + 1
}

// GoToToday snaps the view back to the current month.
func (c *Coordinator) GoToToday() {
	today := calendar.Today()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.year, c.month = today.Year, today.Month
}

// ToggleOwner flips an owner id in or out of the active selection.
func (c *Coordinator) ToggleOwner(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selection.Toggle(id)
}

// ClearSelection empties the owner selection, showing every post again.
func (c *Coordinator) ClearSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selection.Clear()
}

// SelectedOwners returns the ids in the active selection.
func (c *Coordinator) SelectedOwners() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selection.IDs()
}

// VisiblePosts returns the snapshot with the owner selection applied. An
// empty selection shows everything. The returned slice is a fresh copy;
// later saves and deletes never reach inside it.
func (c *Coordinator) VisiblePosts() []model.Post {
	c.mu.Lock()
	defer c.mu.Unlock()
	return clonePosts(filter.ApplyOwnerFilter(c.posts, c.selection))
}

func clonePosts(posts []model.Post) []model.Post {
	out := make([]model.Post, len(posts))
	copy(out, posts)
	return out
}

// GridCell is one slot of the rendered month with its visible posts.
type GridCell struct {
	Date    calendar.Date
	InMonth bool
	Posts   []model.Post
}

// Grid renders the month in view as 42 cells, bucketing the visible posts
// onto their dates.
func (c *Coordinator) Grid() []GridCell {
	c.mu.Lock()
	year, month := c.year, c.month
	visible := filter.ApplyOwnerFilter(c.posts, c.selection)
	c.mu.Unlock()

	cells := make([]GridCell, 0, calendar.GridSize)
	for _, day := range calendar.BuildMonthGrid(year, month) {
		cells = append(cells, GridCell{
			Date:    day.Date,
			InMonth: day.InMonth,
			Posts:   calendar.PostsOnDate(visible, day.Date),
		})
	}
	return cells
}

// Busy reports whether a save or delete is currently in flight.
func (c *Coordinator) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// acquire claims the in-flight slot, failing if it is taken.
func (c *Coordinator) acquire() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return ErrOperationInFlight
	}
	c.busy = true
	return nil
}

func (c *Coordinator) release() {
	c.mu.Lock()
	c.busy = false
	c.mu.Unlock()
}

// SavePost creates (empty id) or updates (non-empty id) a post. The draft is
// validated locally first; an invalid draft never reaches the gateway. Only
// one save or delete may be in flight at a time.
func (c *Coordinator) SavePost(ctx context.Context, id string, draft model.PostDraft) (*model.Post, error) {
	if err := c.acquire(); err != nil {
		return nil, err
	}
	defer c.release()

	if err := validate.PostDraft(&draft); err != nil {
		return nil, err
	}

	var (
		post *model.Post
		err  error
	)
	if id == "" {
		post, err = c.gw.CreatePost(ctx, draft)
	} else {
		post, err = c.gw.UpdatePost(ctx, id, draft)
	}
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.applyLocked(*post)
	c.mu.Unlock()
	return post, nil
}

// DeletePost removes a post on the server and from the local snapshot.
func (c *Coordinator) DeletePost(ctx context.Context, id string) error {
	if err := c.acquire(); err != nil {
		return err
	}
	defer c.release()

	if err := c.gw.DeletePost(ctx, id); err != nil {
		return err
	}

	c.mu.Lock()
	kept := make([]model.Post, 0, len(c.posts))
	for _, p := range c.posts {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	c.posts = kept
	c.mu.Unlock()
	return nil
}

// applyLocked upserts a post into the snapshot. New posts go first, matching
// the server's newest-first listing.
func (c *Coordinator) applyLocked(post model.Post) {
	for i, p := range c.posts {
		if p.ID == post.ID {
			c.posts[i] = post
			return
		}
	}
	c.posts = append([]model.Post{post}, c.posts...)
}
