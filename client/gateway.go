// Package client is the Go SDK for the planner service. Gateway wraps the
// REST API; Coordinator layers calendar navigation, owner filtering and
// save/delete sequencing on top of it.
package client

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/grupo-nexus/planner/internal/calendar"
	"github.com/grupo-nexus/planner/internal/model"
)

// Gateway is the surface the Coordinator drives. HTTPGateway is the real
// implementation; tests substitute fakes.
type Gateway interface {
	Login(ctx context.Context, email, password string) error
	Logout(ctx context.Context) error

	FetchPosts(ctx context.Context) ([]model.Post, error)
	CreatePost(ctx context.Context, draft model.PostDraft) (*model.Post, error)
	UpdatePost(ctx context.Context, id string, draft model.PostDraft) (*model.Post, error)
	DeletePost(ctx context.Context, id string) error
}

// Session mirrors the token payload the service returns on login.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// AuthState is delivered to OnAuthStateChange listeners. Session is nil when
// signed out.
type AuthState struct {
	Session *Session
}

// Directory is the account/responsible roster served by the directory
// endpoint.
type Directory struct {
	Accounts     []model.Identity `json:"accounts"`
	Responsibles []model.Identity `json:"responsibles"`
}

// MonthGrid is the rendered calendar for one month.
type MonthGrid struct {
	Year  int         `json:"year"`
	Month int         `json:"month"`
	Cells []MonthCell `json:"cells"`
}

// MonthCell is one slot of the 42-cell grid.
type MonthCell struct {
	Date     calendar.Date `json:"date"`
	InMonth  bool          `json:"inMonth"`
	IsToday  bool          `json:"isToday"`
	Posts    []GridPost    `json:"posts"`
	Overflow int           `json:"overflow"`
}

// GridPost is a post plus its resolved display identities.
type GridPost struct {
	model.Post
	DisplayIdentities []model.Identity `json:"displayIdentities"`
}

// HTTPGateway talks to the planner service over REST.
type HTTPGateway struct {
	rc *resty.Client

	mu        sync.Mutex
	session   *Session
	listeners map[int]func(AuthState)
	nextSub   int
}

// NewHTTPGateway creates a gateway for the given base URL.
func NewHTTPGateway(baseURL string) *HTTPGateway {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(30 * time.Second)
	return &HTTPGateway{rc: rc, listeners: make(map[int]func(AuthState))}
}

// SetToken installs a previously obtained session token, e.g. one persisted
// between CLI invocations.
func (g *HTTPGateway) SetToken(token string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.session = &Session{Token: token}
	g.rc.SetAuthToken(token)
}

// Session returns the current session, or nil when signed out.
func (g *HTTPGateway) Session() *Session {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.session
}

// OnAuthStateChange registers cb for login/logout transitions and returns an
// unsubscribe function. The callback fires immediately with the current state.
func (g *HTTPGateway) OnAuthStateChange(cb func(AuthState)) func() {
	g.mu.Lock()
	id := g.nextSub
	g.nextSub++
	g.listeners[id] = cb
	state := AuthState{Session: g.session}
	g.mu.Unlock()

	cb(state)
	return func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		delete(g.listeners, id)
	}
}

func (g *HTTPGateway) notify(state AuthState) {
	g.mu.Lock()
	cbs := make([]func(AuthState), 0, len(g.listeners))
	for _, cb := range g.listeners {
		cbs = append(cbs, cb)
	}
	g.mu.Unlock()
	for _, cb := range cbs {
		cb(state)
	}
}

// Login authenticates and stores the session token for subsequent calls.
func (g *HTTPGateway) Login(ctx context.Context, email, password string) error {
	var sess Session
	resp, err := g.rc.R().
		SetContext(ctx).
		SetBody(map[string]string{"email": email, "password": password}).
		SetResult(&sess).
		Post("/api/auth/login")
	if err != nil {
		return err
	}
	if resp.StatusCode() != http.StatusOK {
		return errorFromResponse(resp)
	}

	g.mu.Lock()
	g.session = &sess
	g.rc.SetAuthToken(sess.Token)
	g.mu.Unlock()
	g.notify(AuthState{Session: &sess})
	return nil
}

// Logout invalidates the server session and clears local auth state. The
// local state is cleared even when the server call fails.
func (g *HTTPGateway) Logout(ctx context.Context) error {
	resp, err := g.rc.R().SetContext(ctx).Post("/api/auth/logout")

	g.mu.Lock()
	g.session = nil
	g.rc.SetAuthToken("")
	g.mu.Unlock()
	g.notify(AuthState{Session: nil})

	if err != nil {
		return err
	}
	if resp.StatusCode() != http.StatusNoContent {
		return errorFromResponse(resp)
	}
	return nil
}

// FetchPosts returns all posts, newest first.
func (g *HTTPGateway) FetchPosts(ctx context.Context) ([]model.Post, error) {
	var out struct {
		Posts []model.Post `json:"posts"`
	}
	resp, err := g.rc.R().SetContext(ctx).SetResult(&out).Get("/api/posts")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, errorFromResponse(resp)
	}
	return out.Posts, nil
}

// CreatePost persists a new post and returns it with server-assigned fields.
func (g *HTTPGateway) CreatePost(ctx context.Context, draft model.PostDraft) (*model.Post, error) {
	var post model.Post
	resp, err := g.rc.R().SetContext(ctx).SetBody(draft).SetResult(&post).Post("/api/posts")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != http.StatusCreated {
		return nil, errorFromResponse(resp)
	}
	return &post, nil
}

// UpdatePost replaces every editable field of an existing post.
func (g *HTTPGateway) UpdatePost(ctx context.Context, id string, draft model.PostDraft) (*model.Post, error) {
	var post model.Post
	resp, err := g.rc.R().SetContext(ctx).SetBody(draft).SetResult(&post).Put("/api/posts/" + id)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, errorFromResponse(resp)
	}
	return &post, nil
}

// DeletePost removes a post by id.
func (g *HTTPGateway) DeletePost(ctx context.Context, id string) error {
	resp, err := g.rc.R().SetContext(ctx).Delete("/api/posts/" + id)
	if err != nil {
		return err
	}
	if resp.StatusCode() != http.StatusNoContent {
		return errorFromResponse(resp)
	}
	return nil
}

// FetchDirectory returns the account and responsible roster.
func (g *HTTPGateway) FetchDirectory(ctx context.Context) (*Directory, error) {
	var dir Directory
	resp, err := g.rc.R().SetContext(ctx).SetResult(&dir).Get("/api/directory")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, errorFromResponse(resp)
	}
	return &dir, nil
}

// FetchMonth returns the rendered grid for one month, optionally filtered by
// owner ids.
func (g *HTTPGateway) FetchMonth(ctx context.Context, year, month int, owners []string) (*MonthGrid, error) {
	req := g.rc.R().SetContext(ctx)
	if len(owners) > 0 {
		req.SetQueryParam("owners", joinIDs(owners))
	}
	var grid MonthGrid
	resp, err := req.SetResult(&grid).Get(monthPath(year, month))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, errorFromResponse(resp)
	}
	return &grid, nil
}
