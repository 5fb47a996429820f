package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/grupo-nexus/planner/internal/auth"
	"github.com/grupo-nexus/planner/internal/directory"
	"github.com/grupo-nexus/planner/internal/model"
	"github.com/grupo-nexus/planner/internal/store"
	"github.com/grupo-nexus/planner/internal/store/sqlite"
)

type testEnv struct {
	router *mux.Router
	store  store.Store
	token  string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	st := sqlite.NewWithDB(db)

	hash, err := bcrypt.GenerateFromPassword([]byte("planner-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	_, err = st.Users().Create(context.Background(), &model.User{
		Email:        "planner@example.test",
		DisplayName:  "Planner",
		PasswordHash: string(hash),
	})
	require.NoError(t, err)

	authorizer := auth.NewSessionAuthorizer(st, time.Hour, 5, 15*time.Minute)
	router := NewRouter(st, directory.Default(), authorizer)

	env := &testEnv{router: router, store: st}
	env.token = env.login(t, "planner@example.test", "planner-pass")
	return env
}

func (e *testEnv) login(t *testing.T, email, password string) string {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"email": email, "password": password})
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	e.router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code, "login failed: %s", rr.Body.String())

	var sess struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &sess))
	require.NotEmpty(t, sess.Token)
	return sess.Token
}

func (e *testEnv) do(t *testing.T, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Authorization", "Bearer "+e.token)
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func TestPostLifecycle(t *testing.T) {
	env := newTestEnv(t)

	// Create
	rr := env.do(t, http.MethodPost, "/api/posts", model.PostDraft{
		Theme:   "Launch",
		Date:    "01/04/2025",
		Channel: model.ChannelInstagram,
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var created model.Post
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, model.StatusPlanned, created.Status)
	assert.False(t, created.CreatedAt.IsZero())

	// It shows up in the list.
	rr = env.do(t, http.MethodGet, "/api/posts", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var list struct {
		Posts []model.Post `json:"posts"`
		Count int          `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	require.Equal(t, 1, list.Count)
	assert.Equal(t, created.ID, list.Posts[0].ID)

	// And in the April 2025 grid under day 1.
	rr = env.do(t, http.MethodGet, "/api/calendar/2025/4", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var grid struct {
		Cells []CalendarCell `json:"cells"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &grid))
	require.Len(t, grid.Cells, 42)

	var found bool
	for _, cell := range grid.Cells {
		if cell.Date.Day == 1 && cell.Date.Month == 4 && cell.Date.Year == 2025 {
			require.Len(t, cell.Posts, 1)
			assert.Equal(t, created.ID, cell.Posts[0].ID)
			assert.True(t, cell.InMonth)
			found = true
		}
	}
	require.True(t, found, "April 1st cell missing")

	// Update replaces all fields.
	rr = env.do(t, http.MethodPut, "/api/posts/"+created.ID, model.PostDraft{
		Theme:  "Launch v2",
		Date:   "02/04/2025",
		Status: model.StatusApproved,
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var updated model.Post
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &updated))
	assert.Equal(t, "Launch v2", updated.Theme)
	assert.Equal(t, model.StatusApproved, updated.Status)

	// Delete, then the id no longer resolves.
	rr = env.do(t, http.MethodDelete, "/api/posts/"+created.ID, nil)
	require.Equal(t, http.StatusNoContent, rr.Code)
	rr = env.do(t, http.MethodGet, "/api/posts/"+created.ID, nil)
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCreatePost_EmptyThemeRejected(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodPost, "/api/posts", model.PostDraft{Theme: "  ", Date: "01/04/2025"})
	require.Equal(t, http.StatusBadRequest, rr.Code)

	// Nothing was persisted.
	rr = env.do(t, http.MethodGet, "/api/posts", nil)
	var list struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	assert.Equal(t, 0, list.Count)
}

func TestUpdatePost_UnknownID(t *testing.T) {
	env := newTestEnv(t)
	rr := env.do(t, http.MethodPut, "/api/posts/ghost", model.PostDraft{Theme: "x"})
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCalendar_OwnerFilterAcrossSchemas(t *testing.T) {
	env := newTestEnv(t)

	drafts := []model.PostDraft{
		{Theme: "account post", Date: "15/03/2025", Account: "grupo-nexus"},
		{Theme: "legacy post", Date: "15/03/2025", Owners: []string{"lavinia"}},
	}
	for _, d := range drafts {
		rr := env.do(t, http.MethodPost, "/api/posts", d)
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	}

	get := func(path string) []CalendarCell {
		rr := env.do(t, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		var grid struct {
			Cells []CalendarCell `json:"cells"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &grid))
		return grid.Cells
	}
	postsOn15 := func(cells []CalendarCell) []CalendarPost {
		for _, c := range cells {
			if c.Date.Day == 15 && c.Date.Month == 3 {
				return c.Posts
			}
		}
		return nil
	}

	// Unfiltered: both posts on March 15th.
	both := postsOn15(get("/api/calendar/2025/3"))
	require.Len(t, both, 2)

	// Filtered by lavinia: only the legacy post survives.
	filtered := postsOn15(get("/api/calendar/2025/3?owners=lavinia"))
	require.Len(t, filtered, 1)
	assert.Equal(t, "legacy post", filtered[0].Theme)
}

func TestCalendar_DisplayIdentityPrecedence(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodPost, "/api/posts", model.PostDraft{
		Theme:   "dual schema",
		Date:    "10/05/2025",
		Account: "grupo-nexus",
		Owners:  []string{"lavinia"},
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = env.do(t, http.MethodGet, "/api/calendar/2025/5", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var grid struct {
		Cells []CalendarCell `json:"cells"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &grid))

	for _, cell := range grid.Cells {
		if cell.Date.Day == 10 && cell.Date.Month == 5 {
			require.Len(t, cell.Posts, 1)
			idents := cell.Posts[0].DisplayIdentities
			require.Len(t, idents, 1)
			assert.Equal(t, "grupo-nexus", idents[0].ID)
			return
		}
	}
	t.Fatal("May 10th cell missing")
}

func TestCalendar_Overflow(t *testing.T) {
	env := newTestEnv(t)

	for i := 0; i < 5; i++ {
		rr := env.do(t, http.MethodPost, "/api/posts", model.PostDraft{
			Theme: fmt.Sprintf("post %d", i),
			Date:  "20/06/2025",
		})
		require.Equal(t, http.StatusCreated, rr.Code)
	}

	rr := env.do(t, http.MethodGet, "/api/calendar/2025/6", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var grid struct {
		Cells []CalendarCell `json:"cells"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &grid))

	for _, cell := range grid.Cells {
		if cell.Date.Day == 20 && cell.Date.Month == 6 {
			// Full set returned; overflow is advisory only.
			assert.Len(t, cell.Posts, 5)
			assert.Equal(t, 2, cell.Overflow)
			return
		}
	}
	t.Fatal("June 20th cell missing")
}

func TestCalendar_InvalidMonth(t *testing.T) {
	env := newTestEnv(t)
	rr := env.do(t, http.MethodGet, "/api/calendar/2025/13", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAuth_RequiredForPosts(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	req.Header.Set("Authorization", "Bearer bogus-token")
	rr = httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuth_LoginFailureKinds(t *testing.T) {
	env := newTestEnv(t)

	cases := []struct {
		email, password string
		wantStatus      int
		wantKind        string
	}{
		{"planner@example.test", "wrong-pass", http.StatusUnauthorized, "invalid-credential"},
		{"not-an-email", "whatever", http.StatusBadRequest, "invalid-email"},
	}
	for _, tc := range cases {
		body, _ := json.Marshal(map[string]string{"email": tc.email, "password": tc.password})
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
		rr := httptest.NewRecorder()
		env.router.ServeHTTP(rr, req)

		require.Equal(t, tc.wantStatus, rr.Code, rr.Body.String())
		var resp struct {
			Kind string `json:"kind"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, tc.wantKind, resp.Kind)
	}
}

func TestAuth_LogoutInvalidatesSession(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodPost, "/api/auth/logout", nil)
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr = env.do(t, http.MethodGet, "/api/posts", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestDirectoryEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodGet, "/api/directory", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Accounts     []model.Identity `json:"accounts"`
		Responsibles []model.Identity `json:"responsibles"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Accounts)
	assert.NotEmpty(t, resp.Responsibles)
}

func TestAnalyticsSummary(t *testing.T) {
	env := newTestEnv(t)

	for _, d := range []model.PostDraft{
		{Theme: "a", Date: "01/07/2025", Status: model.StatusPlanned},
		{Theme: "b", Date: "02/07/2025", Status: model.StatusPosted},
	} {
		rr := env.do(t, http.MethodPost, "/api/posts", d)
		require.Equal(t, http.StatusCreated, rr.Code)
	}

	rr := env.do(t, http.MethodGet, "/api/analytics/summary", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var sum struct {
		TotalPosts int            `json:"totalPosts"`
		ByStatus   map[string]int `json:"byStatus"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &sum))
	assert.Equal(t, 2, sum.TotalPosts)
	assert.Equal(t, 1, sum.ByStatus["planned"])
	assert.Equal(t, 1, sum.ByStatus["posted"])
}

func TestHealthEndpoint(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
}
