// Package sqlite implements the planner store on a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/grupo-nexus/planner/internal/model"
	"github.com/grupo-nexus/planner/internal/store"
)

// Open opens (or creates) a SQLite database at the given path, enables WAL
// journal mode and bootstraps the schema. ":memory:" opens an in-memory
// database limited to a single connection.
func Open(path string) (*sql.DB, error) {
	var dsn string
	if path == ":memory:" {
		dsn = "file::memory:?_pragma=foreign_keys(ON)"
	} else {
		// ensure parent directory exists to avoid SQLITE_CANTOPEN errors
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
		dsn = fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)", path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS posts (
    post_id      TEXT PRIMARY KEY,
    theme        TEXT NOT NULL,
    content_type TEXT NOT NULL,
    channel      TEXT NOT NULL,
    status       TEXT NOT NULL,
    post_date    TEXT NOT NULL,
    description  TEXT NOT NULL DEFAULT '',
    account      TEXT NOT NULL DEFAULT '',
    responsibles TEXT,
    owners       TEXT,
    created_at   TIMESTAMP NOT NULL,
    updated_at   TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS users (
    user_id       TEXT PRIMARY KEY,
    email         TEXT NOT NULL UNIQUE,
    display_name  TEXT NOT NULL DEFAULT '',
    password_hash TEXT NOT NULL,
    created_at    TIMESTAMP NOT NULL
);`

// New opens a store at path.
func New(path string) (store.Store, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	return NewWithDB(db), nil
}

// NewWithDB allows wiring with an existing connection (used by factory and tests).
func NewWithDB(db *sql.DB) store.Store { return &sqliteStore{db: db} }

type sqliteStore struct{ db *sql.DB }

func (s *sqliteStore) Posts() store.Posts { return &posts{db: s.db} }
func (s *sqliteStore) Users() store.Users { return &users{db: s.db} }

func (s *sqliteStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// --- Posts ---

type posts struct{ db *sql.DB }

func (p *posts) Create(ctx context.Context, draft *model.PostDraft) (*model.Post, error) {
	id := uuid.New().String()
	now := time.Now().UTC()
	respJSON, ownersJSON, err := marshalOwnership(draft)
	if err != nil {
		return nil, err
	}

	_, err = p.db.ExecContext(ctx, `
        INSERT INTO posts (post_id, theme, content_type, channel, status, post_date, description, account, responsibles, owners, created_at, updated_at)
        VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		id, draft.Theme, draft.ContentType, draft.Channel, draft.Status, draft.Date,
		draft.Description, draft.Account, respJSON, ownersJSON, now, now)
	if err != nil {
		return nil, err
	}
	return draftToPost(id, draft, now, now), nil
}

func (p *posts) Get(ctx context.Context, postID string) (*model.Post, error) {
	row := p.db.QueryRowContext(ctx, `
        SELECT post_id, theme, content_type, channel, status, post_date, description, account, responsibles, owners, created_at, updated_at
        FROM posts WHERE post_id = ?`, postID)
	return scanPost(row)
}

func (p *posts) Update(ctx context.Context, postID string, draft *model.PostDraft) (*model.Post, error) {
	now := time.Now().UTC()
	respJSON, ownersJSON, err := marshalOwnership(draft)
	if err != nil {
		return nil, err
	}

	res, err := p.db.ExecContext(ctx, `
        UPDATE posts
        SET theme=?, content_type=?, channel=?, status=?, post_date=?, description=?, account=?, responsibles=?, owners=?, updated_at=?
        WHERE post_id=?`,
		draft.Theme, draft.ContentType, draft.Channel, draft.Status, draft.Date,
		draft.Description, draft.Account, respJSON, ownersJSON, now, postID)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, model.ErrNotFound
	}
	return p.Get(ctx, postID)
}

func (p *posts) Delete(ctx context.Context, postID string) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM posts WHERE post_id = ?`, postID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (p *posts) List(ctx context.Context) ([]*model.Post, error) {
	rows, err := p.db.QueryContext(ctx, `
        SELECT post_id, theme, content_type, channel, status, post_date, description, account, responsibles, owners, created_at, updated_at
        FROM posts ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []*model.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, post)
	}
	return out, rows.Err()
}

// --- Users ---

type users struct{ db *sql.DB }

func (u *users) Create(ctx context.Context, m *model.User) (*model.User, error) {
	id := m.UserID
	if id == "" {
		id = uuid.New().String()
	}
	now := time.Now().UTC()
	_, err := u.db.ExecContext(ctx, `
        INSERT INTO users (user_id, email, display_name, password_hash, created_at)
        VALUES (?,?,?,?,?)`, id, m.Email, m.DisplayName, m.PasswordHash, now)
	if err != nil {
		return nil, err
	}
	out := *m
	out.UserID = id
	out.CreatedAt = now
	return &out, nil
}

func (u *users) Get(ctx context.Context, userID string) (*model.User, error) {
	row := u.db.QueryRowContext(ctx, `
        SELECT user_id, email, display_name, password_hash, created_at FROM users WHERE user_id = ?`, userID)
	return scanUser(row)
}

func (u *users) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	row := u.db.QueryRowContext(ctx, `
        SELECT user_id, email, display_name, password_hash, created_at FROM users WHERE email = ?`, email)
	return scanUser(row)
}

// --- scanning helpers ---

type rowScanner interface{ Scan(dest ...any) error }

func scanPost(row rowScanner) (*model.Post, error) {
	var out model.Post
	var respJSON, ownersJSON sql.NullString
	err := row.Scan(&out.ID, &out.Theme, &out.ContentType, &out.Channel, &out.Status,
		&out.Date, &out.Description, &out.Account, &respJSON, &ownersJSON,
		&out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	if respJSON.Valid && respJSON.String != "" {
		if err := json.Unmarshal([]byte(respJSON.String), &out.Responsibles); err != nil {
			return nil, err
		}
	}
	if ownersJSON.Valid && ownersJSON.String != "" {
		if err := json.Unmarshal([]byte(ownersJSON.String), &out.Owners); err != nil {
			return nil, err
		}
	}
	return &out, nil
}

func scanUser(row rowScanner) (*model.User, error) {
	var out model.User
	err := row.Scan(&out.UserID, &out.Email, &out.DisplayName, &out.PasswordHash, &out.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

func marshalOwnership(draft *model.PostDraft) (respJSON, ownersJSON any, err error) {
	if len(draft.Responsibles) > 0 {
		b, err := json.Marshal(draft.Responsibles)
		if err != nil {
			return nil, nil, err
		}
		respJSON = string(b)
	}
	if len(draft.Owners) > 0 {
		b, err := json.Marshal(draft.Owners)
		if err != nil {
			return nil, nil, err
		}
		ownersJSON = string(b)
	}
	return respJSON, ownersJSON, nil
}

func draftToPost(id string, draft *model.PostDraft, created, updated time.Time) *model.Post {
	return &model.Post{
		ID:           id,
		Theme:        draft.Theme,
		ContentType:  draft.ContentType,
		Channel:      draft.Channel,
		Status:       draft.Status,
		Date:         draft.Date,
		Description:  draft.Description,
		Account:      draft.Account,
		Responsibles: draft.Responsibles,
		Owners:       draft.Owners,
		CreatedAt:    created,
		UpdatedAt:    updated,
	}
}
