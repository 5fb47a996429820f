package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/grupo-nexus/planner/internal/model"
	"github.com/grupo-nexus/planner/internal/store"
)

// Open opens a PostgreSQL connection using the pgx stdlib driver and verifies connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// NewWithDB constructs a Postgres store backed directly by database/sql.
func NewWithDB(db *sql.DB) store.Store { return &pgStore{db: db} }

type pgStore struct{ db *sql.DB }

func (s *pgStore) Posts() store.Posts { return &posts{db: s.db} }
func (s *pgStore) Users() store.Users { return &users{db: s.db} }

func (s *pgStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
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
    responsibles JSONB,
    owners       JSONB,
    created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS users (
    user_id       TEXT PRIMARY KEY,
    email         TEXT NOT NULL UNIQUE,
    display_name  TEXT NOT NULL DEFAULT '',
    password_hash TEXT NOT NULL,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);`

// Bootstrap ensures the schema exists and the backend is reachable.
func Bootstrap(ctx context.Context, db *sql.DB) error {
	if err := db.PingContext(ctx); err != nil {
		return err
	}
	_, err := db.ExecContext(ctx, schema)
	return err
}

// --- Posts ---

type posts struct{ db *sql.DB }

func (p *posts) Create(ctx context.Context, draft *model.PostDraft) (*model.Post, error) {
	id := uuid.New().String()
	respJSON, ownersJSON, err := marshalOwnership(draft)
	if err != nil {
		return nil, err
	}

	var created, updated time.Time
	row := p.db.QueryRowContext(ctx, `
        INSERT INTO posts (post_id, theme, content_type, channel, status, post_date, description, account, responsibles, owners)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING created_at, updated_at
    `, id, draft.Theme, draft.ContentType, draft.Channel, draft.Status, draft.Date, draft.Description, draft.Account, respJSON, ownersJSON)
	if err := row.Scan(&created, &updated); err != nil {
		return nil, err
	}
	return draftToPost(id, draft, created, updated), nil
}

func (p *posts) Get(ctx context.Context, postID string) (*model.Post, error) {
	row := p.db.QueryRowContext(ctx, `
        SELECT post_id, theme, content_type, channel, status, post_date, description, account, responsibles, owners, created_at, updated_at
        FROM posts WHERE post_id=$1
    `, postID)
	return scanPost(row)
}

func (p *posts) Update(ctx context.Context, postID string, draft *model.PostDraft) (*model.Post, error) {
	respJSON, ownersJSON, err := marshalOwnership(draft)
	if err != nil {
		return nil, err
	}

	var created, updated time.Time
	row := p.db.QueryRowContext(ctx, `
        UPDATE posts
        SET theme=$2, content_type=$3, channel=$4, status=$5, post_date=$6, description=$7, account=$8, responsibles=$9, owners=$10, updated_at=now()
        WHERE post_id=$1
        RETURNING created_at, updated_at
    `, postID, draft.Theme, draft.ContentType, draft.Channel, draft.Status, draft.Date, draft.Description, draft.Account, respJSON, ownersJSON)
	if err := row.Scan(&created, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return draftToPost(postID, draft, created, updated), nil
}

func (p *posts) Delete(ctx context.Context, postID string) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM posts WHERE post_id=$1`, postID)
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
        FROM posts ORDER BY created_at DESC
    `)
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
	var created time.Time
	row := u.db.QueryRowContext(ctx, `
        INSERT INTO users (user_id, email, display_name, password_hash)
        VALUES ($1,$2,$3,$4)
        RETURNING created_at
    `, id, m.Email, m.DisplayName, m.PasswordHash)
	if err := row.Scan(&created); err != nil {
		return nil, err
	}
	out := *m
	out.UserID = id
	out.CreatedAt = created
	return &out, nil
}

func (u *users) Get(ctx context.Context, userID string) (*model.User, error) {
	row := u.db.QueryRowContext(ctx, `
        SELECT user_id, email, display_name, password_hash, created_at FROM users WHERE user_id=$1
    `, userID)
	return scanUser(row)
}

func (u *users) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	row := u.db.QueryRowContext(ctx, `
        SELECT user_id, email, display_name, password_hash, created_at FROM users WHERE email=$1
    `, email)
	return scanUser(row)
}

// --- scanning helpers ---

type rowScanner interface{ Scan(dest ...any) error }

func scanPost(row rowScanner) (*model.Post, error) {
	var out model.Post
	var respJSON, ownersJSON []byte
	err := row.Scan(&out.ID, &out.Theme, &out.ContentType, &out.Channel, &out.Status,
		&out.Date, &out.Description, &out.Account, &respJSON, &ownersJSON,
		&out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	if err := unmarshalIDs(respJSON, &out.Responsibles); err != nil {
		return nil, err
	}
	if err := unmarshalIDs(ownersJSON, &out.Owners); err != nil {
		return nil, err
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

func marshalOwnership(draft *model.PostDraft) (respJSON, ownersJSON []byte, err error) {
	if len(draft.Responsibles) > 0 {
		if respJSON, err = json.Marshal(draft.Responsibles); err != nil {
			return nil, nil, err
		}
	}
	if len(draft.Owners) > 0 {
		if ownersJSON, err = json.Marshal(draft.Owners); err != nil {
			return nil, nil, err
		}
	}
	return respJSON, ownersJSON, nil
}

func unmarshalIDs(raw []byte, dst *[]string) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
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
