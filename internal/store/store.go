package store

import (
	"context"

	"github.com/grupo-nexus/planner/internal/model"
)

// Store exposes persistence operations required by services.
// Implementations live under internal/store/<driver>/.
type Store interface {
	Posts() Posts
	Users() Users

	// HealthPing verifies backend connectivity.
	HealthPing(ctx context.Context) error
}

// Posts persists scheduled posts. The store assigns ids and timestamps;
// Update has full-field replace semantics and refreshes UpdatedAt.
type Posts interface {
	Create(ctx context.Context, draft *model.PostDraft) (*model.Post, error)
	Get(ctx context.Context, postID string) (*model.Post, error)
	Update(ctx context.Context, postID string, draft *model.PostDraft) (*model.Post, error)
	Delete(ctx context.Context, postID string) error

	// List returns all posts ordered by creation time descending.
	List(ctx context.Context) ([]*model.Post, error)
}

type Users interface {
	Create(ctx context.Context, u *model.User) (*model.User, error)
	Get(ctx context.Context, userID string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}
