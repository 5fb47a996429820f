package services

import (
	"context"

	"github.com/grupo-nexus/planner/internal/model"
	"github.com/grupo-nexus/planner/internal/store"
	"github.com/grupo-nexus/planner/internal/validate"
)

// PostService owns the business rules around scheduled posts. Validation
// runs before any store call so an invalid draft never reaches persistence.
type PostService struct {
	store store.Store
}

func NewPostService(s store.Store) *PostService { return &PostService{store: s} }

func (s *PostService) CreatePost(ctx context.Context, draft *model.PostDraft) (*model.Post, error) {
	if err := validate.PostDraft(draft); err != nil {
		return nil, err
	}
	return s.store.Posts().Create(ctx, draft)
}

func (s *PostService) GetPost(ctx context.Context, postID string) (*model.Post, error) {
	return s.store.Posts().Get(ctx, postID)
}

// UpdatePost replaces every field of the post. Partial patches are not
// supported; callers resend the full draft.
func (s *PostService) UpdatePost(ctx context.Context, postID string, draft *model.PostDraft) (*model.Post, error) {
	if err := validate.PostDraft(draft); err != nil {
		return nil, err
	}
	return s.store.Posts().Update(ctx, postID, draft)
}

func (s *PostService) DeletePost(ctx context.Context, postID string) error {
	return s.store.Posts().Delete(ctx, postID)
}

// ListPosts returns all posts, newest first.
func (s *PostService) ListPosts(ctx context.Context) ([]*model.Post, error) {
	return s.store.Posts().List(ctx)
}
