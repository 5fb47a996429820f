package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/grupo-nexus/planner/internal/api/respond"
	"github.com/grupo-nexus/planner/internal/model"
	"github.com/grupo-nexus/planner/internal/services"
)

// PostHandler handles post CRUD requests (thin transport layer).
type PostHandler struct {
	posts *services.PostService
}

// NewPostHandler creates a new post handler.
func NewPostHandler(posts *services.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

// ListPosts handles GET /api/posts
func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.ListPosts(r.Context())
	if err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	if posts == nil {
		posts = []*model.Post{}
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"posts": posts,
		"count": len(posts),
	})
}

// CreatePost handles POST /api/posts
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var draft model.PostDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}

	post, err := h.posts.CreatePost(r.Context(), &draft)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, post)
}

// GetPost handles GET /api/posts/{postId}
func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["postId"]

	post, err := h.posts.GetPost(r.Context(), postID)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, post)
}

// UpdatePost handles PUT /api/posts/{postId}. Full-field replace; the
// caller resends every field.
func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["postId"]

	var draft model.PostDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}

	post, err := h.posts.UpdatePost(r.Context(), postID, &draft)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, post)
}

// DeletePost handles DELETE /api/posts/{postId}
func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["postId"]

	if err := h.posts.DeletePost(r.Context(), postID); err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
