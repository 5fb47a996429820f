package api

import (
	"net/http"

	"github.com/grupo-nexus/planner/internal/api/respond"
	"github.com/grupo-nexus/planner/internal/directory"
)

// DirectoryHandler serves the static identity directories.
type DirectoryHandler struct {
	dir *directory.Directory
}

// NewDirectoryHandler creates a new directory handler.
func NewDirectoryHandler(dir *directory.Directory) *DirectoryHandler {
	return &DirectoryHandler{dir: dir}
}

// GetDirectory handles GET /api/directory
func (h *DirectoryHandler) GetDirectory(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"accounts":     h.dir.Accounts(),
		"responsibles": h.dir.Responsibles(),
	})
}
