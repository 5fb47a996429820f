// Package filter narrows post collections by owner selection.
package filter

import "github.com/grupo-nexus/planner/internal/model"

// ApplyOwnerFilter returns the posts whose ownership intersects the
// selection. An empty selection means "show all". Unlike display
// resolution, the filter is deliberately permissive across schemas: the
// account, responsibles and legacy owners of a post are unioned before the
// intersection test. The filter is stable and never mutates its input.
func ApplyOwnerFilter(posts []model.Post, selection *Selection) []model.Post {
	if selection.Empty() {
		return posts
	}
	var out []model.Post
	for _, p := range posts {
		if postMatchesSelection(p, selection) {
			out = append(out, p)
		}
	}
	return out
}

func postMatchesSelection(p model.Post, selection *Selection) bool {
	if p.Account != "" && selection.Contains(p.Account) {
		return true
	}
	for _, id := range p.Responsibles {
		if selection.Contains(id) {
			return true
		}
	}
	for _, id := range p.Owners {
		if selection.Contains(id) {
			return true
		}
	}
	return false
}
