package directory

import "github.com/grupo-nexus/planner/internal/model"

// ResolveDisplayIdentities computes the identity list shown for a post,
// independent of which ownership schema the record uses.
//
// The current schema (account, then responsibles in stored order) wins
// whenever it yields at least one identity; the legacy owners list is only
// consulted as a fallback. Unresolved ids are dropped, never errors.
func (d *Directory) ResolveDisplayIdentities(post model.Post) []model.Identity {
	out := make([]model.Identity, 0, 1+len(post.Responsibles))

	if post.Account != "" {
		if ident, ok := d.LookupAccount(post.Account); ok {
			out = append(out, ident)
		}
	}
	for _, id := range post.Responsibles {
		if ident, ok := d.LookupResponsible(id); ok {
			out = append(out, ident)
		}
	}
	if len(out) == 0 && len(post.Owners) > 0 {
		return d.LookupOwnersByIDs(post.Owners)
	}
	return out
}
