// Package directory holds the static account and responsible registries.
// Both are loaded once at startup and read-only afterwards.
package directory

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/grupo-nexus/planner/internal/model"
)

// Directory resolves identity ids to directory entries. Accounts and
// responsibles are separate namespaces; an id may exist in both, in which
// case owner lookup prefers the account entry.
type Directory struct {
	accounts     []model.Identity
	responsibles []model.Identity
	accountByID  map[string]model.Identity
	respByID     map[string]model.Identity
}

// New builds a Directory from explicit account and responsible lists.
func New(accounts, responsibles []model.Identity) *Directory {
	d := &Directory{
		accounts:     accounts,
		responsibles: responsibles,
		accountByID:  make(map[string]model.Identity, len(accounts)),
		respByID:     make(map[string]model.Identity, len(responsibles)),
	}
	for _, a := range accounts {
		d.accountByID[a.ID] = a
	}
	for _, r := range responsibles {
		d.respByID[r.ID] = r
	}
	return d
}

// Default returns the built-in directory.
func Default() *Directory {
	return New(defaultAccounts, defaultResponsibles)
}

// LoadFile reads a directory definition from a JSON file with top-level
// "accounts" and "responsibles" arrays.
func LoadFile(path string) (*Directory, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read directory file: %w", err)
	}
	var spec struct {
		Accounts     []model.Identity `json:"accounts"`
		Responsibles []model.Identity `json:"responsibles"`
	}
	if err := json.Unmarshal(raw, &spec); err != nil {
		return nil, fmt.Errorf("parse directory file: %w", err)
	}
	return New(spec.Accounts, spec.Responsibles), nil
}

// Accounts returns the account entries in definition order.
func (d *Directory) Accounts() []model.Identity { return d.accounts }

// Responsibles returns the responsible entries in definition order.
func (d *Directory) Responsibles() []model.Identity { return d.responsibles }

// LookupAccount resolves an account id.
func (d *Directory) LookupAccount(id string) (model.Identity, bool) {
	ident, ok := d.accountByID[id]
	return ident, ok
}

// LookupResponsible resolves a responsible id.
func (d *Directory) LookupResponsible(id string) (model.Identity, bool) {
	ident, ok := d.respByID[id]
	return ident, ok
}

// LookupOwner resolves an id against accounts first, then responsibles.
func (d *Directory) LookupOwner(id string) (model.Identity, bool) {
	if ident, ok := d.accountByID[id]; ok {
		return ident, true
	}
	if ident, ok := d.respByID[id]; ok {
		return ident, true
	}
	return model.Identity{}, false
}

// LookupOwnersByIDs maps ids through LookupOwner, dropping unresolved ids
// silently. Input order is preserved and repeated ids are not deduplicated.
func (d *Directory) LookupOwnersByIDs(ids []string) []model.Identity {
	out := make([]model.Identity, 0, len(ids))
	for _, id := range ids {
		if ident, ok := d.LookupOwner(id); ok {
			out = append(out, ident)
		}
	}
	return out
}

var defaultAccounts = []model.Identity{
	{ID: "grupo-nexus", DisplayName: "Grupo Nexus", Color: "#6117F4", Initials: "GN"},
	{ID: "executive", DisplayName: "Executive", Color: "#FF9800", Initials: "EX"},
	{ID: "systems", DisplayName: "Systems", Color: "#2196F3", Initials: "SY"},
	{ID: "lavinia", DisplayName: "Lavínia Siviero", Color: "#9C27B0", Initials: "LS"},
	{ID: "gabriel", DisplayName: "Gabriel Angelo", Color: "#4CAF50", Initials: "GA"},
	{ID: "vinicius", DisplayName: "Vinícius Costa", Color: "#00BCD4", Initials: "VC"},
}

var defaultResponsibles = []model.Identity{
	{ID: "pedro", DisplayName: "Pedro Lucas", Color: "#FF5722", Initials: "PL"},
	{ID: "lavinia", DisplayName: "Lavínia Siviero", Color: "#9C27B0", Initials: "LS"},
	{ID: "gabriel", DisplayName: "Gabriel Angelo", Color: "#4CAF50", Initials: "GA"},
	{ID: "vinicius", DisplayName: "Vinícius Costa", Color: "#00BCD4", Initials: "VC"},
}
