package filter

// Selection is the toggle set of identity ids driving the owner filter.
// Toggling a selected id removes it; toggling a new id appends it.
// Insertion order is preserved for rendering.
type Selection struct {
	ids []string
	set map[string]bool
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{set: make(map[string]bool)}
}

// SelectionOf builds a selection from ids, ignoring duplicates.
func SelectionOf(ids ...string) *Selection {
	s := NewSelection()
	for _, id := range ids {
		if !s.set[id] {
			s.set[id] = true
			s.ids = append(s.ids, id)
		}
	}
	return s
}

// Toggle flips membership of id.
func (s *Selection) Toggle(id string) {
	if s.set[id] {
		delete(s.set, id)
		for i, v := range s.ids {
			if v == id {
				s.ids = append(s.ids[:i], s.ids[i+1:]...)
				break
			}
		}
		return
	}
	s.set[id] = true
	s.ids = append(s.ids, id)
}

// Clear resets the selection to empty.
func (s *Selection) Clear() {
	s.ids = nil
	s.set = make(map[string]bool)
}

// Contains reports membership of id.
func (s *Selection) Contains(id string) bool {
	return s != nil && s.set[id]
}

// Empty reports whether no ids are selected.
func (s *Selection) Empty() bool {
	return s == nil || len(s.ids) == 0
}

// IDs returns the selected ids in insertion order.
func (s *Selection) IDs() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}
