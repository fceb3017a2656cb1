package payroll

import "time"

// ConfirmUnion replaces the cached contribution types with the ones confirmed
// in the selection dialog, dropping duplicates. It reports whether anything
// stays selected; when nothing does the host switches the toggle off.
func (s *Session) ConfirmUnion(types []UnionType) bool {
	seen := make(map[UnionType]bool, len(types))
	selected := make([]UnionType, 0, len(types))
	for _, t := range types {
		if seen[t] {
			continue
		}
		seen[t] = true
		selected = append(selected, t)
	}
	s.UnionTypes = selected
	s.UpdatedAt = time.Now().UTC()
	return len(selected) > 0
}

// ClearUnion forgets the cached selection.
func (s *Session) ClearUnion() {
	s.UnionTypes = nil
	s.UpdatedAt = time.Now().UTC()
}

// observeCap is edge triggered: it returns true only on the recompute that
// enters the capped state and re-arms once the value drops below the cap.
func (s *Session) observeCap(capped bool) bool {
	if capped {
		if s.CapWarned {
			return false
		}
		s.CapWarned = true
		return true
	}
	s.CapWarned = false
	return false
}
