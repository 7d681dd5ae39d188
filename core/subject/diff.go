package subject

// Changes is the minimal edit set between an existing and an edited
// selection of subjects for a class.
type Changes struct {
	ToAdd    []AssignmentRef
	ToRemove []AssignmentRef
}

// IsEmpty reports a no-op edit; callers must then skip the network
// round-trip entirely.
func (c Changes) IsEmpty() bool {
	return len(c.ToAdd) == 0 && len(c.ToRemove) == 0
}

// Diff compares by subject id, never by assignment id: entries picked in the
// edit dialog have no assignment id yet. Order does not matter; the same
// subject set in any order diffs to nothing.
func Diff(existing, edited []AssignmentRef) Changes {
	existingBy := make(map[string]AssignmentRef, len(existing))
	for _, ref := range existing {
		existingBy[ref.SubjectID] = ref
	}
	editedSet := make(map[string]bool, len(edited))
	for _, ref := range edited {
		editedSet[ref.SubjectID] = true
	}

	// duplicate subject ids within either list collapse to one entry so a
	// double-picked subject is never submitted twice
	var ch Changes
	seen := make(map[string]bool)
	for _, ref := range edited {
		if _, ok := existingBy[ref.SubjectID]; !ok && !seen[ref.SubjectID] {
			seen[ref.SubjectID] = true
			ch.ToAdd = append(ch.ToAdd, ref)
		}
	}
	seen = make(map[string]bool)
	for _, ref := range existing {
		if !editedSet[ref.SubjectID] && !seen[ref.SubjectID] {
			seen[ref.SubjectID] = true
			ch.ToRemove = append(ch.ToRemove, ref)
		}
	}
	return ch
}
