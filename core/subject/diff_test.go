package subject

import "testing"

func refs(subjects ...string) []AssignmentRef {
	out := make([]AssignmentRef, 0, len(subjects))
	for i, s := range subjects {
		out = append(out, AssignmentRef{AssignmentID: "a" + string(rune('0'+i)), SubjectID: s})
	}
	return out
}

func subjectIDs(rs []AssignmentRef) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.SubjectID)
	}
	return out
}

func TestDiff(t *testing.T) {
	tests := []struct {
		name       string
		existing   []AssignmentRef
		edited     []AssignmentRef
		wantAdd    []string
		wantRemove []string
	}{
		{
			name:     "math+english to math+science",
			existing: refs("math", "english"),
			edited:   []AssignmentRef{{SubjectID: "math"}, {SubjectID: "science"}},
			wantAdd:  []string{"science"}, wantRemove: []string{"english"},
		},
		{
			name:     "identical sets are a no-op",
			existing: refs("math", "english"),
			edited:   []AssignmentRef{{SubjectID: "math"}, {SubjectID: "english"}},
		},
		{
			name:     "same set reordered is a no-op",
			existing: refs("math", "english", "art"),
			edited:   []AssignmentRef{{SubjectID: "art"}, {SubjectID: "english"}, {SubjectID: "math"}},
		},
		{
			name:    "everything new",
			edited:  []AssignmentRef{{SubjectID: "math"}},
			wantAdd: []string{"math"},
		},
		{
			name:       "everything removed",
			existing:   refs("math"),
			wantRemove: []string{"math"},
		},
		{
			name:     "duplicate picks collapse to one add",
			existing: refs("math"),
			edited:   []AssignmentRef{{SubjectID: "math"}, {SubjectID: "science"}, {SubjectID: "science"}},
			wantAdd:  []string{"science"},
		},
		{
			name:       "duplicate existing rows collapse to one removal",
			existing:   []AssignmentRef{{AssignmentID: "a0", SubjectID: "english"}, {AssignmentID: "a1", SubjectID: "english"}},
			edited:     []AssignmentRef{{SubjectID: "math"}},
			wantAdd:    []string{"math"},
			wantRemove: []string{"english"},
		},
		{name: "both empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ch := Diff(tt.existing, tt.edited)
			if got := subjectIDs(ch.ToAdd); !equal(got, tt.wantAdd) {
				t.Errorf("ToAdd = %v, want %v", got, tt.wantAdd)
			}
			if got := subjectIDs(ch.ToRemove); !equal(got, tt.wantRemove) {
				t.Errorf("ToRemove = %v, want %v", got, tt.wantRemove)
			}
			if tt.wantAdd == nil && tt.wantRemove == nil && !ch.IsEmpty() {
				t.Error("IsEmpty() = false, want true")
			}
		})
	}
}

// Removals must carry the assignment id, which is what the delete endpoint
// keys on.
func TestDiff_removalKeepsAssignmentID(t *testing.T) {
	existing := []AssignmentRef{{AssignmentID: "as-77", SubjectID: "english"}}
	ch := Diff(existing, nil)
	if len(ch.ToRemove) != 1 || ch.ToRemove[0].AssignmentID != "as-77" {
		t.Errorf("ToRemove = %+v", ch.ToRemove)
	}
}

func equal(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
