package subject

// Activity is a teachable subject/activity master record.
type Activity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Assignment links a class to a subject for the current year/term. The
// assignment id is needed to delete the link; the subject id is what edits
// diff on, since a not-yet-created assignment has no id.
type Assignment struct {
	ID        string `json:"id"`
	ClassID   string `json:"classId"`
	SubjectID string `json:"subjectActivityId"`
}

// AssignmentRef is the (assignment id, subject id) pair the diff engine
// works with.
type AssignmentRef struct {
	AssignmentID string `json:"assignmentId,omitempty"`
	SubjectID    string `json:"subjectId"`
}

// ClassSubjects groups every assignment of one class for display.
type ClassSubjects struct {
	ClassID   string            `json:"classId"`
	ClassName string            `json:"className"`
	Subjects  []AssignedSubject `json:"subjects"`
}

// AssignedSubject carries both ids plus the resolved activity name.
type AssignedSubject struct {
	AssignmentID string `json:"assignmentId"`
	SubjectID    string `json:"subjectId"`
	Name         string `json:"name"`
}
