package marks

// CA holds the continuous assessment sub-components, each scored out of 20.
// The stored total is always recomputed from the components, never trusted.
type CA struct {
	ClassWork     float64 `json:"classWork" validate:"min=0,max=20"`
	HomeWork      float64 `json:"homeWork" validate:"min=0,max=20"`
	Organization  float64 `json:"organization" validate:"min=0,max=20"`
	Participation float64 `json:"participation" validate:"min=0,max=20"`
	Management    float64 `json:"management" validate:"min=0,max=20"`
}

func (c CA) Total() float64 {
	return c.ClassWork + c.HomeWork + c.Organization + c.Participation + c.Management
}

// Mark is one student's result for one exam and subject.
type Mark struct {
	ID        string  `json:"id"`
	StudentID string  `json:"studentId" validate:"required"`
	ExamID    string  `json:"examId"`
	SubjectID string  `json:"subjectActivityId"`
	Score     float64 `json:"score" validate:"min=0,max=100"`
	CA        CA      `json:"ca"`
}

// Marks categories. CA sheets derive the score from the component scores,
// exam sheets carry it directly.
const (
	CategoryCA   = "CA"
	CategoryExam = "EXAM"
)

// SheetFilter scopes a marks sheet to one class/subject/exam.
type SheetFilter struct {
	ClassID        string `json:"classId" validate:"required"`
	SubjectID      string `json:"subjectActivityId" validate:"required"`
	ExamID         string `json:"examId" validate:"required"`
	Category       string `json:"category" validate:"omitempty,oneof=CA EXAM"`
	AcademicYearID string `json:"academicYearId"`
	TermID         string `json:"termId"`
}

// Sheet is a full marks submission for a class.
type Sheet struct {
	SheetFilter
	Marks []Mark `json:"marks" validate:"min=1,dive"`
}
