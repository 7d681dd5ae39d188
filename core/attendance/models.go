package attendance

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/shuledash/shuledash/core"
)

type Status string

const (
	StatusPresent Status = "PRESENT"
	StatusAbsent  Status = "ABSENT"
)

func (s Status) Valid() bool {
	return s == StatusPresent || s == StatusAbsent
}

// Genders as counted. Anything that does not canonicalize to exactly MALE or
// FEMALE lands in no gendered bucket but still counts towards its status
// total.
const (
	GenderMale    = "MALE"
	GenderFemale  = "FEMALE"
	GenderUnknown = "UNKNOWN"
)

// CanonGender uppercases a gender value for counting; empty means UNKNOWN.
func CanonGender(g string) string {
	g = strings.ToUpper(strings.TrimSpace(g))
	if g == "" {
		return GenderUnknown
	}
	return g
}

// StudentRef is the partial student copy embedded in an attendance record.
// It may be stale or incomplete; the master list wins on a join.
type StudentRef struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Gender    string `json:"gender"`
	ClassID   string `json:"classId"`
}

// Record is one student's attendance mark for a day.
type Record struct {
	ID            string      `json:"id"`
	StudentID     string      `json:"studentId"`
	Status        Status      `json:"status"`
	AbsenceReason null.String `json:"absenceReason"`
	Student       StudentRef  `json:"student"`
}

// Class is the class master record; Section groups classes into streams.
type Class struct {
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	Section null.String `json:"section"`
}

// DayFilter scopes a report load.
type DayFilter struct {
	Date           string `query:"date" validate:"required"`
	AcademicYearID string `query:"academic_year_id"`
	TermID         string `query:"term_id"`
}

// Entry is one student's mark in a day submission.
type Entry struct {
	StudentID     string      `json:"studentId" validate:"required"`
	Status        Status      `json:"status" validate:"required,oneof=PRESENT ABSENT"`
	AbsenceReason null.String `json:"absenceReason"`
}

// DaySheet is a full-day resubmission scoped to (date, class, year, term).
// Attendance is immutable once saved except via resubmitting the whole day.
type DaySheet struct {
	Date           string  `json:"date" validate:"required"`
	ClassID        string  `json:"classId" validate:"required"`
	AcademicYearID string  `json:"academicYearId" validate:"required"`
	TermID         string  `json:"termId" validate:"required"`
	Entries        []Entry `json:"entries" validate:"required,min=1,dive"`
}

func (d *DaySheet) Validate(validate *validator.Validate) error {
	if err := validate.Struct(d); err != nil {
		return err
	}
	// an absence needs a reason; a presence must not carry one
	var flds []core.FieldError
	for _, e := range d.Entries {
		if e.Status == StatusAbsent && (!e.AbsenceReason.Valid || core.CleanString(e.AbsenceReason.String) == "") {
			flds = append(flds, core.FieldError{
				Field: e.StudentID,
				Error: "absence reason is required for an absent student",
			})
		}
	}
	if flds != nil {
		return core.NewValidationError(nil, flds...)
	}
	return nil
}
