package attendance

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/volatiletech/null/v8"
)

func rec(studentID, classID, gender string, status Status) Record {
	return Record{
		ID:        "r-" + studentID,
		StudentID: studentID,
		Status:    status,
		Student:   StudentRef{ID: studentID, Gender: gender, ClassID: classID},
	}
}

func TestAggregate_eastSectionScenario(t *testing.T) {
	classes := []Class{
		{ID: "A", Name: "Class A", Section: null.StringFrom("East")},
		{ID: "B", Name: "Class B", Section: null.StringFrom("East")},
	}
	var records []Record
	for i := 0; i < 3; i++ {
		records = append(records, rec("am"+strconv.Itoa(i), "A", "Male", StatusPresent))
	}
	for i := 0; i < 2; i++ {
		records = append(records, rec("af"+strconv.Itoa(i), "A", "Female", StatusPresent))
	}
	records = append(records, rec("ax", "A", "Male", StatusAbsent))

	report := Aggregate(records, classes)
	if len(report.Sections) != 1 {
		t.Fatalf("got %d sections, want 1", len(report.Sections))
	}
	east := report.Sections[0]
	if east.Name != "EAST SECTION" {
		t.Errorf("section name = %q, want %q", east.Name, "EAST SECTION")
	}
	want := Counts{Male: 3, Female: 2, Total: 5, AbsentMale: 1, AbsentTotal: 1}
	if east.Counts != want {
		t.Errorf("east totals = %+v, want %+v", east.Counts, want)
	}
	if got := east.ClassTotal(); got != 6 {
		t.Errorf("section classTotal = %d, want 6", got)
	}

	// Class B has no records and must still appear, rendering all dashes.
	if len(east.Classes) != 2 {
		t.Fatalf("got %d classes, want 2", len(east.Classes))
	}
	b := east.Classes[1]
	if b.Name != "Class B" {
		t.Fatalf("classes out of order: %+v", east.Classes)
	}
	view := report.View()
	bRow := view.Sections[0].Classes[1]
	for _, cell := range []string{bRow.Male, bRow.Female, bRow.Total, bRow.AbsentMale, bRow.AbsentFemale, bRow.AbsentTotal, bRow.ClassTotal} {
		if cell != "-" {
			t.Errorf("empty class cell = %q, want \"-\"", cell)
		}
	}
}

func TestAggregate_unknownGenderStillCounts(t *testing.T) {
	classes := []Class{{ID: "A", Name: "Class A"}}
	records := []Record{
		rec("s1", "A", "", StatusPresent),
		rec("s2", "A", "other", StatusPresent),
		rec("s3", "A", "female", StatusAbsent), // lowercase still canonicalizes
		rec("s4", "A", "N/A", StatusAbsent),
	}
	report := Aggregate(records, classes)
	c := report.Sections[0].Classes[0].Counts
	if c.Total != 2 || c.Male != 0 || c.Female != 0 {
		t.Errorf("present counts = %+v", c)
	}
	if c.AbsentTotal != 2 || c.AbsentFemale != 1 || c.AbsentMale != 0 {
		t.Errorf("absent counts = %+v", c)
	}
	if c.ClassTotal() != c.Total+c.AbsentTotal {
		t.Errorf("classTotal %d != total %d + absentTotal %d", c.ClassTotal(), c.Total, c.AbsentTotal)
	}
}

// Every level of the report must reconcile with the level below it, for any
// input.
func TestAggregate_reconciliation(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	genders := []string{"Male", "Female", "", "unknown", "MALE", "female"}
	sections := []string{"East", "West", ""}

	var classes []Class
	for i := 0; i < 12; i++ {
		classes = append(classes, Class{
			ID:      "c" + strconv.Itoa(i),
			Name:    "Class " + strconv.Itoa(i),
			Section: null.NewString(sections[i%len(sections)], sections[i%len(sections)] != ""),
		})
	}
	var records []Record
	for i := 0; i < 500; i++ {
		status := StatusPresent
		if rng.Intn(2) == 1 {
			status = StatusAbsent
		}
		records = append(records, rec(
			"s"+strconv.Itoa(i),
			"c"+strconv.Itoa(rng.Intn(14)), // some class ids are orphans
			genders[rng.Intn(len(genders))],
			status,
		))
	}

	report := Aggregate(records, classes)

	var classTotals, sectionPresent, sectionAbsent Counts
	for _, s := range report.Sections {
		var fromClasses Counts
		for _, cl := range s.Classes {
			fromClasses.merge(cl.Counts)
			if cl.ClassTotal() != cl.Total+cl.AbsentTotal {
				t.Errorf("class %s: classTotal %d != %d+%d", cl.Name, cl.ClassTotal(), cl.Total, cl.AbsentTotal)
			}
		}
		if fromClasses != s.Counts {
			t.Errorf("section %s totals %+v != sum of classes %+v", s.Section, s.Counts, fromClasses)
		}
		classTotals.merge(fromClasses)
		sectionPresent.Total += s.Total
		sectionAbsent.AbsentTotal += s.AbsentTotal
	}
	if classTotals != report.Totals {
		t.Errorf("grand totals %+v != sum of sections %+v", report.Totals, classTotals)
	}
	if got := sectionPresent.Total + sectionAbsent.AbsentTotal; got != len(records) {
		t.Errorf("present+absent over sections = %d, want %d (every record counted exactly once)", got, len(records))
	}
}

func TestCell(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "-"},
		{1, "1"},
		{42, "42"},
		{-3, "-3"},
	}
	for _, tt := range tests {
		if got := Cell(tt.n); got != tt.want {
			t.Errorf("Cell(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
