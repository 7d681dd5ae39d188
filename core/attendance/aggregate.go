package attendance

import (
	"sort"
	"strings"
)

// SectionUnsorted is the default bucket for classes with no section.
const SectionUnsorted = "UNSORTED"

// Counts is one level of the attendance breakdown. The invariant at every
// level is ClassTotal() == Total + AbsentTotal: each marked student counts
// exactly once as present or absent, gendered or not.
type Counts struct {
	Male         int `json:"male"`
	Female       int `json:"female"`
	Total        int `json:"total"`
	AbsentMale   int `json:"absentMale"`
	AbsentFemale int `json:"absentFemale"`
	AbsentTotal  int `json:"absentTotal"`
}

func (c Counts) ClassTotal() int { return c.Total + c.AbsentTotal }

func (c *Counts) count(status Status, gender string) {
	gender = CanonGender(gender)
	switch status {
	case StatusPresent:
		c.Total++
		switch gender {
		case GenderMale:
			c.Male++
		case GenderFemale:
			c.Female++
		}
	case StatusAbsent:
		c.AbsentTotal++
		switch gender {
		case GenderMale:
			c.AbsentMale++
		case GenderFemale:
			c.AbsentFemale++
		}
	}
}

func (c *Counts) merge(o Counts) {
	c.Male += o.Male
	c.Female += o.Female
	c.Total += o.Total
	c.AbsentMale += o.AbsentMale
	c.AbsentFemale += o.AbsentFemale
	c.AbsentTotal += o.AbsentTotal
}

type ClassSummary struct {
	ClassID string `json:"classId"`
	Name    string `json:"name"`
	Counts
}

type SectionSummary struct {
	Section string         `json:"section"`
	Name    string         `json:"name"` // display name, e.g. "EAST SECTION"
	Classes []ClassSummary `json:"classes"`
	Counts
}

// Report is the full drill-down: grand totals -> sections -> classes. Every
// level is derived from the same single pass over the raw records, so the
// numbers reconcile exactly.
type Report struct {
	Sections []SectionSummary `json:"sections"`
	Totals   Counts           `json:"totals"`
}

// SectionName renders the display name of a section.
func SectionName(section string) string {
	if section == SectionUnsorted {
		return SectionUnsorted
	}
	return strings.ToUpper(section) + " SECTION"
}

// Aggregate builds the report from joined records and the class master list.
// Classes with no records still appear (all-zero rows); records referencing
// a class missing from the master list get a row keyed by the class id.
func Aggregate(records []Record, classes []Class) Report {
	perClass := make(map[string]*Counts, len(classes))
	for _, r := range records {
		classID := r.Student.ClassID
		c, ok := perClass[classID]
		if !ok {
			c = &Counts{}
			perClass[classID] = c
		}
		c.count(r.Status, r.Student.Gender)
	}

	seen := make(map[string]bool, len(classes))
	bySection := make(map[string][]ClassSummary)
	addClass := func(id, name, section string) {
		counts := Counts{}
		if c, ok := perClass[id]; ok {
			counts = *c
		}
		if section == "" {
			section = SectionUnsorted
		}
		bySection[section] = append(bySection[section], ClassSummary{
			ClassID: id,
			Name:    name,
			Counts:  counts,
		})
		seen[id] = true
	}

	for _, cl := range classes {
		addClass(cl.ID, cl.Name, strings.TrimSpace(cl.Section.String))
	}
	// orphan records: classes the master list does not know about
	orphans := make([]string, 0)
	for id := range perClass {
		if !seen[id] {
			orphans = append(orphans, id)
		}
	}
	sort.Strings(orphans)
	for _, id := range orphans {
		name := id
		if name == "" {
			name = "UNASSIGNED"
		}
		addClass(id, name, SectionUnsorted)
	}

	report := Report{Sections: make([]SectionSummary, 0, len(bySection))}
	for section, classSums := range bySection {
		sort.Slice(classSums, func(i, j int) bool { return classSums[i].Name < classSums[j].Name })
		sum := SectionSummary{
			Section: section,
			Name:    SectionName(section),
			Classes: classSums,
		}
		for _, cs := range classSums {
			sum.Counts.merge(cs.Counts)
		}
		report.Sections = append(report.Sections, sum)
	}
	// alphabetical sections, UNSORTED last
	sort.Slice(report.Sections, func(i, j int) bool {
		si, sj := report.Sections[i].Section, report.Sections[j].Section
		if (si == SectionUnsorted) != (sj == SectionUnsorted) {
			return sj == SectionUnsorted
		}
		return si < sj
	})
	for _, s := range report.Sections {
		report.Totals.merge(s.Counts)
	}
	return report
}
