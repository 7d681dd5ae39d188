package attendance

import "strconv"

// Cell renders a computed count for the attendance tables: a 0 shows as "-"
// for readability. This convention is specific to attendance reports;
// financial fields render raw numbers and must not use it.
func Cell(n int) string {
	if n == 0 {
		return "-"
	}
	return strconv.Itoa(n)
}

type (
	// ClassRow is a display-ready class line, zero-suppressed.
	ClassRow struct {
		Name         string `json:"name"`
		Male         string `json:"male"`
		Female       string `json:"female"`
		Total        string `json:"total"`
		AbsentMale   string `json:"absentMale"`
		AbsentFemale string `json:"absentFemale"`
		AbsentTotal  string `json:"absentTotal"`
		ClassTotal   string `json:"classTotal"`
	}

	SectionView struct {
		Name    string     `json:"name"`
		Classes []ClassRow `json:"classes"`
		Totals  ClassRow   `json:"totals"`
	}

	ReportView struct {
		Sections []SectionView `json:"sections"`
		Totals   ClassRow      `json:"totals"`
	}
)

func rowFor(name string, c Counts) ClassRow {
	return ClassRow{
		Name:         name,
		Male:         Cell(c.Male),
		Female:       Cell(c.Female),
		Total:        Cell(c.Total),
		AbsentMale:   Cell(c.AbsentMale),
		AbsentFemale: Cell(c.AbsentFemale),
		AbsentTotal:  Cell(c.AbsentTotal),
		ClassTotal:   Cell(c.ClassTotal()),
	}
}

// View maps the report onto display rows.
func (r Report) View() ReportView {
	view := ReportView{
		Sections: make([]SectionView, 0, len(r.Sections)),
		Totals:   rowFor("TOTAL", r.Totals),
	}
	for _, s := range r.Sections {
		sv := SectionView{
			Name:    s.Name,
			Classes: make([]ClassRow, 0, len(s.Classes)),
			Totals:  rowFor(s.Name, s.Counts),
		}
		for _, cl := range s.Classes {
			sv.Classes = append(sv.Classes, rowFor(cl.Name, cl.Counts))
		}
		view.Sections = append(view.Sections, sv)
	}
	return view
}
