package student

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/volatiletech/null/v8"

	"github.com/shuledash/shuledash/core"
)

// Student statuses as the backend spells them. Older records say
// "deactivated" where newer ones say "inactive"; both mean not active.
const (
	StatusActive      = "active"
	StatusInactive    = "inactive"
	StatusDeactivated = "deactivated"
)

// Student is the master record; its gender is authoritative over any copy
// embedded in attendance records.
type Student struct {
	ID        string      `json:"id"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Gender    string      `json:"gender"`
	ClassID   string      `json:"classId"`
	ClassText null.String `json:"class_assigned"` // legacy free-text class name
	Status    string      `json:"status"`
	PhotoKey  null.String `json:"photoKey"`
}

func (s Student) FullName() string {
	return core.CleanString(s.FirstName + " " + s.LastName)
}

func (s Student) IsActive() bool {
	return strings.EqualFold(s.Status, StatusActive)
}

// Initials is the deterministic avatar fallback when no photo can be signed.
func (s Student) Initials() string {
	var b strings.Builder
	for _, part := range []string{s.FirstName, s.LastName} {
		part = strings.TrimSpace(part)
		if part != "" {
			b.WriteString(strings.ToUpper(part[:1]))
		}
	}
	if b.Len() == 0 {
		return "?"
	}
	return b.String()
}

type QueryFilter struct {
	Search   string `query:"search"`
	IsActive *bool  `query:"is_active"`
	ClassID  string `query:"class_id"`
	Page     int    `query:"page"`
	PageSize int    `query:"page_size"`
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
}

// Values maps the filter onto the backend's query parameter names.
func (qf *QueryFilter) Values() url.Values {
	v := make(url.Values)
	if qf.Search != "" {
		v.Set("search", qf.Search)
	}
	if qf.IsActive != nil {
		v.Set("isActive", strconv.FormatBool(*qf.IsActive))
	}
	if qf.ClassID != "" {
		v.Set("classId", qf.ClassID)
	}
	return v
}
