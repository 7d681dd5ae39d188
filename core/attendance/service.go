package attendance

import (
	"context"
	"net/url"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/shuledash/shuledash/core"
	"github.com/shuledash/shuledash/core/join"
	"github.com/shuledash/shuledash/core/student"
	"github.com/shuledash/shuledash/services/schoolapi"
)

type Service struct {
	api      *schoolapi.Client
	validate *validator.Validate
	log      core.Logger
}

func NewService(api *schoolapi.Client, validate *validator.Validate, log core.Logger) *Service {
	return &Service{api: api, validate: validate, log: log}
}

// LoadDay fetches the day's records, the master student list and the class
// list concurrently, joins the master data over the embedded copies and
// aggregates the result. Each fetch fails independently into its fallback; a
// dead backend yields an all-empty report, not an error. Auth errors abort.
func (svc *Service) LoadDay(ctx context.Context, filter DayFilter) (Report, error) {
	q := make(url.Values)
	q.Set("date", filter.Date)
	if filter.AcademicYearID != "" {
		q.Set("academicYearId", filter.AcademicYearID)
	}
	if filter.TermID != "" {
		q.Set("termId", filter.TermID)
	}

	records := make([]Record, 0)
	students := make([]student.Student, 0)
	classes := make([]Class, 0)

	var wg sync.WaitGroup
	errs := make([]error, 3)
	wg.Add(3)
	go func() {
		defer wg.Done()
		errs[0] = svc.api.Get(ctx, "/attendance", q, "attendance", &records)
	}()
	go func() {
		defer wg.Done()
		sq := schoolapi.Paginate(nil, 1, svc.api.PageSize())
		errs[1] = svc.api.Get(ctx, "/students", sq, "students", &students)
	}()
	go func() {
		defer wg.Done()
		errs[2] = svc.api.Get(ctx, "/classes", nil, "classes", &classes)
	}()
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return Report{}, errors.Wrap(err, "loading attendance day")
		}
	}

	joined := joinMaster(records, students)
	return Aggregate(joined, classes), nil
}

// joinMaster overwrites each record's embedded student copy with the master
// list where available. The master gender is authoritative; a record whose
// student appears in neither source keeps its embedded data and ends up
// counted as UNKNOWN gender.
func joinMaster(records []Record, students []student.Student) []Record {
	return join.Left(records, students,
		func(r Record) string { return r.StudentID },
		func(s student.Student) string { return s.ID },
		func(r Record, s student.Student, ok bool) Record {
			if !ok {
				return r
			}
			r.Student.ID = s.ID
			r.Student.FirstName = s.FirstName
			r.Student.LastName = s.LastName
			if s.Gender != "" {
				r.Student.Gender = s.Gender
			}
			if s.ClassID != "" {
				r.Student.ClassID = s.ClassID
			}
			return r
		})
}

// SaveDay resubmits the full day for one class. Save failures always
// surface; a success message may only follow a confirmed success envelope.
func (svc *Service) SaveDay(ctx context.Context, sheet DaySheet) error {
	if err := sheet.Validate(svc.validate); err != nil {
		return err
	}
	if err := svc.api.Post(ctx, "/attendance", sheet, nil, ""); err != nil {
		return errors.Wrap(err, "saving attendance day")
	}
	return nil
}
