package marks

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/shuledash/shuledash/core"
	"github.com/shuledash/shuledash/services/schoolapi"
)

// fetchWorkers bounds how many per-student marks lookups run at once. The
// backend exposes no bulk endpoint, and an unbounded fan-out over a large
// roster hammers it.
const fetchWorkers = 5

type Service struct {
	api        *schoolapi.Client
	validate   *validator.Validate
	log        core.Logger
	retryDelay time.Duration
}

func NewService(conf *core.Config, api *schoolapi.Client, validate *validator.Validate, log core.Logger) *Service {
	return &Service{api: api, validate: validate, log: log, retryDelay: conf.Upstream.RetryDelay}
}

// Existing fetches each student's current marks for the sheet's scope. One
// student's failed lookup never sinks the rest: that student simply has no
// entry in the returned map and the sheet renders them blank.
func (svc *Service) Existing(ctx context.Context, filter SheetFilter, studentIDs []string) (map[string]Mark, error) {
	if err := svc.validate.Struct(filter); err != nil {
		return nil, err
	}

	jobs := make(chan string)
	var (
		mu    sync.Mutex
		found = make(map[string]Mark, len(studentIDs))
		fatal error
	)

	var wg sync.WaitGroup
	for i := 0; i < fetchWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for studentID := range jobs {
				ms, err := svc.fetchOne(ctx, filter, studentID)
				mu.Lock()
				switch {
				case err != nil:
					if fatal == nil {
						fatal = err
					}
				case len(ms) > 0:
					found[studentID] = ms[len(ms)-1]
				}
				mu.Unlock()
			}
		}()
	}

	for _, id := range studentIDs {
		jobs <- id
	}
	close(jobs)
	wg.Wait()

	if fatal != nil {
		return nil, fatal
	}
	return found, nil
}

// fetchOne returns an error only for auth failures; read failures already
// fall back to an empty list inside the client.
func (svc *Service) fetchOne(ctx context.Context, filter SheetFilter, studentID string) ([]Mark, error) {
	q := url.Values{}
	q.Set("studentId", studentID)
	q.Set("examId", filter.ExamID)
	q.Set("subjectActivityId", filter.SubjectID)
	if filter.TermID != "" {
		q.Set("termId", filter.TermID)
	}

	ms := make([]Mark, 0, 1)
	if err := svc.api.Get(ctx, "/marks", q, "marks", &ms); err != nil {
		return nil, errors.Wrapf(err, "fetching marks for student %s", studentID)
	}
	return ms, nil
}

// Submit posts the full sheet. A failed submission is retried exactly once
// after a fixed delay; the retry never overlaps the original attempt, so the
// backend sees at most two strictly ordered submissions.
func (svc *Service) Submit(ctx context.Context, sheet Sheet) error {
	if err := svc.validate.Struct(sheet); err != nil {
		return err
	}
	if sheet.Category == CategoryCA {
		for i := range sheet.Marks {
			sheet.Marks[i].Score = sheet.Marks[i].CA.Total()
		}
	}

	err := svc.api.Post(ctx, "/marks", sheet, nil, "")
	if err == nil {
		return nil
	}
	if cause := errors.Cause(err); cause == schoolapi.ErrAuthExpired || cause == schoolapi.ErrNotAuthenticated {
		return err
	}

	svc.log.Warn(fmt.Sprintf("submitting marks for class %s: %v (retrying once)", sheet.ClassID, err))
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(svc.retryDelay):
	}
	return errors.Wrap(svc.api.Post(ctx, "/marks", sheet, nil, ""), "resubmitting marks")
}
