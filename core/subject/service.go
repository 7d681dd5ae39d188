package subject

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/shuledash/shuledash/core"
	"github.com/shuledash/shuledash/core/join"
	"github.com/shuledash/shuledash/services/schoolapi"
)

// BatchError reports a partially failed edit. It must never be conflated
// with total success or total failure: succeeded items are committed, failed
// items remain selected and re-editable.
type BatchError struct {
	Succeeded []string // subject names/ids that went through
	Failed    []string
	Errs      map[string]error // per-subject cause
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("%d of %d changes failed: %s",
		len(e.Failed), len(e.Failed)+len(e.Succeeded), strings.Join(e.Failed, ", "))
}

type Service struct {
	api *schoolapi.Client
	log core.Logger
}

func NewService(api *schoolapi.Client, log core.Logger) *Service {
	return &Service{api: api, log: log}
}

// ListGrouped returns every class with its assigned subjects, activity names
// resolved. Display grouping key is the class id.
func (svc *Service) ListGrouped(ctx context.Context) ([]ClassSubjects, error) {
	assignments := make([]Assignment, 0)
	activities := make([]Activity, 0)
	classes := make([]classRef, 0)

	if err := svc.api.Get(ctx, "/class-subjects", nil, "assignments", &assignments); err != nil {
		return nil, errors.Wrap(err, "listing assignments")
	}
	if err := svc.api.Get(ctx, "/subject-activities", nil, "activities", &activities); err != nil {
		return nil, errors.Wrap(err, "listing activities")
	}
	if err := svc.api.Get(ctx, "/classes", nil, "classes", &classes); err != nil {
		return nil, errors.Wrap(err, "listing classes")
	}

	named := join.Left(assignments, activities,
		func(a Assignment) string { return a.SubjectID },
		func(act Activity) string { return act.ID },
		func(a Assignment, act Activity, ok bool) AssignedSubject {
			name := a.SubjectID // fall back to the raw id when unresolvable
			if ok {
				name = act.Name
			}
			return AssignedSubject{AssignmentID: a.ID, SubjectID: a.SubjectID, Name: name}
		})

	classNames := join.Index(classes, func(c classRef) string { return c.ID })
	grouped := join.GroupBy(assignments, func(a Assignment) string { return a.ClassID })

	// keep named subjects aligned with assignments by position
	byAssignment := make(map[string]AssignedSubject, len(named))
	for _, s := range named {
		byAssignment[s.AssignmentID] = s
	}

	out := make([]ClassSubjects, 0, len(grouped))
	for classID, as := range grouped {
		cs := ClassSubjects{ClassID: classID, ClassName: classID}
		if c, ok := classNames[classID]; ok {
			cs.ClassName = c.Name
		}
		for _, a := range as {
			cs.Subjects = append(cs.Subjects, byAssignment[a.ID])
		}
		sort.Slice(cs.Subjects, func(i, j int) bool { return cs.Subjects[i].Name < cs.Subjects[j].Name })
		out = append(out, cs)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ClassName < out[j].ClassName })
	return out, nil
}

// Apply submits the minimal edit set, one call per subject: the backend only
// exposes single-assignment create/delete endpoints, and delete-all-then-
// recreate would churn ids and risk partial state. Removals run first so a
// swap never exceeds the class's subject capacity upstream.
func (svc *Service) Apply(ctx context.Context, classID string, ch Changes) error {
	if ch.IsEmpty() {
		return nil
	}

	batch := &BatchError{Errs: make(map[string]error)}
	record := func(subjectID string, err error) error {
		if err == nil {
			batch.Succeeded = append(batch.Succeeded, subjectID)
			return nil
		}
		if cause := errors.Cause(err); cause == schoolapi.ErrAuthExpired || cause == schoolapi.ErrNotAuthenticated {
			return cause // fatal, stop the batch
		}
		batch.Failed = append(batch.Failed, subjectID)
		batch.Errs[subjectID] = err
		return nil
	}

	for _, ref := range ch.ToRemove {
		err := svc.api.Delete(ctx, "/class-subjects/"+ref.AssignmentID)
		if fatal := record(ref.SubjectID, err); fatal != nil {
			return fatal
		}
	}
	for _, ref := range ch.ToAdd {
		payload := struct {
			ClassID   string `json:"classId"`
			SubjectID string `json:"subjectActivityId"`
		}{ClassID: classID, SubjectID: ref.SubjectID}
		err := svc.api.Post(ctx, "/class-subjects", payload, nil, "")
		if fatal := record(ref.SubjectID, err); fatal != nil {
			return fatal
		}
	}

	if len(batch.Failed) > 0 {
		return batch
	}
	return nil
}

type classRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
