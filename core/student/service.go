package student

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/shuledash/shuledash/core"
	"github.com/shuledash/shuledash/services/schoolapi"
)

// Photo is what a roster row renders for a student picture: a signed URL
// when one could be produced, otherwise the initials fallback. Never a
// broken image.
type Photo struct {
	URL      string `json:"url,omitempty"`
	Initials string `json:"initials"`
}

type Service struct {
	api     *schoolapi.Client
	signer  core.FileSigner
	signTTL time.Duration
	log     core.Logger
}

func NewService(conf *core.Config, api *schoolapi.Client, signer core.FileSigner, log core.Logger) *Service {
	return &Service{
		api:     api,
		signer:  signer,
		signTTL: conf.OSS.SignTTL,
		log:     log,
	}
}

// Query lists students matching the filter. Read failures yield an empty
// roster, not an error.
func (svc *Service) Query(ctx context.Context, filter QueryFilter) ([]Student, error) {
	filter.Clean()
	page, size := filter.Page, filter.PageSize
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = svc.api.PageSize()
	}
	students := make([]Student, 0)
	q := schoolapi.Paginate(filter.Values(), page, size)
	if err := svc.api.Get(ctx, "/students", q, "students", &students); err != nil {
		return nil, errors.Wrap(err, "querying students")
	}
	return students, nil
}

// All loads the full master list; attendance joins rely on it being complete.
func (svc *Service) All(ctx context.Context) ([]Student, error) {
	return svc.Query(ctx, QueryFilter{})
}

func (svc *Service) Activate(ctx context.Context, id string) error {
	return svc.setActive(ctx, id, true)
}

func (svc *Service) Deactivate(ctx context.Context, id string) error {
	return svc.setActive(ctx, id, false)
}

func (svc *Service) setActive(ctx context.Context, id string, active bool) error {
	payload := struct {
		IsActive bool `json:"isActive"`
	}{IsActive: active}
	if err := svc.api.Put(ctx, "/students/"+id+"/status", payload, nil, ""); err != nil {
		return errors.Wrapf(err, "setting student %s active=%t", id, active)
	}
	return nil
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	if err := svc.api.Delete(ctx, "/students/"+id); err != nil {
		return errors.Wrapf(err, "deleting student %s", id)
	}
	return nil
}

// PhotoFor signs the student's photo key. Signing failures degrade to the
// initials avatar.
func (svc *Service) PhotoFor(s Student) Photo {
	photo := Photo{Initials: s.Initials()}
	if svc.signer == nil || !s.PhotoKey.Valid || s.PhotoKey.String == "" {
		return photo
	}
	u, err := svc.signer.SignURL(s.PhotoKey.String, svc.signTTL)
	if err != nil {
		svc.log.Warn(fmt.Sprintf("signing photo for student %s: %v", s.ID, err))
		return photo
	}
	photo.URL = u
	return photo
}
