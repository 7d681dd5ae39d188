package transport

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/shuledash/shuledash/core"
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

func (svc *Service) Routes(ctx context.Context) ([]Route, error) {
	routes := make([]Route, 0)
	if err := svc.api.Get(ctx, "/transport/routes", nil, "routes", &routes); err != nil {
		return nil, errors.Wrap(err, "listing routes")
	}
	return routes, nil
}

func (svc *Service) Registrations(ctx context.Context) ([]Registration, error) {
	regs := make([]Registration, 0)
	if err := svc.api.Get(ctx, "/transport/registrations", nil, "registrations", &regs); err != nil {
		return nil, errors.Wrap(err, "listing registrations")
	}
	// balances from the backend may predate a fare/discount correction;
	// recompute so every row satisfies the invariant
	for i := range regs {
		regs[i].Balance = Balance(regs[i].RouteFare, regs[i].Discount, regs[i].Paid)
	}
	return regs, nil
}

// Register creates a registration from the form input.
func (svc *Service) Register(ctx context.Context, edit RegistrationEdit) (Registration, error) {
	if err := edit.Validate(svc.validate); err != nil {
		return Registration{}, err
	}
	reg := edit.Registration("")
	if err := svc.api.Post(ctx, "/transport/registrations", reg, &reg, "registration"); err != nil {
		return Registration{}, errors.Wrap(err, "registering student on route")
	}
	return reg, nil
}

// Update resubmits a registration with its balance recomputed.
func (svc *Service) Update(ctx context.Context, id string, edit RegistrationEdit) (Registration, error) {
	if err := edit.Validate(svc.validate); err != nil {
		return Registration{}, err
	}
	reg := edit.Registration(id)
	if err := svc.api.Put(ctx, "/transport/registrations/"+id, reg, &reg, "registration"); err != nil {
		return Registration{}, errors.Wrap(err, "updating registration")
	}
	return reg, nil
}
