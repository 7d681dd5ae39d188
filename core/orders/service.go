package orders

import (
	"context"
	"net/url"
	"strings"

	"github.com/pkg/errors"

	"github.com/shuledash/shuledash/core"
	"github.com/shuledash/shuledash/services/schoolapi"
)

type Service struct {
	api          *schoolapi.Client
	demoFallback bool
	log          core.Logger
}

func NewService(conf *core.Config, api *schoolapi.Client, log core.Logger) *Service {
	return &Service{api: api, demoFallback: conf.Upstream.DemoFallback, log: log}
}

// List returns the business's orders or quotes. When the read falls back and
// demo rows are enabled, the canned rows are what the caller sees: the
// client leaves a pre-seeded destination alone on fallback.
func (svc *Service) List(ctx context.Context, kind string) ([]Order, error) {
	out := make([]Order, 0)
	if svc.demoFallback {
		out = demoRows(kind)
	}

	q := make(url.Values)
	q.Set("kind", kind)
	if err := svc.api.Get(ctx, "/orders", q, "orders", &out); err != nil {
		return nil, errors.Wrap(err, "listing orders")
	}
	return out, nil
}

// Delete removes an order. Deletion is a mutation: failures surface, there
// is no fallback and no retry.
func (svc *Service) Delete(ctx context.Context, id string) error {
	return errors.Wrap(svc.api.Delete(ctx, "/orders/"+id), "deleting order")
}

// demoRows are placeholder rows shown in demo environments where the
// business module has no backing data yet.
func demoRows(kind string) []Order {
	prefix := "ORD"
	if strings.EqualFold(kind, KindQuote) {
		prefix = "QUO"
	}
	return []Order{
		{ID: "demo-1", Kind: kind, Number: prefix + "-2024-001", CustomerName: "Acme Traders", Status: "PENDING", Total: 250000, Date: "2024-01-15"},
		{ID: "demo-2", Kind: kind, Number: prefix + "-2024-002", CustomerName: "Savanna Supplies", Status: "PAID", Total: 90000, Date: "2024-02-02"},
	}
}
