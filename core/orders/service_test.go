package orders

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shuledash/shuledash/services/creds"
	"github.com/shuledash/shuledash/services/schoolapi"
	testutil "github.com/shuledash/shuledash/tests"
)

func setup(t *testing.T, handler http.Handler, demo bool) *Service {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	conf := testutil.NewConfig(srv.URL)
	conf.Upstream.DemoFallback = demo
	token := creds.Static("test-token")
	api := schoolapi.NewClient(conf, &token, testutil.NewLogger(t))
	return NewService(conf, api, testutil.NewLogger(t))
}

func TestService_List(t *testing.T) {
	live := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("kind"); got != KindOrder {
			t.Errorf("kind param = %q", got)
		}
		_, _ = w.Write([]byte(`{"success":true,"orders":[
			{"id":"o1","kind":"ORDER","orderNumber":"ORD-55","customerName":"Real Customer","total":12000,"date":"2024-03-01"}
		]}`))
	})
	dead := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	t.Run("live backend wins over demo rows", func(t *testing.T) {
		svc := setup(t, live, true)
		got, err := svc.List(context.Background(), KindOrder)
		if err != nil {
			t.Fatalf("List() error: %v", err)
		}
		if len(got) != 1 || got[0].CustomerName != "Real Customer" {
			t.Errorf("orders = %+v", got)
		}
	})

	t.Run("fallback serves demo rows when enabled", func(t *testing.T) {
		svc := setup(t, dead, true)
		got, err := svc.List(context.Background(), KindQuote)
		if err != nil {
			t.Fatalf("List() error: %v", err)
		}
		if len(got) != 2 || got[0].Number != "QUO-2024-001" {
			t.Errorf("orders = %+v", got)
		}
	})

	t.Run("fallback is empty when demo rows are disabled", func(t *testing.T) {
		svc := setup(t, dead, false)
		got, err := svc.List(context.Background(), KindOrder)
		if err != nil {
			t.Fatalf("List() error: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("orders = %+v, want none", got)
		}
	})
}

func TestService_Delete(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		svc := setup(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodDelete || r.URL.Path != "/orders/o1" {
				t.Errorf("unexpected call: %s %s", r.Method, r.URL.Path)
			}
			_, _ = w.Write([]byte(`{"status":{"returnCode":"00"},"data":{}}`))
		}), false)
		if err := svc.Delete(context.Background(), "o1"); err != nil {
			t.Fatalf("Delete() error: %v", err)
		}
	})

	t.Run("failure surfaces, no fallback", func(t *testing.T) {
		svc := setup(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}), true)
		if err := svc.Delete(context.Background(), "o1"); !schoolapi.IsWriteError(err) {
			t.Fatalf("Delete() = %v, want a write error", err)
		}
	})
}
