package finance

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"net/mail"
	"strings"
	"testing"

	"github.com/shuledash/shuledash/services/creds"
	emailsvc "github.com/shuledash/shuledash/services/email"
	"github.com/shuledash/shuledash/services/schoolapi"
	testutil "github.com/shuledash/shuledash/tests"
)

func setup(t *testing.T, handler http.Handler) *Service {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	conf := testutil.NewConfig(srv.URL)
	token := creds.Static("test-token")
	api := schoolapi.NewClient(conf, &token, testutil.NewLogger(t))
	return NewService(api, emailsvc.NewConsoleServiceMock(conf), testutil.NewLogger(t))
}

func upstream(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/finance/charges", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("studentId"); got != "s1" {
			t.Errorf("studentId param = %q", got)
		}
		_, _ = w.Write([]byte(`{"success":true,"charges":[
			{"id":"c1","studentId":"s1","description":"Tuition","amount":100000,"date":"2024-01-10"}
		]}`))
	})
	mux.HandleFunc("/finance/payments", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":{"returnCode":"00"},"data":{"payments":[
			{"id":"p1","studentId":"s1","method":"cash","amount":40000,"date":"2024-01-20"}
		]}}`))
	})
	return mux
}

func TestService_Statement(t *testing.T) {
	svc := setup(t, upstream(t))
	st, err := svc.Statement(context.Background(), "s1")
	if err != nil {
		t.Fatalf("Statement() error: %v", err)
	}
	if len(st.Lines) != 2 || st.Balance != 60000 {
		t.Errorf("statement = %+v", st)
	}
}

// A dead payments endpoint still yields a charges-only statement.
func TestService_Statement_partialFallback(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/finance/charges", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"charges":[
			{"id":"c1","description":"Tuition","amount":100000,"date":"2024-01-10"}
		]}`))
	})
	mux.HandleFunc("/finance/payments", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	svc := setup(t, mux)
	st, err := svc.Statement(context.Background(), "s1")
	if err != nil {
		t.Fatalf("Statement() should fall back, got error: %v", err)
	}
	if st.TotalPayments != 0 || st.Balance != 100000 {
		t.Errorf("statement = %+v", st)
	}
}

func TestService_EmailStatement(t *testing.T) {
	svc := setup(t, upstream(t))
	to := mail.Address{Name: "Parent", Address: "parent@example.com"}

	err := svc.EmailStatement(context.Background(), "s1", "Amina K", to)
	if err != nil {
		t.Fatalf("EmailStatement() error: %v", err)
	}

	if len(emailsvc.SentMessages) == 0 {
		t.Fatal("no message sent")
	}
	msg := emailsvc.SentMessages[len(emailsvc.SentMessages)-1]
	if msg.To[0] != to {
		t.Errorf("To = %+v", msg.To)
	}
	if !strings.Contains(msg.Subject, "Amina K") {
		t.Errorf("Subject = %q", msg.Subject)
	}
	if len(msg.Attachments) != 1 || msg.Attachments[0].Filename != "statement-s1.csv" {
		t.Fatalf("attachments = %+v", msg.Attachments)
	}

	raw, err := base64.StdEncoding.DecodeString(msg.Attachments[0].Content.String())
	if err != nil {
		t.Fatalf("decoding attachment: %v", err)
	}
	csv := string(raw)
	for _, want := range []string{"Date,Description,Type,Amount,Balance", "Tuition,CHARGE,100000.00", "Payment (cash)", "Balance,,60000.00"} {
		if !strings.Contains(csv, want) {
			t.Errorf("csv missing %q:\n%s", want, csv)
		}
	}
}
