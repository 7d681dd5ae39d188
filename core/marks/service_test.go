package marks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/shuledash/shuledash/core"
	"github.com/shuledash/shuledash/services/creds"
	"github.com/shuledash/shuledash/services/schoolapi"
	testutil "github.com/shuledash/shuledash/tests"
)

func newValidator() *validator.Validate {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	validate := validator.New()
	core.InitValidators(validate, translator)
	return validate
}

func setup(t *testing.T, handler http.Handler) *Service {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	token := creds.Static("test-token")
	conf := testutil.NewConfig(srv.URL)
	api := schoolapi.NewClient(conf, &token, testutil.NewLogger(t))
	return NewService(conf, api, newValidator(), testutil.NewLogger(t))
}

var filter = SheetFilter{ClassID: "cA", SubjectID: "math", ExamID: "e1", TermID: "t1"}

func TestService_Existing(t *testing.T) {
	svc := setup(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		studentID := r.URL.Query().Get("studentId")
		switch studentID {
		case "s3":
			// this student's lookup dies; the rest of the roster must survive
			http.Error(w, "boom", http.StatusInternalServerError)
		case "s4":
			_, _ = w.Write([]byte(`{"success":true,"marks":[]}`))
		default:
			fmt.Fprintf(w, `{"success":true,"marks":[{"id":"m-%[1]s","studentId":"%[1]s","score":71}]}`, studentID)
		}
	}))

	roster := make([]string, 0, 20)
	for i := 1; i <= 20; i++ {
		roster = append(roster, fmt.Sprintf("s%d", i))
	}
	found, err := svc.Existing(context.Background(), filter, roster)
	if err != nil {
		t.Fatalf("Existing() error: %v", err)
	}
	// s3 failed, s4 has no marks yet, everyone else resolved
	if len(found) != 18 {
		t.Fatalf("found %d marks, want 18", len(found))
	}
	if _, ok := found["s3"]; ok {
		t.Error("failed lookup should yield no entry")
	}
	if m := found["s7"]; m.ID != "m-s7" || m.Score != 71 {
		t.Errorf("found[s7] = %+v", m)
	}
}

func TestService_Existing_missingScopeRejected(t *testing.T) {
	svc := setup(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no network call expected")
	}))
	_, err := svc.Existing(context.Background(), SheetFilter{ClassID: "cA"}, []string{"s1"})
	if err == nil {
		t.Fatal("Existing() should reject a filter without subject/exam")
	}
}

func TestService_Submit(t *testing.T) {
	sheet := Sheet{
		SheetFilter: filter,
		Marks:       []Mark{{StudentID: "s1", Score: 64}},
	}

	t.Run("retries once after a failure", func(t *testing.T) {
		var calls int32
		svc := setup(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&calls, 1) == 1 {
				http.Error(w, "boom", http.StatusInternalServerError)
				return
			}
			_, _ = w.Write([]byte(`{"status":{"returnCode":"00"},"data":{}}`))
		}))
		if err := svc.Submit(context.Background(), sheet); err != nil {
			t.Fatalf("Submit() error: %v", err)
		}
		if n := atomic.LoadInt32(&calls); n != 2 {
			t.Errorf("calls = %d, want 2", n)
		}
	})

	t.Run("second failure is final", func(t *testing.T) {
		var calls int32
		svc := setup(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		err := svc.Submit(context.Background(), sheet)
		if !schoolapi.IsWriteError(err) {
			t.Fatalf("Submit() = %v, want a write error", err)
		}
		if n := atomic.LoadInt32(&calls); n != 2 {
			t.Errorf("calls = %d, want exactly 2", n)
		}
	})

	t.Run("CA sheet derives the score from components", func(t *testing.T) {
		var got Sheet
		svc := setup(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
				t.Fatalf("decoding submission: %v", err)
			}
			_, _ = w.Write([]byte(`{"status":{"returnCode":"00"},"data":{}}`))
		}))
		ca := Sheet{SheetFilter: filter, Marks: []Mark{{
			StudentID: "s1",
			Score:     99, // stale client-side value, must be overwritten
			CA:        CA{ClassWork: 15, HomeWork: 12, Organization: 18, Participation: 10, Management: 14},
		}}}
		ca.Category = CategoryCA
		if err := svc.Submit(context.Background(), ca); err != nil {
			t.Fatalf("Submit() error: %v", err)
		}
		if got.Marks[0].Score != 69 {
			t.Errorf("submitted score = %v, want 69", got.Marks[0].Score)
		}
	})

	t.Run("out of range component rejected before any call", func(t *testing.T) {
		svc := setup(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("no network call expected")
		}))
		bad := Sheet{SheetFilter: filter, Marks: []Mark{{StudentID: "s1", CA: CA{ClassWork: 25}}}}
		if err := svc.Submit(context.Background(), bad); err == nil {
			t.Fatal("Submit() should reject a component above 20")
		}
	})
}
