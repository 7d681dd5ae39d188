package testutil

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/shuledash/shuledash/core"
)

// Logger routes service logs into the test output.
type Logger struct {
	t *testing.T
}

var _ core.Logger = (*Logger)(nil)

func NewLogger(t *testing.T) *Logger { return &Logger{t: t} }

func (l Logger) log(lvl, msg string, args []interface{}) {
	l.t.Helper()
	l.t.Logf("%s: %s %v", lvl, msg, args)
}

func (l Logger) Debug(msg string, args ...interface{}) { l.log("DEBUG", msg, args) }
func (l Logger) Info(msg string, args ...interface{})  { l.log("INFO", msg, args) }
func (l Logger) Warn(msg string, args ...interface{})  { l.log("WARN", msg, args) }
func (l Logger) Error(msg string, args ...interface{}) { l.log("ERROR", msg, args) }
func (l Logger) Fatal(msg string, args ...interface{}) { l.log("FATAL", msg, args); l.t.FailNow() }

// NewConfig returns a config suitable for tests: instant retries, tiny
// page sizes, debug on.
func NewConfig(upstreamBaseURL string) *core.Config {
	return &core.Config{
		Env:             "TEST",
		Debug:           true,
		TestMode:        true,
		AppName:         "ShuleDash",
		SecretKey:       "test-secret",
		FrontendBaseURL: "http://localhost:3000",
		Server: core.ServerConfig{
			Host:                      "localhost",
			JWTExpirationDelta:        time.Hour,
			JWTRefreshExpirationDelta: time.Hour,
		},
		Upstream: core.UpstreamConfig{
			BaseURL:    upstreamBaseURL,
			Timeout:    5 * time.Second,
			RetryDelay: time.Millisecond,
			PageSize:   100,
		},
		OSS: core.OSSConfig{SignTTL: time.Minute},
	}
}

// CheckJSONEqual compares two values by their JSON rendering and prints a
// unified diff on mismatch.
func CheckJSONEqual(t *testing.T, got, want interface{}) {
	t.Helper()
	gotB, err := json.MarshalIndent(got, "", "  ")
	if err != nil {
		t.Fatalf("marshalling got: %v", err)
	}
	wantB, err := json.MarshalIndent(want, "", "  ")
	if err != nil {
		t.Fatalf("marshalling want: %v", err)
	}
	if string(gotB) == string(wantB) {
		return
	}
	diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(wantB)),
		B:        difflib.SplitLines(string(gotB)),
		FromFile: "want",
		ToFile:   "got",
		Context:  3,
	})
	t.Errorf("JSON mismatch:\n%s", diff)
}
