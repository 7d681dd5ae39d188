package schoolapi

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrNotAuthenticated is returned before any network call when no
	// session token is available; callers present a "please log in" state.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrAuthExpired is returned on a 401 from the backend. The cached token
	// has already been cleared; no partial state may be trusted after this.
	ErrAuthExpired = errors.New("session expired")
)

// WriteError reports a failed mutation. Unlike reads, mutations are never
// silently swallowed: a "saved" message must never follow a failed save.
type WriteError struct {
	Method     string
	Path       string
	StatusCode int    // 0 for network-level failures
	Body       string // response body snippet for diagnostics
}

func (e *WriteError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s %s: request failed", e.Method, e.Path)
	}
	return fmt.Sprintf("%s %s: backend returned %d", e.Method, e.Path, e.StatusCode)
}

// IsWriteError reports whether err (or its cause) is a failed mutation.
func IsWriteError(err error) bool {
	var we *WriteError
	return errors.As(err, &we)
}
