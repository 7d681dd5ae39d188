// Package creds holds the process-wide credential store for the upstream
// session token. The token file is shared with the admin CLI, which may log
// in or out from another process at any time.
package creds

import (
	"os"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/shuledash/shuledash/core"
)

// FileStore keeps the upstream session token in a file on disk. Token
// re-reads the file on every call so a login or logout performed by another
// process is picked up without a restart.
type FileStore struct {
	path string
	mu   sync.RWMutex
}

var _ core.TokenStore = (*FileStore)(nil)

func NewFileStore(conf *core.Config) *FileStore {
	return &FileStore{path: conf.TokenFile}
}

func (s *FileStore) Token() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", errors.Wrapf(err, "reading token file %s", s.path)
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *FileStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.WriteFile(s.path, []byte(token+"\n"), 0o600); err != nil {
		return errors.Wrapf(err, "writing token file %s", s.path)
	}
	return nil
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "removing token file %s", s.path)
	}
	return nil
}

// Static is a fixed-token source for tests and one-off scripts.
type Static string

var _ core.TokenStore = (*Static)(nil)

func (s *Static) Token() (string, error) { return string(*s), nil }
func (s *Static) Clear() error           { *s = ""; return nil }
