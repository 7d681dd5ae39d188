// Package schoolapi is the authenticated HTTP client for the upstream school
// backend. Read calls degrade to the caller's fallback value so pages render
// an empty state instead of crashing; write calls always surface failures.
package schoolapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/shuledash/shuledash/core"
	"github.com/shuledash/shuledash/core/envelope"
)

const bodySnippetLen = 512

type Client struct {
	baseURL    string
	http       *http.Client
	creds      core.TokenSource
	log        core.Logger
	retryDelay time.Duration
	pageSize   int
}

func NewClient(conf *core.Config, creds core.TokenSource, log core.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(conf.Upstream.BaseURL, "/"),
		http:       &http.Client{Timeout: conf.Upstream.Timeout},
		creds:      creds,
		log:        log,
		retryDelay: conf.Upstream.RetryDelay,
		pageSize:   conf.Upstream.PageSize,
	}
}

// PageSize is the default pageSize sent on list calls.
func (c *Client) PageSize() int { return c.pageSize }

// Paginate sets the standard list pagination params.
func Paginate(q url.Values, page, pageSize int) url.Values {
	if q == nil {
		q = make(url.Values)
	}
	q.Set("page", strconv.Itoa(page))
	q.Set("pageSize", strconv.Itoa(pageSize))
	return q
}

// Get performs an authenticated read. On any failure short of an auth error
// it leaves dst untouched (the caller's fallback) and returns nil: read
// paths mask backend trouble behind an empty state. Transient network errors
// are retried once.
func (c *Client) Get(ctx context.Context, path string, query url.Values, expectedKey string, dst interface{}) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		// one retry for transient network errors, reads only
		select {
		case <-time.After(c.retryDelay):
		case <-ctx.Done():
			return ctx.Err()
		}
		req, rErr := c.newRequest(ctx, http.MethodGet, path, query, nil)
		if rErr != nil {
			return rErr
		}
		if resp, err = c.http.Do(req); err != nil {
			c.log.Warn(fmt.Sprintf("GET %s: %v (falling back)", path, err))
			return nil
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return c.expireSession()
	}

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn(fmt.Sprintf("GET %s: status %d: %s (falling back)", path, resp.StatusCode, snippet(body)))
		return nil
	}

	shape, err := envelope.UnwrapInto(body, expectedKey, dst)
	if err != nil {
		c.log.Warn(fmt.Sprintf("GET %s: decoding %s payload: %v (falling back)", path, shape, err))
		return nil
	}
	return nil
}

// Post, Put and Delete perform mutations; see write for their semantics.

func (c *Client) Post(ctx context.Context, path string, payload, dst interface{}, expectedKey string) error {
	return c.write(ctx, http.MethodPost, path, payload, dst, expectedKey)
}

func (c *Client) Put(ctx context.Context, path string, payload, dst interface{}, expectedKey string) error {
	return c.write(ctx, http.MethodPut, path, payload, dst, expectedKey)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.write(ctx, http.MethodDelete, path, nil, nil, "")
}

// write performs one mutation attempt. No retry here: double-submission is
// worse than asking the user to retry. A 2xx with an embedded failure code
// still counts as a failure.
func (c *Client) write(ctx context.Context, method, path string, payload, dst interface{}, expectedKey string) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return errors.Wrapf(err, "marshalling %s %s payload", method, path)
		}
		body = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, method, path, nil, body)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return errors.Wrap(&WriteError{Method: method, Path: path}, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return c.expireSession()
	}

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &WriteError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: snippet(respBody)}
	}

	// some endpoints return 200 with an embedded failure code
	if eErr := embeddedFailure(respBody); eErr != "" {
		return &WriteError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: eErr}
	}

	if dst != nil && expectedKey != "" {
		if _, err := envelope.UnwrapInto(respBody, expectedKey, dst); err != nil {
			return errors.Wrapf(err, "decoding %s %s response", method, path)
		}
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	token, err := c.creds.Token()
	if err != nil || token == "" {
		return nil, ErrNotAuthenticated
	}

	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, errors.Wrapf(err, "building %s %s", method, path)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	return req, nil
}

// expireSession drops the cached token; every operation after a 401
// short-circuits until the user logs in again.
func (c *Client) expireSession() error {
	if store, ok := c.creds.(core.TokenStore); ok {
		if err := store.Clear(); err != nil {
			c.log.Error(fmt.Sprintf("clearing expired token: %v", err), err)
		}
	}
	return ErrAuthExpired
}

// embeddedFailure inspects a 2xx body for a failure-indicating envelope.
func embeddedFailure(body []byte) string {
	var h struct {
		Status *struct {
			ReturnCode string `json:"returnCode"`
			Message    string `json:"message"`
		} `json:"status"`
		Success *bool  `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &h); err != nil {
		return "" // non-envelope body, trust the HTTP status
	}
	if h.Status != nil && h.Status.ReturnCode != "" && h.Status.ReturnCode != "00" {
		if h.Status.Message != "" {
			return h.Status.Message
		}
		return "returnCode " + h.Status.ReturnCode
	}
	if h.Success != nil && !*h.Success {
		if h.Message != "" {
			return h.Message
		}
		return "success=false"
	}
	return ""
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > bodySnippetLen {
		s = s[:bodySnippetLen]
	}
	return s
}
