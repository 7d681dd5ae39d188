package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pkg/errors"

	"github.com/shuledash/shuledash/core"
	"github.com/shuledash/shuledash/core/envelope"
)

// login authenticates against the school backend and caches the session
// token for the API server to pick up.
func (cli *commandLine) login(uname, pwd string) error {
	payload, err := json.Marshal(map[string]string{
		"username": core.CleanString(uname, true /* lower */),
		"password": pwd,
	})
	if err != nil {
		return errors.Wrap(err, "marshalling credentials")
	}

	resp, err := cli.http.Post(cli.conf.Upstream.BaseURL+"/auth/login", "application/json", bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(err, "calling upstream login")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.Errorf("login failed: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "reading login response")
	}
	var sess struct {
		Token string `json:"token"`
	}
	if _, err = envelope.UnwrapInto(body, "session", &sess); err != nil || sess.Token == "" {
		return errors.New("login failed: no session token in response")
	}

	if err = cli.store.Save(sess.Token); err != nil {
		return err
	}
	fmt.Println("Logged in.")
	return nil
}

// ping verifies the cached session is still accepted upstream.
func (cli *commandLine) ping() error {
	token, err := cli.store.Token()
	if err != nil {
		return err
	}
	if token == "" {
		return errors.New("not logged in")
	}

	req, err := http.NewRequest(http.MethodGet, cli.conf.Upstream.BaseURL+"/ping", nil)
	if err != nil {
		return errors.Wrap(err, "building ping request")
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := cli.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "calling upstream")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return errors.New("session expired, log in again")
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return errors.Errorf("upstream unhealthy: status %d", resp.StatusCode)
	}
	fmt.Println("OK.")
	return nil
}
