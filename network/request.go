package network

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/twitchlink/twitchlink/constant"
)

// StatusError is returned for a response outside the 2xx range.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.URL, e.StatusCode)
}

// HTTPStatus returns the response status code.
func (e *StatusError) HTTPStatus() int {
	return e.StatusCode
}

// OK reports whether code is a success status.
func OK(code int) bool {
	return code >= 200 && code < 300
}

// Redact strips the query string and fragment from a URL.
// Usher and GraphQL URLs carry signed tokens in their query.
func Redact(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	u.RawQuery = ""
	u.Fragment = ""
	u.User = nil
	return u.String()
}

// Fetch sends req and returns the response body.
// A transport failure is returned as is; a non-2xx status yields *StatusError.
func Fetch(ctx context.Context, doer Doer, req *http.Request) ([]byte, error) {
	req = req.WithContext(ctx)
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", constant.UserAgent)
	}

	resp, err := doer.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !OK(resp.StatusCode) {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return nil, &StatusError{Method: req.Method, URL: Redact(req.URL.String()), StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return body, nil
}

// Probe issues a GET against rawURL and reports whether it answered 2xx.
// The body is discarded.
func Probe(ctx context.Context, doer Doer, rawURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", constant.UserAgent)

	resp, err := doer.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if !OK(resp.StatusCode) {
		return &StatusError{Method: req.Method, URL: Redact(rawURL), StatusCode: resp.StatusCode}
	}

	return nil
}
