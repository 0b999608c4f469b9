package link

import (
	"errors"
	"fmt"
	"strings"
)

// Stage names the resolution step that failed.
type Stage string

const (
	StageToken      Stage = "token fetch"
	StageMetadata   Stage = "metadata fetch"
	StageExtraction Stage = "pattern extraction"
	StageProbe      Stage = "cdn probe"
	StageManifest   Stage = "manifest fetch"
)

// TransportError is a network failure or a non-2xx answer.
type TransportError struct {
	Stage Stage
	// URL without its query string; it may carry tokens.
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s returned status %d", e.Stage, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s: request to %s failed: %v", e.Stage, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// WrapTransport attributes a request failure to stage.
// A cause exposing HTTPStatus() sets StatusCode.
func WrapTransport(stage Stage, url string, err error) *TransportError {
	wrapped := &TransportError{Stage: stage, URL: url, Err: err}

	var coded interface{ HTTPStatus() int }
	if errors.As(err, &coded) {
		wrapped.StatusCode = coded.HTTPStatus()
	}

	return wrapped
}

// ParseError is a malformed or incomplete JSON payload.
type ParseError struct {
	Stage Stage
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: could not parse response: %v", e.Stage, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ShapeError is a well-formed payload that breaks an expected contract,
// such as a record count or a URL pattern.
type ShapeError struct {
	Stage Stage
	// Value is the offending input, safe to display.
	Value  string
	Reason string
}

func (e *ShapeError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %s", e.Stage, e.Reason)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Stage, e.Reason, e.Value)
}

// Attempt records one failed CDN candidate.
type Attempt struct {
	Host string
	URL  string
	Err  error
}

// ExhaustionError reports that no CDN candidate served the manifest.
type ExhaustionError struct {
	StorageID string
	Attempts  []Attempt
}

func (e *ExhaustionError) Error() string {
	if len(e.Attempts) == 0 {
		return fmt.Sprintf("%s: no cdn host to try for %s", StageProbe, e.StorageID)
	}

	hosts := make([]string, len(e.Attempts))
	for i, a := range e.Attempts {
		hosts[i] = a.Host
	}
	return fmt.Sprintf("%s: none of %d hosts serve %s (tried %s)", StageProbe, len(e.Attempts), e.StorageID, strings.Join(hosts, ", "))
}

// Unwrap exposes the individual attempt failures.
func (e *ExhaustionError) Unwrap() []error {
	errs := make([]error, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		if a.Err != nil {
			errs = append(errs, a.Err)
		}
	}
	return errs
}
