// Package network provides the shared HTTP client and the request helpers used by every resolver.
package network

import (
	"net/http"
	"time"

	"github.com/spf13/viper"
	"github.com/twitchlink/twitchlink/key"
)

// Doer sends a single HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// DoerFunc adapts a function to the Doer interface.
type DoerFunc func(req *http.Request) (*http.Response, error)

// Do calls f(req).
func (f DoerFunc) Do(req *http.Request) (*http.Response, error) {
	return f(req)
}

// Client is the HTTP client shared across the application.
// Setup rebuilds it once configuration has been loaded.
var Client = New(Options{Timeout: time.Minute})

// Options tune a client built by New.
type Options struct {
	Timeout     time.Duration
	Impersonate bool
}

// New builds an HTTP client with a tuned connection pool.
// Probing fans out to a dozen CDN hosts at once, hence the per-host limits.
func New(opts Options) *http.Client {
	var transport http.RoundTripper = newTransport()
	if opts.Impersonate {
		transport = newImpersonatingTransport()
	}

	return &http.Client{
		Timeout:   opts.Timeout,
		Transport: transport,
	}
}

// Setup replaces Client with one built from the loaded configuration.
func Setup() {
	timeout := viper.GetDuration(key.NetworkTimeout)
	if timeout <= 0 {
		timeout = time.Minute
	}

	Client = New(Options{
		Timeout:     timeout,
		Impersonate: viper.GetBool(key.NetworkImpersonate),
	})
}

// newTransport initializes a tuned http.Transport with pool and timeout parameters.
func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 10
	t.MaxConnsPerHost = 20
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	t.ExpectContinueTimeout = 5 * time.Second
	return t
}
