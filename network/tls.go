package network

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"time"

	utls "github.com/refraction-networking/utls"
	"golang.org/x/net/http2"
)

const dialTimeout = 30 * time.Second

// impersonatingTransport presents Chrome's Client Hello.
// HTTP/2 is tried first; servers that refuse it are retried over HTTP/1.1.
type impersonatingTransport struct {
	h2 *http2.Transport
	h1 *http.Transport
}

func newImpersonatingTransport() *impersonatingTransport {
	h1 := newTransport()
	h1.DialTLSContext = func(ctx context.Context, network, addr string) (net.Conn, error) {
		return dialTLS(ctx, network, addr, []string{"http/1.1"})
	}

	return &impersonatingTransport{
		h2: &http2.Transport{
			DialTLSContext: func(ctx context.Context, network, addr string, _ *tls.Config) (net.Conn, error) {
				return dialTLS(ctx, network, addr, nil)
			},
		},
		h1: h1,
	}
}

func (t *impersonatingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.URL.Scheme != "https" {
		return t.h1.RoundTrip(req)
	}

	resp, err := t.h2.RoundTrip(req)
	if err == nil {
		return resp, nil
	}

	if req.Context().Err() != nil {
		return nil, err
	}

	retry := req.Clone(req.Context())
	if req.Body != nil {
		if req.GetBody == nil {
			return nil, err
		}
		body, bodyErr := req.GetBody()
		if bodyErr != nil {
			return nil, fmt.Errorf("rewind body: %w", bodyErr)
		}
		retry.Body = body
	}

	return t.h1.RoundTrip(retry)
}

// dialTLS opens a TLS connection mimicking Chrome 120's fingerprint.
// A nil protos keeps Chrome's own ALPN list.
func dialTLS(ctx context.Context, network, addr string, protos []string) (net.Conn, error) {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = addr
	}

	dialer := &net.Dialer{Timeout: dialTimeout}
	conn, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}

	tlsConn := utls.UClient(conn, &utls.Config{
		ServerName: host,
		MinVersion: tls.VersionTLS12,
	}, utls.HelloCustom)

	spec, err := chromeSpec(protos)
	if err == nil {
		err = tlsConn.ApplyPreset(&spec)
	}
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("tls preset: %w", err)
	}

	if err := tlsConn.HandshakeContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("tls handshake: %w", err)
	}

	return tlsConn, nil
}

// chromeSpec returns the Chrome 120 hello, with its ALPN list replaced by protos when set.
// The preset carries its own ALPN extension, so Config.NextProtos alone has no effect.
func chromeSpec(protos []string) (utls.ClientHelloSpec, error) {
	spec, err := utls.UTLSIdToSpec(utls.HelloChrome_120)
	if err != nil {
		return spec, err
	}

	if protos != nil {
		for _, ext := range spec.Extensions {
			if alpn, ok := ext.(*utls.ALPNExtension); ok {
				alpn.AlpnProtocols = protos
			}
		}
	}

	return spec, nil
}
