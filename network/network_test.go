package network

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	utls "github.com/refraction-networking/utls"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/twitchlink/twitchlink/constant"
)

func TestFetch(t *testing.T) {
	Convey("Given a test server", t, func() {
		var gotAgent string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAgent = r.Header.Get("User-Agent")
			switch r.URL.Path {
			case "/ok":
				_, _ = w.Write([]byte("hello"))
			default:
				w.WriteHeader(http.StatusNotFound)
			}
		}))
		defer server.Close()

		client := New(Options{Timeout: 5 * time.Second})

		Convey("A 2xx answer returns the body", func() {
			req, _ := http.NewRequest(http.MethodGet, server.URL+"/ok", nil)
			body, err := Fetch(context.Background(), client, req)
			So(err, ShouldBeNil)
			So(string(body), ShouldEqual, "hello")
			So(gotAgent, ShouldEqual, constant.UserAgent)
		})

		Convey("A non-2xx answer is a StatusError without the query", func() {
			req, _ := http.NewRequest(http.MethodGet, server.URL+"/missing?token=secret", nil)
			_, err := Fetch(context.Background(), client, req)

			var statusErr *StatusError
			So(errors.As(err, &statusErr), ShouldBeTrue)
			So(statusErr.StatusCode, ShouldEqual, http.StatusNotFound)
			So(statusErr.Error(), ShouldNotContainSubstring, "secret")
		})

		Convey("Probe reports success and failure", func() {
			So(Probe(context.Background(), client, server.URL+"/ok"), ShouldBeNil)
			So(Probe(context.Background(), client, server.URL+"/missing"), ShouldNotBeNil)
		})

		Convey("A cancelled context fails the probe", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			So(Probe(ctx, client, server.URL+"/ok"), ShouldNotBeNil)
		})
	})
}

func TestDoerFunc(t *testing.T) {
	Convey("DoerFunc forwards to the wrapped function", t, func() {
		boom := errors.New("boom")
		doer := DoerFunc(func(*http.Request) (*http.Response, error) { return nil, boom })

		err := Probe(context.Background(), doer, "https://example.com/x")
		So(errors.Is(err, boom), ShouldBeTrue)
	})
}

func TestRedact(t *testing.T) {
	Convey("Redact drops query, fragment and user info", t, func() {
		So(Redact("https://user:pw@usher.ttvnw.net/api/channel/hls/a.m3u8?sig=1&token=2#x"), ShouldEqual, "https://usher.ttvnw.net/api/channel/hls/a.m3u8")
	})
}

func TestOK(t *testing.T) {
	Convey("OK accepts only 2xx", t, func() {
		So(OK(200), ShouldBeTrue)
		So(OK(204), ShouldBeTrue)
		So(OK(301), ShouldBeFalse)
		So(OK(404), ShouldBeFalse)
	})
}

func TestImpersonation(t *testing.T) {
	Convey("Given an impersonating client", t, func() {
		client := New(Options{Timeout: time.Second, Impersonate: true})

		Convey("It uses the Chrome transport", func() {
			_, ok := client.Transport.(*impersonatingTransport)
			So(ok, ShouldBeTrue)
			So(client.Timeout, ShouldEqual, time.Second)
		})

		Convey("The HTTP/1.1 hello only offers http/1.1", func() {
			spec, err := chromeSpec([]string{"http/1.1"})
			So(err, ShouldBeNil)

			var found bool
			for _, ext := range spec.Extensions {
				if alpn, ok := ext.(*utls.ALPNExtension); ok {
					found = true
					So(alpn.AlpnProtocols, ShouldResemble, []string{"http/1.1"})
				}
			}
			So(found, ShouldBeTrue)
		})

		Convey("The default hello keeps h2", func() {
			spec, err := chromeSpec(nil)
			So(err, ShouldBeNil)

			for _, ext := range spec.Extensions {
				if alpn, ok := ext.(*utls.ALPNExtension); ok {
					So(alpn.AlpnProtocols, ShouldContain, "h2")
				}
			}
		})
	})
}
