package vod

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/twitchlink/twitchlink/helix"
	"github.com/twitchlink/twitchlink/link"
	"github.com/twitchlink/twitchlink/network"
)

// cdn is a stub network.Doer answering 200 for the hosts in ok.
type cdn struct {
	mu        sync.Mutex
	ok        map[string]bool
	raise     map[string]bool
	delay     map[string]time.Duration
	requested []string
}

func newCDN(okHosts ...string) *cdn {
	c := &cdn{ok: map[string]bool{}, raise: map[string]bool{}, delay: map[string]time.Duration{}}
	for _, h := range okHosts {
		c.ok[h] = true
	}
	return c
}

func (c *cdn) Do(req *http.Request) (*http.Response, error) {
	host := req.URL.Scheme + "://" + req.URL.Host

	c.mu.Lock()
	c.requested = append(c.requested, req.URL.String())
	delay := c.delay[host]
	c.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-req.Context().Done():
			return nil, req.Context().Err()
		}
	}

	if c.raise[host] {
		return nil, errors.New("dial tcp: connection refused")
	}

	status := http.StatusNotFound
	if c.ok[host] {
		status = http.StatusOK
	}
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader("#EXTM3U")),
		Header:     make(http.Header),
	}, nil
}

func (c *cdn) Requested() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.requested...)
}

type videos struct {
	video helix.Video
	err   error
	calls int
}

func (v *videos) Video(_ context.Context, _ string) (helix.Video, error) {
	v.calls++
	return v.video, v.err
}

func TestStorageID(t *testing.T) {
	Convey("StorageID", t, func() {
		Convey("Extracts the second path segment", func() {
			id, err := StorageID("https://static-cdn.jtvnw.net/cf_vods/abc123/xyz789//thumb/thumb0-%{width}x%{height}.jpg")
			So(err, ShouldBeNil)
			So(id, ShouldEqual, "xyz789")
		})

		Convey("Accepts a single slash and the jpeg extension", func() {
			id, err := StorageID("https://static-cdn.jtvnw.net/cf_vods/d1m7jfoe9zdc1j/51b4df78ae6d180ce585_elizabethzaks_48380328493_1682528600/thumb/custom-%{width}x%{height}.jpeg")
			So(err, ShouldBeNil)
			So(id, ShouldEqual, "51b4df78ae6d180ce585_elizabethzaks_48380328493_1682528600")
		})

		Convey("Rejects thumbnails of other shapes", func() {
			for _, raw := range []string{
				"",
				"https://vod-secure.twitch.tv/_404/404_processing_%{width}x%{height}.png",
				"https://static-cdn.jtvnw.net/cf_vods/abc123/thumb/thumb0-%{width}x%{height}.jpg",
				"https://static-cdn.jtvnw.net/cf_vods/ABC/XYZ//thumb/thumb0-%{width}x%{height}.jpg",
			} {
				_, err := StorageID(raw)

				var shapeErr *link.ShapeError
				So(errors.As(err, &shapeErr), ShouldBeTrue)
				So(shapeErr.Stage, ShouldEqual, link.StageExtraction)
				So(shapeErr.Error(), ShouldContainSubstring, "could not extract storage identifier")
			}
		})
	})
}

func TestManifestURL(t *testing.T) {
	Convey("ManifestURL", t, func() {
		So(ManifestURL("https://h.example", "sid", ""), ShouldEqual, "https://h.example/sid/chunked/index-dvr.m3u8")
		So(ManifestURL("https://h.example", "sid", "720p60"), ShouldEqual, "https://h.example/sid/720p60/index-dvr.m3u8")
	})
}

func TestDefaultHosts(t *testing.T) {
	Convey("There are 13 distinct default hosts", t, func() {
		So(DefaultHosts, ShouldHaveLength, 13)
		seen := map[string]bool{}
		for _, h := range DefaultHosts {
			So(seen[h], ShouldBeFalse)
			So(h, ShouldStartWith, "https://")
			seen[h] = true
		}
	})
}

func TestProbeSequential(t *testing.T) {
	Convey("Given a sequential prober over the default hosts", t, func() {
		Convey("When only the 5th host answers", func() {
			stub := newCDN(DefaultHosts[4])
			prober := NewProber(stub)

			hit, err := prober.Probe(context.Background(), "sid")

			Convey("Then its URL is returned", func() {
				So(err, ShouldBeNil)
				So(hit.Host, ShouldEqual, DefaultHosts[4])
				So(hit.URL, ShouldEqual, DefaultHosts[4]+"/sid/chunked/index-dvr.m3u8")
			})

			Convey("Then hosts 6 to 13 are never requested", func() {
				requested := stub.Requested()
				So(requested, ShouldHaveLength, 5)
				for i, u := range requested {
					So(u, ShouldStartWith, DefaultHosts[i])
				}
			})
		})

		Convey("When raised transport errors and 404s precede the answer", func() {
			stub := newCDN(DefaultHosts[2])
			stub.raise[DefaultHosts[0]] = true

			hit, err := NewProber(stub).Probe(context.Background(), "sid")
			So(err, ShouldBeNil)
			So(hit.Host, ShouldEqual, DefaultHosts[2])
		})

		Convey("When every host fails", func() {
			stub := newCDN()
			stub.raise[DefaultHosts[7]] = true

			hit, err := NewProber(stub).Probe(context.Background(), "sid")

			Convey("Then an ExhaustionError lists all 13 attempts", func() {
				var exhausted *link.ExhaustionError
				So(errors.As(err, &exhausted), ShouldBeTrue)
				So(exhausted.StorageID, ShouldEqual, "sid")
				So(exhausted.Attempts, ShouldHaveLength, 13)
				So(exhausted.Attempts[0].Err.(*link.TransportError).StatusCode, ShouldEqual, http.StatusNotFound)
				So(exhausted.Attempts[7].Err.(*link.TransportError).StatusCode, ShouldEqual, 0)
			})

			Convey("Then no URL is emitted", func() {
				So(hit, ShouldResemble, Hit{})
			})
		})

		Convey("When a host hangs past the probe timeout", func() {
			stub := newCDN(DefaultHosts[2])
			stub.delay[DefaultHosts[0]] = time.Minute
			prober := NewProber(stub)
			prober.Timeout = 50 * time.Millisecond

			start := time.Now()
			hit, err := prober.Probe(context.Background(), "sid")

			Convey("Then it counts as a miss and the next hosts are tried", func() {
				So(err, ShouldBeNil)
				So(hit.Host, ShouldEqual, DefaultHosts[2])
				So(time.Since(start), ShouldBeLessThan, 10*time.Second)
				So(stub.Requested(), ShouldHaveLength, 3)
			})
		})

		Convey("When every host hangs past the probe timeout", func() {
			stub := newCDN()
			for _, h := range DefaultHosts[:3] {
				stub.delay[h] = time.Minute
			}
			prober := NewProber(stub)
			prober.Hosts = DefaultHosts[:3]
			prober.Timeout = 20 * time.Millisecond

			_, err := prober.Probe(context.Background(), "sid")

			var exhausted *link.ExhaustionError
			So(errors.As(err, &exhausted), ShouldBeTrue)
			So(exhausted.Attempts, ShouldHaveLength, 3)
			for _, a := range exhausted.Attempts {
				So(errors.Is(a.Err, context.DeadlineExceeded), ShouldBeTrue)
			}
		})

		Convey("When the host list is empty", func() {
			prober := NewProber(newCDN())
			prober.Hosts = nil

			_, err := prober.Probe(context.Background(), "sid")

			var exhausted *link.ExhaustionError
			So(errors.As(err, &exhausted), ShouldBeTrue)
			So(exhausted.Attempts, ShouldBeEmpty)
		})

		Convey("When the storage id is empty", func() {
			stub := newCDN(DefaultHosts[0])
			_, err := NewProber(stub).Probe(context.Background(), "")
			So(err, ShouldNotBeNil)
			So(stub.Requested(), ShouldBeEmpty)
		})

		Convey("When the context is already cancelled", func() {
			stub := newCDN(DefaultHosts[0])
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			_, err := NewProber(stub).Probe(ctx, "sid")
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
			So(stub.Requested(), ShouldBeEmpty)
		})
	})
}

func TestProbeConcurrent(t *testing.T) {
	Convey("Given a prober probing every host at once", t, func() {
		stub := newCDN()
		prober := NewProber(stub)
		prober.Parallelism = len(DefaultHosts)

		Convey("The earliest answering host in list order wins even if a later one answers first", func() {
			stub.ok[DefaultHosts[3]] = true
			stub.ok[DefaultHosts[9]] = true
			stub.delay[DefaultHosts[3]] = 50 * time.Millisecond

			hit, err := prober.Probe(context.Background(), "sid")
			So(err, ShouldBeNil)
			So(hit.Host, ShouldEqual, DefaultHosts[3])
		})

		Convey("A slow losing host does not delay the winner", func() {
			stub.ok[DefaultHosts[1]] = true
			stub.delay[DefaultHosts[5]] = time.Minute

			start := time.Now()
			hit, err := prober.Probe(context.Background(), "sid")
			So(err, ShouldBeNil)
			So(hit.Host, ShouldEqual, DefaultHosts[1])
			So(time.Since(start), ShouldBeLessThan, 10*time.Second)
		})

		Convey("Exhaustion is reported with every attempt in list order", func() {
			_, err := prober.Probe(context.Background(), "sid")

			var exhausted *link.ExhaustionError
			So(errors.As(err, &exhausted), ShouldBeTrue)
			So(exhausted.Attempts, ShouldHaveLength, 13)
			for i, a := range exhausted.Attempts {
				So(a.Host, ShouldEqual, DefaultHosts[i])
			}
		})

		Convey("A hanging host before the winner is cut off by the probe timeout", func() {
			stub.ok[DefaultHosts[2]] = true
			stub.delay[DefaultHosts[0]] = time.Minute
			prober.Timeout = 50 * time.Millisecond

			start := time.Now()
			hit, err := prober.Probe(context.Background(), "sid")
			So(err, ShouldBeNil)
			So(hit.Host, ShouldEqual, DefaultHosts[2])
			So(time.Since(start), ShouldBeLessThan, 10*time.Second)
		})

		Convey("Cancelling the parent context stops the search promptly", func() {
			prober.Parallelism = 4
			for _, h := range DefaultHosts {
				stub.ok[h] = true
				stub.delay[h] = time.Minute
			}

			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()

			start := time.Now()
			hit, err := prober.Probe(ctx, "sid")
			So(errors.Is(err, context.DeadlineExceeded), ShouldBeTrue)
			So(hit, ShouldResemble, Hit{})
			So(time.Since(start), ShouldBeLessThan, 10*time.Second)
		})

		Convey("An already cancelled context requests nothing", func() {
			stub.ok[DefaultHosts[0]] = true
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			_, err := prober.Probe(ctx, "sid")
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
			So(stub.Requested(), ShouldBeEmpty)
		})

		Convey("A bounded fan-out finds the same host", func() {
			prober.Parallelism = 3
			stub.ok[DefaultHosts[8]] = true

			hit, err := prober.Probe(context.Background(), "sid")
			So(err, ShouldBeNil)
			So(hit.Host, ShouldEqual, DefaultHosts[8])
		})
	})
}

func TestResolve(t *testing.T) {
	Convey("Given VOD 111 whose thumbnail points at teststorageid", t, func() {
		source := &videos{video: helix.Video{
			ID:           "111",
			ThumbnailURL: "https://static-cdn.jtvnw.net/cf_vods/d0mn/teststorageid//thumb/thumb0-%{width}x%{height}.jpg",
		}}
		stub := newCDN(DefaultHosts[1])
		resolver := NewResolver(source, NewProber(stub))

		Convey("When host 1 fails and host 2 answers", func() {
			stub.raise[DefaultHosts[0]] = true
			l, err := resolver.Resolve(context.Background(), "111")

			Convey("Then the link is built from host 2", func() {
				So(err, ShouldBeNil)
				So(l.URL, ShouldEqual, DefaultHosts[1]+"/teststorageid/chunked/index-dvr.m3u8")
				So(l.Kind, ShouldEqual, link.KindVOD)
				So(l.Target, ShouldEqual, "111")
				So(l.Host, ShouldEqual, DefaultHosts[1])
			})
		})

		Convey("Resolving twice yields the same URL", func() {
			first, err := resolver.Resolve(context.Background(), "111")
			So(err, ShouldBeNil)
			second, err := resolver.Resolve(context.Background(), "111")
			So(err, ShouldBeNil)
			So(second, ShouldResemble, first)
			So(source.calls, ShouldEqual, 2)
		})

		Convey("A metadata failure stops before probing", func() {
			source.err = &link.ShapeError{Stage: link.StageMetadata, Value: "111", Reason: "unexpected response shape"}
			_, err := resolver.Resolve(context.Background(), "111")

			var shapeErr *link.ShapeError
			So(errors.As(err, &shapeErr), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "vod 111")
			So(stub.Requested(), ShouldBeEmpty)
		})

		Convey("An unexpected thumbnail stops before probing", func() {
			source.video.ThumbnailURL = "https://vod-secure.twitch.tv/_404/404_processing_%{width}x%{height}.png"
			_, err := resolver.Resolve(context.Background(), "111")

			var shapeErr *link.ShapeError
			So(errors.As(err, &shapeErr), ShouldBeTrue)
			So(shapeErr.Stage, ShouldEqual, link.StageExtraction)
			So(stub.Requested(), ShouldBeEmpty)
		})

		Convey("When no host answers the ExhaustionError surfaces", func() {
			stub.ok = map[string]bool{}
			l, err := resolver.Resolve(context.Background(), "111")

			var exhausted *link.ExhaustionError
			So(errors.As(err, &exhausted), ShouldBeTrue)
			So(l.URL, ShouldBeEmpty)
		})
	})
}

var _ network.Doer = (*cdn)(nil)
