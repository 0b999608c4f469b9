package vod

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/twitchlink/twitchlink/link"
	"github.com/twitchlink/twitchlink/log"
	"github.com/twitchlink/twitchlink/network"
	"golang.org/x/sync/errgroup"
)

// DefaultProbeTimeout bounds a single candidate request.
const DefaultProbeTimeout = 10 * time.Second

var errSkipped = errors.New("skipped: an earlier host already answered")

// Hit is the candidate that served the manifest.
type Hit struct {
	Host string
	URL  string
}

// Prober searches the CDN hosts for a storage id.
//
// With Parallelism of 1 hosts are tried strictly in order and nothing after
// the first success is requested. A higher Parallelism probes that many hosts
// at once; the result is still the earliest host in list order that answers.
type Prober struct {
	Doer        network.Doer
	Hosts       []string
	Quality     string
	Parallelism int
	Timeout     time.Duration
}

// NewProber returns a sequential Prober over DefaultHosts.
func NewProber(doer network.Doer) *Prober {
	return &Prober{
		Doer:        doer,
		Hosts:       append([]string(nil), DefaultHosts...),
		Quality:     DefaultQuality,
		Parallelism: 1,
		Timeout:     DefaultProbeTimeout,
	}
}

// Probe returns the first host serving the manifest of storageID.
// When every host fails the error is a *link.ExhaustionError.
func (p *Prober) Probe(ctx context.Context, storageID string) (Hit, error) {
	if storageID == "" {
		return Hit{}, &link.ShapeError{Stage: link.StageProbe, Reason: "storage identifier is empty"}
	}

	urls := make([]string, len(p.Hosts))
	for i, host := range p.Hosts {
		urls[i] = ManifestURL(host, storageID, p.Quality)
	}

	if len(urls) == 0 {
		return Hit{}, &link.ExhaustionError{StorageID: storageID}
	}

	if p.Parallelism <= 1 {
		return p.sequential(ctx, storageID, urls)
	}
	return p.concurrent(ctx, storageID, urls)
}

func (p *Prober) try(ctx context.Context, url string) error {
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}
	return network.Probe(ctx, p.Doer, url)
}

func (p *Prober) sequential(ctx context.Context, storageID string, urls []string) (Hit, error) {
	attempts := make([]link.Attempt, 0, len(urls))

	for i, url := range urls {
		if err := ctx.Err(); err != nil {
			return Hit{}, err
		}

		err := p.try(ctx, url)
		if err == nil {
			log.WithFields(log.Fields{"host": p.Hosts[i], "index": i}).Info("CDN host answered")
			return Hit{Host: p.Hosts[i], URL: url}, nil
		}

		log.WithFields(log.Fields{"host": p.Hosts[i], "error": err}).Debug("CDN host failed")
		attempts = append(attempts, link.Attempt{
			Host: p.Hosts[i],
			URL:  url,
			Err:  link.WrapTransport(link.StageProbe, url, err),
		})
	}

	return Hit{}, &link.ExhaustionError{StorageID: storageID, Attempts: attempts}
}

type outcome struct {
	index int
	err   error
}

func (p *Prober) concurrent(ctx context.Context, storageID string, urls []string) (Hit, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	n := len(urls)
	probeCtx := make([]context.Context, n)
	probeCancel := make([]context.CancelFunc, n)
	for i := range urls {
		probeCtx[i], probeCancel[i] = context.WithCancel(ctx)
	}
	defer func() {
		for _, c := range probeCancel {
			c()
		}
	}()

	// best holds the lowest index known to have succeeded.
	var best atomic.Int64
	best.Store(int64(n))

	outcomes := make(chan outcome, n)

	var g errgroup.Group
	g.SetLimit(p.Parallelism)

	go func() {
		for i := range urls {
			g.Go(func() error {
				if int64(i) > best.Load() || probeCtx[i].Err() != nil {
					outcomes <- outcome{index: i, err: errSkipped}
					return nil
				}

				err := p.try(probeCtx[i], urls[i])
				if err == nil {
					for {
						cur := best.Load()
						if int64(i) >= cur || best.CompareAndSwap(cur, int64(i)) {
							break
						}
					}
					for j := i + 1; j < n; j++ {
						probeCancel[j]()
					}
				}

				outcomes <- outcome{index: i, err: err}
				return nil
			})
		}
	}()

	settled := make([]bool, n)
	errs := make([]error, n)
	winner := -1

	for received := 0; received < n; received++ {
		var o outcome
		select {
		case o = <-outcomes:
		case <-ctx.Done():
			return Hit{}, ctx.Err()
		}

		settled[o.index] = true
		errs[o.index] = o.err
		if o.err == nil && (winner < 0 || o.index < winner) {
			winner = o.index
		}

		if winner >= 0 && allSettled(settled[:winner]) {
			log.WithFields(log.Fields{"host": p.Hosts[winner], "index": winner}).Info("CDN host answered")
			return Hit{Host: p.Hosts[winner], URL: urls[winner]}, nil
		}
	}

	if err := ctx.Err(); err != nil {
		return Hit{}, err
	}

	attempts := make([]link.Attempt, n)
	for i, err := range errs {
		log.WithFields(log.Fields{"host": p.Hosts[i], "error": err}).Debug("CDN host failed")
		attempts[i] = link.Attempt{
			Host: p.Hosts[i],
			URL:  urls[i],
			Err:  link.WrapTransport(link.StageProbe, urls[i], err),
		}
	}

	return Hit{}, &link.ExhaustionError{StorageID: storageID, Attempts: attempts}
}

func allSettled(settled []bool) bool {
	for _, s := range settled {
		if !s {
			return false
		}
	}
	return true
}
