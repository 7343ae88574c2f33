package progress

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"rcfetch/internal/interfaces"
	"rcfetch/internal/rclone"
)

// DefaultInterval is how often core/stats is polled while a copy runs.
const DefaultInterval = time.Second

// Event is handed to the Sink for every stats sample and once when the copy ends.
type Event struct {
	Stats    *rclone.Stats
	Finished bool
	Success  bool
	Error    string
}

// Sink receives progress events. It is always called from a single goroutine.
type Sink func(Event)

// Reporter polls /core/stats while a copyurl call is in flight
type Reporter struct {
	client   interfaces.RCloneClient
	sink     Sink
	interval time.Duration
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithInterval sets the polling period. Non-positive values are ignored.
func WithInterval(d time.Duration) Option {
	return func(r *Reporter) {
		if d > 0 {
			r.interval = d
		}
	}
}

// New creates a new progress reporter
func New(client interfaces.RCloneClient, sink Sink, opts ...Option) *Reporter {
	r := &Reporter{
		client:   client,
		sink:     sink,
		interval: DefaultInterval,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Copy runs req on the daemon and reports progress to the sink until it
// returns. The result and error of the copy are passed through untouched.
func (r *Reporter) Copy(ctx context.Context, req rclone.CopyURLRequest) (*rclone.CopyURLResult, error) {
	events := make(chan Event, 1)
	delivered := make(chan struct{})
	go r.deliver(events, delivered)

	p := newPoller(ctx, r.client, r.interval, events)
	p.start()

	result, err := r.client.CopyURL(ctx, req)

	// no in-flight event may follow the terminal one
	p.stop()

	final := Event{
		Stats:    r.client.Stats(context.WithoutCancel(ctx)),
		Finished: true,
		Success:  err == nil,
	}
	if err != nil {
		final.Error = err.Error()
		slog.Debug("copy failed", "url", req.URL, "error", err)
	} else {
		slog.Debug("copy finished", "url", req.URL)
	}

	events <- final
	close(events)
	<-delivered

	return result, err
}

func (r *Reporter) deliver(events <-chan Event, done chan<- struct{}) {
	defer close(done)
	for ev := range events {
		if r.sink != nil {
			r.sink(ev)
		}
	}
}

type poller struct {
	client   interfaces.RCloneClient
	interval time.Duration
	out      chan<- Event

	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	stopOnce sync.Once
}

func newPoller(parent context.Context, client interfaces.RCloneClient, interval time.Duration, out chan<- Event) *poller {
	ctx, cancel := context.WithCancel(parent)
	return &poller{
		client:   client,
		interval: interval,
		out:      out,
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (p *poller) start() {
	p.wg.Add(1)
	go p.pollLoop()
}

// stop is safe to call more than once; it returns after the loop has exited.
func (p *poller) stop() {
	p.stopOnce.Do(func() {
		p.cancel()
		p.wg.Wait()
	})
}

func (p *poller) pollLoop() {
	defer p.wg.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.ctx.Done():
			return

		case <-ticker.C:
			stats := p.client.Stats(p.ctx)
			if stats == nil {
				continue
			}
			// a tick that raced with stop is dropped
			if p.ctx.Err() != nil {
				return
			}

			select {
			case p.out <- Event{Stats: stats}:
			case <-p.ctx.Done():
				return
			}
		}
	}
}
