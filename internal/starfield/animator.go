package starfield

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/litescript/ls-constellation/internal/logging"
)

// DefaultFrameInterval approximates a 60 Hz display.
const DefaultFrameInterval = time.Second / 60

// Host provides the drawing surface and viewport notifications.
type Host interface {
	// Surface returns the drawable surface, or false if the environment
	// has none.
	Surface() (Surface, bool)
	// Viewport reports the current viewport size in pixels.
	Viewport() (width, height float64)
	// OnResize registers fn to be called when the viewport changes size and
	// returns a function that removes the registration.
	OnResize(fn func()) (remove func())
}

// Resizable is implemented by surfaces that can be resized to the viewport.
type Resizable interface {
	Resize(width, height float64)
}

// Presenter is implemented by surfaces that buffer a frame and need to be
// told when it is complete.
type Presenter interface {
	Present()
}

// Animator runs a Field against a Host until stopped.
type Animator struct {
	host     Host
	cfg      Config
	interval time.Duration
	now      func() time.Time
	rng      *rand.Rand
	log      *logging.Logger

	stopOnce sync.Once
	doneOnce sync.Once
	cancel   context.CancelFunc
	done     chan struct{}

	mu     sync.Mutex // guards cancel and frames
	frames int
}

// Option configures an Animator.
type Option func(*Animator)

// WithFrameInterval sets the frame cadence.
func WithFrameInterval(d time.Duration) Option {
	return func(a *Animator) { a.interval = d }
}

// WithClock sets the wall clock used for shower timing.
func WithClock(now func() time.Time) Option {
	return func(a *Animator) { a.now = now }
}

// WithRand seeds star placement and shower direction.
func WithRand(rng *rand.Rand) Option {
	return func(a *Animator) { a.rng = rng }
}

// WithLogger sets the logger.
func WithLogger(log *logging.Logger) Option {
	return func(a *Animator) { a.log = log }
}

// NewAnimator creates an animator. It does nothing until Start.
func NewAnimator(host Host, cfg Config, opts ...Option) *Animator {
	a := &Animator{
		host:     host,
		cfg:      cfg,
		interval: DefaultFrameInterval,
		now:      time.Now,
		log:      logging.Discard(),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Start acquires the surface, registers the resize listener and begins
// drawing frames. It returns false, without error, when the host has no
// surface or the animator was already stopped. Start must be called at most
// once; it may race with Stop.
//
// The loop ends when ctx is cancelled or Stop is called.
func (a *Animator) Start(ctx context.Context) bool {
	select {
	case <-a.done:
		return false
	default:
	}

	surface, ok := a.host.Surface()
	if !ok || surface == nil {
		a.log.Debug("starfield: no drawable surface, not starting")
		a.finish()
		return false
	}

	ctx, cancel := context.WithCancel(ctx)
	a.mu.Lock()
	select {
	case <-a.done:
		a.mu.Unlock()
		cancel()
		return false
	default:
	}
	a.cancel = cancel
	a.mu.Unlock()

	resized := make(chan struct{}, 1)
	remove := a.host.OnResize(func() {
		select {
		case resized <- struct{}{}:
		default:
		}
	})

	fitToViewport(surface, a.host)
	w, h := surface.Size()
	field := NewField(a.cfg, w, h, a.now(), a.rng)

	a.log.Debug("starfield: started with %d stars at %v", a.cfg.StarCount, a.interval)
	go a.run(ctx, field, surface, resized, remove)
	return true
}

func (a *Animator) run(ctx context.Context, field *Field, surface Surface, resized <-chan struct{}, remove func()) {
	defer a.finish()
	defer remove()

	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.log.Debug("starfield: stopped after %d frames", a.Frames())
			return
		case <-resized:
			fitToViewport(surface, a.host)
		case <-ticker.C:
			// A stop racing the tick wins.
			if ctx.Err() != nil {
				continue
			}
			field.Frame(surface, a.now())
			if p, ok := surface.(Presenter); ok {
				p.Present()
			}
			a.mu.Lock()
			a.frames++
			a.mu.Unlock()
		}
	}
}

func fitToViewport(s Surface, h Host) {
	if r, ok := s.(Resizable); ok {
		r.Resize(h.Viewport())
	}
}

// Stop ends the frame loop and removes the resize listener. It blocks until
// no further surface mutation can happen and is safe to call more than once.
func (a *Animator) Stop() {
	a.stopOnce.Do(func() {
		a.mu.Lock()
		cancel := a.cancel
		if cancel == nil {
			a.finish()
		}
		a.mu.Unlock()
		if cancel != nil {
			cancel()
		}
	})
	<-a.done
}

func (a *Animator) finish() {
	a.doneOnce.Do(func() { close(a.done) })
}

// Done is closed once the animator has fully stopped.
func (a *Animator) Done() <-chan struct{} {
	return a.done
}

// Frames returns how many frames have been drawn.
func (a *Animator) Frames() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.frames
}
