package starfield

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeHost struct {
	mu        sync.Mutex
	surface   Surface
	w, h      float64
	listeners map[int]func()
	nextID    int
}

func newFakeHost(s Surface, w, h float64) *fakeHost {
	return &fakeHost{surface: s, w: w, h: h, listeners: map[int]func(){}}
}

func (h *fakeHost) Surface() (Surface, bool) { return h.surface, h.surface != nil }

func (h *fakeHost) Viewport() (float64, float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.w, h.h
}

func (h *fakeHost) OnResize(fn func()) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextID
	h.nextID++
	h.listeners[id] = fn
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.listeners, id)
	}
}

func (h *fakeHost) resize(w, ht float64) {
	h.mu.Lock()
	h.w, h.h = w, ht
	fns := make([]func(), 0, len(h.listeners))
	for _, fn := range h.listeners {
		fns = append(fns, fn)
	}
	h.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

func (h *fakeHost) listenerCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.listeners)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestAnimatorDrawsAndStops(t *testing.T) {
	rec := newRecorder(0, 0)
	host := newFakeHost(rec, 640, 480)
	a := NewAnimator(host, Config{StarCount: 5, DriftSpeed: 1},
		WithFrameInterval(time.Millisecond), WithRand(seeded()))

	if !a.Start(context.Background()) {
		t.Fatal("Start() = false with a surface")
	}
	if w, h := rec.Size(); w != 640 || h != 480 {
		t.Errorf("surface not fitted to viewport: %vx%v", w, h)
	}
	if host.listenerCount() != 1 {
		t.Errorf("resize listeners = %d, want 1", host.listenerCount())
	}

	waitFor(t, func() bool { return a.Frames() >= 3 })
	a.Stop()

	if host.listenerCount() != 0 {
		t.Errorf("resize listener still registered after Stop")
	}

	// No mutation after teardown.
	n := rec.opCount()
	time.Sleep(10 * time.Millisecond)
	if rec.opCount() != n {
		t.Errorf("surface mutated after Stop: %d -> %d ops", n, rec.opCount())
	}

	// Idempotent.
	a.Stop()
}

func TestAnimatorResize(t *testing.T) {
	rec := newRecorder(0, 0)
	host := newFakeHost(rec, 640, 480)
	a := NewAnimator(host, Config{}, WithFrameInterval(time.Millisecond))
	a.Start(context.Background())
	defer a.Stop()

	host.resize(1024, 768)
	waitFor(t, func() bool {
		w, h := rec.Size()
		return w == 1024 && h == 768
	})
}

func TestAnimatorContextCancel(t *testing.T) {
	rec := newRecorder(0, 0)
	host := newFakeHost(rec, 100, 100)
	ctx, cancel := context.WithCancel(context.Background())
	a := NewAnimator(host, Config{}, WithFrameInterval(time.Millisecond))
	a.Start(ctx)

	cancel()
	select {
	case <-a.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("animator did not stop on context cancel")
	}
	if host.listenerCount() != 0 {
		t.Error("resize listener leaked after cancel")
	}
}

func TestAnimatorNoSurface(t *testing.T) {
	host := newFakeHost(nil, 100, 100)
	a := NewAnimator(host, DefaultConfig())

	if a.Start(context.Background()) {
		t.Error("Start() = true without a surface")
	}
	if host.listenerCount() != 0 {
		t.Error("resize listener registered without a surface")
	}
	a.Stop()
	if a.Frames() != 0 {
		t.Errorf("Frames() = %d, want 0", a.Frames())
	}
}

func TestAnimatorStopBeforeStart(t *testing.T) {
	rec := newRecorder(0, 0)
	a := NewAnimator(newFakeHost(rec, 100, 100), DefaultConfig())
	a.Stop()
	if a.Start(context.Background()) {
		t.Error("Start() after Stop() = true")
	}
	if rec.opCount() != 0 {
		t.Error("stopped animator drew a frame")
	}
}

func TestAnimatorStopRacingStart(t *testing.T) {
	for i := 0; i < 50; i++ {
		host := newFakeHost(newRecorder(0, 0), 100, 100)
		a := NewAnimator(host, Config{StarCount: 2, DriftSpeed: 1},
			WithFrameInterval(time.Millisecond), WithRand(seeded()))

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			a.Start(context.Background())
		}()
		go func() {
			defer wg.Done()
			a.Stop()
		}()
		wg.Wait()

		// Whichever won, the animator ends stopped with no listener left.
		a.Stop()
		select {
		case <-a.Done():
		default:
			t.Fatalf("iteration %d: animator not done after Stop", i)
		}
		if n := host.listenerCount(); n != 0 {
			t.Fatalf("iteration %d: %d resize listeners left", i, n)
		}
	}
}

func TestAnimatorShowerClock(t *testing.T) {
	var mu sync.Mutex
	now := t0
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}

	rec := newRecorder(0, 0)
	host := newFakeHost(rec, 10000, 100)
	a := NewAnimator(host, Config{}, WithFrameInterval(time.Millisecond), WithClock(clock), WithRand(seeded()))
	a.Start(context.Background())
	defer a.Stop()

	mu.Lock()
	now = t0.Add(ShowerInterval + time.Second)
	mu.Unlock()

	waitFor(t, func() bool {
		rec.mu.Lock()
		defer rec.mu.Unlock()
		return len(rec.meteors) > 0
	})
}

type presentingRecorder struct {
	*recorder
	presents int
}

func (p *presentingRecorder) Present() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.presents++
}

func TestAnimatorPresentsEachFrame(t *testing.T) {
	p := &presentingRecorder{recorder: newRecorder(0, 0)}
	a := NewAnimator(newFakeHost(p, 100, 100), Config{StarCount: 1}, WithFrameInterval(time.Millisecond))
	a.Start(context.Background())

	waitFor(t, func() bool { return a.Frames() >= 2 })
	a.Stop()

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.presents != a.Frames() {
		t.Errorf("presents = %d, frames = %d", p.presents, a.Frames())
	}
}
