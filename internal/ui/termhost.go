package ui

import (
	"io"
	"sync"
	"time"

	"golang.org/x/term"

	"github.com/litescript/ls-constellation/internal/starfield"
)

const (
	escHome       = "\x1b[H"
	escClear      = "\x1b[2J"
	escHideCursor = "\x1b[?25l"
	escShowCursor = "\x1b[?25h"
	escReset      = "\x1b[0m"
)

// DefaultResizePoll is how often a TermHost checks the terminal size.
const DefaultResizePoll = 250 * time.Millisecond

// TermHost runs the starfield straight on a terminal, outside bubbletea.
// It implements starfield.Host. When the descriptor is not a terminal it
// reports no surface.
type TermHost struct {
	fd   int
	out  io.Writer
	poll time.Duration

	isTerminal func(fd int) bool
	getSize    func(fd int) (cols, rows int, err error)

	surface *termSurface

	mu         sync.Mutex
	cols, rows int
}

var _ starfield.Host = (*TermHost)(nil)

// NewTermHost draws to out and reads the size of the terminal behind fd.
func NewTermHost(fd int, out io.Writer, poll time.Duration) *TermHost {
	if poll <= 0 {
		poll = DefaultResizePoll
	}
	h := &TermHost{
		fd:         fd,
		out:        out,
		poll:       poll,
		isTerminal: term.IsTerminal,
		getSize:    term.GetSize,
		cols:       80,
		rows:       24,
	}
	h.surface = &termSurface{Canvas: NewCanvas(0, 0), out: out}
	return h
}

// IsTerminal reports whether the host can draw.
func (h *TermHost) IsTerminal() bool {
	return h.isTerminal(h.fd)
}

// Surface implements starfield.Host.
func (h *TermHost) Surface() (starfield.Surface, bool) {
	if !h.IsTerminal() {
		return nil, false
	}
	return h.surface, true
}

// Viewport implements starfield.Host. The last known size is kept when the
// terminal cannot be queried.
func (h *TermHost) Viewport() (float64, float64) {
	cols, rows := h.size()
	return float64(cols) * CellWidth, float64(rows) * CellHeight
}

func (h *TermHost) size() (int, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if cols, rows, err := h.getSize(h.fd); err == nil && cols > 0 && rows > 0 {
		h.cols, h.rows = cols, rows
	}
	return h.cols, h.rows
}

// OnResize implements starfield.Host by polling the terminal size. The
// returned function stops polling and waits for the poller to exit.
func (h *TermHost) OnResize(fn func()) func() {
	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)

	cols, rows := h.size()
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(h.poll)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				c, r := h.size()
				if c != cols || r != rows {
					cols, rows = c, r
					fn()
				}
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(stop)
			wg.Wait()
		})
	}
}

// Begin clears the screen and hides the cursor.
func (h *TermHost) Begin() {
	_, _ = io.WriteString(h.out, escClear+escHome+escHideCursor)
}

// End restores the cursor and attributes.
func (h *TermHost) End() {
	_, _ = io.WriteString(h.out, escReset+escShowCursor+"\n")
}

// termSurface is a Canvas that repaints the terminal after every frame.
type termSurface struct {
	*Canvas
	out io.Writer
}

func (s *termSurface) Present() {
	_, _ = io.WriteString(s.out, escHome+s.Render())
}
