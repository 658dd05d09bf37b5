package ui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/litescript/ls-constellation/internal/assist"
	"github.com/litescript/ls-constellation/internal/astro"
	"github.com/litescript/ls-constellation/internal/guestbook"
	"github.com/litescript/ls-constellation/internal/portfolio"
	"github.com/litescript/ls-constellation/internal/section"
	"github.com/litescript/ls-constellation/internal/starfield"
	"github.com/litescript/ls-constellation/internal/state"
	"github.com/litescript/ls-constellation/internal/zodiac"
)

var t0 = time.Date(2024, 1, 15, 22, 0, 0, 0, time.UTC)

type fakeComments struct {
	mu       sync.Mutex
	comments []guestbook.Comment
	err      error
}

func (f *fakeComments) Sign(_ context.Context, in guestbook.NewComment) (guestbook.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return guestbook.Comment{}, f.err
	}
	c := guestbook.Comment{ID: in.Name + "-id", Name: in.Name, Message: in.Message, CreatedAt: t0}
	f.comments = append([]guestbook.Comment{c}, f.comments...)
	return c, nil
}

func (f *fakeComments) List(_ context.Context, limit int) ([]guestbook.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]guestbook.Comment(nil), f.comments[:min(limit, len(f.comments))]...), nil
}

type fakeChat struct {
	mu      sync.Mutex
	history []assist.Message
	err     error
}

func (f *fakeChat) Ask(_ context.Context, q string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	answer := "echo: " + q
	f.history = append(f.history,
		assist.Message{Role: assist.RoleUser, Content: q},
		assist.Message{Role: assist.RoleAssistant, Content: answer})
	return answer, nil
}

func (f *fakeChat) History() []assist.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]assist.Message(nil), f.history...)
}

type harness struct {
	t        *testing.T
	m        Model
	store    *state.Store
	comments *fakeComments
	chat     *fakeChat
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		t:        t,
		store:    state.NewStore(state.Config{Now: func() time.Time { return t0 }}),
		comments: &fakeComments{},
		chat:     &fakeChat{},
	}
	h.m = New(Options{
		Store:     h.store,
		Catalog:   astro.ZodiacCatalog(),
		Content:   portfolio.Default(),
		Comments:  h.comments,
		Chat:      h.chat,
		Observer:  greenwich,
		Starfield: starfield.Config{StarCount: 20, DriftSpeed: 1},
		Now:       func() time.Time { return t0 },
	})
	h.send(tea.WindowSizeMsg{Width: 120, Height: 40})
	return h
}

// send applies msg and every message its commands produce promptly.
// Frame ticks and cursor blinks are dropped.
func (h *harness) send(msg tea.Msg) {
	h.t.Helper()
	next, cmd := h.m.Update(msg)
	h.m = next.(Model)
	for _, out := range collect(cmd) {
		if _, ok := out.(FrameMsg); ok {
			continue
		}
		h.send(out)
	}
}

func (h *harness) key(s string) {
	h.t.Helper()
	switch s {
	case "enter":
		h.send(tea.KeyMsg{Type: tea.KeyEnter})
	case "esc":
		h.send(tea.KeyMsg{Type: tea.KeyEsc})
	case "left":
		h.send(tea.KeyMsg{Type: tea.KeyLeft})
	case "right":
		h.send(tea.KeyMsg{Type: tea.KeyRight})
	case "tab":
		h.send(tea.KeyMsg{Type: tea.KeyTab})
	case "ctrl+c":
		h.send(tea.KeyMsg{Type: tea.KeyCtrlC})
	default:
		h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	}
}

func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, collect(c)...)
			}
			return out
		}
		if msg == nil {
			return nil
		}
		return []tea.Msg{msg}
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}

func (h *harness) enterMain() {
	h.t.Helper()
	h.key("enter")
	if h.m.Snapshot().Stage != state.StageMain {
		h.t.Fatalf("stage = %s after intro, want main", h.m.Snapshot().Stage)
	}
}

func TestInitialView(t *testing.T) {
	m := New(Options{Store: state.NewStore(state.DefaultConfig()), Catalog: astro.ZodiacCatalog()})
	if got := m.View(); got != "Initializing..." {
		t.Errorf("View() before size = %q", got)
	}
}

func TestIntroDefaultsToCurrentSeason(t *testing.T) {
	h := newHarness(t)
	if h.m.Snapshot().Stage != state.StageIntro {
		t.Fatalf("stage = %s, want intro", h.m.Snapshot().Stage)
	}
	h.enterMain()

	snap := h.store.Snapshot()
	if !snap.IntroCompleted || snap.Sign != zodiac.Capricorn {
		t.Errorf("after intro: completed=%v sign=%s, want true/Capricorn", snap.IntroCompleted, snap.Sign)
	}
	if got := h.m.sky.Constellation().ID; got != "capricornus" {
		t.Errorf("sky shows %q, want capricornus", got)
	}
}

func TestIntroArrowKeysCycleSigns(t *testing.T) {
	h := newHarness(t)
	h.key("right")
	h.key("right")
	h.key("left")
	h.enterMain()
	if got := h.store.Snapshot().Sign; got != zodiac.Aquarius {
		t.Errorf("sign = %s, want Aquarius", got)
	}
}

func TestIntroBirthdate(t *testing.T) {
	h := newHarness(t)
	h.key("1990-07-30")
	if got := h.m.intro.Sign(); got != zodiac.Leo {
		t.Errorf("preview sign = %s, want Leo", got)
	}
	h.enterMain()
	if got := h.store.Snapshot().Sign; got != zodiac.Leo {
		t.Errorf("sign = %s, want Leo", got)
	}
}

func TestIntroBadBirthdateFallsBack(t *testing.T) {
	h := newHarness(t)
	h.key("garbage")
	h.enterMain()

	if got := h.store.Snapshot().Sign; got != zodiac.Aries {
		t.Errorf("sign = %s, want Aries fallback", got)
	}
	if !strings.Contains(h.m.notice, "garbage") {
		t.Errorf("notice = %q, want mention of the input", h.m.notice)
	}

	// Any key clears the notice.
	h.key("j")
	if h.m.notice != "" {
		t.Errorf("notice not cleared: %q", h.m.notice)
	}
}

func TestHoverAndOpenSection(t *testing.T) {
	h := newHarness(t)
	h.enterMain()

	h.key("j")
	if got := h.store.Snapshot().HoveredNode; got != "skills" {
		t.Errorf("hovered = %q, want skills", got)
	}

	h.key("enter")
	if got := h.store.Snapshot().ActiveNode; got != "skills" {
		t.Errorf("active = %q, want skills", got)
	}
	if !h.m.panel.IsOpen() || h.m.panel.Kind() != section.Skills {
		t.Errorf("panel open=%v kind=%v, want open Skills", h.m.panel.IsOpen(), h.m.panel.Kind())
	}
	if !strings.Contains(ansi.Strip(h.m.View()), "Skills") {
		t.Error("view does not show the Skills panel")
	}

	h.key("esc")
	if got := h.store.Snapshot().ActiveNode; got != "" {
		t.Errorf("active after esc = %q, want empty", got)
	}
	if h.m.panel.IsOpen() {
		t.Error("panel still open after esc")
	}
}

func TestSwitchConstellation(t *testing.T) {
	h := newHarness(t)
	h.enterMain()
	h.key("right")
	if got := h.m.sky.Constellation().ID; got != "aquarius" {
		t.Errorf("sky shows %q, want aquarius", got)
	}
}

func TestReturnToPicker(t *testing.T) {
	h := newHarness(t)
	h.enterMain()
	h.key("z")
	if got := h.store.Snapshot().Stage; got != state.StageIntro {
		t.Fatalf("stage = %s, want intro", got)
	}
	if got := h.m.intro.Sign(); got != zodiac.Capricorn {
		t.Errorf("picker starts on %s, want Capricorn", got)
	}

	// Esc goes back without re-picking once the intro has been done.
	h.key("esc")
	if got := h.store.Snapshot().Stage; got != state.StageMain {
		t.Errorf("stage after esc = %s, want main", got)
	}
}

func TestGuestbookSigning(t *testing.T) {
	h := newHarness(t)
	h.comments.comments = []guestbook.Comment{{ID: "old", Name: "Old", Message: "first", CreatedAt: t0}}
	h.enterMain()

	h.key("g")
	if got := h.store.Snapshot().ActiveNode; got != "guestbook" {
		t.Fatalf("active = %q, want guestbook", got)
	}
	if len(h.m.comments) != 1 {
		t.Fatalf("comments loaded = %d, want 1", len(h.m.comments))
	}

	h.key("s")
	if !h.m.panel.Signing() {
		t.Fatal("form not focused after s")
	}
	h.key("Ada")
	h.key("tab")
	h.key("hello there")
	h.key("enter")

	if h.m.panel.Signing() {
		t.Error("form still open after a successful submit")
	}
	if len(h.m.comments) != 2 || h.m.comments[0].Name != "Ada" {
		t.Errorf("comments = %+v, want Ada first", h.m.comments)
	}

	// The realtime echo of the same comment is not duplicated.
	h.send(CommentMsg(h.m.comments[0]))
	if len(h.m.comments) != 2 {
		t.Errorf("duplicate comment added: %d", len(h.m.comments))
	}
}

func TestGuestbookSignError(t *testing.T) {
	h := newHarness(t)
	h.comments.err = guestbook.FieldErrors{"name": "is required"}
	h.enterMain()
	h.key("g")
	h.key("s")
	h.key("enter")
	h.key("enter")

	if !h.m.panel.Signing() {
		t.Error("form closed after a failed submit")
	}
	if !errors.Is(h.m.panel.form.err, guestbook.ErrInvalidComment) {
		t.Errorf("form error = %v, want ErrInvalidComment", h.m.panel.form.err)
	}

	h.key("esc")
	if h.m.panel.Signing() {
		t.Error("esc did not leave the form")
	}
}

func TestAssistantPanel(t *testing.T) {
	h := newHarness(t)
	h.enterMain()

	h.key("a")
	if !h.store.Snapshot().AIOpen {
		t.Fatal("AI panel not open after a")
	}

	// Keys go to the input while the panel is open.
	h.key("q")
	if h.m.quitting {
		t.Fatal("q quit while typing")
	}
	h.key("uestion")
	h.key("enter")

	if h.m.ai.Pending() {
		t.Error("answer still pending")
	}
	if len(h.m.ai.history) != 2 || h.m.ai.history[1].Content != "echo: question" {
		t.Errorf("history = %+v", h.m.ai.history)
	}

	h.key("esc")
	if h.store.Snapshot().AIOpen {
		t.Error("AI panel still open after esc")
	}
}

func TestAssistantError(t *testing.T) {
	h := newHarness(t)
	h.chat.err = errors.New("offline")
	h.enterMain()
	h.key("a")
	h.key("hi")
	h.key("enter")

	if h.m.ai.err == nil {
		t.Fatal("error not shown")
	}
	if !strings.Contains(h.m.ai.transcript(), "offline") {
		t.Errorf("transcript = %q", h.m.ai.transcript())
	}
}

func TestStateMsgFromSubscription(t *testing.T) {
	h := newHarness(t)
	h.enterMain()

	var got []state.Snapshot
	unsubscribe := h.store.Subscribe(func(s state.Snapshot) { got = append(got, s) })
	defer unsubscribe()

	h.store.SetActiveNode("projects")
	if len(got) != 1 {
		t.Fatalf("listener calls = %d, want 1", len(got))
	}
	h.send(StateMsg(got[0]))
	if !h.m.panel.IsOpen() || h.m.panel.Kind() != section.Projects {
		t.Error("external state change did not open the Projects panel")
	}
}

func TestFrameTicks(t *testing.T) {
	h := newHarness(t)
	next, cmd := h.m.Update(FrameMsg(t0))
	h.m = next.(Model)
	if h.m.Frames() != 1 {
		t.Errorf("Frames() = %d, want 1", h.m.Frames())
	}
	if cmd == nil {
		t.Error("frame did not schedule the next tick")
	}

	h.key("ctrl+c")
	if !h.m.quitting {
		t.Fatal("ctrl+c did not quit")
	}
	next, cmd = h.m.Update(FrameMsg(t0))
	h.m = next.(Model)
	if cmd != nil {
		t.Error("tick chain continued after quit")
	}
	if h.m.Frames() != 1 {
		t.Errorf("frame drawn after quit")
	}
	if h.m.View() != "" {
		t.Error("view not blank after quit")
	}
}

func TestQuitKey(t *testing.T) {
	h := newHarness(t)
	h.enterMain()
	_, cmd := h.m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not return tea.Quit")
	}
}

func TestLayoutWithSidePanel(t *testing.T) {
	h := newHarness(t)
	h.enterMain()
	full := h.m.canvas.Cols()
	if full != 120 {
		t.Fatalf("canvas cols = %d, want 120", full)
	}

	h.key("enter")
	// Side panels take at most half the width.
	if got := h.m.canvas.Cols(); got != 60 {
		t.Errorf("canvas cols with panel = %d, want 60", got)
	}
	if got := h.m.canvas.Rows(); got != 40-headerLines-footerLines {
		t.Errorf("canvas rows = %d, want %d", got, 40-headerLines-footerLines)
	}

	h.key("esc")
	if got := h.m.canvas.Cols(); got != full {
		t.Errorf("canvas cols after close = %d, want %d", got, full)
	}
}
