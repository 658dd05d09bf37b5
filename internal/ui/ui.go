// Package ui implements the bubbletea interface: the sign picker, the sky
// view over an animated starfield, and the section, guestbook and assistant
// panels.
package ui

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-constellation/internal/assist"
	"github.com/litescript/ls-constellation/internal/astro"
	"github.com/litescript/ls-constellation/internal/guestbook"
	"github.com/litescript/ls-constellation/internal/logging"
	"github.com/litescript/ls-constellation/internal/portfolio"
	"github.com/litescript/ls-constellation/internal/section"
	"github.com/litescript/ls-constellation/internal/starfield"
	"github.com/litescript/ls-constellation/internal/state"
	"github.com/litescript/ls-constellation/internal/version"
	"github.com/litescript/ls-constellation/internal/zodiac"
)

// FrameInterval paces the starfield, roughly 30 fps.
const FrameInterval = 33 * time.Millisecond

const (
	headerLines = 2
	footerLines = 2
	maxSideW    = 64
)

var errGuestbookUnavailable = errors.New("guestbook unavailable")

// Msg types
type (
	// FrameMsg advances the starfield one frame.
	FrameMsg time.Time

	// StateMsg reports a store change made outside the model. The model
	// re-reads the store, so a late message never rewinds the view.
	StateMsg state.Snapshot

	// CommentMsg carries a newly signed guestbook entry.
	CommentMsg guestbook.Comment

	commentsLoadedMsg struct {
		comments []guestbook.Comment
		err      error
	}

	commentSignedMsg struct {
		comment guestbook.Comment
		err     error
	}

	answerMsg struct {
		question string
		answer   string
		err      error
	}
)

// CommentStore is the guestbook as the UI uses it.
type CommentStore interface {
	Sign(ctx context.Context, in guestbook.NewComment) (guestbook.Comment, error)
	List(ctx context.Context, limit int) ([]guestbook.Comment, error)
}

// Chat is the assistant conversation as the UI uses it.
type Chat interface {
	Ask(ctx context.Context, question string) (string, error)
	History() []assist.Message
}

// Options wires the model to the rest of the application.
type Options struct {
	Store        *state.Store
	Catalog      *astro.Catalog
	Content      *portfolio.Content
	Comments     CommentStore // nil disables the guestbook
	Chat         Chat
	Suggestions  []string
	Observer     astro.Observer
	Starfield    starfield.Config
	CommentLimit int
	Log          *logging.Logger
	Now          func() time.Time
	Rand         *rand.Rand
}

// Model is the root bubbletea model.
type Model struct {
	opts  Options
	store *state.Store
	snap  state.Snapshot
	log   *logging.Logger

	width  int
	height int
	ready  bool

	canvas   *Canvas
	field    *starfield.Field
	frames   int
	quitting bool

	intro IntroModel
	sky   SkyModel
	panel SectionPanel
	ai    AIPanel

	comments []guestbook.Comment
	notice   string
}

// New creates the root model. The store's current snapshot decides the
// opening screen.
func New(opts Options) Model {
	if opts.Log == nil {
		opts.Log = logging.Discard()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.CommentLimit <= 0 {
		opts.CommentLimit = guestbook.DefaultLimit
	}

	snap := opts.Store.Snapshot()
	sign := zodiac.SignFor(opts.Now())
	if snap.HasSign {
		sign = snap.Sign
	}

	assistant := "Assistant"
	if opts.Content != nil && opts.Content.Assistant.Name != "" {
		assistant = opts.Content.Assistant.Name
	}

	m := Model{
		opts:   opts,
		store:  opts.Store,
		log:    opts.Log,
		canvas: NewCanvas(0, 0),
		intro:  NewIntroModel(sign),
		sky:    NewSkyModel(opts.Catalog, opts.Observer),
		panel:  NewSectionPanel(),
		ai:     NewAIPanel(assistant, opts.Suggestions),
	}
	if snap.HasSign {
		m.sky = m.sky.SetConstellation(snap.Sign.ConstellationID())
	}
	m.snap = snap
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(frameCmd(), m.loadComments())
}

func frameCmd() tea.Cmd {
	return tea.Tick(FrameInterval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

func (m Model) loadComments() tea.Cmd {
	store, limit := m.opts.Comments, m.opts.CommentLimit
	return func() tea.Msg {
		if store == nil {
			return commentsLoadedMsg{err: errGuestbookUnavailable}
		}
		comments, err := store.List(context.Background(), limit)
		return commentsLoadedMsg{comments: comments, err: err}
	}
}

func (m Model) signComment(in guestbook.NewComment) tea.Cmd {
	store := m.opts.Comments
	return func() tea.Msg {
		if store == nil {
			return commentSignedMsg{err: errGuestbookUnavailable}
		}
		c, err := store.Sign(context.Background(), in)
		return commentSignedMsg{comment: c, err: err}
	}
}

func (m Model) ask(question string) tea.Cmd {
	chat := m.opts.Chat
	return func() tea.Msg {
		if chat == nil {
			return answerMsg{question: question, err: assist.ErrNoGenerator}
		}
		answer, err := chat.Ask(context.Background(), question)
		return answerMsg{question: question, answer: answer, err: err}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		if m.snap.Stage != state.StageMain {
			return m.updateIntro(msg)
		}
		return m.updateMain(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m = m.layout()
		if m.field == nil {
			w, h := m.canvas.Size()
			m.field = starfield.NewField(m.opts.Starfield, w, h, m.opts.Now(), m.opts.Rand)
		}

	case FrameMsg:
		if m.quitting {
			return m, nil
		}
		if m.field != nil {
			m.field.Frame(m.canvas, time.Time(msg))
			m.frames++
		}
		cmds = append(cmds, frameCmd())

	case StateMsg:
		cmds = append(cmds, m.sync())

	case IntroDoneMsg:
		if msg.FellBack {
			m.log.Warn("could not read birthdate %q, defaulting to %s", msg.Input, msg.Sign)
			m.notice = fmt.Sprintf("Couldn't read %q, showing %s", msg.Input, msg.Sign)
		} else {
			m.notice = ""
		}
		m.store.CompleteIntro(msg.Sign)
		cmds = append(cmds, m.sync())

	case commentsLoadedMsg:
		if msg.err != nil {
			m.log.Error("guestbook: list comments: %v", msg.err)
			break
		}
		m.comments = msg.comments
		m.panel = m.panel.Refresh(m.sectionContext())

	case CommentMsg:
		m = m.addComment(guestbook.Comment(msg))

	case commentSignedMsg:
		if msg.err != nil {
			if !errors.Is(msg.err, guestbook.ErrInvalidComment) {
				m.log.Error("guestbook: sign: %v", msg.err)
			}
			m.panel = m.panel.SetFormError(msg.err)
			break
		}
		m.panel = m.panel.Signed()
		m = m.addComment(msg.comment)

	case answerMsg:
		var history []assist.Message
		if msg.err != nil {
			m.log.Error("assistant: %v", msg.err)
		} else if m.opts.Chat != nil {
			history = m.opts.Chat.History()
		}
		m.ai = m.ai.Answered(history, msg.err)

	default:
		// Cursor blinks and similar go to whichever input has focus.
		var cmd tea.Cmd
		switch {
		case m.snap.Stage != state.StageMain:
			m.intro, cmd = m.intro.Update(msg)
		case m.snap.AIOpen:
			m.ai, _, cmd = m.ai.Update(msg)
		case m.panel.Signing():
			m.panel, _, cmd = m.panel.Update(msg)
		}
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

func (m Model) updateIntro(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.snap.IntroCompleted {
			m.store.SetStage(state.StageMain)
			return m, m.sync()
		}
		return m.quit()
	}
	var cmd tea.Cmd
	m.intro, cmd = m.intro.Update(msg)
	return m, cmd
}

func (m Model) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	m.notice = ""

	if m.snap.AIOpen {
		if key == "esc" {
			m.store.CloseAI()
			return m, m.sync()
		}
		var q string
		var cmd tea.Cmd
		m.ai, q, cmd = m.ai.Update(msg)
		if q != "" {
			return m, tea.Batch(cmd, m.ask(q))
		}
		return m, cmd
	}

	if m.panel.Signing() {
		if key == "esc" {
			m.panel = m.panel.StopSigning()
			return m, nil
		}
		var submit *guestbook.NewComment
		var cmd tea.Cmd
		m.panel, submit, cmd = m.panel.Update(msg)
		if submit != nil {
			return m, tea.Batch(cmd, m.signComment(*submit))
		}
		return m, cmd
	}

	switch key {
	case "q":
		return m.quit()
	case "j", "tab":
		m.sky = m.sky.FocusNext()
		return m.hoverFocused()
	case "k", "shift+tab":
		m.sky = m.sky.FocusPrev()
		return m.hoverFocused()
	case "left", "h":
		m.store.SetSign(m.snap.Sign.Prev())
		return m, m.sync()
	case "right", "l":
		m.store.SetSign(m.snap.Sign.Next())
		return m, m.sync()
	case "enter":
		if s, ok := m.sky.Focused(); ok {
			m.store.SetActiveNode(s.Section)
		}
		return m, m.sync()
	case "a":
		m.store.ToggleAI()
		return m, m.sync()
	case "g":
		m.store.SetActiveNode(section.Guestbook.ID())
		return m, m.sync()
	case "z":
		m.store.SetActiveNode("")
		m.store.SetStage(state.StageIntro)
		return m, m.sync()
	case "s":
		if m.panel.IsOpen() && m.panel.Kind() == section.Guestbook {
			var cmd tea.Cmd
			m.panel, cmd = m.panel.StartSigning()
			return m, cmd
		}
	case "esc", "backspace":
		m.store.SetActiveNode("")
		return m, m.sync()
	}

	if m.panel.IsOpen() {
		var cmd tea.Cmd
		m.panel, _, cmd = m.panel.Update(msg)
		return m, cmd
	}
	if key == "down" {
		m.sky = m.sky.FocusNext()
		return m.hoverFocused()
	}
	if key == "up" {
		m.sky = m.sky.FocusPrev()
		return m.hoverFocused()
	}
	return m, nil
}

func (m Model) hoverFocused() (tea.Model, tea.Cmd) {
	if s, ok := m.sky.Focused(); ok {
		m.store.SetHoveredNode(s.Section)
	}
	return m, m.sync()
}

// sync pulls the store's snapshot after a local action. The same snapshot
// may arrive again as a StateMsg; applying it twice is harmless.
func (m *Model) sync() tea.Cmd {
	var cmd tea.Cmd
	*m, cmd = m.apply(m.store.Snapshot())
	return cmd
}

// apply moves the view to match next.
func (m Model) apply(next state.Snapshot) (Model, tea.Cmd) {
	prev := m.snap
	m.snap = next
	var cmds []tea.Cmd

	if next.HasSign && (!prev.HasSign || prev.Sign != next.Sign || m.sky.Constellation().ID == "") {
		m.sky = m.sky.SetConstellation(next.Sign.ConstellationID())
	}
	if next.HoveredNode != "" {
		m.sky = m.sky.FocusSection(next.HoveredNode)
	}

	if next.Stage == state.StageIntro && prev.Stage != state.StageIntro {
		sign := m.intro.Sign()
		if next.HasSign {
			sign = next.Sign
		}
		m.intro = NewIntroModel(sign).SetSize(m.width)
	}

	if next.ActiveNode != prev.ActiveNode || (next.ActiveNode != "" && !m.panel.IsOpen()) {
		if kind, ok := section.Parse(next.ActiveNode); ok {
			m.panel = m.panel.Open(kind, m.sectionContext())
			if kind == section.Guestbook {
				cmds = append(cmds, m.loadComments())
			}
		} else {
			if next.ActiveNode != "" {
				m.log.Warn("unknown section %q", next.ActiveNode)
			}
			m.panel = m.panel.Close()
		}
	}

	if next.AIOpen != prev.AIOpen {
		if next.AIOpen {
			var cmd tea.Cmd
			m.ai, cmd = m.ai.Focus()
			cmds = append(cmds, cmd)
		} else {
			m.ai = m.ai.Blur()
		}
	}

	m = m.layout()
	return m, tea.Batch(cmds...)
}

func (m Model) addComment(c guestbook.Comment) Model {
	for _, existing := range m.comments {
		if existing.ID == c.ID {
			return m
		}
	}
	m.comments = append([]guestbook.Comment{c}, m.comments...)
	if len(m.comments) > m.opts.CommentLimit {
		m.comments = m.comments[:m.opts.CommentLimit]
	}
	m.panel = m.panel.Refresh(m.sectionContext())
	return m
}

func (m Model) sectionContext() section.Context {
	return section.Context{Content: m.opts.Content, Comments: m.comments}
}

// layout sizes the canvas and side panels for the current window and
// open panels.
func (m Model) layout() Model {
	if !m.ready {
		return m
	}
	bodyH := max(m.height-headerLines-footerLines, 1)
	sideW := m.sideWidth()

	m.canvas.Resize(float64(m.width-sideW)*CellWidth, float64(bodyH)*CellHeight)
	m.intro = m.intro.SetSize(m.width)

	switch {
	case m.panel.IsOpen() && m.snap.AIOpen:
		top := bodyH / 2
		m.panel = m.panel.SetSize(sideW, top)
		m.ai = m.ai.SetSize(sideW, bodyH-top)
	case m.snap.AIOpen:
		m.ai = m.ai.SetSize(sideW, bodyH)
	case m.panel.IsOpen():
		m.panel = m.panel.SetSize(sideW, bodyH)
	}
	return m
}

func (m Model) sideWidth() int {
	if m.snap.Stage != state.StageMain || (!m.panel.IsOpen() && !m.snap.AIOpen) {
		return 0
	}
	return min(maxSideW, m.width/2)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.quitting {
		return ""
	}

	bodyH := max(m.height-headerLines-footerLines, 1)
	var body string
	if m.snap.Stage != state.StageMain {
		body = lipgloss.Place(m.width, bodyH, lipgloss.Center, lipgloss.Center, m.intro.View())
	} else {
		body = m.renderSky()
		if side := m.renderSide(); side != "" {
			body = lipgloss.JoinHorizontal(lipgloss.Top, body, side)
		}
	}

	return m.renderHeader() + "\n" + body + "\n" + m.renderFooter()
}

func (m Model) renderSky() string {
	c := m.canvas.Clone()
	m.sky.Draw(c)
	return c.Render()
}

func (m Model) renderSide() string {
	var parts []string
	if m.panel.IsOpen() {
		parts = append(parts, m.panel.View())
	}
	if m.snap.AIOpen {
		parts = append(parts, m.ai.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderHeader() string {
	title := gradientText(" LS-CONSTELLATION ", "#3B82F6", "#EC4899")
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	owner := ""
	if m.opts.Content != nil {
		owner = m.opts.Content.Owner.Name + " · "
	}
	line1 := title + muted.Render(fmt.Sprintf("  %sv%s", owner, version.Version))

	line2 := muted.Render("  Find your constellation")
	if m.snap.Stage == state.StageMain {
		line2 = "  " + m.sky.Header()
	}
	return line1 + "\n" + line2
}

// gradientText colours s left to right from one hex colour to another.
func gradientText(s, from, to string) string {
	a, b := parseHex(from), parseHex(to)
	runes := []rune(s)
	var out strings.Builder
	for i, r := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		c := a.BlendLuv(b, t).Clamped()
		out.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(c.Hex())).Render(string(r)))
	}
	return out.String()
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	noticeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))

	var status string
	switch {
	case m.notice != "":
		status = noticeStyle.Render(m.notice)
	case m.snap.Stage == state.StageMain:
		status = m.sky.Status(m.opts.Now())
	default:
		status = dimStyle.Render(zodiac.SignFor(m.opts.Now()).String() + " season")
	}

	var help string
	switch {
	case m.snap.Stage != state.StageMain:
		help = "←/→ sign · enter begin · esc back · ctrl+c quit"
	case m.snap.AIOpen:
		help = "esc close assistant · ctrl+c quit"
	default:
		help = "j/k star · enter open · ←/→ constellation · a ask · g guestbook · z sign · q quit"
	}
	return "  " + status + "\n" + dimStyle.Render("  "+help)
}

// Frames returns how many starfield frames have been drawn.
func (m Model) Frames() int { return m.frames }

// Snapshot returns the state the view last applied.
func (m Model) Snapshot() state.Snapshot { return m.snap }
