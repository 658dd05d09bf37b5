package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-constellation/internal/assist"
	"github.com/litescript/ls-constellation/internal/guestbook"
	"github.com/litescript/ls-constellation/internal/section"
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7B2CBF")).
			Padding(0, 1)
	panelTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#9D4EDD"))
	panelDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	panelErrStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))
)

// panelChrome is the border plus padding a panel adds around its body.
const panelChrome = 4

// SectionPanel shows one portfolio section in a scrollable viewport. For the
// guestbook section it also hosts the signing form.
type SectionPanel struct {
	kind    section.Kind
	open    bool
	vp      viewport.Model
	width   int
	height  int
	ctx     section.Context
	content string
	err     error

	signing bool
	form    guestForm
}

// NewSectionPanel returns a closed panel.
func NewSectionPanel() SectionPanel {
	return SectionPanel{vp: viewport.New(0, 0), form: newGuestForm()}
}

// Open shows kind, rendered from ctx.
func (p SectionPanel) Open(kind section.Kind, ctx section.Context) SectionPanel {
	p.kind = kind
	p.open = true
	p.signing = false
	p = p.Refresh(ctx)
	p.vp.GotoTop()
	return p
}

// Close hides the panel.
func (p SectionPanel) Close() SectionPanel {
	p.open = false
	p.signing = false
	p.form = p.form.reset()
	return p
}

func (p SectionPanel) IsOpen() bool { return p.open }

func (p SectionPanel) Kind() section.Kind { return p.kind }

// Signing reports whether the guestbook form has keyboard focus.
func (p SectionPanel) Signing() bool { return p.signing }

// Refresh re-renders the open section, keeping the scroll position.
func (p SectionPanel) Refresh(ctx section.Context) SectionPanel {
	p.ctx = ctx
	return p.render()
}

func (p SectionPanel) render() SectionPanel {
	if !p.open {
		return p
	}
	p.content, p.err = section.Render(p.kind, p.ctx, p.bodyWidth())
	if p.err != nil {
		p.vp.SetContent(panelErrStyle.Render(p.err.Error()))
	} else {
		p.vp.SetContent(p.content)
	}
	return p
}

// SetSize fits the panel, border included, into width x height.
func (p SectionPanel) SetSize(width, height int) SectionPanel {
	rewrap := width != p.width
	p.width, p.height = width, height
	p.vp.Width = p.bodyWidth()
	p.vp.Height = max(height-panelChrome-p.footerLines(), 1)
	p.form = p.form.setWidth(p.bodyWidth())
	if rewrap {
		p = p.render()
	}
	return p
}

func (p SectionPanel) bodyWidth() int {
	return max(p.width-panelChrome, 10)
}

func (p SectionPanel) footerLines() int {
	if p.kind == section.Guestbook {
		return 4
	}
	return 1
}

// StartSigning focuses the guestbook form.
func (p SectionPanel) StartSigning() (SectionPanel, tea.Cmd) {
	if !p.open || p.kind != section.Guestbook {
		return p, nil
	}
	p.signing = true
	var cmd tea.Cmd
	p.form, cmd = p.form.focus()
	return p, cmd
}

// StopSigning returns focus from the form to the panel.
func (p SectionPanel) StopSigning() SectionPanel {
	p.signing = false
	p.form = p.form.blur()
	return p
}

// SetFormError shows a submit failure under the form.
func (p SectionPanel) SetFormError(err error) SectionPanel {
	p.form.err = err
	return p
}

// Signed clears the form after a successful submit.
func (p SectionPanel) Signed() SectionPanel {
	p.form = p.form.reset()
	p.signing = false
	return p
}

// Update routes keys to the form while signing, otherwise to the viewport.
// A non-nil NewComment is returned when the form is submitted.
func (p SectionPanel) Update(msg tea.Msg) (SectionPanel, *guestbook.NewComment, tea.Cmd) {
	if p.signing {
		var submit *guestbook.NewComment
		var cmd tea.Cmd
		p.form, submit, cmd = p.form.update(msg)
		return p, submit, cmd
	}
	var cmd tea.Cmd
	p.vp, cmd = p.vp.Update(msg)
	return p, nil, cmd
}

// View renders the panel.
func (p SectionPanel) View() string {
	if !p.open {
		return ""
	}
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render(p.kind.String()))
	b.WriteString("\n")
	b.WriteString(p.vp.View())
	b.WriteString("\n")
	switch {
	case p.kind == section.Guestbook && p.signing:
		b.WriteString(p.form.view())
	case p.kind == section.Guestbook:
		b.WriteString(panelDimStyle.Render("s sign · ↑/↓ scroll · esc close"))
		b.WriteString(strings.Repeat("\n", 3))
	default:
		b.WriteString(panelDimStyle.Render(fmt.Sprintf("↑/↓ scroll · esc close · %3.0f%%", p.vp.ScrollPercent()*100)))
	}
	return panelStyle.Width(max(p.width-2, 0)).Render(b.String())
}

// guestForm collects a guestbook entry.
type guestForm struct {
	name    textinput.Model
	message textinput.Model
	err     error
}

func newGuestForm() guestForm {
	name := textinput.New()
	name.Prompt = "Name: "
	name.Placeholder = "your name"
	name.CharLimit = guestbook.MaxNameLen

	message := textinput.New()
	message.Prompt = "Message: "
	message.Placeholder = "say hello"
	message.CharLimit = guestbook.MaxMessageLen

	return guestForm{name: name, message: message}
}

func (f guestForm) setWidth(w int) guestForm {
	f.name.Width = max(w-len(f.name.Prompt)-1, 1)
	f.message.Width = max(w-len(f.message.Prompt)-1, 1)
	return f
}

func (f guestForm) focus() (guestForm, tea.Cmd) {
	f.message.Blur()
	return f, f.name.Focus()
}

func (f guestForm) blur() guestForm {
	f.name.Blur()
	f.message.Blur()
	return f
}

func (f guestForm) reset() guestForm {
	f.name.Reset()
	f.message.Reset()
	f.err = nil
	return f.blur()
}

func (f guestForm) update(msg tea.Msg) (guestForm, *guestbook.NewComment, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "shift+tab":
			if f.name.Focused() {
				f.name.Blur()
				return f, nil, f.message.Focus()
			}
			f.message.Blur()
			return f, nil, f.name.Focus()
		case "enter":
			if f.name.Focused() {
				f.name.Blur()
				return f, nil, f.message.Focus()
			}
			return f, &guestbook.NewComment{Name: f.name.Value(), Message: f.message.Value()}, nil
		}
	}

	var cmd tea.Cmd
	if f.name.Focused() {
		f.name, cmd = f.name.Update(msg)
	} else {
		f.message, cmd = f.message.Update(msg)
	}
	return f, nil, cmd
}

func (f guestForm) view() string {
	var b strings.Builder
	b.WriteString(f.name.View())
	b.WriteString("\n")
	b.WriteString(f.message.View())
	b.WriteString("\n")
	if f.err != nil {
		b.WriteString(panelErrStyle.Render(f.err.Error()))
	}
	b.WriteString("\n")
	b.WriteString(panelDimStyle.Render("tab switch · enter submit · esc cancel"))
	return b.String()
}

// AIPanel is the chat side panel.
type AIPanel struct {
	input       textinput.Model
	vp          viewport.Model
	name        string
	suggestions []string
	history     []assist.Message
	pending     bool
	err         error
	width       int
	height      int
}

// NewAIPanel creates a chat panel for an assistant called name.
func NewAIPanel(name string, suggestions []string) AIPanel {
	ti := textinput.New()
	ti.Prompt = "› "
	ti.Placeholder = "Ask me anything"
	ti.CharLimit = 500
	return AIPanel{input: ti, vp: viewport.New(0, 0), name: name, suggestions: suggestions}
}

// SetSize fits the panel, border included, into width x height.
func (p AIPanel) SetSize(width, height int) AIPanel {
	p.width, p.height = width, height
	p.input.Width = max(width-panelChrome-3, 1)
	p.vp.Width = max(width-panelChrome, 10)
	p.vp.Height = max(height-panelChrome-3, 1)
	p.vp.SetContent(p.transcript())
	return p
}

// Focus gives the input the cursor.
func (p AIPanel) Focus() (AIPanel, tea.Cmd) {
	return p, p.input.Focus()
}

func (p AIPanel) Blur() AIPanel {
	p.input.Blur()
	return p
}

// Pending reports whether an answer is outstanding.
func (p AIPanel) Pending() bool { return p.pending }

// Update handles input. A non-empty question is returned on enter.
func (p AIPanel) Update(msg tea.Msg) (AIPanel, string, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			q := strings.TrimSpace(p.input.Value())
			if q == "" || p.pending {
				return p, "", nil
			}
			p.input.Reset()
			p.pending = true
			p.err = nil
			p.history = append(p.history, assist.Message{Role: assist.RoleUser, Content: q})
			p.vp.SetContent(p.transcript())
			p.vp.GotoBottom()
			return p, q, nil
		case "pgup", "pgdown":
			var cmd tea.Cmd
			p.vp, cmd = p.vp.Update(msg)
			return p, "", cmd
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, "", cmd
}

// Answered records the outcome of the pending question. On success the
// transcript is replaced by the conversation's own history.
func (p AIPanel) Answered(history []assist.Message, err error) AIPanel {
	p.pending = false
	p.err = err
	if err == nil {
		p.history = history
	}
	p.vp.SetContent(p.transcript())
	p.vp.GotoBottom()
	return p
}

// Reset clears the transcript.
func (p AIPanel) Reset() AIPanel {
	p.history = nil
	p.err = nil
	p.pending = false
	p.vp.SetContent(p.transcript())
	return p
}

func (p AIPanel) transcript() string {
	userStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colorFocused)).Bold(true)
	botStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colorClickable)).Bold(true)
	wrap := lipgloss.NewStyle().Width(max(p.vp.Width, 10))

	if len(p.history) == 0 {
		var b strings.Builder
		b.WriteString(wrap.Render(fmt.Sprintf("Hi! I'm %s. Try asking:", p.name)))
		for _, s := range p.suggestions {
			b.WriteString("\n")
			b.WriteString(panelDimStyle.Render("  • " + s))
		}
		return b.String()
	}

	var parts []string
	for _, m := range p.history {
		who := botStyle.Render(p.name + ":")
		if m.Role == assist.RoleUser {
			who = userStyle.Render("You:")
		}
		parts = append(parts, wrap.Render(who+" "+m.Content))
	}
	if p.pending {
		parts = append(parts, panelDimStyle.Render(p.name+" is thinking…"))
	}
	if p.err != nil {
		parts = append(parts, panelErrStyle.Render("Sorry, something went wrong: "+p.err.Error()))
	}
	return strings.Join(parts, "\n\n")
}

// View renders the panel.
func (p AIPanel) View() string {
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render("Ask " + p.name))
	b.WriteString("\n")
	b.WriteString(p.vp.View())
	b.WriteString("\n")
	b.WriteString(p.input.View())
	b.WriteString("\n")
	b.WriteString(panelDimStyle.Render("enter send · pgup/pgdn scroll · esc close"))
	return panelStyle.Width(max(p.width-2, 0)).Render(b.String())
}
