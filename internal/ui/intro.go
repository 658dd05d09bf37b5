package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-constellation/internal/zodiac"
)

// IntroDoneMsg is emitted when the visitor confirms a sign.
type IntroDoneMsg struct {
	Sign zodiac.Sign
	// Input is the birthdate typed, if any.
	Input string
	// FellBack is set when Input could not be parsed and Sign is the
	// default.
	FellBack bool
}

// IntroModel lets the visitor pick a sign directly or derive it from a
// birthdate.
type IntroModel struct {
	sign  zodiac.Sign
	input textinput.Model
	width int
}

// NewIntroModel starts the picker on sign.
func NewIntroModel(sign zodiac.Sign) IntroModel {
	ti := textinput.New()
	ti.Placeholder = "YYYY-MM-DD"
	ti.Prompt = "Birthdate: "
	ti.CharLimit = 25
	ti.Width = 14
	ti.Focus()
	return IntroModel{sign: sign, input: ti}
}

// SetSize updates the width used to centre the picker.
func (m IntroModel) SetSize(width int) IntroModel {
	m.width = width
	return m
}

// Sign returns the sign currently highlighted.
func (m IntroModel) Sign() zodiac.Sign {
	return m.sign
}

// Update handles keys. Left and right cycle signs while the birthdate field
// is empty; typing a valid date previews its sign.
func (m IntroModel) Update(msg tea.Msg) (IntroModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	empty := strings.TrimSpace(m.input.Value()) == ""
	switch key.String() {
	case "left":
		if empty {
			m.sign = m.sign.Prev()
			return m, nil
		}
	case "right":
		if empty {
			m.sign = m.sign.Next()
			return m, nil
		}
	case "enter":
		return m, m.confirm()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if s, err := zodiac.FromBirthdate(m.input.Value()); err == nil {
		m.sign = s
	}
	return m, cmd
}

func (m IntroModel) confirm() tea.Cmd {
	done := IntroDoneMsg{Sign: m.sign, Input: strings.TrimSpace(m.input.Value())}
	if done.Input != "" {
		done.Sign, done.FellBack = zodiac.SignOrDefault(done.Input)
	}
	return func() tea.Msg { return done }
}

// View renders the picker.
func (m IntroModel) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#9D4EDD"))
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colorFocused)).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	var b strings.Builder
	b.WriteString(titleStyle.Render("Choose your sign"))
	b.WriteString("\n\n")

	symbols := make([]string, 0, zodiac.NumSigns)
	for _, s := range zodiac.All() {
		if s == m.sign {
			symbols = append(symbols, activeStyle.Render("["+s.Symbol()+"]"))
		} else {
			symbols = append(symbols, dimStyle.Render(" "+s.Symbol()+" "))
		}
	}
	b.WriteString(strings.Join(symbols, ""))
	b.WriteString("\n\n")

	b.WriteString(activeStyle.Render(m.sign.String()))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render(m.sign.DateRange()))
	b.WriteString("\n\n")

	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("←/→ choose · type a birthdate · enter to begin"))

	return lipgloss.NewStyle().Width(m.width).Align(lipgloss.Center).Render(b.String())
}
