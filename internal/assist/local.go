package assist

import (
	"context"
	"fmt"
	"strings"

	"github.com/litescript/ls-constellation/internal/portfolio"
)

// Local answers by keyword matching against the portfolio content. It works
// offline and never fails.
type Local struct {
	content *portfolio.Content
}

// NewLocal creates a keyword responder over content.
func NewLocal(content *portfolio.Content) *Local {
	return &Local{content: content}
}

// Respond implements Responder. History is ignored.
func (l *Local) Respond(_ context.Context, _ []Message, question string) (string, error) {
	return l.Answer(question), nil
}

type rule struct {
	match  func(q string) bool
	answer func(l *Local, q string) string
}

// Rules are tried in order; the first match answers.
var rules = []rule{
	{prefix("hi", "hello", "hey", "greetings"), (*Local).greeting},
	{anyOf("about", "who", "background"), (*Local).about},
	{anyOf("skill", "technolog", "stack", "tools"), (*Local).skills},
	{anyOf("project", "work", "built", "made"), (*Local).projects},
	{nil, (*Local).project}, // matched against project names and keywords
	{anyOf("experience", "timeline", "career", "year"), (*Local).experience},
	{anyOf("contact", "reach", "email", "hire", "linkedin", "github"), (*Local).contact},
	{anyOf("gallery", "photo", "image"), (*Local).gallery},
	{anyOf("this site", "this website", "this portfolio"), (*Local).site},
	{nil, (*Local).skill}, // matched against individual skills
	{nil, (*Local).self},
}

// Answer returns the keyword response for question.
func (l *Local) Answer(question string) string {
	q := strings.ToLower(strings.TrimSpace(question))
	for _, r := range rules {
		if r.match != nil && !r.match(q) {
			continue
		}
		if a := r.answer(l, q); a != "" {
			return a
		}
	}
	return l.suggest()
}

// Suggestions returns starter questions.
func (l *Local) Suggestions() []string {
	n := l.content.Owner.FirstName()
	return []string{
		fmt.Sprintf("What projects has %s built?", n),
		fmt.Sprintf("What are %s's technical skills?", n),
		fmt.Sprintf("Tell me about %s's experience", n),
		fmt.Sprintf("How can I contact %s?", n),
	}
}

func prefix(words ...string) func(string) bool {
	return func(q string) bool {
		for _, w := range words {
			if strings.HasPrefix(q, w) {
				return true
			}
		}
		return false
	}
}

func anyOf(words ...string) func(string) bool {
	return func(q string) bool {
		for _, w := range words {
			if strings.Contains(q, w) {
				return true
			}
		}
		return false
	}
}

func hasWord(q, word string) bool {
	for _, f := range strings.FieldsFunc(q, func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	}) {
		if f == word {
			return true
		}
	}
	return false
}

func (l *Local) greeting(string) string {
	c := l.content
	return fmt.Sprintf("Hello! I'm %s, %s's digital assistant. I can tell you about %s's %d+ years of experience, %d projects, a tech stack of %d+ technologies, and more. What would you like to know?",
		c.Assistant.Name, c.Owner.FirstName(), c.Owner.FirstName(), c.Owner.Years, len(c.Projects), c.TechCount())
}

func (l *Local) about(string) string {
	o := l.content.Owner
	a := fmt.Sprintf("%s is a %s", o.Name, o.Title)
	if o.Years > 0 {
		a += fmt.Sprintf(" with %d+ years of experience", o.Years)
	}
	a += ". " + strings.TrimSpace(o.Summary)
	if len(o.Affiliations) > 0 {
		a += fmt.Sprintf(" %s is an active member of %s.", o.FirstName(), strings.Join(o.Affiliations, ", "))
	}
	return a
}

func (l *Local) skills(string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s's tech stack includes:\n", l.content.Owner.FirstName())
	for _, g := range l.content.Skills {
		fmt.Fprintf(&b, "\n%s: %s\n", g.Category, strings.Join(g.Items, ", "))
	}
	b.WriteString("\nOpen the Skills star to see everything!")
	return b.String()
}

func (l *Local) projects(string) string {
	c := l.content
	if len(c.Projects) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s has built %d projects:\n\n", c.Owner.FirstName(), len(c.Projects))
	for i, p := range c.Projects {
		fmt.Fprintf(&b, "%d. %s - %s\n", i+1, p.Name, p.Description)
	}
	b.WriteString("\nOpen the Projects star for details!")
	return b.String()
}

func (l *Local) project(q string) string {
	for _, p := range l.content.Projects {
		hit := strings.Contains(q, strings.ToLower(p.Name))
		for _, k := range p.Keywords {
			hit = hit || strings.Contains(q, strings.ToLower(k))
		}
		if !hit {
			continue
		}
		a := fmt.Sprintf("%s: %s", p.Name, p.Description)
		if len(p.Tech) > 0 {
			a += fmt.Sprintf(" Built with %s.", strings.Join(p.Tech, ", "))
		}
		if p.URL != "" {
			a += " " + p.URL
		}
		return a
	}
	return ""
}

func (l *Local) experience(string) string {
	c := l.content
	a := fmt.Sprintf("%s has %d+ years of development experience.", c.Owner.FirstName(), c.Owner.Years)
	if len(c.Experience) > 0 {
		r := c.Experience[0]
		a += fmt.Sprintf(" Most recently: %s", r.Role)
		if r.Organization != "" {
			a += " at " + r.Organization
		}
		if r.Period != "" {
			a += fmt.Sprintf(" (%s)", r.Period)
		}
		a += "."
	}
	return a + " Open the Experience star to see the full timeline!"
}

func (l *Local) contact(string) string {
	ct := l.content.Contact
	var b strings.Builder
	fmt.Fprintf(&b, "You can reach %s at:\n", l.content.Owner.FirstName())
	if ct.Email != "" {
		fmt.Fprintf(&b, "\nEmail: %s", ct.Email)
	}
	if ct.LinkedIn != "" {
		fmt.Fprintf(&b, "\nLinkedIn: %s", ct.LinkedIn)
	}
	if ct.GitHub != "" {
		fmt.Fprintf(&b, "\nGitHub: %s", ct.GitHub)
	}
	b.WriteString("\n\nOr leave a note in the Guestbook!")
	return b.String()
}

func (l *Local) gallery(string) string {
	return fmt.Sprintf("The Gallery showcases visual highlights from %s's work and experiences. Open the Gallery star to check it out!",
		l.content.Owner.FirstName())
}

func (l *Local) site(string) string {
	if l.content.Site == "" {
		return ""
	}
	return strings.TrimSpace(l.content.Site)
}

func (l *Local) skill(q string) string {
	for _, g := range l.content.Skills {
		for _, item := range g.Items {
			if hasWord(q, strings.ToLower(item)) {
				return fmt.Sprintf("%s is part of %s's %s toolkit, alongside %s.",
					item, l.content.Owner.FirstName(), strings.ToLower(g.Category), strings.Join(others(g.Items, item), ", "))
			}
		}
	}
	return ""
}

func (l *Local) self(q string) string {
	name := strings.ToLower(l.content.Assistant.Name)
	if !hasWord(q, "you") && !hasWord(q, "ai") && !hasWord(q, name) && !strings.Contains(q, "chatbot") {
		return ""
	}
	return fmt.Sprintf("I'm %s, %s's digital assistant. I run on Google's Gemini with a local fallback, and I'm here to answer questions about %s's portfolio, experience, skills, and projects.",
		l.content.Assistant.Name, l.content.Owner.FirstName(), l.content.Owner.FirstName())
}

func (l *Local) suggest() string {
	var b strings.Builder
	fmt.Fprintf(&b, "I can help you learn about %s's portfolio! Try asking:\n\n", l.content.Owner.FirstName())
	for _, s := range l.Suggestions() {
		fmt.Fprintf(&b, "• %s\n", s)
	}
	b.WriteString("\nWhat would you like to know?")
	return b.String()
}

func others(items []string, skip string) []string {
	var out []string
	for _, it := range items {
		if it != skip {
			out = append(out, it)
		}
	}
	return out
}
