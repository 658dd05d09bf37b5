// Package section renders the portfolio sections opened from clickable stars.
//
// Sections are a closed set. Each Kind maps to one entry of a fixed render
// table; there is no string-keyed registry.
package section

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/litescript/ls-constellation/internal/guestbook"
	"github.com/litescript/ls-constellation/internal/portfolio"
)

// Kind is a portfolio section.
type Kind int

const (
	About Kind = iota
	Skills
	Experience
	Projects
	Gallery
	Guestbook

	numKinds
)

var ids = [numKinds]string{
	About:      "about",
	Skills:     "skills",
	Experience: "experience",
	Projects:   "projects",
	Gallery:    "gallery",
	Guestbook:  "guestbook",
}

var titles = [numKinds]string{
	About:      "About",
	Skills:     "Skills",
	Experience: "Experience",
	Projects:   "Projects",
	Gallery:    "Gallery",
	Guestbook:  "Guestbook",
}

// All returns every kind in brightness-rank order.
func All() []Kind {
	out := make([]Kind, numKinds)
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

// IDs returns the section ids in brightness-rank order.
func IDs() []string {
	return append([]string(nil), ids[:]...)
}

// Parse maps a section id to its Kind.
func Parse(id string) (Kind, bool) {
	for k, s := range ids {
		if s == id {
			return Kind(k), true
		}
	}
	return 0, false
}

func (k Kind) valid() bool { return k >= 0 && k < numKinds }

// ID returns the section id bound to clickable stars.
func (k Kind) ID() string {
	if !k.valid() {
		return ""
	}
	return ids[k]
}

func (k Kind) String() string {
	if !k.valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return titles[k]
}

// Context is the data a section may draw from.
type Context struct {
	Content  *portfolio.Content
	Comments []guestbook.Comment
}

// Renderer produces a section body as markdown.
type Renderer func(ctx Context) string

var renderers = [numKinds]Renderer{
	About:      renderAbout,
	Skills:     renderSkills,
	Experience: renderExperience,
	Projects:   renderProjects,
	Gallery:    renderGallery,
	Guestbook:  renderGuestbook,
}

// Markdown returns the section body as markdown.
func Markdown(k Kind, ctx Context) (string, error) {
	if !k.valid() {
		return "", fmt.Errorf("unknown section %d", int(k))
	}
	if ctx.Content == nil {
		return "", fmt.Errorf("render %s: no portfolio content", k.ID())
	}
	return renderers[k](ctx), nil
}

// Render returns the section styled for a terminal of the given width.
func Render(k Kind, ctx Context, width int) (string, error) {
	md, err := Markdown(k, ctx)
	if err != nil {
		return "", err
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(max(width, 20)),
	)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", k.ID(), err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", k.ID(), err)
	}
	return strings.TrimRight(out, "\n"), nil
}
