package section

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/google/go-cmp/cmp"

	"github.com/litescript/ls-constellation/internal/astro"
	"github.com/litescript/ls-constellation/internal/guestbook"
	"github.com/litescript/ls-constellation/internal/portfolio"
)

func TestIDsMatchCatalogSections(t *testing.T) {
	if diff := cmp.Diff(astro.PortfolioSections, IDs()); diff != "" {
		t.Errorf("section order differs from catalog (-catalog +section):\n%s", diff)
	}
}

func TestParse(t *testing.T) {
	for _, k := range All() {
		got, ok := Parse(k.ID())
		if !ok || got != k {
			t.Errorf("Parse(%q) = %v, %v, want %v", k.ID(), got, ok, k)
		}
	}
	if _, ok := Parse("contact"); ok {
		t.Error("Parse(contact) succeeded, want failure")
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		k    Kind
		want string
	}{
		{About, "About"},
		{Guestbook, "Guestbook"},
		{Kind(-1), "Kind(-1)"},
		{numKinds, "Kind(6)"},
	}
	for _, tt := range tests {
		if got := tt.k.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(tt.k), got, tt.want)
		}
	}
	if Kind(42).ID() != "" {
		t.Error("invalid kind has an id")
	}
}

func TestEveryKindHasRenderer(t *testing.T) {
	for _, k := range All() {
		if renderers[k] == nil {
			t.Errorf("%v has no renderer", k)
		}
	}
}

func TestMarkdown(t *testing.T) {
	ctx := Context{
		Content: portfolio.Default(),
		Comments: []guestbook.Comment{
			{Name: "Grace", Message: "Lovely sky\nwell done", CreatedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
		},
	}

	tests := []struct {
		kind Kind
		want []string
	}{
		{About, []string{"# Ada Lindqvist", "**Full Stack Developer**", "- Email: ada@example.com"}},
		{Skills, []string{"## Backend", "- PostgreSQL"}},
		{Experience, []string{"## Senior Developer · Northwind Labs", "*2023 - Present*", "- Cut p99"}},
		{Projects, []string{"## Tidewatch", "`Go` `Bubble Tea` `SQLite`"}},
		{Gallery, []string{"## GopherCon talk"}},
		{Guestbook, []string{"**Grace** · May 1, 2024", "> Lovely sky\n> well done"}},
	}
	for _, tt := range tests {
		md, err := Markdown(tt.kind, ctx)
		if err != nil {
			t.Fatalf("Markdown(%v) error: %v", tt.kind, err)
		}
		for _, w := range tt.want {
			if !strings.Contains(md, w) {
				t.Errorf("Markdown(%v) missing %q:\n%s", tt.kind, w, md)
			}
		}
	}
}

func TestMarkdownEmptyGuestbook(t *testing.T) {
	md, err := Markdown(Guestbook, Context{Content: portfolio.Default()})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(md, "No comments yet") {
		t.Errorf("empty guestbook = %q", md)
	}
}

func TestMarkdownErrors(t *testing.T) {
	if _, err := Markdown(numKinds, Context{Content: portfolio.Default()}); err == nil {
		t.Error("Markdown(invalid kind) succeeded")
	}
	if _, err := Markdown(About, Context{}); err == nil {
		t.Error("Markdown without content succeeded")
	}
}

func TestRender(t *testing.T) {
	out, err := Render(Projects, Context{Content: portfolio.Default()}, 60)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	plain := ansi.Strip(out)
	if !strings.Contains(plain, "Tidewatch") {
		t.Errorf("Render() output missing project name:\n%s", plain)
	}
	if strings.HasSuffix(out, "\n") {
		t.Error("Render() output has trailing newline")
	}
}
