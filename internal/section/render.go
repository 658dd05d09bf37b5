package section

import (
	"fmt"
	"strings"
)

func renderAbout(ctx Context) string {
	c := ctx.Content
	o := c.Owner

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n**%s**", o.Name, o.Title)
	if o.Location != "" {
		fmt.Fprintf(&b, " · %s", o.Location)
	}
	fmt.Fprintf(&b, "\n\n%s\n", strings.TrimSpace(o.Summary))

	if len(o.Education) > 0 {
		b.WriteString("\n## Education\n\n")
		for _, e := range o.Education {
			fmt.Fprintf(&b, "- %s\n", e)
		}
	}
	if len(o.Affiliations) > 0 {
		b.WriteString("\n## Communities\n\n")
		for _, a := range o.Affiliations {
			fmt.Fprintf(&b, "- %s\n", a)
		}
	}

	ct := c.Contact
	if ct.Email != "" || ct.GitHub != "" || ct.LinkedIn != "" {
		b.WriteString("\n## Contact\n\n")
		if ct.Email != "" {
			fmt.Fprintf(&b, "- Email: %s\n", ct.Email)
		}
		if ct.GitHub != "" {
			fmt.Fprintf(&b, "- GitHub: %s\n", ct.GitHub)
		}
		if ct.LinkedIn != "" {
			fmt.Fprintf(&b, "- LinkedIn: %s\n", ct.LinkedIn)
		}
	}
	return b.String()
}

func renderSkills(ctx Context) string {
	var b strings.Builder
	b.WriteString("# Skills\n")
	for _, g := range ctx.Content.Skills {
		fmt.Fprintf(&b, "\n## %s\n\n", g.Category)
		for _, it := range g.Items {
			fmt.Fprintf(&b, "- %s\n", it)
		}
	}
	return b.String()
}

func renderExperience(ctx Context) string {
	var b strings.Builder
	b.WriteString("# Experience\n")
	for _, r := range ctx.Content.Experience {
		fmt.Fprintf(&b, "\n## %s", r.Role)
		if r.Organization != "" {
			fmt.Fprintf(&b, " · %s", r.Organization)
		}
		b.WriteString("\n\n")
		if r.Period != "" {
			fmt.Fprintf(&b, "*%s*\n\n", r.Period)
		}
		if r.Summary != "" {
			fmt.Fprintf(&b, "%s\n\n", r.Summary)
		}
		for _, h := range r.Highlights {
			fmt.Fprintf(&b, "- %s\n", h)
		}
	}
	return b.String()
}

func renderProjects(ctx Context) string {
	var b strings.Builder
	b.WriteString("# Projects\n")
	for _, p := range ctx.Content.Projects {
		fmt.Fprintf(&b, "\n## %s\n\n%s\n", p.Name, p.Description)
		if len(p.Tech) > 0 {
			fmt.Fprintf(&b, "\n`%s`\n", strings.Join(p.Tech, "` `"))
		}
		if p.URL != "" {
			fmt.Fprintf(&b, "\n%s\n", p.URL)
		}
	}
	return b.String()
}

func renderGallery(ctx Context) string {
	var b strings.Builder
	b.WriteString("# Gallery\n")
	if len(ctx.Content.Gallery) == 0 {
		b.WriteString("\nNothing here yet.\n")
	}
	for _, g := range ctx.Content.Gallery {
		fmt.Fprintf(&b, "\n## %s\n", g.Title)
		if g.Caption != "" {
			fmt.Fprintf(&b, "\n%s\n", g.Caption)
		}
	}
	return b.String()
}

func renderGuestbook(ctx Context) string {
	var b strings.Builder
	b.WriteString("# Guestbook\n\n")
	if len(ctx.Comments) == 0 {
		b.WriteString("No comments yet. Be the first to sign!\n")
		return b.String()
	}
	for _, c := range ctx.Comments {
		fmt.Fprintf(&b, "**%s** · %s\n\n> %s\n\n",
			c.Name, c.CreatedAt.Format("Jan 2, 2006"), strings.ReplaceAll(c.Message, "\n", "\n> "))
	}
	return b.String()
}
