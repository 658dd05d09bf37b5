package portfolio

import (
	"fmt"
	"strings"
)

// Context renders the content as a markdown brief for the assistant's prompt.
func (c *Content) Context() string {
	var b strings.Builder
	o := c.Owner

	fmt.Fprintf(&b, "# %s - %s\n\n", o.Name, o.Title)
	fmt.Fprintf(&b, "## About %s\n%s\n\n", o.FirstName(), strings.TrimSpace(o.Summary))

	b.WriteString("## Current Status\n")
	fmt.Fprintf(&b, "- %s\n", o.Title)
	if o.Location != "" {
		fmt.Fprintf(&b, "- Based in %s\n", o.Location)
	}
	if o.Years > 0 {
		fmt.Fprintf(&b, "- %d+ years of professional experience\n", o.Years)
	}
	fmt.Fprintf(&b, "- %d+ technologies in tech stack\n", c.TechCount())
	fmt.Fprintf(&b, "- %d projects\n\n", len(c.Projects))

	if len(o.Education) > 0 || len(o.Affiliations) > 0 {
		b.WriteString("## Education & Background\n")
		writeList(&b, o.Education)
		if len(o.Affiliations) > 0 {
			fmt.Fprintf(&b, "- Member of: %s\n", strings.Join(o.Affiliations, ", "))
		}
		b.WriteString("\n")
	}

	if len(c.Skills) > 0 {
		b.WriteString("## Technical Skills\n")
		for _, g := range c.Skills {
			fmt.Fprintf(&b, "- %s: %s\n", g.Category, strings.Join(g.Items, ", "))
		}
		b.WriteString("\n")
	}

	if len(c.Projects) > 0 {
		b.WriteString("## Featured Projects\n")
		for i, p := range c.Projects {
			fmt.Fprintf(&b, "%d. %s: %s", i+1, p.Name, p.Description)
			if len(p.Tech) > 0 {
				fmt.Fprintf(&b, " Built with %s.", strings.Join(p.Tech, ", "))
			}
			if p.URL != "" {
				fmt.Fprintf(&b, " %s", p.URL)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(c.Experience) > 0 {
		b.WriteString("## Experience\n")
		for _, r := range c.Experience {
			fmt.Fprintf(&b, "- %s", r.Role)
			if r.Organization != "" {
				fmt.Fprintf(&b, ", %s", r.Organization)
			}
			if r.Period != "" {
				fmt.Fprintf(&b, " (%s)", r.Period)
			}
			if r.Summary != "" {
				fmt.Fprintf(&b, ": %s", r.Summary)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("## Contact\n")
	writeKV(&b, "Email", c.Contact.Email)
	writeKV(&b, "GitHub", c.Contact.GitHub)
	writeKV(&b, "LinkedIn", c.Contact.LinkedIn)

	if c.Site != "" {
		fmt.Fprintf(&b, "\n## This Portfolio\n%s\n", strings.TrimSpace(c.Site))
	}
	return b.String()
}

// SystemPrompt returns the assistant persona instructions.
func (c *Content) SystemPrompt() string {
	name := c.Owner.FirstName()
	return fmt.Sprintf(`You are %s, %s's digital assistant.
You act as %s's representative and communicate in a professional, clear, and approachable manner.

LANGUAGE
- Reply in the language of the user's latest message.
- If you cannot answer well in that language, reply in clear English and say so briefly.
- Keep technical names (frameworks, APIs, libraries) in English.

TONE AND STYLE
- Professional yet approachable.
- Clear and concise, 2-4 sentences when possible.
- No emojis and no hype.

SCOPE
- Answer questions about %s's background, skills, experience, projects and how to get in touch.
- Use only the portfolio information provided. If something is not covered, say you do not know.
- For unrelated questions, steer the conversation back to the portfolio.`,
		c.Assistant.Name, name, name, name)
}

func writeList(b *strings.Builder, items []string) {
	for _, it := range items {
		fmt.Fprintf(b, "- %s\n", it)
	}
}

func writeKV(b *strings.Builder, k, v string) {
	if v != "" {
		fmt.Fprintf(b, "- %s: %s\n", k, v)
	}
}
