// Package portfolio loads the content shown in the portfolio sections and
// fed to the assistant.
package portfolio

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrInvalidContent is returned when content fails validation.
var ErrInvalidContent = errors.New("invalid portfolio content")

//go:embed default.yaml
var defaultYAML []byte

// Owner describes the person the portfolio is about.
type Owner struct {
	Name         string   `yaml:"name" validate:"required"`
	Title        string   `yaml:"title" validate:"required"`
	Location     string   `yaml:"location"`
	Summary      string   `yaml:"summary" validate:"required"`
	Years        int      `yaml:"years" validate:"gte=0"`
	Education    []string `yaml:"education"`
	Affiliations []string `yaml:"affiliations"`
}

// FirstName returns the first word of the owner's name.
func (o Owner) FirstName() string {
	if f := strings.Fields(o.Name); len(f) > 0 {
		return f[0]
	}
	return o.Name
}

// Assistant names the chat persona.
type Assistant struct {
	Name        string `yaml:"name" validate:"required"`
	Description string `yaml:"description"`
}

// Contact lists ways to reach the owner.
type Contact struct {
	Email    string `yaml:"email" validate:"omitempty,email"`
	GitHub   string `yaml:"github"`
	LinkedIn string `yaml:"linkedin"`
}

// SkillGroup is a category of skills.
type SkillGroup struct {
	Category string   `yaml:"category" validate:"required"`
	Items    []string `yaml:"items" validate:"min=1"`
}

// Role is one entry of the experience timeline.
type Role struct {
	Role         string   `yaml:"role" validate:"required"`
	Organization string   `yaml:"organization"`
	Period       string   `yaml:"period"`
	Summary      string   `yaml:"summary"`
	Highlights   []string `yaml:"highlights"`
}

// Project is a showcased project. Keywords let the assistant match
// questions about it.
type Project struct {
	Name        string   `yaml:"name" validate:"required"`
	Description string   `yaml:"description" validate:"required"`
	Tech        []string `yaml:"tech"`
	URL         string   `yaml:"url" validate:"omitempty,url"`
	Keywords    []string `yaml:"keywords"`
}

// GalleryItem is a captioned highlight.
type GalleryItem struct {
	Title   string `yaml:"title" validate:"required"`
	Caption string `yaml:"caption"`
}

// Content is everything the portfolio displays.
type Content struct {
	Owner      Owner         `yaml:"owner"`
	Assistant  Assistant     `yaml:"assistant"`
	Contact    Contact       `yaml:"contact"`
	Skills     []SkillGroup  `yaml:"skills" validate:"dive"`
	Experience []Role        `yaml:"experience" validate:"dive"`
	Projects   []Project     `yaml:"projects" validate:"dive"`
	Gallery    []GalleryItem `yaml:"gallery" validate:"dive"`
	Site       string        `yaml:"site"`
}

var validate = validator.New()

// Parse decodes and validates YAML content.
func Parse(data []byte) (*Content, error) {
	var c Content
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse portfolio: %w", err)
	}
	if err := validate.Struct(&c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidContent, err)
	}
	return &c, nil
}

// Load reads content from a YAML file.
func Load(path string) (*Content, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read portfolio: %w", err)
	}
	return Parse(data)
}

// Default returns the built-in sample content.
func Default() *Content {
	c, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("portfolio: embedded default is invalid: %v", err))
	}
	return c
}

// TechCount returns the number of distinct skills across all groups.
func (c *Content) TechCount() int {
	seen := make(map[string]struct{})
	for _, g := range c.Skills {
		for _, item := range g.Items {
			seen[strings.ToLower(item)] = struct{}{}
		}
	}
	return len(seen)
}

// Project looks up a project by case-insensitive name.
func (c *Content) Project(name string) (Project, bool) {
	for _, p := range c.Projects {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Project{}, false
}
