package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Project is one card in the projects section.
type Project struct {
	Title   string `yaml:"title"`
	Summary string `yaml:"summary"`
	Link    string `yaml:"link,omitempty"`
}

// Content is the site copy rendered into the templates.
type Content struct {
	Phrases  []string  `yaml:"phrases"`
	AboutMe  string    `yaml:"about_me"`
	Projects []Project `yaml:"projects"`
}

// DefaultContent is used when no content file is configured.
func DefaultContent() Content {
	return Content{
		Phrases: []string{"Frontend Developer", "UI/UX Designer"},
		AboutMe: `I design and build interfaces that feel quick and stay out of the way.
Most of my work starts with a rough sketch and ends as a small, well-tested component
that the rest of a product can lean on.`,
		Projects: []Project{
			{
				Title:   "Portfolio",
				Summary: "This site: a Go and Gin server that streams the hero animation and remembers your theme.",
			},
			{
				Title:   "Design System",
				Summary: "A component library with light and dark palettes, built for accessible contrast from the start.",
			},
		},
	}
}

// LoadContent reads a YAML content file. Missing fields keep their defaults.
func LoadContent(path string) (Content, error) {
	content := DefaultContent()
	if path == "" {
		return content, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Content{}, fmt.Errorf("read content %s: %w", path, err)
	}

	var file Content
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Content{}, fmt.Errorf("parse content %s: %w", path, err)
	}
	if file.Phrases != nil {
		content.Phrases = file.Phrases
	}
	if file.AboutMe != "" {
		content.AboutMe = file.AboutMe
	}
	if file.Projects != nil {
		content.Projects = file.Projects
	}
	return content, nil
}
