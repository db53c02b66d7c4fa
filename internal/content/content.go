// Package content holds the portfolio's static display data: hero, about,
// timeline, gallery, skills, call-to-action, contact copy and footer.
package content

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"
)

//go:embed content.yaml
var defaultContent []byte

// Site is everything displayed on the page, top to bottom.
type Site struct {
	Name     string   `yaml:"name"`
	Hero     Hero     `yaml:"hero"`
	About    About    `yaml:"about"`
	Timeline Timeline `yaml:"timeline"`
	Projects Gallery  `yaml:"projects"`
	Skills   Skills   `yaml:"skills"`
	CTA      CTA      `yaml:"cta"`
	Contact  Contact  `yaml:"contact"`
	Footer   Footer   `yaml:"footer"`
}

// Hero is the full-height opening section.
type Hero struct {
	Title           string `yaml:"title"`
	Tagline         string `yaml:"tagline"`
	Strapline       string `yaml:"strapline"`
	BackgroundEmbed string `yaml:"background_embed"`
	Video           string `yaml:"video"`
	ResumeURL       string `yaml:"resume_url"`
}

// Image is a picture with its alt text.
type Image struct {
	URL string `yaml:"url"`
	Alt string `yaml:"alt"`
}

// Stat is one card in the about section.
type Stat struct {
	Icon  string `yaml:"icon"`
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}

// About holds the bio, rendered from Markdown into BioHTML on load.
type About struct {
	Eyebrow  string `yaml:"eyebrow"`
	Heading  string `yaml:"heading"`
	Stats    []Stat `yaml:"stats"`
	Portrait Image  `yaml:"portrait"`
	// Bio is Markdown; BioHTML is filled in on load.
	Bio     string        `yaml:"bio"`
	BioHTML template.HTML `yaml:"-"`
}

// Milestone is one timeline entry.
type Milestone struct {
	Year        string `yaml:"year"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// Timeline is the dated journey under the about section.
type Timeline struct {
	Eyebrow string      `yaml:"eyebrow"`
	Heading string      `yaml:"heading"`
	Entries []Milestone `yaml:"entries"`
}

// Project is a gallery card linking out to the work.
type Project struct {
	Title    string `yaml:"title"`
	Category string `yaml:"category"`
	Image    string `yaml:"image"`
	Link     string `yaml:"link"`
}

// Gallery is the projects section.
type Gallery struct {
	Eyebrow string    `yaml:"eyebrow"`
	Heading string    `yaml:"heading"`
	Intro   string    `yaml:"intro"`
	Items   []Project `yaml:"items"`
}

// SkillGroup is a titled list of skills.
type SkillGroup struct {
	Title string   `yaml:"title"`
	Items []string `yaml:"items"`
}

// Skills is the skills section with its side images.
type Skills struct {
	Eyebrow string       `yaml:"eyebrow"`
	Heading string       `yaml:"heading"`
	Images  []Image      `yaml:"images"`
	Groups  []SkillGroup `yaml:"groups"`
}

// CTA is the call-to-action block between skills and contact.
type CTA struct {
	Heading string `yaml:"heading"`
	Body    string `yaml:"body"`
	Button  string `yaml:"button"`
}

// Contact is the copy around the contact form.
type Contact struct {
	Eyebrow string `yaml:"eyebrow"`
	Heading string `yaml:"heading"`
	Body    string `yaml:"body"`
}

// Social is a footer link. A URL of "#" is a placeholder.
type Social struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// External reports whether the link leaves the page and should open in a new
// browsing context.
func (s Social) External() bool {
	return s.URL != "#" && s.URL != ""
}

// Footer holds the copyright line and social links.
type Footer struct {
	Copyright string   `yaml:"copyright"`
	Socials   []Social `yaml:"socials"`
}

// Default returns the embedded site content.
func Default() (*Site, error) {
	return Parse(bytes.NewReader(defaultContent))
}

// Load reads content from path, or the embedded default when path is empty.
func Load(path string) (*Site, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open content: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes and validates a YAML content document.
func Parse(r io.Reader) (*Site, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var site Site
	if err := dec.Decode(&site); err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}
	if err := site.Validate(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(site.About.Bio), &buf); err != nil {
		return nil, fmt.Errorf("render bio: %w", err)
	}
	site.About.BioHTML = template.HTML(buf.String())
	return &site, nil
}

// Validate checks required fields and that every outbound link is absolute.
func (s *Site) Validate() error {
	var errs []error
	require := func(field, v string) {
		if strings.TrimSpace(v) == "" {
			errs = append(errs, fmt.Errorf("%s is required", field))
		}
	}
	absolute := func(field, v string) {
		u, err := url.Parse(v)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("%s must be an absolute URL, got %q", field, v))
		}
	}

	require("name", s.Name)
	require("hero.title", s.Hero.Title)
	if s.Hero.ResumeURL != "" {
		absolute("hero.resume_url", s.Hero.ResumeURL)
	}
	for i, p := range s.Projects.Items {
		require(fmt.Sprintf("projects.items[%d].title", i), p.Title)
		absolute(fmt.Sprintf("projects.items[%d].link", i), p.Link)
	}
	for i, m := range s.Timeline.Entries {
		require(fmt.Sprintf("timeline.entries[%d].title", i), m.Title)
	}
	for i, g := range s.Skills.Groups {
		require(fmt.Sprintf("skills.groups[%d].title", i), g.Title)
	}
	for i, so := range s.Footer.Socials {
		require(fmt.Sprintf("footer.socials[%d].name", i), so.Name)
		if so.External() {
			absolute(fmt.Sprintf("footer.socials[%d].url", i), so.URL)
		}
	}
	return errors.Join(errs...)
}
