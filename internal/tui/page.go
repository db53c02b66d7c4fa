package tui

import (
	"fmt"
	"html"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/microcosm-cc/bluemonday"

	"github.com/ajaym/portfolio/internal/content"
	"github.com/ajaym/portfolio/internal/shell"
)

// page is the site laid out as terminal lines, with the first line of each
// anchored section recorded.
type page struct {
	lines   []string
	anchors shell.Anchors
}

type pageBuilder struct {
	width   int
	lines   []string
	anchors shell.Anchors
}

func (b *pageBuilder) anchor(id string) {
	b.anchors[id] = len(b.lines)
}

func (b *pageBuilder) add(rendered string) {
	b.lines = append(b.lines, strings.Split(rendered, "\n")...)
}

func (b *pageBuilder) text(style lipgloss.Style, s string) {
	b.add(style.Width(b.width).Render(s))
}

func (b *pageBuilder) blank() {
	b.lines = append(b.lines, "")
}

func (b *pageBuilder) heading(eyebrow, title string) {
	if eyebrow != "" {
		b.text(eyebrowStyle, strings.ToUpper(eyebrow))
	}
	b.text(headingStyle, title)
	b.blank()
}

var plain = bluemonday.StrictPolicy()

func plainText(s string) string {
	return strings.TrimSpace(html.UnescapeString(plain.Sanitize(s)))
}

func renderPage(site *content.Site, width int) page {
	if width < 20 {
		width = 20
	}
	b := &pageBuilder{width: width, anchors: shell.Anchors{}}

	b.anchor("home")
	b.blank()
	b.text(heroStyle, site.Hero.Title)
	b.text(bodyStyle, site.Hero.Tagline)
	b.text(mutedStyle, strings.ToUpper(site.Hero.Strapline))
	b.blank()
	b.text(accentStyle, "[p] Projects   [c] Contact")
	if site.Hero.ResumeURL != "" {
		b.text(mutedStyle, "Resume: "+site.Hero.ResumeURL)
	}
	b.blank()

	b.anchor("about")
	b.heading(site.About.Eyebrow, site.About.Heading)
	for _, st := range site.About.Stats {
		label := st.Label
		if st.Value != "" {
			label = st.Value + " " + label
		}
		b.text(bodyStyle, "  • "+label)
	}
	b.blank()
	b.text(bodyStyle, plainText(string(site.About.BioHTML)))
	b.blank()

	b.heading(site.Timeline.Eyebrow, site.Timeline.Heading)
	for _, m := range site.Timeline.Entries {
		b.text(accentStyle, m.Year+"  "+m.Title)
		b.text(bodyStyle, "      "+m.Description)
	}
	b.blank()

	b.anchor("projects")
	b.heading(site.Projects.Eyebrow, site.Projects.Heading)
	b.text(mutedStyle, site.Projects.Intro)
	b.blank()
	for _, p := range site.Projects.Items {
		b.text(titleStyle, p.Title)
		b.text(mutedStyle, strings.ToUpper(p.Category)+"  "+p.Link)
	}
	b.blank()

	b.anchor("skills")
	b.heading(site.Skills.Eyebrow, site.Skills.Heading)
	for _, g := range site.Skills.Groups {
		b.text(titleStyle, g.Title)
		for _, it := range g.Items {
			b.text(bodyStyle, "  • "+it)
		}
		b.blank()
	}

	b.text(headingStyle, site.CTA.Heading)
	b.text(bodyStyle, site.CTA.Body)
	b.text(accentStyle, fmt.Sprintf("[p] %s", site.CTA.Button))
	b.blank()

	b.anchor("contact")
	b.heading(site.Contact.Eyebrow, site.Contact.Heading)
	b.text(bodyStyle, site.Contact.Body)
	b.blank()
	b.text(mutedStyle, "Name*  Email*  Subject  Message*")
	b.blank()

	b.text(mutedStyle, site.Footer.Copyright)
	var socials []string
	for _, so := range site.Footer.Socials {
		if so.External() {
			socials = append(socials, so.Name+" "+so.URL)
		}
	}
	if len(socials) > 0 {
		b.text(mutedStyle, strings.Join(socials, "  "))
	}

	return page{lines: b.lines, anchors: b.anchors}
}
