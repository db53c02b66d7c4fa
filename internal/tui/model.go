// Package tui is a terminal viewer for the portfolio page, driven by the
// same navigation shell as the web page.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/ajaym/portfolio/internal/content"
	"github.com/ajaym/portfolio/internal/shell"
)

type keyMap struct {
	Menu     key.Binding
	Nav      key.Binding
	Projects key.Binding
	Contact  key.Binding
	Scroll   key.Binding
	Quit     key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Menu, k.Nav, k.Projects, k.Contact, k.Scroll, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var keys = keyMap{
	Menu:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "menu")),
	Nav:      key.NewBinding(key.WithKeys("1", "2", "3", "4", "5"), key.WithHelp("1-5", "go to section")),
	Projects: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "projects")),
	Contact:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "contact")),
	Scroll:   key.NewBinding(key.WithKeys("up", "down", "pgup", "pgdown", "k", "j"), key.WithHelp("↑/↓", "scroll")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// Model is the bubbletea model for the viewer.
type Model struct {
	site   *content.Site
	doc    *liveDoc
	scroll *easedScroll
	shell  *shell.Shell

	vp      viewport.Model
	help    help.Model
	page    page
	width   int
	height  int
	ready   bool
	ticking bool
}

// New builds a viewer for site.
func New(site *content.Site, logger *zap.Logger) Model {
	doc := &liveDoc{anchors: shell.Anchors{}}
	scroll := &easedScroll{}
	return Model{
		site:   site,
		doc:    doc,
		scroll: scroll,
		shell:  shell.New(doc, scroll, shell.WithLogger(logger)),
		help:   help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Menu reports the menu state.
func (m Model) Menu() shell.MenuState {
	return m.shell.Menu()
}

// Offset reports the current scroll position.
func (m Model) Offset() int {
	return m.vp.YOffset
}

func (m Model) maxOffset() int {
	if n := len(m.page.lines) - m.vp.Height; n > 0 {
		return n
	}
	return 0
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.page = renderPage(m.site, msg.Width)
		m.doc.anchors = m.page.anchors
		m.scroll.relocate(m.doc)
		if !m.ready {
			m.vp = viewport.New(msg.Width, 0)
			m.ready = true
		}
		m.vp.Width = msg.Width
		m.vp.SetContent(strings.Join(m.page.lines, "\n"))
		m.layout()
		return m, nil

	case frameMsg:
		if !m.scroll.active {
			m.ticking = false
			return m, nil
		}
		next, done := m.scroll.step(m.vp.YOffset, m.maxOffset())
		m.vp.SetYOffset(next)
		if done {
			m.ticking = false
			return m, nil
		}
		return m, nextFrame()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Menu):
			m.shell.ToggleMenu()
			m.layout()
			return m, nil
		case key.Matches(msg, keys.Nav):
			i := int(msg.Runes[0] - '1')
			return m.navigate(shell.Nav[i].AnchorID)
		case key.Matches(msg, keys.Projects):
			return m.navigate("projects")
		case key.Matches(msg, keys.Contact):
			return m.navigate("contact")
		case key.Matches(msg, keys.Scroll):
			m.scroll.cancel()
			var cmd tea.Cmd
			m.vp, cmd = m.vp.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// navigate runs the shell's scroll action and starts the frame loop when an
// animation is pending and none is running.
func (m Model) navigate(id string) (tea.Model, tea.Cmd) {
	m.shell.ScrollTo(id)
	m.layout()
	if m.scroll.active && !m.ticking {
		m.ticking = true
		return m, nextFrame()
	}
	return m, nil
}

// layout sizes the viewport to whatever the header and footer leave.
func (m *Model) layout() {
	if !m.ready {
		return
	}
	h := m.height - lipgloss.Height(m.headerView()) - lipgloss.Height(m.footerView())
	if h < 1 {
		h = 1
	}
	m.vp.Height = h
	if m.vp.YOffset > m.maxOffset() {
		m.vp.SetYOffset(m.maxOffset())
	}
}

func (m Model) headerView() string {
	var nav []string
	for i, it := range shell.Nav {
		nav = append(nav, navStyle.Render(fmt.Sprintf("%d %s", i+1, it.Label)))
	}
	icon := "☰"
	if m.shell.Menu() == shell.Open {
		icon = "✕"
	}
	bar := brandStyle.Render(m.site.Name) + "   " + strings.Join(nav, "  ") + "   " + accentStyle.Render("[m] "+icon)
	header := barStyle.Width(m.width).Render(bar)

	if m.shell.Menu() == shell.Open {
		var items []string
		for i, it := range shell.Nav {
			items = append(items, menuItemStyle.Render(fmt.Sprintf("%d  %s", i+1, it.Label)))
		}
		header = lipgloss.JoinVertical(lipgloss.Left, header, strings.Join(items, "\n"))
	}
	return header
}

func (m Model) footerView() string {
	return m.help.View(keys)
}

func (m Model) View() string {
	if !m.ready {
		return "loading…"
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.headerView(), m.vp.View(), m.footerView())
}

// Run starts the viewer on the alternate screen.
func Run(site *content.Site, logger *zap.Logger) error {
	p := tea.NewProgram(New(site, logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
