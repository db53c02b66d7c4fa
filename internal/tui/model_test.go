package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajaym/portfolio/internal/content"
	"github.com/ajaym/portfolio/internal/shell"
)

func newModel(t *testing.T) Model {
	t.Helper()
	site, err := content.Default()
	require.NoError(t, err)
	m := New(site, nil)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return next.(Model)
}

func press(t *testing.T, m Model, k string) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
	return next.(Model), cmd
}

// settle runs frames until the animation stops.
func settle(t *testing.T, m Model) Model {
	t.Helper()
	for i := 0; i < 500; i++ {
		next, cmd := m.Update(frameMsg{})
		m = next.(Model)
		if cmd == nil {
			return m
		}
	}
	t.Fatal("scroll animation did not finish")
	return m
}

func expectedOffset(m Model, id string) int {
	off := m.page.anchors[id]
	if max := m.maxOffset(); off > max {
		return max
	}
	return off
}

func TestPageHasEveryNavAnchor(t *testing.T) {
	m := newModel(t)
	require.NoError(t, shell.CheckAnchors(m.page.anchors, shell.Nav))
	assert.Equal(t, 0, m.page.anchors["home"])
	assert.Less(t, m.page.anchors["about"], m.page.anchors["projects"])
	assert.Less(t, m.page.anchors["projects"], m.page.anchors["skills"])
	assert.Less(t, m.page.anchors["skills"], m.page.anchors["contact"])
}

func TestMenuToggleRoundTrip(t *testing.T) {
	m := newModel(t)
	require.Equal(t, shell.Closed, m.Menu())

	m, _ = press(t, m, "m")
	assert.Equal(t, shell.Open, m.Menu())
	assert.Contains(t, m.View(), "✕")

	m, _ = press(t, m, "m")
	assert.Equal(t, shell.Closed, m.Menu())
}

func TestOpenMenuThenNavigateToContact(t *testing.T) {
	m := newModel(t)
	m, _ = press(t, m, "m")
	require.Equal(t, shell.Open, m.Menu())

	m, cmd := press(t, m, "5")
	assert.Equal(t, shell.Closed, m.Menu())
	require.NotNil(t, cmd, "navigation starts the animation")
	assert.Equal(t, 0, m.Offset(), "scrolling is animated, not instant")

	m = settle(t, m)
	assert.Equal(t, expectedOffset(m, "contact"), m.Offset())
}

func TestNavigateWhileAnimatingRetargets(t *testing.T) {
	m := newModel(t)
	m, _ = press(t, m, "c")

	next, _ := m.Update(frameMsg{})
	m = next.(Model)
	require.Greater(t, m.Offset(), 0)

	m, cmd := press(t, m, "2")
	assert.Nil(t, cmd, "the running frame loop picks up the new target")
	m = settle(t, m)
	assert.Equal(t, expectedOffset(m, "about"), m.Offset())
}

func TestResizeRetargetsRunningAnimation(t *testing.T) {
	m := newModel(t)
	m, _ = press(t, m, "c")
	next, _ := m.Update(frameMsg{})
	m = next.(Model)

	next, _ = m.Update(tea.WindowSizeMsg{Width: 40, Height: 24})
	m = next.(Model)
	require.NotEqual(t, renderPage(m.site, 80).anchors["contact"], m.page.anchors["contact"],
		"narrower layout wraps text and moves the section")
	assert.Equal(t, m.page.anchors["contact"], m.scroll.target)

	m = settle(t, m)
	assert.Equal(t, expectedOffset(m, "contact"), m.Offset())
}

func TestRelocateStopsWhenSectionDisappears(t *testing.T) {
	s := &easedScroll{}
	s.ScrollTo(shell.Section{ID: "contact", Offset: 90})
	s.relocate(shell.Anchors{"contact": 120})
	assert.Equal(t, 120, s.target)
	assert.True(t, s.active)

	s.relocate(shell.Anchors{"home": 0})
	assert.False(t, s.active)
}

func TestNavigateToUnknownAnchorIsNoop(t *testing.T) {
	m := newModel(t)
	m, _ = press(t, m, "m")

	next, cmd := m.navigate("blog")
	m = next.(Model)
	assert.Nil(t, cmd)
	assert.Equal(t, shell.Closed, m.Menu())
	assert.Equal(t, 0, m.Offset())
}

func TestManualScrollCancelsAnimation(t *testing.T) {
	m := newModel(t)
	m, _ = press(t, m, "p")
	require.True(t, m.scroll.active)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(Model)
	assert.False(t, m.scroll.active)

	next, cmd := m.Update(frameMsg{})
	m = next.(Model)
	assert.Nil(t, cmd)
}

func TestEasedScrollStep(t *testing.T) {
	s := &easedScroll{}
	s.ScrollTo(shell.Section{ID: "x", Offset: 10})

	cur, steps := 0, 0
	for done := false; !done; steps++ {
		cur, done = s.step(cur, 100)
	}
	assert.Equal(t, 10, cur)
	assert.Greater(t, steps, 1)
	assert.False(t, s.active)

	s.ScrollTo(shell.Section{ID: "y", Offset: 500})
	for done := false; !done; {
		cur, done = s.step(cur, 40)
	}
	assert.Equal(t, 40, cur, "targets past the end clamp to the last page")
}

func TestQuit(t *testing.T) {
	m := newModel(t)
	_, cmd := press(t, m, "q")
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
