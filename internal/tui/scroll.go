package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ajaym/portfolio/internal/shell"
)

const frameInterval = 16 * time.Millisecond

type frameMsg struct{}

func nextFrame() tea.Cmd {
	return tea.Tick(frameInterval, func(time.Time) tea.Msg { return frameMsg{} })
}

// easedScroll is the terminal shell.Viewport. ScrollTo only records the
// target; the model advances toward it one frame at a time, so a newer
// request simply retargets the animation in flight.
type easedScroll struct {
	id     string
	target int
	active bool
}

func (s *easedScroll) ScrollTo(sec shell.Section) {
	s.id = sec.ID
	s.target = sec.Offset
	s.active = true
}

// relocate points a running animation at its section's offset in doc,
// which changes after a re-layout. The animation stops if the section is
// gone.
func (s *easedScroll) relocate(doc shell.Document) {
	if !s.active {
		return
	}
	sec, ok := doc.Lookup(s.id)
	if !ok {
		s.active = false
		return
	}
	s.target = sec.Offset
}

func (s *easedScroll) cancel() {
	s.active = false
}

// step moves cur a quarter of the remaining distance toward the target,
// clamped to [0, max], by at least one line. done is true once it arrives.
func (s *easedScroll) step(cur, max int) (next int, done bool) {
	target := s.target
	if target > max {
		target = max
	}
	if target < 0 {
		target = 0
	}
	d := target - cur
	if d == 0 {
		s.active = false
		return cur, true
	}
	delta := d / 4
	if delta == 0 {
		if d > 0 {
			delta = 1
		} else {
			delta = -1
		}
	}
	next = cur + delta
	if next == target {
		s.active = false
		return next, true
	}
	return next, false
}

// liveDoc lets the shell resolve anchors against the latest layout, which
// changes whenever the terminal is resized.
type liveDoc struct {
	anchors shell.Anchors
}

func (d *liveDoc) Lookup(id string) (shell.Section, bool) {
	return d.anchors.Lookup(id)
}
