// Package shell holds the page navigation controller: the fixed set of nav
// anchors, the mobile menu flag and the scroll-to-section action shared by
// the web page and the terminal viewer.
package shell

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// NavItem is a navigation control pointing at a section anchor.
type NavItem struct {
	Label    string
	AnchorID string
}

// Nav is the primary navigation definition.
var Nav = []NavItem{
	{Label: "Home", AnchorID: "home"},
	{Label: "About", AnchorID: "about"},
	{Label: "Projects", AnchorID: "projects"},
	{Label: "Skills", AnchorID: "skills"},
	{Label: "Contact", AnchorID: "contact"},
}

// MenuState is the visibility of the mobile navigation panel.
type MenuState bool

const (
	Closed MenuState = false
	Open   MenuState = true
)

func (m MenuState) String() string {
	if m == Open {
		return "open"
	}
	return "closed"
}

// Section is an anchor located in a rendered document. Offset is measured in
// whatever unit the document uses (lines for the terminal, element order for
// HTML).
type Section struct {
	ID     string
	Offset int
}

// Document resolves section identifiers.
type Document interface {
	Lookup(id string) (Section, bool)
}

// Viewport scrolls to a section with an animated transition. Implementations
// must not block; a new request replaces any animation still in flight.
type Viewport interface {
	ScrollTo(Section)
}

// Option configures a Shell.
type Option func(*Shell)

// WithLogger sets the logger used for navigation events.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Shell) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMenu sets the initial menu state.
func WithMenu(state MenuState) Option {
	return func(s *Shell) {
		s.menu = state
	}
}

// Shell owns the menu state for one page session. It is not safe for
// concurrent use; all calls are expected on the interaction goroutine.
type Shell struct {
	doc    Document
	view   Viewport
	menu   MenuState
	logger *zap.Logger
}

// New returns a Shell with the menu closed.
func New(doc Document, view Viewport, opts ...Option) *Shell {
	s := &Shell{
		doc:    doc,
		view:   view,
		menu:   Closed,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Menu reports the current menu state.
func (s *Shell) Menu() MenuState {
	return s.menu
}

// ToggleMenu flips the menu state and returns the new value.
func (s *Shell) ToggleMenu() MenuState {
	s.menu = !s.menu
	s.logger.Debug("menu toggled", zap.Stringer("menu", s.menu))
	return s.menu
}

// ScrollTo scrolls the viewport to the section with the given id and closes
// the menu. An unknown id leaves the viewport where it is; the menu is closed
// either way. The return value reports whether the section was found.
func (s *Shell) ScrollTo(id string) bool {
	defer func() { s.menu = Closed }()

	if s.doc == nil {
		return false
	}
	sec, ok := s.doc.Lookup(id)
	if !ok {
		s.logger.Debug("anchor not found", zap.String("anchor", id))
		return false
	}
	if s.view != nil {
		s.view.ScrollTo(sec)
	}
	s.logger.Debug("scrolled", zap.String("anchor", sec.ID), zap.Int("offset", sec.Offset))
	return true
}

// ErrMissingAnchor is wrapped by CheckAnchors for every absent anchor.
var ErrMissingAnchor = errors.New("missing anchor")

// CheckAnchors verifies that every item points at a section present in doc.
func CheckAnchors(doc Document, items []NavItem) error {
	var errs []error
	for _, it := range items {
		if _, ok := doc.Lookup(it.AnchorID); !ok {
			errs = append(errs, fmt.Errorf("%w: %q (%s)", ErrMissingAnchor, it.AnchorID, it.Label))
		}
	}
	return errors.Join(errs...)
}

// Anchors is a Document backed by a map, used by renderers that collect
// section offsets while writing output.
type Anchors map[string]int

// Lookup implements Document.
func (a Anchors) Lookup(id string) (Section, bool) {
	off, ok := a[id]
	if !ok {
		return Section{}, false
	}
	return Section{ID: id, Offset: off}, true
}
