package web

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ajaym/portfolio/internal/config"
	"github.com/ajaym/portfolio/internal/contact"
	"github.com/ajaym/portfolio/internal/content"
	"github.com/ajaym/portfolio/internal/shell"
)

type pageData struct {
	Site          *content.Site
	Nav           []shell.NavItem
	Menu          shell.MenuState
	MenuOpen      bool
	ToggleHref    string
	ContactAction string
	ContactRelay  bool
}

func (s *Server) pageData(menu shell.MenuState) pageData {
	toggle := "/?menu=open"
	if menu == shell.Open {
		toggle = "/"
	}
	action := s.cfg.Contact.Endpoint
	relay := s.cfg.Contact.Mode == config.ContactRelay
	if relay {
		action = "/contact"
	}
	return pageData{
		Site:          s.site,
		Nav:           shell.Nav,
		Menu:          menu,
		MenuOpen:      menu == shell.Open,
		ToggleHref:    toggle,
		ContactAction: action,
		ContactRelay:  relay,
	}
}

// RenderPage renders the full page with the given menu state.
func (s *Server) RenderPage(menu shell.MenuState) ([]byte, error) {
	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, "index.html", s.pageData(menu)); err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	return buf.Bytes(), nil
}

// menuFromQuery reads the server-rendered menu state used by clients
// without script.
func menuFromQuery(c *gin.Context) shell.MenuState {
	if c.Query("menu") == "open" {
		return shell.Open
	}
	return shell.Closed
}

func (s *Server) handleHome(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", s.pageData(menuFromQuery(c)))
}

// redirectViewport turns a scroll request into a fragment redirect; the
// browser performs the (smooth, per site.css) scroll on arrival.
type redirectViewport struct {
	target string
}

func (v *redirectViewport) ScrollTo(sec shell.Section) {
	v.target = "/#" + url.PathEscape(sec.ID)
}

func (s *Server) handleNavigate(c *gin.Context) {
	view := &redirectViewport{target: "/"}
	sh := shell.New(s.doc, view, shell.WithMenu(menuFromQuery(c)), shell.WithLogger(s.logger))
	sh.ScrollTo(c.Param("anchor"))

	c.Header("X-Menu-State", sh.Menu().String())
	c.Redirect(http.StatusSeeOther, view.target)
}

func isHTMX(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true"
}

// handleContact accepts relay-mode submissions. HTMX requests always get a
// 200 fragment so the result swaps into the page.
func (s *Server) handleContact(c *gin.Context) {
	sub := contact.Submission{
		Name:    c.PostForm("name"),
		Email:   c.PostForm("email"),
		Subject: c.PostForm("subject"),
		Message: c.PostForm("message"),
	}

	status := func(code int) int {
		if isHTMX(c) {
			return http.StatusOK
		}
		return code
	}

	_, err := s.contact.Submit(c.Request.Context(), sub)
	var verr *contact.ValidationError
	switch {
	case err == nil:
		c.HTML(status(http.StatusOK), "contact-success.html", gin.H{
			"success": "Thank you for your message! I'll get back to you soon.",
		})
	case errors.As(err, &verr):
		c.HTML(status(http.StatusBadRequest), "contact-error.html", gin.H{
			"error":  "Please fill in the required fields.",
			"fields": verr.Fields,
		})
	default:
		s.logger.Error("contact submission failed", zap.Error(err))
		c.HTML(status(http.StatusBadGateway), "contact-error.html", gin.H{
			"error": "Sorry, there was an error sending your message. Please try again later.",
		})
	}
}
