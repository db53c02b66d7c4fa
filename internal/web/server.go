// Package web serves the portfolio page, the no-script navigation fallback,
// the relay-mode contact endpoint and the admin area.
package web

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ajaym/portfolio/internal/config"
	"github.com/ajaym/portfolio/internal/contact"
	"github.com/ajaym/portfolio/internal/content"
	"github.com/ajaym/portfolio/internal/shell"
	"github.com/ajaym/portfolio/internal/store"
)

// Options wires a Server. Store may be nil, which disables visitor tracking
// and the admin area. Contact is required when the contact mode is relay.
type Options struct {
	Config  config.Config
	Site    *content.Site
	Store   *store.Store
	Contact *contact.Service
	Logger  *zap.Logger
}

// Server owns the gin engine and everything rendered by it.
type Server struct {
	cfg     config.Config
	site    *content.Site
	store   *store.Store
	contact *contact.Service
	logger  *zap.Logger
	tmpl    *template.Template
	engine  *gin.Engine
	doc     shell.Anchors
	admin   *adminAuth
	salt    string

	tracking sync.WaitGroup
}

// New builds the server, renders the page once and refuses to start when a
// navigation control points at a missing section.
func New(opts Options) (*Server, error) {
	if opts.Site == nil {
		return nil, errors.New("web: site content is required")
	}
	if opts.Config.Contact.Mode == config.ContactRelay && opts.Contact == nil {
		return nil, errors.New("web: contact service is required in relay mode")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	tmpl, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		cfg:     opts.Config,
		site:    opts.Site,
		store:   opts.Store,
		contact: opts.Contact,
		logger:  logger,
		tmpl:    tmpl,
		salt:    randomToken(),
	}

	page, err := s.RenderPage(shell.Closed)
	if err != nil {
		return nil, err
	}
	s.doc, err = ParseDocument(bytes.NewReader(page))
	if err != nil {
		return nil, err
	}
	if err := shell.CheckAnchors(s.doc, shell.Nav); err != nil {
		return nil, fmt.Errorf("navigation: %w", err)
	}

	s.engine = s.routes()
	return s, nil
}

// Handler exposes the engine for http.Server and tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Document returns the anchors found in the rendered page.
func (s *Server) Document() shell.Document {
	return s.doc
}

func (s *Server) routes() *gin.Engine {
	if s.cfg.GinMode != "" {
		gin.SetMode(s.cfg.GinMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.logger))
	if s.store != nil && s.cfg.TrackVisitors {
		r.Use(s.visitorTracking())
	}
	r.SetHTMLTemplate(s.tmpl)
	r.StaticFS("/static", http.FS(staticFiles()))

	r.GET("/", s.handleHome)
	r.GET("/nav/:anchor", s.handleNavigate)
	r.GET("/healthz", s.handleHealth)
	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", gin.H{
			"title":     "Privacy Policy",
			"retention": s.cfg.VisitorRetention.String(),
		})
	})

	if s.cfg.Contact.Mode == config.ContactRelay {
		r.POST("/contact", s.handleContact)
	}
	if s.store != nil && s.cfg.Admin.Enabled() {
		s.setupAdminRoutes(r)
	}
	return r
}

func (s *Server) handleHealth(c *gin.Context) {
	if s.store != nil {
		if err := s.store.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Run serves until ctx is cancelled, then shuts down gracefully and waits
// for in-flight visitor writes.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.cfg.Port,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	if s.store != nil && s.cfg.TrackVisitors {
		go s.retentionLoop(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", srv.Addr), zap.String("contact_mode", s.cfg.Contact.Mode))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.Wait()
	return err
}

// Wait blocks until background visitor writes have finished.
func (s *Server) Wait() {
	s.tracking.Wait()
}
