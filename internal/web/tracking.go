package web

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ajaym/portfolio/internal/store"
)

var untrackedPrefixes = []string{"/static/", "/admin", "/favicon", "/privacy", "/healthz", "/nav/", "/contact"}

func randomToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic("web: read random: " + err.Error())
	}
	return hex.EncodeToString(b)
}

// hashIP hashes a client address with the per-process salt, so the same
// address maps to the same value only within one run.
func (s *Server) hashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip + s.salt))
	return hex.EncodeToString(sum[:])[:16]
}

// visitorTracking records page views with hashed addresses. Asset, admin and
// navigation paths are skipped, as are requests carrying DNT: 1.
func (s *Server) visitorTracking() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if c.Request.Method != "GET" || c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}
		for _, p := range untrackedPrefixes {
			if strings.HasPrefix(path, p) {
				c.Next()
				return
			}
		}

		visit := store.Visit{
			HashedIP:  s.hashIP(c.ClientIP()),
			UserAgent: c.GetHeader("User-Agent"),
			Path:      path,
			Timestamp: time.Now(),
		}
		s.tracking.Add(1)
		go func() {
			defer s.tracking.Done()
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.store.RecordVisit(ctx, visit); err != nil {
				s.logger.Warn("record visit", zap.Error(err))
			}
		}()
		c.Next()
	}
}

// retentionLoop deletes visits older than the configured retention, once at
// start and then daily.
func (s *Server) retentionLoop(ctx context.Context) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()
	for {
		s.cleanupVisits(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *Server) cleanupVisits(ctx context.Context) {
	n, err := s.store.CleanupVisits(ctx, time.Now().Add(-s.cfg.VisitorRetention))
	if err != nil {
		s.logger.Warn("visitor cleanup failed", zap.Error(err))
		return
	}
	if n > 0 {
		s.logger.Info("visitor cleanup", zap.Int64("removed", n))
	}
}
