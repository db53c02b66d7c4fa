package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	_ "github.com/joho/godotenv/autoload"
)

// Contact form delivery modes.
const (
	ContactDirect = "direct" // form posts straight to the relay endpoint
	ContactRelay  = "relay"  // form posts to this server, which forwards it
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Port             string        `env:"PORT" envDefault:"8080"`
	GinMode          string        `env:"GIN_MODE" envDefault:"release"`
	LogLevel         string        `env:"LOG_LEVEL" envDefault:"info"`
	DatabasePath     string        `env:"DATABASE_PATH" envDefault:"portfolio.db"`
	ContentFile      string        `env:"CONTENT_FILE"`
	TrackVisitors    bool          `env:"TRACK_VISITORS" envDefault:"true"`
	VisitorRetention time.Duration `env:"VISITOR_RETENTION" envDefault:"8760h"`

	Contact ContactConfig `envPrefix:"CONTACT_"`
	SMTP    SMTPConfig    `envPrefix:"SMTP_"`
	Admin   AdminConfig   `envPrefix:"ADMIN_"`
}

// ContactConfig configures where contact submissions go.
type ContactConfig struct {
	Mode     string        `env:"MODE" envDefault:"direct"`
	Endpoint string        `env:"ENDPOINT" envDefault:"https://formspree.io/f/mlgreqkk"`
	Timeout  time.Duration `env:"TIMEOUT" envDefault:"10s"`
}

// SMTPConfig enables mail notification for relayed submissions. Leaving
// User empty disables it.
type SMTPConfig struct {
	Host string `env:"HOST" envDefault:"smtp.gmail.com"`
	Port string `env:"PORT" envDefault:"587"`
	User string `env:"USER"`
	Pass string `env:"PASS"`
	To   string `env:"TO"`
}

// Enabled reports whether credentials are configured.
func (s SMTPConfig) Enabled() bool {
	return s.User != "" && s.Pass != ""
}

// AdminConfig holds admin area credentials. An empty password disables the
// admin area.
type AdminConfig struct {
	Username string `env:"USERNAME" envDefault:"admin"`
	Password string `env:"PASSWORD"`
}

// Enabled reports whether the admin area should be mounted.
func (a AdminConfig) Enabled() bool {
	return a.Password != ""
}

// Load parses the process environment (after .env autoload) into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints env tags cannot express.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Port) == "" {
		errs = append(errs, errors.New("PORT must not be empty"))
	}
	switch c.Contact.Mode {
	case ContactDirect, ContactRelay:
	default:
		errs = append(errs, fmt.Errorf("CONTACT_MODE must be %q or %q, got %q", ContactDirect, ContactRelay, c.Contact.Mode))
	}
	if u, err := url.Parse(c.Contact.Endpoint); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("CONTACT_ENDPOINT must be an absolute URL, got %q", c.Contact.Endpoint))
	}
	if c.Contact.Timeout <= 0 {
		errs = append(errs, errors.New("CONTACT_TIMEOUT must be positive"))
	}
	if c.VisitorRetention <= 0 {
		errs = append(errs, errors.New("VISITOR_RETENTION must be positive"))
	}
	return errors.Join(errs...)
}
