package contact

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/smtp"
	"net/url"
	"strings"
	"time"
)

// Relay delivers a submission somewhere outside this server.
type Relay interface {
	Deliver(ctx context.Context, s Submission) error
}

// ErrRelayRejected is wrapped when the relay answers with a non-2xx status.
var ErrRelayRejected = errors.New("relay rejected submission")

// FormRelay posts submissions, form-encoded, to a third-party form endpoint.
type FormRelay struct {
	Endpoint string
	Client   *http.Client
}

// NewFormRelay builds a FormRelay with a client bounded by timeout.
func NewFormRelay(endpoint string, timeout time.Duration) *FormRelay {
	return &FormRelay{
		Endpoint: endpoint,
		Client:   &http.Client{Timeout: timeout},
	}
}

// Deliver implements Relay.
func (r *FormRelay) Deliver(ctx context.Context, s Submission) error {
	form := url.Values{}
	form.Set("name", s.Name)
	form.Set("email", s.Email)
	if s.Subject != "" {
		form.Set("subject", s.Subject)
		form.Set("_subject", s.Subject)
	}
	form.Set("message", s.Message)
	form.Set("_replyto", s.Email)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.Endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("relay request: %w", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: status %d: %s", ErrRelayRejected, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

// SendMailFunc matches smtp.SendMail.
type SendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Mailer sends a notification email for each submission.
type Mailer struct {
	Host     string
	Port     string
	User     string
	Pass     string
	To       string
	SendMail SendMailFunc
}

// ErrMailerNotConfigured is returned when SMTP credentials are missing.
var ErrMailerNotConfigured = errors.New("SMTP credentials not configured")

// Deliver implements Relay.
func (m *Mailer) Deliver(_ context.Context, s Submission) error {
	if m.User == "" || m.Pass == "" {
		return ErrMailerNotConfigured
	}
	to := m.To
	if to == "" {
		to = m.User
	}

	subject := fmt.Sprintf("Portfolio Contact: %s", s.Name)
	if s.Subject != "" {
		subject = fmt.Sprintf("Portfolio Contact: %s (%s)", s.Subject, s.Name)
	}
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Subject: %s
Message:
%s

---
Sent from your portfolio contact form
`, headerSafe(s.Name), headerSafe(s.Email), headerSafe(s.Subject), s.Message)

	msg := []byte("To: " + to + "\r\n" +
		"Subject: " + headerSafe(subject) + "\r\n" +
		"From: " + m.User + "\r\n" +
		"Reply-To: " + headerSafe(s.Email) + "\r\n" +
		"\r\n" +
		body + "\r\n")

	send := m.SendMail
	if send == nil {
		send = smtp.SendMail
	}
	auth := smtp.PlainAuth("", m.User, m.Pass, m.Host)
	if err := send(m.Host+":"+m.Port, auth, m.User, []string{to}, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

// headerSafe keeps user input from injecting extra mail headers.
func headerSafe(v string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(v)
}
