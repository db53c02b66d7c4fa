// Package contact validates contact form submissions and relays them to the
// third-party form endpoint.
package contact

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

// Submission mirrors the contact form fields. The binding tags are shared by
// gin's form binding and Validate.
type Submission struct {
	Name    string `form:"name" json:"name" binding:"required,max=200"`
	Email   string `form:"email" json:"email" binding:"required,email,max=320"`
	Subject string `form:"subject" json:"subject,omitempty" binding:"max=300"`
	Message string `form:"message" json:"message" binding:"required,max=5000"`
}

// FieldError describes one rejected field.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Rule)
}

// ValidationError lists every rejected field.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Error())
	}
	return "invalid submission: " + strings.Join(parts, ", ")
}

// Has reports whether field was rejected.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

var validate = func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.SetTagName("binding")
	return v
}()

// Normalize trims surrounding whitespace from every field.
func (s Submission) Normalize() Submission {
	return Submission{
		Name:    strings.TrimSpace(s.Name),
		Email:   strings.TrimSpace(s.Email),
		Subject: strings.TrimSpace(s.Subject),
		Message: strings.TrimSpace(s.Message),
	}
}

// Validate checks required fields and the email syntax. Whitespace-only
// values count as empty.
func (s Submission) Validate() error {
	n := s.Normalize()
	err := validate.Struct(n)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate submission: %w", err)
	}
	out := &ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: strings.ToLower(fe.Field()), Rule: fe.Tag()})
	}
	return out
}

var strict = bluemonday.StrictPolicy()

// Sanitize strips markup from every field, leaving plain text.
func (s Submission) Sanitize() Submission {
	clean := func(v string) string {
		return strings.TrimSpace(html.UnescapeString(strict.Sanitize(v)))
	}
	return Submission{
		Name:    clean(s.Name),
		Email:   clean(s.Email),
		Subject: clean(s.Subject),
		Message: clean(s.Message),
	}
}
