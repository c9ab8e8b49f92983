package messaging

import (
	"fmt"
	"strings"
	"text/template"

	dErrors "worldsmith/pkg/domain-errors"
)

// Template pairs a subject line with a body template. The body is rendered
// with the per-message variables (Token, OneTimePassword, ...).
type Template struct {
	Subject string
	Body    *template.Template
}

// Registry resolves a template id and locale to a renderable template.
// Locale lookup falls back from "fr-CA" to "fr" to the default locale.
type Registry struct {
	defaultLocale string
	templates     map[string]map[string]Template
}

func NewRegistry(defaultLocale string) *Registry {
	return &Registry{
		defaultLocale: defaultLocale,
		templates:     make(map[string]map[string]Template),
	}
}

// Register parses and stores a template body for the given id and locale.
func (r *Registry) Register(id, locale, subject, body string) error {
	parsed, err := template.New(id + "/" + locale).Parse(body)
	if err != nil {
		return fmt.Errorf("parse template %s (%s): %w", id, locale, err)
	}
	byLocale, ok := r.templates[id]
	if !ok {
		byLocale = make(map[string]Template)
		r.templates[id] = byLocale
	}
	byLocale[locale] = Template{Subject: subject, Body: parsed}
	return nil
}

// Resolve returns the best template for the locale.
func (r *Registry) Resolve(id, locale string) (Template, error) {
	byLocale, ok := r.templates[id]
	if !ok {
		return Template{}, dErrors.Newf(dErrors.CodeMissingConfiguration, "message template %s is not configured", id)
	}
	if t, ok := byLocale[locale]; ok {
		return t, nil
	}
	if i := strings.IndexByte(locale, '-'); i > 0 {
		if t, ok := byLocale[locale[:i]]; ok {
			return t, nil
		}
	}
	if t, ok := byLocale[r.defaultLocale]; ok {
		return t, nil
	}
	return Template{}, dErrors.Newf(dErrors.CodeMissingConfiguration, "message template %s has no content for locale %s", id, locale)
}

// DefaultRegistry carries the built-in English content for every flow.
func DefaultRegistry() *Registry {
	r := NewRegistry("en")
	for _, t := range []struct{ id, subject, body string }{
		{
			id:      "AccountAuthentication",
			subject: "Sign in to your account",
			body:    "Use this link to sign in: {{.Token}}",
		},
		{
			id:      "PasswordRecovery",
			subject: "Reset your password",
			body:    "Use this link to reset your password: {{.Token}}",
		},
		{
			id:      "MultiFactorAuthenticationEmail",
			subject: "Your verification code",
			body:    "Your verification code is {{.OneTimePassword}}",
		},
		{
			id:      "MultiFactorAuthenticationPhone",
			subject: "",
			body:    "Your verification code is {{.OneTimePassword}}",
		},
		{
			id:      "ContactVerificationPhone",
			subject: "",
			body:    "Your phone verification code is {{.OneTimePassword}}",
		},
	} {
		if err := r.Register(t.id, "en", t.subject, t.body); err != nil {
			// Built-in templates are compile-time constants.
			panic(err)
		}
	}
	return r
}
