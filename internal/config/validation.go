package config

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidationError represents a validation error with context.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (ve ValidationError) Error() string {
	if ve.Field == "" {
		return ve.Message
	}
	return fmt.Sprintf("field '%s': %s", ve.Field, ve.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface for multiple validation errors.
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}
	if len(ve) == 1 {
		return ve[0].Error()
	}

	var messages []string
	for _, err := range ve {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

// HasErrors returns true if there are any validation errors.
func (ve ValidationErrors) HasErrors() bool {
	return len(ve) > 0
}

// Add adds a new validation error.
func (ve *ValidationErrors) Add(field, message string) {
	*ve = append(*ve, ValidationError{Field: field, Message: message})
}

// Validate checks the configuration for structural problems. Duplicate
// server ids fail construction outright; the registry depends on id
// uniqueness for the process lifetime.
func Validate(c Config) ValidationErrors {
	var errs ValidationErrors

	if c.Port < 1 || c.Port > 65535 {
		errs.Add("port", fmt.Sprintf("must be between 1 and 65535, got %d", c.Port))
	}
	if c.Discovery.PerCallTimeout <= 0 {
		errs.Add("discovery.perCallTimeout", "must be positive")
	}
	if c.Discovery.OverallDeadline <= 0 {
		errs.Add("discovery.overallDeadline", "must be positive")
	}
	if c.Discovery.PerCallTimeout > c.Discovery.OverallDeadline {
		errs.Add("discovery.perCallTimeout", "must not exceed discovery.overallDeadline")
	}

	seen := make(map[string]bool)
	for i, s := range c.Servers {
		field := fmt.Sprintf("servers[%d]", i)
		if s.ID == "" {
			errs.Add(field+".id", "must not be empty")
		} else if seen[s.ID] {
			errs.Add(field+".id", fmt.Sprintf("duplicate server id %q", s.ID))
		}
		seen[s.ID] = true

		if s.URL == "" {
			errs.Add(field+".url", "must not be empty")
		} else if u, err := url.Parse(s.URL); err != nil || u.Scheme == "" || u.Host == "" {
			errs.Add(field+".url", fmt.Sprintf("invalid URL %q", s.URL))
		}

		switch s.Transport {
		case TransportHTTP, TransportSSE:
		default:
			errs.Add(field+".transport", fmt.Sprintf("unsupported transport %q (supported: %s, %s)", s.Transport, TransportHTTP, TransportSSE))
		}
	}

	return errs
}
