// ABOUTME: Field validation errors shared by project and certificate payloads
// ABOUTME: The HTTP layer maps ValidationError to a 422 response
package models

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidationError names the offending field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Message: "is required"}
	}
	return nil
}

func absoluteURL(field, value string) error {
	u, err := url.Parse(value)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return &ValidationError{Field: field, Message: "must be an absolute http(s) URL"}
	}
	return nil
}

func optional(value string) any {
	if value == "" {
		return nil
	}
	return value
}
