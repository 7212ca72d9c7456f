// ABOUTME: URL slug generation for portfolio content
// ABOUTME: Lowercases and collapses every non-alphanumeric run into a single dash
package models

import (
	"strings"
	"unicode"
)

// GenerateSlug turns a display name into a URL slug.
// "AWS Certified: Cloud Practitioner" becomes "aws-certified-cloud-practitioner".
func GenerateSlug(name string) string {
	segments := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	return strings.Join(segments, "-")
}
