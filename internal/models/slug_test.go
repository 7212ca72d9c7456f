// ABOUTME: Tests for slug generation
// ABOUTME: Covers punctuation runs, unicode letters, and empty input
package models

import "testing"

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"AWS Certified Cloud Practitioner", "aws-certified-cloud-practitioner"},
		{"Machine Learning: A-Z!!", "machine-learning-a-z"},
		{"  --Deep   Learning--  ", "deep-learning"},
		{"Go 1.22 Release", "go-1-22-release"},
		{"Café Análisis", "café-análisis"},
		{"", ""},
		{"!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := GenerateSlug(tt.in); got != tt.want {
				t.Errorf("GenerateSlug(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
