// ABOUTME: Tests for shared CLI utility functions
// ABOUTME: Covers truncation and collection validation

package commands

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		input  string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"this is too long", 10, "this is..."},
		{"héllo wörld", 8, "héllo..."},
		{"abcdef", 2, "ab"},
	}

	for _, tt := range tests {
		if got := truncate(tt.input, tt.maxLen); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
		}
	}
}

func TestValidateCollection(t *testing.T) {
	for _, ok := range []string{"projects", "certificates"} {
		if err := validateCollection(ok); err != nil {
			t.Errorf("validateCollection(%q) = %v", ok, err)
		}
	}
	for _, bad := range []string{"", "users", "Projects"} {
		if err := validateCollection(bad); err == nil {
			t.Errorf("validateCollection(%q) should fail", bad)
		}
	}
}
