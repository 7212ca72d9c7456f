// ABOUTME: Structural and precondition tests for serve, ask, embed, and mcp
// ABOUTME: Commands must fail fast with a clear error when required settings are missing

package commands

import (
	"strings"
	"testing"
)

func TestCommandFlags(t *testing.T) {
	tests := []struct {
		name     string
		flag     string
		defValue string
	}{
		{"serve", "addr", ""},
		{"ask", "prompt", "false"},
		{"embed", "force", "false"},
	}

	root := NewRootCmd()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, _, err := root.Find([]string{tt.name})
			if err != nil {
				t.Fatalf("command %q not found: %v", tt.name, err)
			}
			flag := cmd.Flags().Lookup(tt.flag)
			if flag == nil {
				t.Fatalf("--%s flag not found on %s", tt.flag, tt.name)
			}
			if flag.DefValue != tt.defValue {
				t.Errorf("--%s default = %q, want %q", tt.flag, flag.DefValue, tt.defValue)
			}
		})
	}
}

func TestServe_RequiresAdminCredentials(t *testing.T) {
	useMemoryBackend(t)
	t.Setenv("ADMIN_EMAIL", "")
	t.Setenv("ADMIN_PASSWORD", "")

	_, err := runRoot(t, "serve")
	if err == nil || !strings.Contains(err.Error(), "ADMIN_EMAIL") {
		t.Errorf("expected admin credential error, got %v", err)
	}
}

func TestAskAndEmbed_RequireLLMKey(t *testing.T) {
	useMemoryBackend(t)
	t.Setenv("LLM_PROVIDER", "gemini")
	t.Setenv("GOOGLE_API_KEY", "")

	if _, err := runRoot(t, "ask", "hello"); err == nil || !strings.Contains(err.Error(), "GOOGLE_API_KEY") {
		t.Errorf("ask: expected GOOGLE_API_KEY error, got %v", err)
	}
	if _, err := runRoot(t, "embed", "projects"); err == nil || !strings.Contains(err.Error(), "GOOGLE_API_KEY") {
		t.Errorf("embed: expected GOOGLE_API_KEY error, got %v", err)
	}
}

func TestEmbed_RejectsUnknownCollection(t *testing.T) {
	useMemoryBackend(t)
	if _, err := runRoot(t, "embed", "users"); err == nil {
		t.Error("expected error for unknown collection")
	}
}

func TestAsk_RequiresQuestion(t *testing.T) {
	if _, err := runRoot(t, "ask"); err == nil {
		t.Error("ask without a question should fail")
	}
}
