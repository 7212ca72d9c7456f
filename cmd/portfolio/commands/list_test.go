// ABOUTME: Tests for list command
// ABOUTME: Runs list against the memory backend seeded from a YAML file

package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const seedYAML = `projects:
  - slug: portfolio-chatbot
    title: Portfolio Chatbot
    date: "2024-05"
    technologies: [Go, Gemini]
certificates:
  - slug: go-expert
    name: Go Expert
    issuer: Gophers
    issue_date: "2024-01"
`

func useMemoryBackend(t *testing.T) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(path, []byte(seedYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("STORAGE_BACKEND", "memory")
	t.Setenv("MEMORY_SEED_FILE", path)
	t.Setenv("PERSONA_FILE", "")
	t.Setenv("LOG_LEVEL", "error")
}

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var output bytes.Buffer
	cmd.SetOut(&output)
	cmd.SetErr(&output)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return output.String(), err
}

func TestNewListCmd(t *testing.T) {
	cmd := NewListCmd()
	if !strings.HasPrefix(cmd.Use, "list") {
		t.Errorf("Use = %q", cmd.Use)
	}
	if !strings.Contains(cmd.Long, "--format json") {
		t.Error("Long description should include a JSON example")
	}
}

func TestListCmd_Table(t *testing.T) {
	useMemoryBackend(t)

	out, err := runRoot(t, "list", "projects")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for _, want := range []string{"SLUG", "portfolio-chatbot", "Portfolio Chatbot", "Go, Gemini", "Total: 1 projects"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	out, err = runRoot(t, "list", "certificates")
	if err != nil {
		t.Fatalf("list certificates failed: %v", err)
	}
	if !strings.Contains(out, "Gophers") || !strings.Contains(out, "ISSUER") {
		t.Errorf("unexpected certificates output:\n%s", out)
	}
}

func TestListCmd_JSON(t *testing.T) {
	useMemoryBackend(t)

	out, err := runRoot(t, "--format", "json", "list", "certificates")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	var docs []map[string]any
	if err := json.Unmarshal([]byte(out), &docs); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if len(docs) != 1 || docs[0]["name"] != "Go Expert" {
		t.Errorf("unexpected docs: %v", docs)
	}
}

func TestListCmd_Errors(t *testing.T) {
	useMemoryBackend(t)

	if _, err := runRoot(t, "list", "users"); err == nil {
		t.Error("unknown collection should fail")
	}
	if _, err := runRoot(t, "list"); err == nil {
		t.Error("missing collection should fail")
	}

	t.Setenv("STORAGE_BACKEND", "mongo")
	t.Setenv("MONGODB_URI", "")
	if _, err := runRoot(t, "list", "projects"); err == nil || !strings.Contains(err.Error(), "MONGODB_URI") {
		t.Errorf("expected MONGODB_URI error, got %v", err)
	}
}
