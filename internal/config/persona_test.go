// ABOUTME: Tests for persona loading, rendering helpers, and live reload
// ABOUTME: Uses temp files for the YAML overlay and the fsnotify watcher
package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestPersonaFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORTFOLIO_OWNER_NAME", "Grace")
	t.Setenv("PORTFOLIO_EXPERTISE", "Go, Distributed Systems")
	t.Setenv("PORTFOLIO_GITHUB_URL", "https://github.com/grace")

	p := PersonaFromEnv()
	if p.Name != "Grace" {
		t.Errorf("Name = %s, want Grace", p.Name)
	}
	if p.Title != "Software Developer" {
		t.Errorf("Title = %s, want default", p.Title)
	}
	if got := p.ExpertiseText(); got != "Go, Distributed Systems" {
		t.Errorf("ExpertiseText = %q", got)
	}
	if p.Social.GitHubURL != "https://github.com/grace" {
		t.Errorf("GitHubURL = %s", p.Social.GitHubURL)
	}
}

func TestExpertiseText_Empty(t *testing.T) {
	if got := (Persona{}).ExpertiseText(); got != "Software Development" {
		t.Errorf("ExpertiseText = %q, want Software Development", got)
	}
}

func TestSocialLinksText(t *testing.T) {
	if got := (Persona{}).SocialLinksText(); got != "No social links configured." {
		t.Errorf("SocialLinksText = %q", got)
	}

	p := Persona{Social: SocialLinks{
		YouTubeURL:     "https://youtube.com/@grace",
		YouTubeChannel: "Grace Codes",
		Email:          "grace@example.com",
	}}
	got := p.SocialLinksText()
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), got)
	}
	if !strings.Contains(lines[0], "YouTube (Grace Codes)") || !strings.Contains(lines[0], "https://youtube.com/@grace") {
		t.Errorf("youtube line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "grace@example.com") {
		t.Errorf("email line = %q", lines[1])
	}
}

func TestLoadPersonaFile_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persona.yaml")
	if err := os.WriteFile(path, []byte("name: [unterminated"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadPersonaFile(path, Persona{}); err == nil {
		t.Error("expected parse error")
	}
}

func TestPersonaStore_Watch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "persona.yaml")
	if err := os.WriteFile(path, []byte("name: Before\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	base := Persona{Title: "Engineer"}
	initial, err := LoadPersonaFile(path, base)
	if err != nil {
		t.Fatalf("LoadPersonaFile: %v", err)
	}
	store := NewPersonaStore(initial)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := store.Watch(ctx, path, base); err != nil {
		t.Fatalf("Watch: %v", err)
	}

	go func() {
		time.Sleep(100 * time.Millisecond)
		os.WriteFile(path, []byte("name: After\n"), 0o644)
	}()

	for {
		if p := store.Persona(); p.Name == "After" {
			if p.Title != "Engineer" {
				t.Errorf("Title = %s, want base value kept", p.Title)
			}
			return
		}
		select {
		case <-ctx.Done():
			t.Fatal("timeout waiting for persona reload")
		case <-time.After(20 * time.Millisecond):
		}
	}
}
