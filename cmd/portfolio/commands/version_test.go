// ABOUTME: Tests for version command
// ABOUTME: Verifies version info display and SetVersion functionality

package commands

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func saveVersion(t *testing.T) {
	t.Helper()
	original := versionInfo
	t.Cleanup(func() { versionInfo = original })
}

func TestVersionCmd_Output(t *testing.T) {
	saveVersion(t)
	SetVersion("1.2.3", "abc123", "2026-01-31")

	cmd := NewRootCmd()
	var output bytes.Buffer
	cmd.SetOut(&output)
	cmd.SetArgs([]string{"version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	for _, expected := range []string{"Portfolio Backend 1.2.3", "Commit: abc123", "Built:  2026-01-31"} {
		if !strings.Contains(output.String(), expected) {
			t.Errorf("Output should contain %q, got:\n%s", expected, output.String())
		}
	}
}

func TestVersionCmd_JSON(t *testing.T) {
	saveVersion(t)
	SetVersion("2.0.0", "deadbeef", "2026-06-15")

	cmd := NewRootCmd()
	var output bytes.Buffer
	cmd.SetOut(&output)
	cmd.SetArgs([]string{"--format", "json", "version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	var info VersionInfo
	if err := json.Unmarshal(output.Bytes(), &info); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, output.String())
	}
	if info.Version != "2.0.0" || info.Commit != "deadbeef" {
		t.Errorf("unexpected version info: %+v", info)
	}
}
