// ABOUTME: Shared utility functions for CLI commands
// ABOUTME: Output helpers and argument validation used across subcommands
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/harper/portfolio-backend/internal/storage"
)

var collections = []string{storage.CollectionProjects, storage.CollectionCertificates}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// validateCollection rejects anything but the two content collections
func validateCollection(name string) error {
	if !slices.Contains(collections, name) {
		return fmt.Errorf("unknown collection %q (want projects or certificates)", name)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}
