// ABOUTME: Loads MemoryStore content from a YAML seed file
// ABOUTME: Top-level keys are collection names, each holding a list of documents
package storage

import (
	"fmt"
	"os"

	"github.com/harper/portfolio-backend/internal/models"
	"gopkg.in/yaml.v3"
)

// LoadSeedFile reads a file shaped like {projects: [...], certificates: [...]}.
func LoadSeedFile(path string) (map[string][]models.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var raw map[string][]map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}

	out := make(map[string][]models.Document, len(raw))
	for collection, docs := range raw {
		for _, d := range docs {
			out[collection] = append(out[collection], models.Document(d))
		}
	}
	return out, nil
}

// LoadSeed loads a seed file into the store.
func (s *MemoryStore) LoadSeed(path string) error {
	seed, err := LoadSeedFile(path)
	if err != nil {
		return err
	}
	for collection, docs := range seed {
		s.Seed(collection, docs...)
	}
	return nil
}
