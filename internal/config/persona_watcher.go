// ABOUTME: Live persona holder with fsnotify-driven reload of the persona file
// ABOUTME: Readers always see a complete Persona; bad edits keep the previous one
package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// PersonaStore hands out the current persona to concurrent requests.
type PersonaStore struct {
	current atomic.Pointer[Persona]
}

func NewPersonaStore(p Persona) *PersonaStore {
	s := &PersonaStore{}
	s.Set(p)
	return s
}

// Persona returns the current persona.
func (s *PersonaStore) Persona() Persona {
	return *s.current.Load()
}

func (s *PersonaStore) Set(p Persona) {
	s.current.Store(&p)
}

// Watch reloads path into the store whenever it changes, until ctx is done.
// The parent directory is watched so editors that replace the file are seen.
func (s *PersonaStore) Watch(ctx context.Context, path string, base Persona) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create persona watcher: %w", err)
	}
	target := filepath.Clean(path)
	if err := w.Add(filepath.Dir(target)); err != nil {
		w.Close()
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(target), err)
	}

	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				p, err := LoadPersonaFile(target, base)
				if err != nil {
					log.Warn("persona reload failed, keeping previous persona", "path", target, "err", err)
					continue
				}
				s.Set(p)
				log.Info("persona reloaded", "path", target, "name", p.Name)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Warn("persona watcher error", "err", err)
			}
		}
	}()

	return nil
}
