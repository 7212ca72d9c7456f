// ABOUTME: Public reads and admin writes for the projects and certificates collections
// ABOUTME: Writes refresh the document's embedding on a best-effort basis
package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/harper/portfolio-backend/internal/models"
	"github.com/harper/portfolio-backend/internal/storage"
)

type createdResponse struct {
	ID      string `json:"id"`
	Slug    string `json:"slug"`
	Message string `json:"message"`
}

type updatedResponse struct {
	Message string `json:"message"`
	Slug    string `json:"slug"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// collection names one stored kind for messages.
type collection struct {
	name  string
	label string
}

var (
	projects     = collection{name: storage.CollectionProjects, label: "Project"}
	certificates = collection{name: storage.CollectionCertificates, label: "Certificate"}
)

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	s.list(w, r, projects)
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	s.get(w, r, projects)
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	s.delete(w, r, projects)
}

func (s *Server) handleListCertificates(w http.ResponseWriter, r *http.Request) {
	s.list(w, r, certificates)
}

func (s *Server) handleGetCertificate(w http.ResponseWriter, r *http.Request) {
	s.get(w, r, certificates)
}

func (s *Server) handleDeleteCertificate(w http.ResponseWriter, r *http.Request) {
	s.delete(w, r, certificates)
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var p models.Project
	if err := decodeJSON(w, r, &p); err != nil {
		writeError(w, r, err)
		return
	}
	p.Normalize()
	if err := p.Validate(); err != nil {
		writeError(w, r, err)
		return
	}
	s.create(w, r, projects, p.Slug, p.ToDocument())
}

func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	var p models.Project
	if err := decodeJSON(w, r, &p); err != nil {
		writeError(w, r, err)
		return
	}
	if p.Slug == "" {
		p.Slug = slug
	}
	if err := p.Validate(); err != nil {
		writeError(w, r, err)
		return
	}
	s.update(w, r, projects, slug, p.Slug, p.ToDocument())
}

func (s *Server) handleCreateCertificate(w http.ResponseWriter, r *http.Request) {
	var c models.Certificate
	if err := decodeJSON(w, r, &c); err != nil {
		writeError(w, r, err)
		return
	}
	if err := c.Validate(); err != nil {
		writeError(w, r, err)
		return
	}
	s.create(w, r, certificates, c.Slug(), c.ToDocument())
}

// handleUpdateCertificate keeps the existing slug even when the name changes.
func (s *Server) handleUpdateCertificate(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	var c models.Certificate
	if err := decodeJSON(w, r, &c); err != nil {
		writeError(w, r, err)
		return
	}
	if err := c.Validate(); err != nil {
		writeError(w, r, err)
		return
	}
	s.update(w, r, certificates, slug, slug, c.UpdateDocument())
}

func (s *Server) list(w http.ResponseWriter, r *http.Request, c collection) {
	docs, err := s.opts.Store.List(r.Context(), c.name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if docs == nil {
		docs = []models.Document{}
	}
	writeJSON(w, http.StatusOK, docs)
}

func (s *Server) get(w http.ResponseWriter, r *http.Request, c collection) {
	slug := r.PathValue("slug")
	doc, err := s.opts.Store.GetBySlug(r.Context(), c.name, slug)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, r, notFound("%s '%s' not found", c.label, slug))
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) create(w http.ResponseWriter, r *http.Request, c collection, slug string, doc models.Document) {
	id, err := s.opts.Store.Insert(r.Context(), c.name, doc)
	if errors.Is(err, storage.ErrDuplicateSlug) {
		writeError(w, r, conflict("%s with slug '%s' already exists", c.label, slug))
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	log.Info("created document", "collection", c.name, "slug", slug, "id", id)
	s.reindex(r.Context(), c, slug)
	writeJSON(w, http.StatusCreated, createdResponse{ID: id, Slug: slug, Message: c.label + " created successfully"})
}

func (s *Server) update(w http.ResponseWriter, r *http.Request, c collection, slug, newSlug string, fields models.Document) {
	err := s.opts.Store.UpdateBySlug(r.Context(), c.name, slug, fields)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, r, notFound("%s '%s' not found", c.label, slug))
		return
	}
	if errors.Is(err, storage.ErrDuplicateSlug) {
		writeError(w, r, conflict("%s with slug '%s' already exists", c.label, newSlug))
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	log.Info("updated document", "collection", c.name, "slug", newSlug)
	s.reindex(r.Context(), c, newSlug)
	writeJSON(w, http.StatusOK, updatedResponse{Message: c.label + " updated successfully", Slug: newSlug})
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request, c collection) {
	slug := r.PathValue("slug")
	err := s.opts.Store.DeleteBySlug(r.Context(), c.name, slug)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, r, notFound("%s '%s' not found", c.label, slug))
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	log.Info("deleted document", "collection", c.name, "slug", slug)
	writeJSON(w, http.StatusOK, messageResponse{Message: c.label + " deleted successfully"})
}

// reindex never fails the write that triggered it.
func (s *Server) reindex(ctx context.Context, c collection, slug string) {
	if s.opts.Indexer == nil {
		return
	}
	if err := s.opts.Indexer.IndexBySlug(ctx, c.name, slug); err != nil {
		log.Warn("failed to refresh embedding", "collection", c.name, "slug", slug, "err", err)
	}
}
