package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/banglakobita/kobita-server/internal/http/response"
	"github.com/banglakobita/kobita-server/internal/service"
)

// handleListPoems returns a page of poems.
// GET /api/v1/poems
func (s *Server) handleListPoems(w http.ResponseWriter, r *http.Request) {
	page, err := s.poemService.List(r.Context(), listOptions(r))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.List(w, page.Items, page.Total, page.Num, page.Limit, s.logger)
}

// handleGetPoem returns one poem by slug.
// GET /api/v1/poems/{slug}
func (s *Server) handleGetPoem(w http.ResponseWriter, r *http.Request) {
	poem, err := s.poemService.GetBySlug(r.Context(), chi.URLParam(r, "slug"), isAdmin(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Data(w, poem, s.logger)
}

// handleCreatePoem creates a poem authored by the caller.
// POST /api/v1/admin/poems
func (s *Server) handleCreatePoem(w http.ResponseWriter, r *http.Request) {
	var req service.CreatePoemRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "invalid request body", s.logger)
		return
	}

	poem, err := s.poemService.Create(r.Context(), getClaims(r.Context()).UserID, req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, poem, s.logger)
}

// handleUpdatePoem applies a partial update.
// PATCH /api/v1/admin/poems/{id}
func (s *Server) handleUpdatePoem(w http.ResponseWriter, r *http.Request) {
	var req service.UpdatePoemRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "invalid request body", s.logger)
		return
	}

	poem, err := s.poemService.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Data(w, poem, s.logger)
}

// handleDeletePoem removes a poem.
// DELETE /api/v1/admin/poems/{id}
func (s *Server) handleDeletePoem(w http.ResponseWriter, r *http.Request) {
	if err := s.poemService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Message(w, "poem deleted", s.logger)
}
