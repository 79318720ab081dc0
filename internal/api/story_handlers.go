package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/banglakobita/kobita-server/internal/http/response"
	"github.com/banglakobita/kobita-server/internal/service"
)

// handleListStories returns a page of stories.
// GET /api/v1/stories
func (s *Server) handleListStories(w http.ResponseWriter, r *http.Request) {
	page, err := s.storyService.List(r.Context(), listOptions(r))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.List(w, page.Items, page.Total, page.Num, page.Limit, s.logger)
}

// handleGetStory returns one story with its latest body.
// GET /api/v1/stories/{slug}
func (s *Server) handleGetStory(w http.ResponseWriter, r *http.Request) {
	story, err := s.storyService.GetBySlug(r.Context(), chi.URLParam(r, "slug"), isAdmin(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Data(w, story, s.logger)
}

// handleGetStoryContent returns the latest body version of a story.
// GET /api/v1/stories/{slug}/content
func (s *Server) handleGetStoryContent(w http.ResponseWriter, r *http.Request) {
	content, err := s.storyService.GetContent(r.Context(), chi.URLParam(r, "slug"), isAdmin(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Data(w, content, s.logger)
}

// handleAppendStoryContent stores a new body version for a story.
// POST /api/v1/admin/stories/{id}/content
func (s *Server) handleAppendStoryContent(w http.ResponseWriter, r *http.Request) {
	var req service.AppendContentRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "invalid request body", s.logger)
		return
	}

	version, err := s.storyService.AppendContent(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, version, s.logger)
}

// handleCreateStory creates a story authored by the caller.
// POST /api/v1/admin/stories
func (s *Server) handleCreateStory(w http.ResponseWriter, r *http.Request) {
	var req service.CreateStoryRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "invalid request body", s.logger)
		return
	}

	story, err := s.storyService.Create(r.Context(), getClaims(r.Context()).UserID, req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, story, s.logger)
}

// handleUpdateStory applies a partial update, appending a content version
// when the body changes.
// PATCH /api/v1/admin/stories/{id}
func (s *Server) handleUpdateStory(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateStoryRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "invalid request body", s.logger)
		return
	}

	story, err := s.storyService.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Data(w, story, s.logger)
}

// handleDeleteStory removes a story with its version history.
// DELETE /api/v1/admin/stories/{id}
func (s *Server) handleDeleteStory(w http.ResponseWriter, r *http.Request) {
	if err := s.storyService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Message(w, "story deleted", s.logger)
}

// handleListStoryVersions returns the version history of a story body.
// GET /api/v1/admin/stories/{id}/versions
func (s *Server) handleListStoryVersions(w http.ResponseWriter, r *http.Request) {
	versions, err := s.storyService.ListVersions(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Data(w, versions, s.logger)
}
