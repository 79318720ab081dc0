package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/banglakobita/kobita-server/internal/domain"
	"github.com/banglakobita/kobita-server/internal/http/response"
	"github.com/banglakobita/kobita-server/internal/service"
)

// handleListCategories returns categories in display order.
// GET /api/v1/categories?type=poem
func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	contentType := domain.ContentType(r.URL.Query().Get("type"))
	categories, err := s.taxonomyService.ListCategories(r.Context(), contentType)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Data(w, categories, s.logger)
}

// handleGetCategory returns one category by slug.
// GET /api/v1/categories/{slug}
func (s *Server) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	category, err := s.taxonomyService.GetCategoryBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Data(w, category, s.logger)
}

// handleCreateCategory creates a category.
// POST /api/v1/admin/categories
func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req service.CreateCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "invalid request body", s.logger)
		return
	}

	category, err := s.taxonomyService.CreateCategory(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, category, s.logger)
}

// handleUpdateCategory applies a partial update to a category.
// PATCH /api/v1/admin/categories/{id}
func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "invalid request body", s.logger)
		return
	}

	category, err := s.taxonomyService.UpdateCategory(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Data(w, category, s.logger)
}

// handleDeleteCategory removes a category.
// DELETE /api/v1/admin/categories/{id}
func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := s.taxonomyService.DeleteCategory(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Message(w, "category deleted", s.logger)
}

// handleListTags returns tags, optionally filtered by kind.
// GET /api/v1/tags?type=poem
func (s *Server) handleListTags(w http.ResponseWriter, r *http.Request) {
	contentType := domain.ContentType(r.URL.Query().Get("type"))
	tags, err := s.taxonomyService.ListTags(r.Context(), contentType)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Data(w, tags, s.logger)
}

// handleListContentTags returns the tags attached to one content row.
// GET /api/v1/content/{type}/{contentID}/tags
func (s *Server) handleListContentTags(w http.ResponseWriter, r *http.Request) {
	contentType := domain.ContentType(chi.URLParam(r, "type"))
	tags, err := s.taxonomyService.ListTagsForContent(r.Context(), contentType, chi.URLParam(r, "contentID"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Data(w, tags, s.logger)
}

// handleCreateTag creates a tag.
// POST /api/v1/admin/tags
func (s *Server) handleCreateTag(w http.ResponseWriter, r *http.Request) {
	var req service.CreateTagRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "invalid request body", s.logger)
		return
	}

	tag, err := s.taxonomyService.CreateTag(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, tag, s.logger)
}

// handleDeleteTag removes a tag and its content links.
// DELETE /api/v1/admin/tags/{id}
func (s *Server) handleDeleteTag(w http.ResponseWriter, r *http.Request) {
	if err := s.taxonomyService.DeleteTag(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Message(w, "tag deleted", s.logger)
}

// handleAttachTag links a tag to a content row.
// POST /api/v1/admin/content/{type}/{contentID}/tags/{tagID}
func (s *Server) handleAttachTag(w http.ResponseWriter, r *http.Request) {
	contentType := domain.ContentType(chi.URLParam(r, "type"))
	err := s.taxonomyService.AttachTag(r.Context(), contentType, chi.URLParam(r, "contentID"), chi.URLParam(r, "tagID"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Message(w, "tag attached", s.logger)
}

// handleDetachTag removes a tag link from a content row.
// DELETE /api/v1/admin/content/{type}/{contentID}/tags/{tagID}
func (s *Server) handleDetachTag(w http.ResponseWriter, r *http.Request) {
	contentType := domain.ContentType(chi.URLParam(r, "type"))
	err := s.taxonomyService.DetachTag(r.Context(), contentType, chi.URLParam(r, "contentID"), chi.URLParam(r, "tagID"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Message(w, "tag detached", s.logger)
}
