package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/banglakobita/kobita-server/internal/http/response"
	"github.com/banglakobita/kobita-server/internal/service"
)

// handleListNovels returns a page of novels.
// GET /api/v1/novels
func (s *Server) handleListNovels(w http.ResponseWriter, r *http.Request) {
	page, err := s.novelService.List(r.Context(), listOptions(r))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.List(w, page.Items, page.Total, page.Num, page.Limit, s.logger)
}

// handleGetNovel returns one novel by slug.
// GET /api/v1/novels/{slug}
func (s *Server) handleGetNovel(w http.ResponseWriter, r *http.Request) {
	novel, err := s.novelService.GetBySlug(r.Context(), chi.URLParam(r, "slug"), isAdmin(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Data(w, novel, s.logger)
}

// handleListChapters returns a novel's chapters in reading order.
// GET /api/v1/novels/{slug}/chapters
func (s *Server) handleListChapters(w http.ResponseWriter, r *http.Request) {
	admin := isAdmin(r.Context())
	novel, err := s.novelService.GetBySlug(r.Context(), chi.URLParam(r, "slug"), admin)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	chapters, err := s.novelService.ListChapters(r.Context(), novel.ID, admin)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Data(w, chapters, s.logger)
}

// handleGetChapter returns one chapter by novel slug and chapter number.
// GET /api/v1/novels/{slug}/chapters/{number}
func (s *Server) handleGetChapter(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.Atoi(chi.URLParam(r, "number"))
	if err != nil || number < 1 {
		response.BadRequest(w, "chapter number must be a positive integer", s.logger)
		return
	}

	chapter, err := s.novelService.GetChapter(r.Context(), chi.URLParam(r, "slug"), number, isAdmin(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Data(w, chapter, s.logger)
}

// handleCreateNovel creates a novel authored by the caller.
// POST /api/v1/admin/novels
func (s *Server) handleCreateNovel(w http.ResponseWriter, r *http.Request) {
	var req service.CreateNovelRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "invalid request body", s.logger)
		return
	}

	novel, err := s.novelService.Create(r.Context(), getClaims(r.Context()).UserID, req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, novel, s.logger)
}

// handleUpdateNovel applies a partial update.
// PATCH /api/v1/admin/novels/{id}
func (s *Server) handleUpdateNovel(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateNovelRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "invalid request body", s.logger)
		return
	}

	novel, err := s.novelService.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Data(w, novel, s.logger)
}

// handleDeleteNovel removes a novel and its chapters.
// DELETE /api/v1/admin/novels/{id}
func (s *Server) handleDeleteNovel(w http.ResponseWriter, r *http.Request) {
	if err := s.novelService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Message(w, "novel deleted", s.logger)
}

// handleCreateChapter appends a chapter to a novel.
// POST /api/v1/admin/novels/{id}/chapters
func (s *Server) handleCreateChapter(w http.ResponseWriter, r *http.Request) {
	var req service.CreateChapterRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "invalid request body", s.logger)
		return
	}

	chapter, err := s.novelService.AddChapter(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, chapter, s.logger)
}

// handleUpdateChapter applies a partial update to a chapter.
// PATCH /api/v1/admin/chapters/{id}
func (s *Server) handleUpdateChapter(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateChapterRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "invalid request body", s.logger)
		return
	}

	chapter, err := s.novelService.UpdateChapter(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Data(w, chapter, s.logger)
}

// handleDeleteChapter removes a chapter.
// DELETE /api/v1/admin/chapters/{id}
func (s *Server) handleDeleteChapter(w http.ResponseWriter, r *http.Request) {
	if err := s.novelService.DeleteChapter(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Message(w, "chapter deleted", s.logger)
}
