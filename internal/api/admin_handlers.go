package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/banglakobita/kobita-server/internal/http/response"
	"github.com/banglakobita/kobita-server/internal/service"
)

// handleGetStats returns catalog totals for the dashboard.
// GET /api/v1/admin/stats
func (s *Server) handleGetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.statsService.ContentStats(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Data(w, stats, s.logger)
}

// handleListUsers returns every account.
// GET /api/v1/admin/users
func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.authService.ListUsers(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Data(w, users, s.logger)
}

// handleUpdateUser changes an account's role, active flag or profile.
// PATCH /api/v1/admin/users/{id}
func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "invalid request body", s.logger)
		return
	}

	actorID := getClaims(r.Context()).UserID
	user, err := s.authService.UpdateUser(r.Context(), actorID, chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Data(w, user, s.logger)
}
