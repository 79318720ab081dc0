package api

import (
	"net/http"

	"github.com/banglakobita/kobita-server/internal/http/response"
	"github.com/banglakobita/kobita-server/internal/service"
)

// handleRegister creates a new account and returns a bearer token.
// POST /api/v1/auth/register
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "invalid request body", s.logger)
		return
	}

	resp, err := s.authService.Register(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, resp, s.logger)
}

// handleLogin authenticates a user and returns a bearer token.
// POST /api/v1/auth/login
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "invalid request body", s.logger)
		return
	}
	req.ClientIP = r.RemoteAddr

	resp, err := s.authService.Login(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Data(w, resp, s.logger)
}

// handleVerify returns the account behind the presented token.
// GET /api/v1/auth/verify
func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r.Context())
	if claims == nil {
		response.Unauthorized(w, "authentication required", s.logger)
		return
	}

	user, err := s.authService.GetUser(r.Context(), claims.UserID)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Data(w, user, s.logger)
}
