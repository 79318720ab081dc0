package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/banglakobita/kobita-server/internal/http/response"
	"github.com/banglakobita/kobita-server/internal/service"
)

// handleListTracks returns a page of tracks.
// GET /api/v1/music/tracks
func (s *Server) handleListTracks(w http.ResponseWriter, r *http.Request) {
	page, err := s.musicService.ListTracks(r.Context(), listOptions(r))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.List(w, page.Items, page.Total, page.Num, page.Limit, s.logger)
}

// handleGetTrack returns one track by slug.
// GET /api/v1/music/tracks/{slug}
func (s *Server) handleGetTrack(w http.ResponseWriter, r *http.Request) {
	track, err := s.musicService.GetTrackBySlug(r.Context(), chi.URLParam(r, "slug"), isAdmin(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Data(w, track, s.logger)
}

// handleRecordPlay counts one play of a track.
// POST /api/v1/music/tracks/{slug}/play
func (s *Server) handleRecordPlay(w http.ResponseWriter, r *http.Request) {
	if err := s.musicService.RecordPlay(r.Context(), chi.URLParam(r, "slug")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Message(w, "play recorded", s.logger)
}

// handleListAlbums returns every album.
// GET /api/v1/music/albums
func (s *Server) handleListAlbums(w http.ResponseWriter, r *http.Request) {
	albums, err := s.musicService.ListAlbums(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Data(w, albums, s.logger)
}

// handleGetAlbum returns one album with its track listing.
// GET /api/v1/music/albums/{slug}
func (s *Server) handleGetAlbum(w http.ResponseWriter, r *http.Request) {
	album, err := s.musicService.GetAlbumBySlug(r.Context(), chi.URLParam(r, "slug"), isAdmin(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Data(w, album, s.logger)
}

// handleCreateTrack creates a track.
// POST /api/v1/admin/music/tracks
func (s *Server) handleCreateTrack(w http.ResponseWriter, r *http.Request) {
	var req service.CreateTrackRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "invalid request body", s.logger)
		return
	}

	track, err := s.musicService.CreateTrack(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, track, s.logger)
}

// handleUpdateTrack applies a partial update to a track.
// PATCH /api/v1/admin/music/tracks/{id}
func (s *Server) handleUpdateTrack(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateTrackRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "invalid request body", s.logger)
		return
	}

	track, err := s.musicService.UpdateTrack(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Data(w, track, s.logger)
}

// handleDeleteTrack removes a track.
// DELETE /api/v1/admin/music/tracks/{id}
func (s *Server) handleDeleteTrack(w http.ResponseWriter, r *http.Request) {
	if err := s.musicService.DeleteTrack(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Message(w, "track deleted", s.logger)
}

// handleCreateAlbum creates an album.
// POST /api/v1/admin/music/albums
func (s *Server) handleCreateAlbum(w http.ResponseWriter, r *http.Request) {
	var req service.CreateAlbumRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "invalid request body", s.logger)
		return
	}

	album, err := s.musicService.CreateAlbum(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, album, s.logger)
}

// handleUpdateAlbum applies a partial update to an album.
// PATCH /api/v1/admin/music/albums/{id}
func (s *Server) handleUpdateAlbum(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateAlbumRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "invalid request body", s.logger)
		return
	}

	album, err := s.musicService.UpdateAlbum(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Data(w, album, s.logger)
}

// handleDeleteAlbum removes an album, leaving its tracks in place.
// DELETE /api/v1/admin/music/albums/{id}
func (s *Server) handleDeleteAlbum(w http.ResponseWriter, r *http.Request) {
	if err := s.musicService.DeleteAlbum(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Message(w, "album deleted", s.logger)
}
