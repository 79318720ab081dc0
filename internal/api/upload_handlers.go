package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/banglakobita/kobita-server/internal/http/response"
)

// handleUpload stores a file from a multipart form under the field "file".
// POST /api/v1/admin/uploads
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.uploadService.MaxBytes()+(1<<20))

	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "multipart form must carry a \"file\" field", s.logger)
		return
	}
	defer file.Close()

	result, err := s.uploadService.Save(r.Context(), header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, result, s.logger)
}

// handleDeleteUpload removes a stored file.
// DELETE /api/v1/admin/uploads/{filename}
func (s *Server) handleDeleteUpload(w http.ResponseWriter, r *http.Request) {
	if err := s.uploadService.Delete(chi.URLParam(r, "filename")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Message(w, "file deleted", s.logger)
}
