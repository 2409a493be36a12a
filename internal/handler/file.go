package handler

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"studymate/internal/config"
	"studymate/internal/domain"
	"studymate/internal/domain/models"
	"studymate/internal/domain/services"
	"studymate/internal/httputil"
)

// downloadURLExpiry bounds how long a presigned download link stays valid
const downloadURLExpiry = 15 * time.Minute

// FileHandler handles file HTTP requests
type FileHandler struct {
	fileService services.FileService
	logger      *slog.Logger
}

// NewFileHandler creates a new file handler
func NewFileHandler(fileService services.FileService, logger *slog.Logger) *FileHandler {
	return &FileHandler{
		fileService: fileService,
		logger:      logger,
	}
}

// UploadFile uploads a file into a course
// POST /api/files (multipart/form-data: file, course_id, folder_id?)
func (h *FileHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	r.Body = http.MaxBytesReader(w, r.Body, config.MaxUploadBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			httputil.RespondError(w, http.StatusRequestEntityTooLarge, "upload exceeds size limit")
			return
		}
		httputil.RespondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	part, header, err := r.FormFile("file")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "file part is required")
		return
	}
	defer part.Close()

	req := &services.UploadFileRequest{
		CourseID:    r.FormValue("course_id"),
		UploaderID:  userID,
		Name:        header.Filename,
		ContentType: partContentType(header),
		SizeBytes:   header.Size,
		Content:     part,
	}
	if v := r.FormValue("folder_id"); v != "" {
		req.FolderID = &v
	}
	if v := r.FormValue("name"); v != "" {
		req.Name = v
	}

	file, err := h.fileService.Upload(r.Context(), req)
	if err != nil {
		HandleCreateConflict(w, err, func() (*models.File, error) {
			var conflictErr *domain.ConflictError
			if errors.As(err, &conflictErr) {
				return h.fileService.GetFile(r.Context(), userID, conflictErr.ResourceID)
			}
			return nil, err
		})
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, file)
}

// GetFile retrieves a file record
// GET /api/files/{id}
func (h *FileHandler) GetFile(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "file ID is required")
		return
	}

	file, err := h.fileService.GetFile(r.Context(), userID, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, file)
}

// DownloadFile returns a short-lived URL for the file's bytes
// GET /api/files/{id}/download
func (h *FileHandler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "file ID is required")
		return
	}

	url, err := h.fileService.DownloadURL(r.Context(), userID, id, downloadURLExpiry)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"url": url})
}

// DeleteFile deletes a file
// DELETE /api/files/{id}
func (h *FileHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "file ID is required")
		return
	}

	if err := h.fileService.DeleteFile(r.Context(), userID, id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// partContentType extracts the declared content type of an uploaded part.
// Browsers always send one; curl may not, so fall back to octet-stream and
// let the extension-based lookup decide.
func partContentType(header *multipart.FileHeader) string {
	if ct := header.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
