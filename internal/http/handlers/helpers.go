package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"jobboard/internal/common"
	"jobboard/internal/storage"
)

const maxUploadBytes = 5 << 20

var (
	imageExts  = map[string]bool{".png": true, ".jpg": true, ".jpeg": true, ".svg": true, ".webp": true}
	resumeExts = map[string]bool{".pdf": true, ".doc": true, ".docx": true}
)

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(v); err != nil {
		return common.NewError(common.CodeValidation, "invalid request body", err)
	}
	return nil
}

func errUnauthorized() error {
	return common.NewError(common.CodeUnauthorized, "Unauthorized", nil)
}

// pathSuffix returns the path segment after the given prefix, e.g. the job id
// in /api/jobs/apply/{id}.
func pathSuffix(r *http.Request, prefix string) (string, error) {
	value := strings.TrimPrefix(r.URL.Path, prefix)
	value = strings.Trim(value, "/")
	if value == "" || strings.Contains(value, "/") {
		return "", common.NewValidationError("invalid request path", nil)
	}
	return value, nil
}

func jobIDFromPath(r *http.Request, prefix string) (common.UUID, error) {
	raw, err := pathSuffix(r, prefix)
	if err != nil {
		return "", err
	}
	id, err := common.ParseUUID(raw)
	if err != nil {
		return "", common.NewValidationError("invalid request", map[string]string{"id": "invalid job id"})
	}
	return id, nil
}

// formFile extracts and validates one multipart upload. A missing part is
// not an error; the caller decides whether the file is required.
func formFile(r *http.Request, field string, allowedExts map[string]bool) (*storage.Upload, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			// a bare POST without a file part is fine where the file is
			// optional
			return nil, nil
		}
		return nil, common.NewError(common.CodeValidation, "invalid multipart request", err)
	}
	file, header, err := r.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, nil
		}
		return nil, common.NewError(common.CodeValidation, "invalid file upload", err)
	}
	if header.Size > maxUploadBytes {
		_ = file.Close()
		return nil, common.NewError(common.CodeValidation, "file exceeds 5MB limit", nil)
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExts[ext] {
		_ = file.Close()
		return nil, common.NewError(common.CodeValidation, "unsupported file type", nil)
	}
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return &storage.Upload{Name: header.Filename, ContentType: contentType, Body: file}, nil
}
