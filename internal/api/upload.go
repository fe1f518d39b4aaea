package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/nguyentantai21042004/meeting-minutes/internal/processor"
)

const uploadField = "audio"

// errTooLarge is returned when the body exceeds server.max_upload_mb.
var errTooLarge = errors.New("upload too large")

// saveUpload validates the uploaded file name and copies the file into the
// uploads dir under a random name that keeps the client's extension. The
// caller removes the returned path.
func (h *Handler) saveUpload(w http.ResponseWriter, r *http.Request) (path, filename string, err error) {
	r.Body = http.MaxBytesReader(w, r.Body, int64(h.config.Server.MaxUploadMB)<<20)

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return "", "", errTooLarge
		case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
			return "", "", processor.ErrNoAudio
		default:
			return "", "", fmt.Errorf("read upload: %w", err)
		}
	}
	defer file.Close()

	if header.Filename != "" {
		filename = filepath.Base(header.Filename)
	}
	if err := processor.Validate(filename); err != nil {
		return "", filename, err
	}

	if err := os.MkdirAll(h.config.Paths.Uploads, 0755); err != nil {
		return "", filename, fmt.Errorf("create uploads dir: %w", err)
	}

	path = filepath.Join(h.config.Paths.Uploads, uuid.NewString()+strings.ToLower(filepath.Ext(filename)))
	dst, err := os.Create(path)
	if err != nil {
		return "", filename, fmt.Errorf("create upload file: %w", err)
	}

	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		os.Remove(path)
		return "", filename, fmt.Errorf("save upload: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(path)
		return "", filename, fmt.Errorf("save upload: %w", err)
	}

	return path, filename, nil
}

func (h *Handler) removeUpload(r *http.Request, path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		h.logger.Warn(r.Context(), "Failed to cleanup upload %s: %v", path, err)
	}
}

// statusFor maps pipeline errors to HTTP status codes.
func statusFor(err error) int {
	var stageErr *processor.StageError
	switch {
	case processor.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, errTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &stageErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// messageFor is the user-facing text for err.
func messageFor(err error, maxUploadMB int) string {
	if errors.Is(err, errTooLarge) {
		return fmt.Sprintf("The file is larger than %d MB.", maxUploadMB)
	}
	return processor.UserMessage(err)
}
