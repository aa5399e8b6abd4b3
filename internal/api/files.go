package api

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mkovac/armory/internal/imaging"
)

// FilesHandler stores uploaded files and serves them back under /uploads/.
type FilesHandler struct {
	Dir string
}

// maxUploadBytes limits upload size to 10 MB.
const maxUploadBytes = 10 << 20

// Upload handles POST /api/files/upload. Images are normalized (downscaled,
// re-encoded as JPEG) before storage; other files are stored as-is.
func (h *FilesHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to read file")
		return
	}

	name := sanitizeFilename(header.Filename)
	if imaging.IsImage(data) {
		data, err = imaging.Normalize(bytes.NewReader(data))
		if err != nil {
			jsonError(w, http.StatusBadRequest, err.Error())
			return
		}
		name = strings.TrimSuffix(name, filepath.Ext(name)) + ".jpg"
	}

	name = fmt.Sprintf("%d_%s", time.Now().UnixMilli(), name)
	if err := os.WriteFile(filepath.Join(h.Dir, name), data, 0644); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to store file")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"url": "/uploads/" + name})
}

// sanitizeFilename strips path components and characters that would not
// survive a URL round trip.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
