// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/hex"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"inkpress/internal/imaging"
	"inkpress/internal/storage"
)

// maxUploadSize caps uploaded image files at 5 MiB.
const maxUploadSize = 5 << 20

// allowedExtensions lists the accepted image file extensions, matched
// case-insensitively against the original filename.
var allowedExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"gif":  true,
	"webp": true,
}

// mimeByExtension maps accepted extensions to the content type used when
// mirroring the file to object storage.
var mimeByExtension = map[string]string{
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
	"webp": "image/webp",
}

// Uploads groups the image upload and serving handlers.
type Uploads struct {
	dir     string
	storage *storage.Client
}

// NewUploads creates the uploads handler group writing into dir.
// storage may be nil, in which case files live only on the local disk.
func NewUploads(dir string, st *storage.Client) *Uploads {
	return &Uploads{dir: dir, storage: st}
}

// Upload accepts one multipart image in the "image" part, stores it under
// a random name with the original extension, and returns its public path.
// JPEG, PNG, and WebP uploads also get a JPEG thumbnail alongside.
func (h *Uploads) Upload(w http.ResponseWriter, r *http.Request) {
	// Slack for the multipart framing around the 5 MiB payload.
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1<<20)

	file, header, err := r.FormFile("image")
	if err != nil {
		handleError(w, r, failf(ErrValidation, "No image file provided"))
		return
	}
	defer file.Close()

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(header.Filename), "."))
	if !allowedExtensions[ext] {
		handleError(w, r, failf(ErrValidation, "Invalid file type"))
		return
	}

	payload, err := io.ReadAll(io.LimitReader(file, maxUploadSize+1))
	if err != nil {
		handleError(w, r, err)
		return
	}
	if len(payload) > maxUploadSize {
		handleError(w, r, failf(ErrValidation, "File too large"))
		return
	}

	id := uuid.New()
	filename := hex.EncodeToString(id[:]) + "." + ext

	if err := os.MkdirAll(h.dir, 0o755); err != nil {
		handleError(w, r, err)
		return
	}
	if err := os.WriteFile(filepath.Join(h.dir, filename), payload, 0o644); err != nil {
		handleError(w, r, err)
		return
	}

	response := map[string]any{
		"filename": filename,
		"url":      "/uploads/" + filename,
	}

	if ext != "gif" {
		if thumb, err := imaging.Thumbnail(payload, imaging.ThumbMaxWidth); err != nil {
			slog.Warn("thumbnail generation failed", "filename", filename, "error", err)
		} else if thumb != nil {
			thumbName := strings.TrimSuffix(filename, "."+ext) + "_thumb.jpg"
			if err := os.WriteFile(filepath.Join(h.dir, thumbName), thumb, 0o644); err != nil {
				slog.Warn("thumbnail write failed", "filename", thumbName, "error", err)
			} else {
				response["thumb_url"] = "/uploads/" + thumbName
				h.mirror(r, thumbName, "image/jpeg", thumb)
			}
		}
	}

	h.mirror(r, filename, mimeByExtension[ext], payload)

	slog.Info("image uploaded", "filename", filename, "size", len(payload))
	writeJSON(w, http.StatusOK, response)
}

// Serve streams a previously uploaded file from the uploads directory.
func (h *Uploads) Serve(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	if filename == "" || filename == "." || filename == ".." || filename != filepath.Base(filename) {
		handleError(w, r, failf(ErrNotFound, "File not found"))
		return
	}

	path := filepath.Join(h.dir, filename)
	if _, err := os.Stat(path); err != nil {
		handleError(w, r, failf(ErrNotFound, "File not found"))
		return
	}
	http.ServeFile(w, r, path)
}

// mirror pushes a file to object storage when it is configured. Mirror
// failures are logged but never fail the upload itself.
func (h *Uploads) mirror(r *http.Request, key, contentType string, data []byte) {
	if h.storage == nil {
		return
	}
	if err := h.storage.Upload(r.Context(), key, contentType, data); err != nil {
		slog.Warn("upload mirror failed", "key", key, "error", err)
	}
}
