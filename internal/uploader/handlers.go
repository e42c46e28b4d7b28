package uploader

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"regexp"
	"strings"

	"postboard-go/internal/common/response"
	"postboard-go/internal/storage"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// multipartOverhead leaves room for part headers and boundaries on top of
// the file size ceiling.
const multipartOverhead = 64 << 10

var storedNamePattern = regexp.MustCompile(`^[0-9]+-[0-9]+(\.[A-Za-z0-9]+)?$`)

type Handler struct {
	pipeline *Pipeline
	field    string
}

func NewHandler(pipeline *Pipeline, field string) *Handler {
	return &Handler{
		pipeline: pipeline,
		field:    field,
	}
}

// Receive streams the file part named after the configured form field
// through the pipeline. Parts before it are skipped, parts after it are
// never read.
func (h *Handler) Receive(w http.ResponseWriter, r *http.Request) (*StoredFile, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.pipeline.MaxSize()+multipartOverhead)

	mr, err := r.MultipartReader()
	if err != nil {
		return nil, newUploadError(ErrNoFile, "Expected a multipart/form-data request", err)
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return nil, newUploadError(ErrNoFile, "No file provided", nil)
		}
		if err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				return nil, h.pipeline.tooLarge(err)
			}
			return nil, newUploadError(ErrIncompleteUpload, "Malformed multipart body", err)
		}

		if part.FormName() != h.field || part.FileName() == "" {
			closePart(part)
			continue
		}

		file, err := h.pipeline.Handle(r.Context(), Descriptor{
			MediaType: part.Header.Get("Content-Type"),
			Filename:  part.FileName(),
			Size:      -1,
		}, part)
		closePart(part)
		return file, err
	}
}

// Discard removes a file returned by Receive
func (h *Handler) Discard(file *StoredFile) error {
	return h.pipeline.Remove(file)
}

// DiscardPath removes a previously stored file by its public path.
// Paths that were not produced by the pipeline are ignored.
func (h *Handler) DiscardPath(path string) error {
	name, ok := strings.CutPrefix(path, URLPrefix)
	if !ok || !storedNamePattern.MatchString(name) {
		return nil
	}
	return h.pipeline.Remove(&StoredFile{Filename: name, Dir: h.pipeline.resolver.Dir()})
}

func closePart(part *multipart.Part) {
	if err := part.Close(); err != nil {
		log.Debug().
			Err(err).
			Str("field", part.FormName()).
			Msg("closing multipart part")
	}
}

// HandleServeFile serves a stored file by its generated name
func (h *Handler) HandleServeFile(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "filename")
	if !storedNamePattern.MatchString(name) {
		response.Error(w, http.StatusNotFound, response.CodeNotFound, "File not found")
		return
	}

	f, err := h.pipeline.Open(name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			response.Error(w, http.StatusNotFound, response.CodeNotFound, "File not found")
			return
		}
		response.InternalError(w, err, "opening stored file")
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Error().
				Err(err).
				Str("filename", name).
				Msg("failed to close stored file")
		}
	}()

	info, err := f.Stat()
	if err != nil {
		response.InternalError(w, err, "stat stored file")
		return
	}

	mtype, err := mimetype.DetectReader(f)
	if err != nil {
		response.InternalError(w, err, "detecting content type")
		return
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		response.InternalError(w, err, "rewinding stored file")
		return
	}

	w.Header().Set("Content-Type", mtype.String())
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Cache-Control", "public, max-age=86400, immutable")
	http.ServeContent(w, r, name, info.ModTime(), f)
}

// WriteError answers with the client-safe message of an upload error
func WriteError(w http.ResponseWriter, err error) {
	var uerr *UploadError
	if !errors.As(err, &uerr) {
		response.InternalError(w, err, "upload")
		return
	}

	status := StatusCode(err)
	event := log.Warn()
	if status >= http.StatusInternalServerError {
		event = log.Error()
	}
	event.
		Err(uerr.Cause()).
		Str("code", uerr.Code).
		Int("status", status).
		Msg("upload rejected")

	response.Error(w, status, uerr.Code, uerr.Message)
}
