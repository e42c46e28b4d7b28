package uploader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"postboard-go/internal/config"
	"postboard-go/internal/storage"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// Pipeline accepts one file per call: validate, pick the directory and the
// name, then stream the bytes to disk. It is safe for concurrent use.
type Pipeline struct {
	validator *Validator
	resolver  *storage.Resolver
	generator *Generator
	store     *storage.DiskStore
	maxSize   int64
	timeout   time.Duration
}

type Option func(*Pipeline)

// WithGenerator replaces the default filename generator
func WithGenerator(g *Generator) Option {
	return func(p *Pipeline) {
		p.generator = g
	}
}

// NewPipeline wires the pipeline to fs. The storage directory is not touched
// until the first upload.
func NewPipeline(cfg config.UploadConfig, fs afero.Fs, opts ...Option) *Pipeline {
	p := &Pipeline{
		validator: NewValidator(cfg.AllowedTypes, cfg.AllowedExtensions),
		resolver:  storage.NewResolver(fs, cfg.Dir),
		generator: NewGenerator(),
		store:     storage.NewDiskStore(fs),
		maxSize:   cfg.MaxSize,
		timeout:   cfg.Timeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Handle validates d and writes body under a generated name.
// All failures are *UploadError values; a failed call leaves nothing behind
// under the final name.
func (p *Pipeline) Handle(ctx context.Context, d Descriptor, body io.Reader) (*StoredFile, error) {
	start := time.Now()

	file, err := p.handle(ctx, d, body)

	uploadsTotal.WithLabelValues(outcomeOf(err)).Inc()
	uploadDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}
	uploadedBytesTotal.Add(float64(file.Size))

	log.Info().
		Str("filename", file.Filename).
		Int64("size", file.Size).
		Dur("duration", time.Since(start)).
		Msg("upload stored")
	return file, nil
}

func (p *Pipeline) handle(ctx context.Context, d Descriptor, body io.Reader) (*StoredFile, error) {
	if err := p.validator.Validate(d); err != nil {
		return nil, err
	}
	if d.Size > p.maxSize {
		return nil, p.tooLarge(nil)
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	dir, err := p.resolver.Resolve(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, timeoutError(ctx.Err())
		}
		return nil, newUploadError(ErrStorageUnavailable, "File storage is unavailable", err)
	}

	name := p.generator.Generate(d.Filename)
	sink, err := p.store.Create(dir, name)
	if err != nil {
		return nil, newUploadError(ErrStorageWriteFailed, "Failed to store file", err)
	}

	// One byte past the limit is enough to tell an oversized upload apart.
	src := io.LimitReader(&contextReader{ctx: ctx, r: body}, p.maxSize+1)
	written, err := io.Copy(sink, src)
	if err == nil && written > p.maxSize {
		err = errTooLarge
	}
	if err != nil {
		if abortErr := sink.Abort(); abortErr != nil {
			log.Error().
				Err(abortErr).
				Str("filename", name).
				Msg("failed to discard partial upload")
		}
		return nil, p.classifyCopyError(ctx, err)
	}

	if err := sink.Finalize(); err != nil {
		return nil, newUploadError(ErrStorageWriteFailed, "Failed to store file", err)
	}

	return &StoredFile{
		Filename:  name,
		Dir:       dir,
		Extension: strings.ToLower(filepath.Ext(name)),
		Size:      written,
		Path:      URLPrefix + name,
	}, nil
}

var errTooLarge = errors.New("size limit exceeded")

func (p *Pipeline) classifyCopyError(ctx context.Context, err error) *UploadError {
	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.Is(err, errTooLarge), errors.As(err, &maxBytesErr):
		return p.tooLarge(err)
	case ctx.Err() != nil:
		return timeoutError(ctx.Err())
	case errors.Is(err, storage.ErrWriteFailed):
		return newUploadError(ErrStorageWriteFailed, "Failed to store file", err)
	default:
		return newUploadError(ErrIncompleteUpload, "Upload was interrupted", err)
	}
}

func (p *Pipeline) tooLarge(cause error) *UploadError {
	return newUploadError(ErrPayloadTooLarge,
		fmt.Sprintf("File too large. Maximum size is %s", humanize.IBytes(uint64(p.maxSize))),
		cause)
}

func timeoutError(cause error) *UploadError {
	return newUploadError(ErrUploadTimeout, "Upload timed out", cause)
}

// CheckStorage resolves the storage directory ahead of the first upload.
// A failure is not cached, so later uploads retry.
func (p *Pipeline) CheckStorage(ctx context.Context) error {
	if _, err := p.resolver.Resolve(ctx); err != nil {
		return newUploadError(ErrStorageUnavailable, "File storage is unavailable", err)
	}
	return nil
}

// MaxSize returns the configured ceiling in bytes
func (p *Pipeline) MaxSize() int64 {
	return p.maxSize
}

// Open opens a stored file by name for reading
func (p *Pipeline) Open(name string) (afero.File, error) {
	return p.store.Open(p.resolver.Dir(), name)
}

// Remove deletes a stored file, e.g. when persisting its path failed
func (p *Pipeline) Remove(file *StoredFile) error {
	return p.store.Remove(file.Dir, file.Filename)
}

// contextReader stops reading once ctx is done
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *contextReader) Read(b []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(b)
}
