package storage

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"golang.org/x/sync/singleflight"
)

const dirPerm = 0o755

// Resolver hands out the upload directory, creating it on first use.
//
// Concurrent first callers share a single creation attempt. A successful
// resolution is cached for the lifetime of the Resolver; a failed one is not,
// so the next call tries again (e.g. after an operator fixes permissions).
type Resolver struct {
	fs    afero.Fs
	dir   string
	ready atomic.Bool
	group singleflight.Group
}

// NewResolver creates a resolver for dir on the given filesystem.
// No filesystem access happens until the first call to Resolve.
func NewResolver(fs afero.Fs, dir string) *Resolver {
	return &Resolver{fs: fs, dir: dir}
}

// Dir returns the configured directory without touching the filesystem.
func (r *Resolver) Dir() string {
	return r.dir
}

// Resolve returns the storage directory, creating it with any missing parents
// if it does not exist yet. Failures wrap ErrUnavailable.
func (r *Resolver) Resolve(ctx context.Context) (string, error) {
	if r.ready.Load() {
		return r.dir, nil
	}

	ch := r.group.DoChan(r.dir, func() (interface{}, error) {
		if r.ready.Load() {
			return nil, nil
		}
		if err := r.ensureDir(); err != nil {
			return nil, err
		}
		r.ready.Store(true)
		return nil, nil
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return r.dir, nil
	}
}

func (r *Resolver) ensureDir() error {
	info, err := r.fs.Stat(r.dir)
	switch {
	case err == nil && info.IsDir():
		return nil
	case err == nil:
		return fmt.Errorf("%w: %s is not a directory", ErrUnavailable, r.dir)
	case !os.IsNotExist(err):
		log.Error().
			Err(err).
			Str("dir", r.dir).
			Msg("failed to stat upload directory")
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	// MkdirAll succeeds when another process created the directory in between.
	if err := r.fs.MkdirAll(r.dir, dirPerm); err != nil {
		log.Error().
			Err(err).
			Str("dir", r.dir).
			Msg("failed to create upload directory")
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	log.Info().
		Str("dir", r.dir).
		Msg("created upload directory")
	return nil
}
