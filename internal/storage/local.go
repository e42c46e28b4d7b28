package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const filePerm = 0o644

// DiskStore writes files into a flat directory on a (possibly virtual) filesystem.
type DiskStore struct {
	fs afero.Fs
}

func NewDiskStore(fs afero.Fs) *DiskStore {
	return &DiskStore{fs: fs}
}

// Create opens a sink for dir/name. Bytes go to a partial file next to the
// final path and are renamed into place by Finalize.
func (d *DiskStore) Create(dir, name string) (FileSink, error) {
	if name == "" || name != filepath.Base(name) {
		return nil, fmt.Errorf("%w: invalid file name %q", ErrWriteFailed, name)
	}

	finalPath := filepath.Join(dir, name)
	partPath := finalPath + PartialSuffix

	f, err := d.fs.OpenFile(partPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePerm)
	if err != nil {
		return nil, fmt.Errorf("%w: creating %s: %v", ErrWriteFailed, partPath, err)
	}

	return &diskSink{
		fs:        d.fs,
		file:      f,
		partPath:  partPath,
		finalPath: finalPath,
	}, nil
}

// Open opens a stored file for reading. The caller must close it.
func (d *DiskStore) Open(dir, name string) (afero.File, error) {
	if !isStoredName(name) {
		return nil, ErrNotFound
	}
	f, err := d.fs.Open(filepath.Join(dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("opening stored file: %w", err)
	}
	return f, nil
}

// Remove deletes a stored file. Missing files are not an error.
func (d *DiskStore) Remove(dir, name string) error {
	if !isStoredName(name) {
		return ErrNotFound
	}
	err := d.fs.Remove(filepath.Join(dir, name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing stored file: %w", err)
	}
	return nil
}

// Exists reports whether a stored file is present.
func (d *DiskStore) Exists(dir, name string) (bool, error) {
	return afero.Exists(d.fs, filepath.Join(dir, name))
}

// ListPartials returns the partial files in dir.
func (d *DiskStore) ListPartials(dir string) ([]FileInfo, error) {
	entries, err := afero.ReadDir(d.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("reading upload directory: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), PartialSuffix) {
			continue
		}
		files = append(files, FileInfo{
			Name:         e.Name(),
			Size:         e.Size(),
			ModifiedTime: e.ModTime(),
		})
	}
	return files, nil
}

// RemovePartials deletes partial files last modified before cutoff and
// returns how many were removed.
func (d *DiskStore) RemovePartials(dir string, cutoff time.Time) (int, error) {
	partials, err := d.ListPartials(dir)
	if err != nil {
		return 0, err
	}

	var removed int
	for _, p := range partials {
		if !p.ModifiedTime.Before(cutoff) {
			continue
		}
		if err := d.fs.Remove(filepath.Join(dir, p.Name)); err != nil && !os.IsNotExist(err) {
			log.Error().
				Err(err).
				Str("file", p.Name).
				Msg("failed to remove stale partial file")
			continue
		}
		removed++
	}
	return removed, nil
}

// isStoredName rejects anything that could escape the directory or address a partial file.
func isStoredName(name string) bool {
	return name != "" &&
		name == filepath.Base(name) &&
		!strings.HasPrefix(name, ".") &&
		!strings.HasSuffix(name, PartialSuffix)
}

type diskSink struct {
	fs        afero.Fs
	file      afero.File
	partPath  string
	finalPath string
	done      bool
}

func (s *diskSink) Write(p []byte) (int, error) {
	if s.done {
		return 0, fmt.Errorf("%w: sink already closed", ErrWriteFailed)
	}
	n, err := s.file.Write(p)
	if err != nil {
		return n, fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	return n, nil
}

// Finalize syncs the partial file and renames it to the final name. An
// existing final file is reported as ErrExists. The check and the rename are
// not atomic: a file created in between is replaced, since afero offers no
// rename that refuses to overwrite.
func (s *diskSink) Finalize() error {
	if s.done {
		return fmt.Errorf("%w: sink already closed", ErrWriteFailed)
	}
	s.done = true

	if err := s.file.Sync(); err != nil {
		s.discard()
		return fmt.Errorf("%w: sync: %v", ErrWriteFailed, err)
	}
	if err := s.file.Close(); err != nil {
		s.removePartial()
		return fmt.Errorf("%w: close: %v", ErrWriteFailed, err)
	}

	exists, err := afero.Exists(s.fs, s.finalPath)
	if err != nil {
		s.removePartial()
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	if exists {
		s.removePartial()
		return fmt.Errorf("%w: %s", ErrExists, filepath.Base(s.finalPath))
	}

	if err := s.fs.Rename(s.partPath, s.finalPath); err != nil {
		s.removePartial()
		return fmt.Errorf("%w: rename: %v", ErrWriteFailed, err)
	}
	return nil
}

func (s *diskSink) Abort() error {
	if s.done {
		return nil
	}
	s.done = true
	return s.discard()
}

func (s *diskSink) discard() error {
	if err := s.file.Close(); err != nil {
		log.Debug().
			Err(err).
			Str("file", s.partPath).
			Msg("closing partial file")
	}
	return s.removePartial()
}

func (s *diskSink) removePartial() error {
	if err := s.fs.Remove(s.partPath); err != nil && !os.IsNotExist(err) {
		log.Error().
			Err(err).
			Str("file", s.partPath).
			Msg("failed to remove partial file")
		return fmt.Errorf("removing partial file: %w", err)
	}
	return nil
}
