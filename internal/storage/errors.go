package storage

import "errors"

var (
	ErrUnavailable = errors.New("storage directory unavailable")
	ErrWriteFailed = errors.New("storage write failed")
	ErrNotFound    = errors.New("stored file not found")
	ErrExists      = errors.New("stored file already exists")
)
