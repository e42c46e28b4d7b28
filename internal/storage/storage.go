package storage

import (
	"io"
	"time"
)

// PartialSuffix marks files that are still being written.
const PartialSuffix = ".part"

type FileInfo struct {
	Name         string
	Size         int64
	ModifiedTime time.Time
}

// FileSink receives the bytes of one file.
//
// Data written to a sink is not visible under its final name until Finalize
// succeeds. Abort discards everything written so far; calling Abort after
// Finalize, or twice, is a no-op.
type FileSink interface {
	io.Writer

	// Finalize flushes the data and publishes the file under its final name
	Finalize() error

	// Abort discards the partially written file
	Abort() error
}
