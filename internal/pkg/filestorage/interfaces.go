package filestorage

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrFileNotFound is returned when a key has no file behind it.
var ErrFileNotFound = errors.New("file not found")

// TempPrefix marks staged files that have not been committed yet.
const TempPrefix = ".tmp-"

// AsidePrefix marks committed files moved out of the way until a metadata
// transaction settles. Leftovers are unreferenced and fall to the sweep.
const AsidePrefix = ".aside-"

// FileInfo represents information about a stored file
type FileInfo struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// StagedFile is an uploaded payload written to a temporary file next to its final destination.
type StagedFile struct {
	Path string
	Size int64
}

// FileStorage defines the interface for file storage operations
type FileStorage interface {
	// Stage streams r into a temporary file inside the storage directory.
	Stage(ctx context.Context, r io.Reader) (*StagedFile, error)

	// OpenStaged reopens a staged file for reading.
	OpenStaged(staged *StagedFile) (io.ReadCloser, error)

	// Commit moves a staged file to key, replacing any existing file, and returns the full path.
	Commit(staged *StagedFile, key string) (string, error)

	// Discard removes a staged file that will not be committed.
	Discard(staged *StagedFile)

	// Open returns a reader for key and its size.
	Open(ctx context.Context, key string) (io.ReadCloser, int64, error)

	// MoveAside renames key to a fresh aside key and returns it. An empty aside key
	// means there was no file at key.
	MoveAside(ctx context.Context, key string) (string, error)

	// Restore moves an aside file back onto key, replacing any file there.
	Restore(ctx context.Context, aside, key string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// List returns every committed file in the storage directory.
	List(ctx context.Context) ([]FileInfo, error)

	// FullPath returns the filesystem path for key.
	FullPath(key string) string
}
