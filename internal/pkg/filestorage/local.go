package filestorage

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hogwarts/school/internal/pkg/logger"
)

const copyBufferSize = 1024

// LocalStorage handles saving files to the local filesystem.
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a new LocalStorage instance rooted at basePath.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}

	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}
	logger.Info().Str("path", absPath).Msg("Local storage directory ensured")

	return &LocalStorage{basePath: absPath}, nil
}

// FullPath returns the full filesystem path for a key.
// Keys that would escape the base path collapse to the base path itself.
func (ls *LocalStorage) FullPath(key string) string {
	cleanKey := filepath.Clean(key)
	if cleanKey == ".." || strings.HasPrefix(cleanKey, ".."+string(os.PathSeparator)) || filepath.IsAbs(cleanKey) {
		cleanKey = filepath.Base(cleanKey)
		if cleanKey == ".." || cleanKey == string(os.PathSeparator) {
			cleanKey = ""
		}
	}
	return filepath.Join(ls.basePath, cleanKey)
}

// Stage streams r into a temporary file in the storage directory.
func (ls *LocalStorage) Stage(ctx context.Context, r io.Reader) (*StagedFile, error) {
	// the directory may have been removed since startup
	if err := os.MkdirAll(ls.basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(ls.basePath, TempPrefix+"*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			_ = os.Remove(tmpPath)
		}
	}()

	in := bufio.NewReaderSize(r, copyBufferSize)
	out := bufio.NewWriterSize(tmpFile, copyBufferSize)

	written, err := io.Copy(out, in)
	if err != nil {
		tmpFile.Close()
		return nil, fmt.Errorf("failed to write content: %w", err)
	}
	if err := out.Flush(); err != nil {
		tmpFile.Close()
		return nil, fmt.Errorf("failed to flush content: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return nil, fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	success = true
	logger.Ctx(ctx).Debug().Str("path", tmpPath).Int64("size", written).Msg("Upload staged")
	return &StagedFile{Path: tmpPath, Size: written}, nil
}

// OpenStaged reopens a staged file for reading.
func (ls *LocalStorage) OpenStaged(staged *StagedFile) (io.ReadCloser, error) {
	if staged == nil {
		return nil, fmt.Errorf("nothing staged")
	}
	f, err := os.Open(staged.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open staged file: %w", err)
	}
	return f, nil
}

// Commit renames the staged file onto key. An existing file at key is replaced.
func (ls *LocalStorage) Commit(staged *StagedFile, key string) (string, error) {
	if staged == nil {
		return "", fmt.Errorf("nothing staged")
	}

	dst := ls.FullPath(key)
	if err := os.Rename(staged.Path, dst); err != nil {
		return "", fmt.Errorf("failed to move staged file to %s: %w", dst, err)
	}
	return dst, nil
}

// MoveAside renames the file at key to a unique aside key in the same directory.
func (ls *LocalStorage) MoveAside(ctx context.Context, key string) (string, error) {
	src := ls.FullPath(key)
	if src == ls.basePath {
		return "", fmt.Errorf("invalid file key: %s", key)
	}

	aside := AsidePrefix + uuid.NewString() + "-" + filepath.Base(src)
	dst := ls.FullPath(aside)
	if err := os.Rename(src, dst); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to move %s aside: %w", src, err)
	}
	// the sweep ages files by mtime; a fresh one keeps it off a file still in flight
	now := time.Now()
	if err := os.Chtimes(dst, now, now); err != nil {
		logger.Ctx(ctx).Warn().Err(err).Str("aside", aside).Msg("Failed to touch aside file")
	}

	logger.Ctx(ctx).Debug().Str("path", src).Str("aside", aside).Msg("File moved aside")
	return aside, nil
}

// Restore renames an aside file back onto key.
func (ls *LocalStorage) Restore(ctx context.Context, aside, key string) error {
	if !strings.HasPrefix(aside, AsidePrefix) {
		return fmt.Errorf("invalid aside key: %s", aside)
	}

	dst := ls.FullPath(key)
	if err := os.Rename(ls.FullPath(aside), dst); err != nil {
		return fmt.Errorf("failed to restore %s: %w", dst, err)
	}

	logger.Ctx(ctx).Debug().Str("path", dst).Msg("File restored")
	return nil
}

// Discard removes a staged file.
func (ls *LocalStorage) Discard(staged *StagedFile) {
	if staged == nil {
		return
	}
	if err := os.Remove(staged.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn().Err(err).Str("path", staged.Path).Msg("Failed to discard staged file")
	}
}

// Open retrieves content for the given key.
func (ls *LocalStorage) Open(ctx context.Context, key string) (io.ReadCloser, int64, error) {
	path := ls.FullPath(key)

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, 0, fmt.Errorf("%w: %s", ErrFileNotFound, key)
		}
		return nil, 0, fmt.Errorf("failed to open file: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, 0, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		file.Close()
		return nil, 0, fmt.Errorf("%w: %s", ErrFileNotFound, key)
	}

	return file, info.Size(), nil
}

// Delete removes a file from the storage filesystem.
// Returns nil if deletion is successful or if the file doesn't exist.
func (ls *LocalStorage) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}

	path := ls.FullPath(key)
	if path == ls.basePath {
		return fmt.Errorf("invalid file key: %s", key)
	}

	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Ctx(ctx).Warn().Str("path", path).Msg("File to delete does not exist")
			return nil
		}
		logger.Ctx(ctx).Error().Err(err).Str("path", path).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Ctx(ctx).Info().Str("path", path).Msg("File deleted successfully")
	return nil
}

// List returns the committed files directly under the base path. Staged files are skipped.
func (ls *LocalStorage) List(ctx context.Context) ([]FileInfo, error) {
	entries, err := os.ReadDir(ls.basePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []FileInfo{}, nil
		}
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	files := make([]FileInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), TempPrefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			// removed between ReadDir and Info
			continue
		}
		files = append(files, FileInfo{
			Key:          entry.Name(),
			Size:         info.Size(),
			LastModified: info.ModTime(),
		})
	}

	return files, nil
}

// BasePath returns the absolute storage directory.
func (ls *LocalStorage) BasePath() string {
	return ls.basePath
}
