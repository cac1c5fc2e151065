package services

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/hogwarts/school/internal/pkg/apperrors"
	"github.com/hogwarts/school/internal/pkg/filestorage"
	"github.com/hogwarts/school/internal/pkg/logger"
)

// movedFile is a key whose previous content sits under aside. An empty aside
// means the key held nothing.
type movedFile struct {
	key   string
	aside string
}

// fileSwap tracks the avatar files moved aside during one metadata transaction.
type fileSwap struct {
	storage filestorage.FileStorage
	moved   []movedFile
}

func (fs *fileSwap) moveAside(ctx context.Context, filePath string) error {
	if filePath == "" {
		return nil
	}
	key := filepath.Base(filePath)
	aside, err := fs.storage.MoveAside(ctx, key)
	if err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrIOFailure, err)
	}
	fs.moved = append(fs.moved, movedFile{key: key, aside: aside})
	return nil
}

// rollback returns every key to what it held before, newest first. Keys that were
// empty are cleared again.
func (fs *fileSwap) rollback(ctx context.Context) {
	for i := len(fs.moved) - 1; i >= 0; i-- {
		m := fs.moved[i]
		var err error
		if m.aside == "" {
			err = fs.storage.Delete(ctx, m.key)
		} else {
			err = fs.storage.Restore(ctx, m.aside, m.key)
		}
		if err != nil {
			logger.Ctx(ctx).Error().Err(err).Str("key", m.key).Str("aside", m.aside).Msg("Failed to restore avatar file")
		}
	}
	fs.moved = nil
}

// purge deletes the aside copies. Failures leave unreferenced files for the sweep.
func (fs *fileSwap) purge(ctx context.Context) {
	for _, m := range fs.moved {
		if m.aside == "" {
			continue
		}
		if err := fs.storage.Delete(ctx, m.aside); err != nil {
			logger.Ctx(ctx).Warn().Err(err).Str("aside", m.aside).Msg("Failed to remove replaced avatar file")
		}
	}
	fs.moved = nil
}
