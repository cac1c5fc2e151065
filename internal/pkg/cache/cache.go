// Package cache keeps avatar metadata and previews close to the handlers.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/hogwarts/school/internal/app/models"
)

var ErrCacheMiss = errors.New("cache miss")

// AvatarEntry is the cached form of an avatar. Unlike models.Avatar it serialises the preview.
type AvatarEntry struct {
	ID        int64  `json:"id"`
	StudentID int64  `json:"studentId"`
	FilePath  string `json:"filePath"`
	FileSize  int64  `json:"fileSize"`
	MediaType string `json:"mediaType"`
	Preview   []byte `json:"preview"`
}

// NewAvatarEntry converts an avatar owned by studentID into a cache entry.
func NewAvatarEntry(studentID int64, avatar *models.Avatar) *AvatarEntry {
	return &AvatarEntry{
		ID:        avatar.ID,
		StudentID: studentID,
		FilePath:  avatar.FilePath,
		FileSize:  avatar.FileSize,
		MediaType: avatar.MediaType,
		Preview:   avatar.Preview,
	}
}

// Avatar converts the entry back to the model.
func (e *AvatarEntry) Avatar() *models.Avatar {
	studentID := e.StudentID
	return &models.Avatar{
		ID:        e.ID,
		StudentID: &studentID,
		FilePath:  e.FilePath,
		FileSize:  e.FileSize,
		MediaType: e.MediaType,
		Preview:   e.Preview,
	}
}

type AvatarCache interface {
	Get(ctx context.Context, studentID int64) (*AvatarEntry, error)
	Set(ctx context.Context, entry *AvatarEntry, ttl time.Duration) error
	Delete(ctx context.Context, studentIDs ...int64) error
	Close() error
}
