package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hogwarts/school/internal/app/models"
	"github.com/hogwarts/school/internal/pkg/apperrors"
	"github.com/hogwarts/school/internal/pkg/cache"
	"github.com/hogwarts/school/internal/pkg/filestorage"
	"github.com/hogwarts/school/internal/pkg/helpers"
	"github.com/hogwarts/school/internal/pkg/logger"
	"github.com/hogwarts/school/internal/pkg/thumbnail"
	"golang.org/x/sync/singleflight"
)

const (
	defaultMediaType  = "application/octet-stream"
	cacheWriteTimeout = 2 * time.Second
	// sweepGracePeriod protects files that an in-flight upload has just committed
	// but whose row is not visible yet.
	sweepGracePeriod = time.Minute
)

// AvatarUpload is an incoming avatar payload.
type AvatarUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// AvatarConfig holds the avatar pipeline settings.
type AvatarConfig struct {
	MaxUploadSize int64
	CacheTTL      time.Duration
}

// SweepResult reports what the maintenance sweep removed.
type SweepResult struct {
	OrphanRowsRemoved  int
	OrphanFilesRemoved int
}

// AvatarService defines the interface for avatar operations
type AvatarService interface {
	AvatarLifecycle
	StoreAvatar(ctx context.Context, studentID int64, upload *AvatarUpload) (*models.Avatar, error)
	GetAvatar(ctx context.Context, studentID int64) (*models.Avatar, error)
	OpenAvatarFile(ctx context.Context, studentID int64) (io.ReadCloser, *models.Avatar, error)
	DeleteAvatar(ctx context.Context, studentID int64) error
	ListAvatars(ctx context.Context, page, size int) ([]*models.Avatar, int64, error)
	RemoveUnused(ctx context.Context) (*SweepResult, error)
}

// avatarServiceImpl implements the AvatarService interface
type avatarServiceImpl struct {
	avatarRepo  AvatarRepository
	studentRepo StudentRepository
	storage     filestorage.FileStorage
	cache       cache.AvatarCache
	config      AvatarConfig
	sf          singleflight.Group
	now         func() time.Time

	// generations counts invalidations per student so a lookup that raced
	// with one does not leave a stale cache entry behind.
	genMu       sync.Mutex
	generations map[int64]uint64
}

// NewAvatarService creates a new avatar service instance. A nil avatarCache disables caching.
func NewAvatarService(
	avatarRepo AvatarRepository,
	studentRepo StudentRepository,
	storage filestorage.FileStorage,
	avatarCache cache.AvatarCache,
	config AvatarConfig,
) AvatarService {
	if avatarCache == nil {
		avatarCache = cache.NoopAvatarCache{}
	}
	return &avatarServiceImpl{
		avatarRepo:  avatarRepo,
		studentRepo: studentRepo,
		storage:     storage,
		cache:       avatarCache,
		config:      config,
		now:         time.Now,
		generations: make(map[int64]uint64),
	}
}

// fileExtension returns the text after the last dot of filename.
func fileExtension(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		return ""
	}
	return filename[idx+1:]
}

func (s *avatarServiceImpl) tooLarge(size int64) error {
	return apperrors.NewCustomError(apperrors.ErrPayloadTooLarge,
		fmt.Sprintf("avatar is %d bytes, the limit is %d", size, s.config.MaxUploadSize)).
		WithDetails(map[string]interface{}{"size": size, "limit": s.config.MaxUploadSize})
}

// StoreAvatar validates the upload, writes the file, renders the preview and upserts
// the metadata. The file replacement happens inside the metadata transaction.
func (s *avatarServiceImpl) StoreAvatar(ctx context.Context, studentID int64, upload *AvatarUpload) (*models.Avatar, error) {
	log := logger.Ctx(ctx)

	if upload == nil || upload.Content == nil {
		return nil, fmt.Errorf("%w: avatar file is required", apperrors.ErrInvalidInput)
	}
	if studentID <= 0 {
		return nil, fmt.Errorf("%w: invalid student ID", apperrors.ErrInvalidInput)
	}
	if s.config.MaxUploadSize > 0 && upload.Size > s.config.MaxUploadSize {
		return nil, s.tooLarge(upload.Size)
	}

	ext := fileExtension(upload.Filename)
	if ext == "" {
		return nil, fmt.Errorf("%w: file %q has no extension", apperrors.ErrInvalidInput, upload.Filename)
	}
	format, err := thumbnail.FormatFor(ext)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrInvalidInput, err)
	}

	exists, err := s.studentRepo.StudentExists(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrStudentNotFound
	}

	content := upload.Content
	if s.config.MaxUploadSize > 0 {
		// one extra byte tells an oversized body apart from one that fits exactly
		content = io.LimitReader(content, s.config.MaxUploadSize+1)
	}

	staged, err := s.storage.Stage(ctx, content)
	if err != nil {
		log.Error().Err(err).Int64("studentID", studentID).Msg("Failed to stage avatar")
		return nil, fmt.Errorf("%w: %w", apperrors.ErrIOFailure, err)
	}
	committed := false
	defer func() {
		if !committed {
			s.storage.Discard(staged)
		}
	}()

	if s.config.MaxUploadSize > 0 && staged.Size > s.config.MaxUploadSize {
		return nil, s.tooLarge(staged.Size)
	}

	preview, err := s.renderPreview(staged, format)
	if err != nil {
		return nil, err
	}

	mediaType := strings.TrimSpace(upload.ContentType)
	if mediaType == "" {
		mediaType = defaultMediaType
	}

	key := fmt.Sprintf("%d.%s", studentID, ext)
	avatar := &models.Avatar{
		StudentID: &studentID,
		FilePath:  s.storage.FullPath(key),
		FileSize:  staged.Size,
		MediaType: mediaType,
		Preview:   preview,
	}

	err = s.WithFileRemoval(ctx, func(remove func(string) error) error {
		return s.avatarRepo.UpsertAvatar(ctx, avatar, func(previousPath string) error {
			if previousPath != "" && previousPath != avatar.FilePath {
				if err := remove(previousPath); err != nil {
					return err
				}
			}
			// the same key is set aside too, so a failed commit puts the old file back
			if err := remove(avatar.FilePath); err != nil {
				return err
			}
			if _, err := s.storage.Commit(staged, key); err != nil {
				log.Error().Err(err).Str("key", key).Msg("Failed to commit avatar file")
				return fmt.Errorf("%w: %w", apperrors.ErrIOFailure, err)
			}
			committed = true
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	s.Invalidate(ctx, studentID)

	log.Info().
		Int64("studentID", studentID).
		Int64("avatarID", avatar.ID).
		Int64("size", avatar.FileSize).
		Str("mediaType", avatar.MediaType).
		Msg("Avatar stored")
	return avatar, nil
}

func (s *avatarServiceImpl) renderPreview(staged *filestorage.StagedFile, format thumbnail.Format) ([]byte, error) {
	r, err := s.storage.OpenStaged(staged)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrIOFailure, err)
	}
	defer r.Close()

	preview, err := thumbnail.Generate(r, format)
	if err != nil {
		if errors.Is(err, thumbnail.ErrTooSmall) || errors.Is(err, thumbnail.ErrDecode) {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrInvalidInput, err)
		}
		return nil, fmt.Errorf("%w: %w", apperrors.ErrIOFailure, err)
	}
	return preview, nil
}

// GetAvatar returns the avatar of a student, preview included.
func (s *avatarServiceImpl) GetAvatar(ctx context.Context, studentID int64) (*models.Avatar, error) {
	if studentID <= 0 {
		return nil, fmt.Errorf("%w: invalid student ID", apperrors.ErrInvalidInput)
	}

	// the shared lookup outlives a cancelled caller so joined callers still get a result
	gen := s.generation(studentID)
	key := strconv.FormatInt(studentID, 10) + ":" + strconv.FormatUint(gen, 10)
	ch := s.sf.DoChan(key, func() (interface{}, error) {
		return s.fetchWithCache(context.WithoutCancel(ctx), studentID, gen)
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		return nil, res.Err
	}

	avatar, ok := res.Val.(*models.Avatar)
	if !ok {
		return nil, fmt.Errorf("unexpected result type from singleflight")
	}
	return avatar, nil
}

func (s *avatarServiceImpl) generation(studentID int64) uint64 {
	s.genMu.Lock()
	defer s.genMu.Unlock()
	return s.generations[studentID]
}

// fetchWithCache reads through the cache. gen is the invalidation generation seen
// before the row was read; the entry is dropped again if it moved meanwhile.
func (s *avatarServiceImpl) fetchWithCache(ctx context.Context, studentID int64, gen uint64) (*models.Avatar, error) {
	entry, err := s.cache.Get(ctx, studentID)
	if err == nil {
		return entry.Avatar(), nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		logger.Ctx(ctx).Warn().Err(err).Int64("studentID", studentID).Msg("cache get error")
	}

	students, err := s.studentRepo.CountStudents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count students: %w", err)
	}
	if students == 0 {
		return nil, apperrors.NewCustomError(apperrors.ErrEmptyStorage, "no students have been added yet")
	}

	avatar, err := s.avatarRepo.GetAvatarByStudentID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	cacheCtx, cancel := context.WithTimeout(ctx, cacheWriteTimeout)
	defer cancel()
	if err := s.cache.Set(cacheCtx, cache.NewAvatarEntry(studentID, avatar), s.config.CacheTTL); err != nil {
		logger.Ctx(ctx).Warn().Err(err).Int64("studentID", studentID).Msg("cache set error")
	}
	if s.generation(studentID) != gen {
		s.dropCached(cacheCtx, studentID)
	}

	return avatar, nil
}

// OpenAvatarFile returns a reader over the original uploaded file.
func (s *avatarServiceImpl) OpenAvatarFile(ctx context.Context, studentID int64) (io.ReadCloser, *models.Avatar, error) {
	avatar, err := s.GetAvatar(ctx, studentID)
	if err != nil {
		return nil, nil, err
	}

	r, _, err := s.storage.Open(ctx, filepath.Base(avatar.FilePath))
	if err != nil {
		if errors.Is(err, filestorage.ErrFileNotFound) {
			return nil, nil, apperrors.NewCustomError(apperrors.ErrResourceNotFound, "avatar file is missing")
		}
		logger.Ctx(ctx).Error().Err(err).Str("path", avatar.FilePath).Msg("Failed to open avatar file")
		return nil, nil, fmt.Errorf("%w: %w", apperrors.ErrIOFailure, err)
	}
	return r, avatar, nil
}

// DeleteAvatar removes the metadata row of a student's avatar. The file stays on disk
// until the next sweep.
func (s *avatarServiceImpl) DeleteAvatar(ctx context.Context, studentID int64) error {
	if studentID <= 0 {
		return fmt.Errorf("%w: invalid student ID", apperrors.ErrInvalidInput)
	}
	if err := s.avatarRepo.DeleteAvatarByStudentID(ctx, studentID); err != nil {
		return err
	}
	s.Invalidate(ctx, studentID)
	logger.Ctx(ctx).Info().Int64("studentID", studentID).Msg("Avatar deleted")
	return nil
}

// ListAvatars returns one page of avatar metadata ordered by id, and the total row count.
func (s *avatarServiceImpl) ListAvatars(ctx context.Context, page, size int) ([]*models.Avatar, int64, error) {
	page, size, err := helpers.NormalizePage(page, size)
	if err != nil {
		return nil, 0, err
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	avatars, err := s.avatarRepo.ListAvatars(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.avatarRepo.CountAvatars(ctx)
	if err != nil {
		return nil, 0, err
	}
	return avatars, total, nil
}

// RemoveUnused deletes avatar rows whose student is gone, with their files, and then
// files that no row references.
func (s *avatarServiceImpl) RemoveUnused(ctx context.Context) (*SweepResult, error) {
	log := logger.Ctx(ctx)

	var rows int
	err := s.WithFileRemoval(ctx, func(remove func(string) error) error {
		var err error
		rows, err = s.avatarRepo.DeleteOrphanAvatars(ctx, remove)
		return err
	})
	if err != nil {
		return nil, err
	}

	paths, err := s.avatarRepo.ListAvatarPaths(ctx)
	if err != nil {
		return nil, err
	}
	referenced := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		referenced[filepath.Base(p)] = struct{}{}
	}

	files, err := s.storage.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrIOFailure, err)
	}

	cutoff := s.now().Add(-sweepGracePeriod)
	removed := 0
	for _, f := range files {
		if _, ok := referenced[f.Key]; ok {
			continue
		}
		if f.LastModified.After(cutoff) {
			continue
		}
		if err := s.storage.Delete(ctx, f.Key); err != nil {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrIOFailure, err)
		}
		removed++
	}

	log.Info().Int("rows", rows).Int("files", removed).Msg("Unused avatars removed")
	return &SweepResult{OrphanRowsRemoved: rows, OrphanFilesRemoved: removed}, nil
}

// WithFileRemoval runs op, typically a metadata transaction, with a remove function
// that moves avatar files aside. The files are deleted once op succeeds and put back
// when it fails, so rows and files change together.
func (s *avatarServiceImpl) WithFileRemoval(ctx context.Context, op func(remove func(filePath string) error) error) error {
	swap := &fileSwap{storage: s.storage}
	if err := op(func(filePath string) error { return swap.moveAside(ctx, filePath) }); err != nil {
		swap.rollback(ctx)
		return err
	}
	swap.purge(ctx)
	return nil
}

// Invalidate drops cached avatars. Failures are logged, entries expire on their own.
func (s *avatarServiceImpl) Invalidate(ctx context.Context, studentIDs ...int64) {
	if len(studentIDs) == 0 {
		return
	}
	s.genMu.Lock()
	for _, id := range studentIDs {
		s.generations[id]++
	}
	s.genMu.Unlock()
	s.dropCached(ctx, studentIDs...)
}

func (s *avatarServiceImpl) dropCached(ctx context.Context, studentIDs ...int64) {
	if err := s.cache.Delete(ctx, studentIDs...); err != nil {
		logger.Ctx(ctx).Warn().Err(err).Interface("studentIDs", studentIDs).Msg("cache delete error")
	}
}
