package services

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/hogwarts/school/internal/app/models"
	"github.com/hogwarts/school/internal/pkg/apperrors"
	"github.com/hogwarts/school/internal/pkg/filestorage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMaxUpload = 64 * 1024

type avatarFixture struct {
	store   *fakeStore
	cache   *fakeCache
	storage *filestorage.LocalStorage
	svc     *avatarServiceImpl
	student *models.Student
}

func newAvatarFixture(t *testing.T) *avatarFixture {
	t.Helper()

	storage, err := filestorage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	store := newFakeStore()
	fac := store.addFaculty("Gryffindor", "red")
	student := store.addStudent("Harry", 17, fac.ID)
	c := newFakeCache()

	svc := NewAvatarService(fakeAvatarRepo{store}, fakeStudentRepo{store}, storage, c, AvatarConfig{
		MaxUploadSize: testMaxUpload,
		CacheTTL:      time.Minute,
	}).(*avatarServiceImpl)

	return &avatarFixture{store: store, cache: c, storage: storage, svc: svc, student: student}
}

func encodeImage(t *testing.T, w, h int, format imaging.Format) []byte {
	t.Helper()
	img := imaging.New(w, h, color.NRGBA{R: 200, G: 30, B: 30, A: 255})
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, format))
	return buf.Bytes()
}

func upload(name, contentType string, data []byte) *AvatarUpload {
	return &AvatarUpload{
		Filename:    name,
		ContentType: contentType,
		Size:        int64(len(data)),
		Content:     bytes.NewReader(data),
	}
}

// committedFiles lists the non-staged files in the storage directory.
func committedFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := []string{}
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestStoreAvatar(t *testing.T) {
	f := newAvatarFixture(t)
	data := encodeImage(t, 400, 200, imaging.PNG)

	avatar, err := f.svc.StoreAvatar(context.Background(), f.student.ID, upload("harry.png", "image/png", data))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(f.storage.BasePath(), "2.png"), avatar.FilePath)
	assert.Equal(t, int64(len(data)), avatar.FileSize)
	assert.Equal(t, "image/png", avatar.MediaType)

	onDisk, err := os.ReadFile(avatar.FilePath)
	require.NoError(t, err)
	assert.Equal(t, data, onDisk)

	preview, err := imaging.Decode(bytes.NewReader(avatar.Preview))
	require.NoError(t, err)
	assert.Equal(t, 100, preview.Bounds().Dx())
	assert.Equal(t, 50, preview.Bounds().Dy())

	assert.Equal(t, []string{"2.png"}, committedFiles(t, f.storage.BasePath()))
	assert.Contains(t, f.cache.deleted, f.student.ID)
}

func TestStoreAvatarReplacesPreviousFile(t *testing.T) {
	f := newAvatarFixture(t)
	ctx := context.Background()

	first, err := f.svc.StoreAvatar(ctx, f.student.ID, upload("a.png", "image/png", encodeImage(t, 200, 200, imaging.PNG)))
	require.NoError(t, err)

	second, err := f.svc.StoreAvatar(ctx, f.student.ID, upload("b.jpg", "image/jpeg", encodeImage(t, 300, 150, imaging.JPEG)))
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, f.store.avatars, 1)
	assert.Equal(t, []string{"2.jpg"}, committedFiles(t, f.storage.BasePath()))
}

func TestStoreAvatarRejectsInput(t *testing.T) {
	png := func(t *testing.T) []byte { return encodeImage(t, 200, 200, imaging.PNG) }

	cases := []struct {
		name      string
		studentID int64
		upload    func(t *testing.T) *AvatarUpload
		want      error
	}{
		{"no extension", 2, func(t *testing.T) *AvatarUpload { return upload("avatar", "image/png", png(t)) }, apperrors.ErrInvalidInput},
		{"trailing dot", 2, func(t *testing.T) *AvatarUpload { return upload("avatar.", "image/png", png(t)) }, apperrors.ErrInvalidInput},
		{"unsupported extension", 2, func(t *testing.T) *AvatarUpload { return upload("avatar.txt", "text/plain", png(t)) }, apperrors.ErrInvalidInput},
		{"unknown student", 99, func(t *testing.T) *AvatarUpload { return upload("a.png", "image/png", png(t)) }, apperrors.ErrResourceNotFound},
		{"declared too large", 2, func(t *testing.T) *AvatarUpload {
			u := upload("a.png", "image/png", png(t))
			u.Size = testMaxUpload + 1
			return u
		}, apperrors.ErrPayloadTooLarge},
		{"body larger than declared", 2, func(t *testing.T) *AvatarUpload {
			u := upload("a.png", "image/png", bytes.Repeat([]byte{1}, testMaxUpload+10))
			u.Size = 10
			return u
		}, apperrors.ErrPayloadTooLarge},
		{"narrow image", 2, func(t *testing.T) *AvatarUpload {
			return upload("a.png", "image/png", encodeImage(t, 99, 500, imaging.PNG))
		}, apperrors.ErrInvalidInput},
		{"not an image", 2, func(t *testing.T) *AvatarUpload {
			return upload("a.png", "image/png", []byte(strings.Repeat("x", 300)))
		}, apperrors.ErrInvalidInput},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newAvatarFixture(t)
			_, err := f.svc.StoreAvatar(context.Background(), tc.studentID, tc.upload(t))
			assert.ErrorIs(t, err, tc.want)
			assert.Empty(t, committedFiles(t, f.storage.BasePath()))
			assert.Empty(t, f.store.avatars)
		})
	}
}

func TestStoreAvatarDiscardsFileWhenUpsertFails(t *testing.T) {
	f := newAvatarFixture(t)
	f.store.upsertErr = errors.New("connection reset")

	_, err := f.svc.StoreAvatar(context.Background(), f.student.ID, upload("a.png", "image/png", encodeImage(t, 200, 200, imaging.PNG)))
	require.Error(t, err)
	assert.Empty(t, committedFiles(t, f.storage.BasePath()))
}

func TestStoreAvatarKeepsPreviousFileWhenCommitFails(t *testing.T) {
	cases := []struct {
		name        string
		filename    string
		contentType string
		format      imaging.Format
	}{
		{"same extension", "b.png", "image/png", imaging.PNG},
		{"other extension", "b.jpg", "image/jpeg", imaging.JPEG},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newAvatarFixture(t)
			ctx := context.Background()
			original := encodeImage(t, 200, 200, imaging.PNG)

			first, err := f.svc.StoreAvatar(ctx, f.student.ID, upload("a.png", "image/png", original))
			require.NoError(t, err)

			f.store.commitErr = errors.New("commit failed")
			_, err = f.svc.StoreAvatar(ctx, f.student.ID, upload(tc.filename, tc.contentType, encodeImage(t, 300, 150, tc.format)))
			require.Error(t, err)

			assert.Equal(t, []string{"2.png"}, committedFiles(t, f.storage.BasePath()))
			data, err := os.ReadFile(first.FilePath)
			require.NoError(t, err)
			assert.Equal(t, original, data)
			assert.Equal(t, int64(len(original)), f.store.avatars[first.ID].FileSize)
		})
	}
}

func TestDeleteStudentRemovesAvatarFileAfterCommit(t *testing.T) {
	f := newAvatarFixture(t)
	ctx := context.Background()
	students := NewStudentService(fakeStudentRepo{f.store}, fakeFacultyRepo{f.store}, f.svc, testMinAge)

	stored, err := f.svc.StoreAvatar(ctx, f.student.ID, upload("a.png", "image/png", encodeImage(t, 200, 200, imaging.PNG)))
	require.NoError(t, err)

	f.store.commitErr = errors.New("commit failed")
	require.Error(t, students.DeleteStudent(ctx, f.student.ID))
	assert.FileExists(t, stored.FilePath)
	assert.Equal(t, []string{"2.png"}, committedFiles(t, f.storage.BasePath()))
	assert.Len(t, f.store.avatars, 1)

	f.store.commitErr = nil
	require.NoError(t, students.DeleteStudent(ctx, f.student.ID))
	assert.Empty(t, committedFiles(t, f.storage.BasePath()))
	assert.Empty(t, f.store.avatars)
}

func TestStoreAvatarDefaultsMediaType(t *testing.T) {
	f := newAvatarFixture(t)

	avatar, err := f.svc.StoreAvatar(context.Background(), f.student.ID, upload("a.gif", "", encodeImage(t, 100, 100, imaging.GIF)))
	require.NoError(t, err)
	assert.Equal(t, "application/octet-stream", avatar.MediaType)
}

func TestGetAvatar(t *testing.T) {
	f := newAvatarFixture(t)
	ctx := context.Background()

	_, err := f.svc.GetAvatar(ctx, f.student.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	stored, err := f.svc.StoreAvatar(ctx, f.student.ID, upload("a.png", "image/png", encodeImage(t, 200, 100, imaging.PNG)))
	require.NoError(t, err)

	got, err := f.svc.GetAvatar(ctx, f.student.ID)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, got.ID)
	assert.Equal(t, stored.Preview, got.Preview)
}

func TestGetAvatarEmptyStorage(t *testing.T) {
	f := newAvatarFixture(t)
	f.store.students = map[int64]*models.Student{}

	_, err := f.svc.GetAvatar(context.Background(), 1)
	assert.ErrorIs(t, err, apperrors.ErrEmptyStorage)
}

func TestGetAvatarServedFromCache(t *testing.T) {
	f := newAvatarFixture(t)
	ctx := context.Background()

	_, err := f.svc.StoreAvatar(ctx, f.student.ID, upload("a.png", "image/png", encodeImage(t, 200, 100, imaging.PNG)))
	require.NoError(t, err)

	_, err = f.svc.GetAvatar(ctx, f.student.ID)
	require.NoError(t, err)
	require.True(t, f.cache.has(f.student.ID))

	reads := f.store.avatarReads
	got, err := f.svc.GetAvatar(ctx, f.student.ID)
	require.NoError(t, err)
	assert.Equal(t, reads, f.store.avatarReads)
	assert.Equal(t, "image/png", got.MediaType)
}

func TestGetAvatarRacingDeleteLeavesNoCacheEntry(t *testing.T) {
	f := newAvatarFixture(t)
	held := newHeldSetCache(f.cache)
	f.svc.cache = held
	ctx := context.Background()

	_, err := f.svc.StoreAvatar(ctx, f.student.ID, upload("a.png", "image/png", encodeImage(t, 200, 100, imaging.PNG)))
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := f.svc.GetAvatar(ctx, f.student.ID)
		done <- err
	}()

	<-held.entered
	require.NoError(t, f.svc.DeleteAvatar(ctx, f.student.ID))
	close(held.release)
	require.NoError(t, <-done)

	assert.False(t, f.cache.has(f.student.ID))
	_, err = f.svc.GetAvatar(ctx, f.student.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestGetAvatarLookupSurvivesCancelledCaller(t *testing.T) {
	f := newAvatarFixture(t)
	ctx := context.Background()

	_, err := f.svc.StoreAvatar(ctx, f.student.ID, upload("a.png", "image/png", encodeImage(t, 200, 100, imaging.PNG)))
	require.NoError(t, err)

	repo := blockingAvatarRepo{AvatarRepository: f.svc.avatarRepo, entered: make(chan struct{}), release: make(chan struct{})}
	f.svc.avatarRepo = repo

	callerCtx, cancel := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() {
		_, err := f.svc.GetAvatar(callerCtx, f.student.ID)
		done <- err
	}()

	<-repo.entered
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	close(repo.release)
	require.Eventually(t, func() bool { return f.cache.has(f.student.ID) }, time.Second, 10*time.Millisecond)

	got, err := f.svc.GetAvatar(ctx, f.student.ID)
	require.NoError(t, err)
	assert.Equal(t, "image/png", got.MediaType)
}

func TestOpenAvatarFile(t *testing.T) {
	f := newAvatarFixture(t)
	ctx := context.Background()
	data := encodeImage(t, 200, 100, imaging.PNG)

	_, err := f.svc.StoreAvatar(ctx, f.student.ID, upload("a.png", "image/png", data))
	require.NoError(t, err)

	r, avatar, err := f.svc.OpenAvatarFile(ctx, f.student.ID)
	require.NoError(t, err)
	defer r.Close()
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, data, got)
	assert.Equal(t, int64(len(data)), avatar.FileSize)

	require.NoError(t, os.Remove(avatar.FilePath))
	_, _, err = f.svc.OpenAvatarFile(ctx, f.student.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestDeleteAvatarKeepsFile(t *testing.T) {
	f := newAvatarFixture(t)
	ctx := context.Background()

	stored, err := f.svc.StoreAvatar(ctx, f.student.ID, upload("a.png", "image/png", encodeImage(t, 200, 100, imaging.PNG)))
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteAvatar(ctx, f.student.ID))
	assert.Empty(t, f.store.avatars)
	assert.FileExists(t, stored.FilePath)

	err = f.svc.DeleteAvatar(ctx, f.student.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestListAvatars(t *testing.T) {
	f := newAvatarFixture(t)
	for i := 0; i < 3; i++ {
		st := f.store.addStudent("S", 17, f.student.FacultyID)
		f.store.addAvatar(&st.ID, filepath.Join(f.storage.BasePath(), "x.png"))
	}
	ctx := context.Background()

	page, total, err := f.svc.ListAvatars(ctx, 1, 2)
	require.NoError(t, err)
	assert.Len(t, page, 2)
	assert.Equal(t, int64(3), total)

	page, _, err = f.svc.ListAvatars(ctx, 2, 2)
	require.NoError(t, err)
	assert.Len(t, page, 1)

	_, _, err = f.svc.ListAvatars(ctx, 0, 2)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, _, err = f.svc.ListAvatars(ctx, 1, 0)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestRemoveUnused(t *testing.T) {
	f := newAvatarFixture(t)
	ctx := context.Background()
	base := f.storage.BasePath()

	kept, err := f.svc.StoreAvatar(ctx, f.student.ID, upload("a.png", "image/png", encodeImage(t, 200, 100, imaging.PNG)))
	require.NoError(t, err)

	orphanPath := filepath.Join(base, "77.png")
	require.NoError(t, os.WriteFile(orphanPath, []byte("orphan"), 0o644))
	f.store.addAvatar(nil, orphanPath)

	strayPath := filepath.Join(base, "stray.png")
	require.NoError(t, os.WriteFile(strayPath, []byte("stray"), 0o644))

	freshPath := filepath.Join(base, "fresh.png")
	require.NoError(t, os.WriteFile(freshPath, []byte("fresh"), 0o644))

	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(strayPath, old, old))
	require.NoError(t, os.Chtimes(kept.FilePath, old, old))

	res, err := f.svc.RemoveUnused(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.OrphanRowsRemoved)
	assert.Equal(t, 1, res.OrphanFilesRemoved)

	assert.NoFileExists(t, orphanPath)
	assert.NoFileExists(t, strayPath)
	assert.FileExists(t, freshPath)
	assert.FileExists(t, kept.FilePath)
	assert.Len(t, f.store.avatars, 1)
}

func TestRemoveUnusedRestoresFilesWhenCommitFails(t *testing.T) {
	f := newAvatarFixture(t)
	orphanPath := filepath.Join(f.storage.BasePath(), "77.png")
	require.NoError(t, os.WriteFile(orphanPath, []byte("orphan"), 0o644))
	f.store.addAvatar(nil, orphanPath)
	f.store.commitErr = errors.New("commit failed")

	_, err := f.svc.RemoveUnused(context.Background())
	require.Error(t, err)
	assert.Equal(t, []string{"77.png"}, committedFiles(t, f.storage.BasePath()))
	assert.Len(t, f.store.avatars, 1)
}
