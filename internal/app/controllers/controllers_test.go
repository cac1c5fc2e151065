package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hogwarts/school/internal/app/models"
	"github.com/hogwarts/school/internal/app/models/dto"
	"github.com/hogwarts/school/internal/app/services"
	"github.com/hogwarts/school/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Stubs embed the service interface; calling a method a test did not override panics.
type stubFacultyService struct {
	services.FacultyService
	create    func(*models.Faculty) (int64, error)
	getByID   func(int64) (*models.Faculty, error)
	byColor   func(string) ([]*models.Faculty, error)
	ofFaculty func(string) (*models.Faculty, error)
}

func (s *stubFacultyService) CreateFaculty(_ context.Context, f *models.Faculty) (int64, error) {
	return s.create(f)
}

func (s *stubFacultyService) GetFacultyByID(_ context.Context, id int64) (*models.Faculty, error) {
	return s.getByID(id)
}

func (s *stubFacultyService) GetFacultiesByColor(_ context.Context, color string) ([]*models.Faculty, error) {
	return s.byColor(color)
}

func (s *stubFacultyService) GetStudentsOfFaculty(_ context.Context, name string) (*models.Faculty, error) {
	return s.ofFaculty(name)
}

type stubStudentService struct {
	services.StudentService
	count    func() (int64, error)
	between  func(from, to int) ([]*models.Student, error)
	names    func(letter string) ([]string, error)
	deleteFn func(id int64) error
}

func (s *stubStudentService) CountStudents(context.Context) (int64, error) { return s.count() }

func (s *stubStudentService) GetStudentsByAgeBetween(_ context.Context, from, to int) ([]*models.Student, error) {
	return s.between(from, to)
}

func (s *stubStudentService) GetNamesStartingWith(_ context.Context, letter string) ([]string, error) {
	return s.names(letter)
}

func (s *stubStudentService) DeleteStudent(_ context.Context, id int64) error { return s.deleteFn(id) }

type stubAvatarService struct {
	services.AvatarService
	store   func(int64, *services.AvatarUpload) (*models.Avatar, error)
	get     func(int64) (*models.Avatar, error)
	open    func(int64) (io.ReadCloser, *models.Avatar, error)
	list    func(page, size int) ([]*models.Avatar, int64, error)
	deleted []int64
}

func (s *stubAvatarService) StoreAvatar(_ context.Context, id int64, u *services.AvatarUpload) (*models.Avatar, error) {
	return s.store(id, u)
}

func (s *stubAvatarService) GetAvatar(_ context.Context, id int64) (*models.Avatar, error) {
	return s.get(id)
}

func (s *stubAvatarService) OpenAvatarFile(_ context.Context, id int64) (io.ReadCloser, *models.Avatar, error) {
	return s.open(id)
}

func (s *stubAvatarService) ListAvatars(_ context.Context, page, size int) ([]*models.Avatar, int64, error) {
	return s.list(page, size)
}

func (s *stubAvatarService) DeleteAvatar(_ context.Context, id int64) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func serve(method, path string, handler gin.HandlerFunc, route string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	r := gin.New()
	r.Handle(method, route, handler)
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	return resp
}

func TestCreateFaculty(t *testing.T) {
	svc := &stubFacultyService{create: func(f *models.Faculty) (int64, error) {
		f.ID = 5
		return 5, nil
	}}
	ctrl := NewFacultyController(svc)

	rec := serve(http.MethodPost, "/faculty", ctrl.CreateFaculty, "/faculty",
		strings.NewReader(`{"name":"Ravenclaw","color":"blue"}`), "application/json")

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":5`)
	assert.Contains(t, rec.Body.String(), `"name":"Ravenclaw"`)
}

func TestCreateFacultyBindingAndConflict(t *testing.T) {
	svc := &stubFacultyService{create: func(*models.Faculty) (int64, error) {
		return 0, apperrors.ErrFacultyAlreadyExists
	}}
	ctrl := NewFacultyController(svc)

	rec := serve(http.MethodPost, "/faculty", ctrl.CreateFaculty, "/faculty",
		strings.NewReader(`{"name":"Ravenclaw"}`), "application/json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, dto.ErrorCodeValidationFailed, decodeError(t, rec).Error.Code)

	rec = serve(http.MethodPost, "/faculty", ctrl.CreateFaculty, "/faculty",
		strings.NewReader(`{"name":"Ravenclaw","color":"blue"}`), "application/json")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, dto.ErrorCodeResourceAlreadyExists, decodeError(t, rec).Error.Code)
}

func TestGetFacultyByID(t *testing.T) {
	svc := &stubFacultyService{getByID: func(id int64) (*models.Faculty, error) {
		if id == 1 {
			return &models.Faculty{ID: 1, Name: "Gryffindor", Color: "red"}, nil
		}
		return nil, apperrors.ErrFacultyNotFound
	}}
	ctrl := NewFacultyController(svc)

	tests := []struct {
		path   string
		status int
	}{
		{"/faculty/1", http.StatusOK},
		{"/faculty/2", http.StatusNotFound},
		{"/faculty/abc", http.StatusBadRequest},
		{"/faculty/-3", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := serve(http.MethodGet, tt.path, ctrl.GetFacultyByID, "/faculty/:id", nil, "")
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestGetFacultiesByColorEmptyStorage(t *testing.T) {
	svc := &stubFacultyService{byColor: func(string) ([]*models.Faculty, error) {
		return nil, apperrors.NewCustomError(apperrors.ErrEmptyStorage, "no faculties have been added yet")
	}}
	ctrl := NewFacultyController(svc)

	rec := serve(http.MethodGet, "/faculty/by-color?color=red", ctrl.GetFacultiesByColor, "/faculty/by-color", nil, "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, dto.ErrorCodeEmptyStorage, decodeError(t, rec).Error.Code)
}

func TestGetStudentsOfFaculty(t *testing.T) {
	svc := &stubFacultyService{ofFaculty: func(name string) (*models.Faculty, error) {
		assert.Equal(t, "gryff", name)
		return &models.Faculty{ID: 1, Name: "Gryffindor", Color: "red", Students: []models.Student{
			{ID: 3, Name: "Neville", Age: 17, FacultyID: 1},
		}}, nil
	}}
	ctrl := NewFacultyController(svc)

	rec := serve(http.MethodGet, "/faculty/students?name=gryff", ctrl.GetStudentsOfFaculty, "/faculty/students", nil, "")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Data dto.FacultyStudentsResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Gryffindor", resp.Data.Faculty.Name)
	require.Len(t, resp.Data.Students, 1)
	assert.Equal(t, "Gryffindor", resp.Data.Students[0].FacultyName)
}

func TestCountStudents(t *testing.T) {
	ctrl := NewStudentController(&stubStudentService{count: func() (int64, error) { return 0, nil }})

	rec := serve(http.MethodGet, "/student/count", ctrl.CountStudents, "/student/count", nil, "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"count":0`)
}

func TestGetStudentsBetweenAgeQueryParsing(t *testing.T) {
	var gotFrom, gotTo int
	ctrl := NewStudentController(&stubStudentService{between: func(from, to int) ([]*models.Student, error) {
		gotFrom, gotTo = from, to
		return []*models.Student{{ID: 1, Name: "Fred", Age: 18, FacultyID: 1}}, nil
	}})

	rec := serve(http.MethodGet, "/student/between-age?from=17&to=19", ctrl.GetStudentsBetweenAge, "/student/between-age", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 17, gotFrom)
	assert.Equal(t, 19, gotTo)

	rec = serve(http.MethodGet, "/student/between-age?from=17", ctrl.GetStudentsBetweenAge, "/student/between-age", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(http.MethodGet, "/student/between-age?from=x&to=19", ctrl.GetStudentsBetweenAge, "/student/between-age", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetNamesStartingWithPassesLetter(t *testing.T) {
	ctrl := NewStudentController(&stubStudentService{names: func(letter string) ([]string, error) {
		if letter == "" {
			return []string{"ALBUS"}, nil
		}
		return nil, apperrors.ErrNoMatchingResults
	}})

	rec := serve(http.MethodGet, "/student/names-starting-with", ctrl.GetNamesStartingWith, "/student/names-starting-with", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `["ALBUS"]`)

	rec = serve(http.MethodGet, "/student/names-starting-with?letter=Q", ctrl.GetNamesStartingWith, "/student/names-starting-with", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, dto.ErrorCodeNoMatchingResults, decodeError(t, rec).Error.Code)
}

func TestDeleteStudentIOFailureHidesDetails(t *testing.T) {
	ctrl := NewStudentController(&stubStudentService{deleteFn: func(int64) error {
		return apperrors.NewCustomError(apperrors.ErrIOFailure, "remove /srv/avatars/4.png: permission denied")
	}})

	rec := serve(http.MethodDelete, "/student/4", ctrl.DeleteStudent, "/student/:id", nil, "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, dto.ErrorCodeIOFailure, resp.Error.Code)
	assert.NotContains(t, rec.Body.String(), "/srv/avatars")
}

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func TestUploadAvatar(t *testing.T) {
	studentID := int64(7)
	svc := &stubAvatarService{store: func(id int64, u *services.AvatarUpload) (*models.Avatar, error) {
		data, err := io.ReadAll(u.Content)
		require.NoError(t, err)
		assert.Equal(t, "hedwig.png", u.Filename)
		assert.Equal(t, int64(len(data)), u.Size)
		return &models.Avatar{ID: 1, StudentID: &id, FilePath: "avatars/7.png", FileSize: u.Size, MediaType: "image/png"}, nil
	}}
	ctrl := NewAvatarController(svc, 1024)

	body, ct := multipartBody(t, AvatarFormField, "hedwig.png", []byte("not really a png"))
	rec := serve(http.MethodPost, "/avatar/7/upload-avatar", ctrl.UploadAvatar, "/avatar/:id/upload-avatar", body, ct)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Data dto.AvatarResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, &studentID, resp.Data.StudentID)
	assert.Equal(t, "image/png", resp.Data.MediaType)
}

func TestUploadAvatarRejectsMissingFieldAndHugeBody(t *testing.T) {
	svc := &stubAvatarService{}
	ctrl := NewAvatarController(svc, 16)

	body, ct := multipartBody(t, "picture", "hedwig.png", []byte("x"))
	rec := serve(http.MethodPost, "/avatar/7/upload-avatar", ctrl.UploadAvatar, "/avatar/:id/upload-avatar", body, ct)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body, ct = multipartBody(t, AvatarFormField, "hedwig.png", bytes.Repeat([]byte("x"), 16+multipartOverhead+1))
	rec = serve(http.MethodPost, "/avatar/7/upload-avatar", ctrl.UploadAvatar, "/avatar/:id/upload-avatar", body, ct)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, dto.ErrorCodePayloadTooLarge, decodeError(t, rec).Error.Code)
}

func TestDownloadPreviewAndAvatar(t *testing.T) {
	preview := []byte{0x89, 'P', 'N', 'G'}
	original := []byte("original image bytes")
	avatar := &models.Avatar{ID: 1, FileSize: int64(len(original)), MediaType: "image/png", Preview: preview}
	svc := &stubAvatarService{
		get: func(int64) (*models.Avatar, error) { return avatar, nil },
		open: func(int64) (io.ReadCloser, *models.Avatar, error) {
			return io.NopCloser(bytes.NewReader(original)), avatar, nil
		},
	}
	ctrl := NewAvatarController(svc, 1024)

	rec := serve(http.MethodGet, "/avatar/7/avatar/download-preview", ctrl.DownloadPreview, "/avatar/:id/avatar/download-preview", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "4", rec.Header().Get("Content-Length"))
	assert.Equal(t, preview, rec.Body.Bytes())

	rec = serve(http.MethodGet, "/avatar/7/download-avatar", ctrl.DownloadAvatar, "/avatar/:id/download-avatar", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, original, rec.Body.Bytes())
}

func TestDownloadAvatarNotFound(t *testing.T) {
	svc := &stubAvatarService{open: func(int64) (io.ReadCloser, *models.Avatar, error) {
		return nil, nil, apperrors.ErrAvatarNotFound
	}}
	ctrl := NewAvatarController(svc, 1024)

	rec := serve(http.MethodGet, "/avatar/7/download-avatar", ctrl.DownloadAvatar, "/avatar/:id/download-avatar", nil, "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetAllAvatarsPagination(t *testing.T) {
	svc := &stubAvatarService{list: func(page, size int) ([]*models.Avatar, int64, error) {
		assert.Equal(t, 2, page)
		assert.Equal(t, 5, size)
		return []*models.Avatar{{ID: 6}}, 6, nil
	}}
	ctrl := NewAvatarController(svc, 1024)

	rec := serve(http.MethodGet, "/avatar/get-all?page=2&size=5", ctrl.GetAllAvatars, "/avatar/get-all", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data dto.AvatarListResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Data.Avatars, 1)
	assert.Equal(t, int64(6), resp.Data.Pagination.TotalItems)
	assert.Equal(t, 2, resp.Data.Pagination.TotalPages)

	rec = serve(http.MethodGet, "/avatar/get-all?page=0&size=5", ctrl.GetAllAvatars, "/avatar/get-all", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteAvatarReadsStudentIDQuery(t *testing.T) {
	svc := &stubAvatarService{}
	ctrl := NewAvatarController(svc, 1024)

	rec := serve(http.MethodDelete, "/avatar/delete?student-id=9", ctrl.DeleteAvatar, "/avatar/delete", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []int64{9}, svc.deleted)

	rec = serve(http.MethodDelete, "/avatar/delete", ctrl.DeleteAvatar, "/avatar/delete", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetInfo(t *testing.T) {
	ctrl := NewInfoController("8081")

	rec := serve(http.MethodGet, "/info", ctrl.GetInfo, "/info", nil, "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"port":"8081"`)
}
