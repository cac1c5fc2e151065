package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/hogwarts/school/internal/app/models"
	"github.com/hogwarts/school/internal/pkg/apperrors"
	"github.com/hogwarts/school/internal/pkg/logger"
	"github.com/hogwarts/school/internal/pkg/validation"
)

// FacultyService defines the interface for faculty-related operations
type FacultyService interface {
	CreateFaculty(ctx context.Context, faculty *models.Faculty) (int64, error)
	GetFacultyByID(ctx context.Context, id int64) (*models.Faculty, error)
	GetAllFaculties(ctx context.Context) ([]*models.Faculty, error)
	UpdateFaculty(ctx context.Context, faculty *models.Faculty) error
	DeleteFaculty(ctx context.Context, id int64) error
	GetFacultiesByColor(ctx context.Context, color string) ([]*models.Faculty, error)
	FindFacultiesByNameOrColor(ctx context.Context, name, color string) ([]*models.Faculty, error)
	GetStudentsOfFaculty(ctx context.Context, name string) (*models.Faculty, error)
	GetFacultyWithLongestName(ctx context.Context) (*models.Faculty, error)
}

// facultyServiceImpl implements the FacultyService interface
type facultyServiceImpl struct {
	facultyRepo FacultyRepository
	studentRepo StudentRepository
	avatars     AvatarLifecycle
}

// NewFacultyService creates a new faculty service instance
func NewFacultyService(facultyRepo FacultyRepository, studentRepo StudentRepository, avatars AvatarLifecycle) FacultyService {
	return &facultyServiceImpl{
		facultyRepo: facultyRepo,
		studentRepo: studentRepo,
		avatars:     avatars,
	}
}

// validateFaculty validates faculty data before database operations
func (s *facultyServiceImpl) validateFaculty(faculty *models.Faculty) error {
	if faculty == nil {
		return fmt.Errorf("%w: faculty is nil", apperrors.ErrValidationFailed)
	}

	faculty.Name = strings.TrimSpace(faculty.Name)
	faculty.Color = strings.TrimSpace(faculty.Color)

	if err := validation.NewStringValidation("name", faculty.Name).WithMaxLength(validation.NameMaxLength).Validate(); err != nil {
		return err
	}
	return validation.NewStringValidation("color", faculty.Color).WithMaxLength(validation.ColorMaxLength).Validate()
}

// ensureNotEmpty returns ErrEmptyStorage when there are no faculties at all
func (s *facultyServiceImpl) ensureNotEmpty(ctx context.Context) error {
	count, err := s.facultyRepo.CountFaculties(ctx)
	if err != nil {
		return fmt.Errorf("failed to count faculties: %w", err)
	}
	if count == 0 {
		return apperrors.NewCustomError(apperrors.ErrEmptyStorage, "no faculties have been added yet")
	}
	return nil
}

// CreateFaculty creates a new faculty after validation
func (s *facultyServiceImpl) CreateFaculty(ctx context.Context, faculty *models.Faculty) (int64, error) {
	if err := s.validateFaculty(faculty); err != nil {
		return 0, err
	}

	id, err := s.facultyRepo.CreateFaculty(ctx, faculty)
	if err != nil {
		return 0, err
	}

	faculty.ID = id
	logger.Ctx(ctx).Info().Int64("facultyID", id).Str("name", faculty.Name).Msg("Faculty created")
	return id, nil
}

// GetFacultyByID retrieves a faculty by its ID
func (s *facultyServiceImpl) GetFacultyByID(ctx context.Context, id int64) (*models.Faculty, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid faculty ID", apperrors.ErrValidationFailed)
	}
	if err := s.ensureNotEmpty(ctx); err != nil {
		return nil, err
	}

	return s.facultyRepo.GetFacultyByID(ctx, id)
}

// GetAllFaculties retrieves all faculties
func (s *facultyServiceImpl) GetAllFaculties(ctx context.Context) ([]*models.Faculty, error) {
	faculties, err := s.facultyRepo.GetAllFaculties(ctx)
	if err != nil {
		return nil, err
	}
	if len(faculties) == 0 {
		return nil, apperrors.NewCustomError(apperrors.ErrEmptyStorage, "no faculties have been added yet")
	}
	return faculties, nil
}

// UpdateFaculty replaces the name and color of a faculty
func (s *facultyServiceImpl) UpdateFaculty(ctx context.Context, faculty *models.Faculty) error {
	if err := s.validateFaculty(faculty); err != nil {
		return err
	}
	if faculty.ID <= 0 {
		return fmt.Errorf("%w: invalid faculty ID", apperrors.ErrValidationFailed)
	}
	if err := s.ensureNotEmpty(ctx); err != nil {
		return err
	}

	return s.facultyRepo.UpdateFaculty(ctx, faculty)
}

// DeleteFaculty removes a faculty. Its students are removed by the database and
// their cached avatars are dropped; the avatar rows stay as orphans until the sweep.
func (s *facultyServiceImpl) DeleteFaculty(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid faculty ID", apperrors.ErrValidationFailed)
	}
	if err := s.ensureNotEmpty(ctx); err != nil {
		return err
	}

	students, err := s.studentRepo.GetStudentsByFaculty(ctx, id)
	if err != nil {
		return err
	}

	if err := s.facultyRepo.DeleteFaculty(ctx, id); err != nil {
		return err
	}

	if len(students) > 0 {
		ids := make([]int64, 0, len(students))
		for _, st := range students {
			ids = append(ids, st.ID)
		}
		s.avatars.Invalidate(ctx, ids...)
	}

	logger.Ctx(ctx).Info().Int64("facultyID", id).Int("students", len(students)).Msg("Faculty deleted")
	return nil
}

// GetFacultiesByColor returns faculties whose color contains color, ignoring case
func (s *facultyServiceImpl) GetFacultiesByColor(ctx context.Context, color string) ([]*models.Faculty, error) {
	color = strings.TrimSpace(color)
	if color == "" {
		return nil, fmt.Errorf("%w: color cannot be empty", apperrors.ErrValidationFailed)
	}
	if err := s.ensureNotEmpty(ctx); err != nil {
		return nil, err
	}

	faculties, err := s.facultyRepo.FindFacultiesByColor(ctx, color)
	if err != nil {
		return nil, err
	}
	if len(faculties) == 0 {
		return nil, fmt.Errorf("%w: no faculty with color %q", apperrors.ErrNoMatchingResults, color)
	}
	return faculties, nil
}

// FindFacultiesByNameOrColor returns faculties matching name or color exactly, ignoring case
func (s *facultyServiceImpl) FindFacultiesByNameOrColor(ctx context.Context, name, color string) ([]*models.Faculty, error) {
	name = strings.TrimSpace(name)
	color = strings.TrimSpace(color)
	if name == "" && color == "" {
		return nil, fmt.Errorf("%w: name or color is required", apperrors.ErrValidationFailed)
	}
	if err := s.ensureNotEmpty(ctx); err != nil {
		return nil, err
	}

	faculties, err := s.facultyRepo.FindFacultiesByNameOrColor(ctx, name, color)
	if err != nil {
		return nil, err
	}
	if len(faculties) == 0 {
		return nil, fmt.Errorf("%w: no faculty named %q or colored %q", apperrors.ErrNoMatchingResults, name, color)
	}
	return faculties, nil
}

// GetStudentsOfFaculty finds the first faculty whose name contains name and loads its students
func (s *facultyServiceImpl) GetStudentsOfFaculty(ctx context.Context, name string) (*models.Faculty, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}
	if err := s.ensureNotEmpty(ctx); err != nil {
		return nil, err
	}

	faculty, err := s.facultyRepo.FindFacultyByNameFragment(ctx, name)
	if err != nil {
		return nil, err
	}

	students, err := s.studentRepo.GetStudentsByFaculty(ctx, faculty.ID)
	if err != nil {
		return nil, err
	}

	faculty.Students = make([]models.Student, 0, len(students))
	for _, st := range students {
		faculty.Students = append(faculty.Students, *st)
	}
	return faculty, nil
}

// GetFacultyWithLongestName returns the faculty with the longest name
func (s *facultyServiceImpl) GetFacultyWithLongestName(ctx context.Context) (*models.Faculty, error) {
	if err := s.ensureNotEmpty(ctx); err != nil {
		return nil, err
	}
	return s.facultyRepo.GetFacultyWithLongestName(ctx)
}
