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

// LastStudentsLimit is how many students GetLastStudents returns.
const LastStudentsLimit = 5

// DefaultNameLetter is used when names-starting-with is called without a letter.
const DefaultNameLetter = "A"

// StudentService defines the interface for student-related operations
type StudentService interface {
	CreateStudent(ctx context.Context, student *models.Student) (int64, error)
	GetStudentByID(ctx context.Context, id int64) (*models.Student, error)
	GetAllStudents(ctx context.Context) ([]*models.Student, error)
	UpdateStudent(ctx context.Context, student *models.Student) error
	DeleteStudent(ctx context.Context, id int64) error
	GetStudentsByAge(ctx context.Context, age int) ([]*models.Student, error)
	GetStudentsByAgeBetween(ctx context.Context, from, to int) ([]*models.Student, error)
	GetFacultyOfStudent(ctx context.Context, name string) (*models.Faculty, error)
	CountStudents(ctx context.Context) (int64, error)
	GetAverageAge(ctx context.Context) (float64, error)
	GetLastStudents(ctx context.Context) ([]*models.Student, error)
	GetNamesStartingWith(ctx context.Context, letter string) ([]string, error)
}

// studentServiceImpl implements the StudentService interface
type studentServiceImpl struct {
	studentRepo   StudentRepository
	facultyRepo   FacultyRepository
	avatars       AvatarLifecycle
	minStudentAge int
}

// NewStudentService creates a new student service instance
func NewStudentService(studentRepo StudentRepository, facultyRepo FacultyRepository, avatars AvatarLifecycle, minStudentAge int) StudentService {
	return &studentServiceImpl{
		studentRepo:   studentRepo,
		facultyRepo:   facultyRepo,
		avatars:       avatars,
		minStudentAge: minStudentAge,
	}
}

func (s *studentServiceImpl) validateStudent(student *models.Student) error {
	if student == nil {
		return fmt.Errorf("%w: student is nil", apperrors.ErrValidationFailed)
	}

	student.Name = strings.TrimSpace(student.Name)
	if err := validation.NewStringValidation("name", student.Name).WithMaxLength(validation.NameMaxLength).Validate(); err != nil {
		return err
	}
	if err := s.validateAge(student.Age); err != nil {
		return err
	}
	if student.FacultyID <= 0 {
		return fmt.Errorf("%w: faculty ID is required", apperrors.ErrValidationFailed)
	}
	return nil
}

func (s *studentServiceImpl) validateAge(age int) error {
	if age <= 0 {
		return fmt.Errorf("%w: age must be positive", apperrors.ErrValidationFailed)
	}
	return validation.NewNumericValidation("age", age).WithMin(s.minStudentAge).Validate()
}

func (s *studentServiceImpl) ensureNotEmpty(ctx context.Context) error {
	count, err := s.studentRepo.CountStudents(ctx)
	if err != nil {
		return fmt.Errorf("failed to count students: %w", err)
	}
	if count == 0 {
		return apperrors.NewCustomError(apperrors.ErrEmptyStorage, "no students have been added yet")
	}
	return nil
}

// CreateStudent adds a student to an existing faculty
func (s *studentServiceImpl) CreateStudent(ctx context.Context, student *models.Student) (int64, error) {
	if err := s.validateStudent(student); err != nil {
		return 0, err
	}

	faculties, err := s.facultyRepo.CountFaculties(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count faculties: %w", err)
	}
	if faculties == 0 {
		return 0, apperrors.NewCustomError(apperrors.ErrEmptyStorage, "add a faculty before adding students")
	}

	id, err := s.studentRepo.CreateStudent(ctx, student)
	if err != nil {
		return 0, err
	}

	student.ID = id
	logger.Ctx(ctx).Info().Int64("studentID", id).Int64("facultyID", student.FacultyID).Msg("Student created")
	return id, nil
}

// GetStudentByID retrieves a student by its ID
func (s *studentServiceImpl) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid student ID", apperrors.ErrValidationFailed)
	}
	if err := s.ensureNotEmpty(ctx); err != nil {
		return nil, err
	}
	return s.studentRepo.GetStudentByID(ctx, id)
}

// GetAllStudents retrieves all students
func (s *studentServiceImpl) GetAllStudents(ctx context.Context) ([]*models.Student, error) {
	students, err := s.studentRepo.GetAllStudents(ctx)
	if err != nil {
		return nil, err
	}
	if len(students) == 0 {
		return nil, apperrors.NewCustomError(apperrors.ErrEmptyStorage, "no students have been added yet")
	}
	return students, nil
}

// UpdateStudent replaces a student's name, age and faculty
func (s *studentServiceImpl) UpdateStudent(ctx context.Context, student *models.Student) error {
	if err := s.validateStudent(student); err != nil {
		return err
	}
	if student.ID <= 0 {
		return fmt.Errorf("%w: invalid student ID", apperrors.ErrValidationFailed)
	}
	if err := s.ensureNotEmpty(ctx); err != nil {
		return err
	}
	return s.studentRepo.UpdateStudent(ctx, student)
}

// DeleteStudent removes a student together with their avatar row and file
func (s *studentServiceImpl) DeleteStudent(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid student ID", apperrors.ErrValidationFailed)
	}
	if err := s.ensureNotEmpty(ctx); err != nil {
		return err
	}

	err := s.avatars.WithFileRemoval(ctx, func(remove func(string) error) error {
		return s.studentRepo.DeleteStudent(ctx, id, remove)
	})
	if err != nil {
		return err
	}

	s.avatars.Invalidate(ctx, id)
	logger.Ctx(ctx).Info().Int64("studentID", id).Msg("Student deleted")
	return nil
}

// GetStudentsByAge returns the students of exactly age
func (s *studentServiceImpl) GetStudentsByAge(ctx context.Context, age int) ([]*models.Student, error) {
	if err := s.validateAge(age); err != nil {
		return nil, err
	}
	if err := s.ensureNotEmpty(ctx); err != nil {
		return nil, err
	}

	students, err := s.studentRepo.FindStudentsByAge(ctx, age)
	if err != nil {
		return nil, err
	}
	if len(students) == 0 {
		return nil, fmt.Errorf("%w: no students aged %d", apperrors.ErrNoMatchingResults, age)
	}
	return students, nil
}

// GetStudentsByAgeBetween returns students with from <= age <= to
func (s *studentServiceImpl) GetStudentsByAgeBetween(ctx context.Context, from, to int) ([]*models.Student, error) {
	if err := s.validateAge(from); err != nil {
		return nil, err
	}
	if from >= to {
		return nil, fmt.Errorf("%w: 'from' must be less than 'to'", apperrors.ErrValidationFailed)
	}
	if err := s.ensureNotEmpty(ctx); err != nil {
		return nil, err
	}

	students, err := s.studentRepo.FindStudentsByAgeBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	if len(students) == 0 {
		return nil, fmt.Errorf("%w: no students aged %d to %d", apperrors.ErrNoMatchingResults, from, to)
	}
	return students, nil
}

// GetFacultyOfStudent returns the faculty of the first student whose name contains name
func (s *studentServiceImpl) GetFacultyOfStudent(ctx context.Context, name string) (*models.Faculty, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}
	if err := s.ensureNotEmpty(ctx); err != nil {
		return nil, err
	}

	student, err := s.studentRepo.FindStudentByNameFragment(ctx, name)
	if err != nil {
		return nil, err
	}
	if student.Faculty != nil {
		return student.Faculty, nil
	}
	return s.facultyRepo.GetFacultyByID(ctx, student.FacultyID)
}

// CountStudents returns the number of students. An empty table yields zero.
func (s *studentServiceImpl) CountStudents(ctx context.Context) (int64, error) {
	return s.studentRepo.CountStudents(ctx)
}

// GetAverageAge returns the mean age of all students
func (s *studentServiceImpl) GetAverageAge(ctx context.Context) (float64, error) {
	if err := s.ensureNotEmpty(ctx); err != nil {
		return 0, err
	}
	return s.studentRepo.AverageAge(ctx)
}

// GetLastStudents returns the most recently added students, newest first
func (s *studentServiceImpl) GetLastStudents(ctx context.Context) ([]*models.Student, error) {
	if err := s.ensureNotEmpty(ctx); err != nil {
		return nil, err
	}
	return s.studentRepo.GetLastStudents(ctx, LastStudentsLimit)
}

// GetNamesStartingWith returns the upper-cased names of students whose name starts with letter
func (s *studentServiceImpl) GetNamesStartingWith(ctx context.Context, letter string) ([]string, error) {
	letter = strings.TrimSpace(letter)
	if letter == "" {
		letter = DefaultNameLetter
	}
	if err := validation.NewStringValidation("letter", letter).WithPattern(validation.CompiledPatterns.Letter).Validate(); err != nil {
		return nil, err
	}
	if err := s.ensureNotEmpty(ctx); err != nil {
		return nil, err
	}

	names, err := s.studentRepo.FindNamesStartingWith(ctx, letter)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no names start with %q", apperrors.ErrNoMatchingResults, letter)
	}

	upper := make([]string, len(names))
	for i, n := range names {
		upper[i] = strings.ToUpper(n)
	}
	return upper, nil
}
