package services

import (
	"context"

	"github.com/hogwarts/school/internal/app/models"
)

// Services defined in this package:
// - FacultyService: faculties and their queries
// - StudentService: students and their queries
// - AvatarService: avatar upload pipeline, retrieval and maintenance

// FacultyRepository is the faculty storage used by the services.
// *repositories.FacultyRepository implements it.
type FacultyRepository interface {
	CreateFaculty(ctx context.Context, faculty *models.Faculty) (int64, error)
	GetFacultyByID(ctx context.Context, id int64) (*models.Faculty, error)
	GetAllFaculties(ctx context.Context) ([]*models.Faculty, error)
	UpdateFaculty(ctx context.Context, faculty *models.Faculty) error
	DeleteFaculty(ctx context.Context, id int64) error
	CountFaculties(ctx context.Context) (int64, error)
	FindFacultiesByColor(ctx context.Context, fragment string) ([]*models.Faculty, error)
	FindFacultiesByNameOrColor(ctx context.Context, name, color string) ([]*models.Faculty, error)
	FindFacultyByNameFragment(ctx context.Context, fragment string) (*models.Faculty, error)
	GetFacultyWithLongestName(ctx context.Context) (*models.Faculty, error)
}

// StudentRepository is the student storage used by the services.
// *repositories.StudentRepository implements it.
type StudentRepository interface {
	CreateStudent(ctx context.Context, student *models.Student) (int64, error)
	GetStudentByID(ctx context.Context, id int64) (*models.Student, error)
	StudentExists(ctx context.Context, id int64) (bool, error)
	GetAllStudents(ctx context.Context) ([]*models.Student, error)
	UpdateStudent(ctx context.Context, student *models.Student) error
	DeleteStudent(ctx context.Context, id int64, removeFile func(filePath string) error) error
	CountStudents(ctx context.Context) (int64, error)
	AverageAge(ctx context.Context) (float64, error)
	FindStudentsByAge(ctx context.Context, age int) ([]*models.Student, error)
	FindStudentsByAgeBetween(ctx context.Context, from, to int) ([]*models.Student, error)
	FindStudentByNameFragment(ctx context.Context, fragment string) (*models.Student, error)
	GetLastStudents(ctx context.Context, limit uint64) ([]*models.Student, error)
	GetStudentsByFaculty(ctx context.Context, facultyID int64) ([]*models.Student, error)
	FindNamesStartingWith(ctx context.Context, prefix string) ([]string, error)
}

// AvatarRepository is the avatar metadata storage used by the services.
// *repositories.AvatarRepository implements it.
type AvatarRepository interface {
	UpsertAvatar(ctx context.Context, avatar *models.Avatar, commitFile func(previousPath string) error) error
	GetAvatarByStudentID(ctx context.Context, studentID int64) (*models.Avatar, error)
	DeleteAvatarByStudentID(ctx context.Context, studentID int64) error
	ListAvatars(ctx context.Context, offset, limit uint64) ([]*models.Avatar, error)
	CountAvatars(ctx context.Context) (int64, error)
	DeleteOrphanAvatars(ctx context.Context, removeFile func(filePath string) error) (int, error)
	ListAvatarPaths(ctx context.Context) ([]string, error)
}

// AvatarLifecycle lets the entity services keep avatar files and cached previews
// in step with student removal.
type AvatarLifecycle interface {
	WithFileRemoval(ctx context.Context, op func(remove func(filePath string) error) error) error
	Invalidate(ctx context.Context, studentIDs ...int64)
}
