package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/hogwarts/school/internal/app/models"
	"github.com/hogwarts/school/internal/pkg/apperrors"
	"github.com/hogwarts/school/internal/pkg/dberrors"
	"github.com/hogwarts/school/internal/pkg/logger"
	"github.com/jackc/pgx/v5"
)

// StudentRepository handles student database operations
type StudentRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db DBTX) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// selectStudents selects students joined with their faculty
func (r *StudentRepository) selectStudents() squirrel.SelectBuilder {
	return r.sb.Select("s.id", "s.name", "s.age", "s.faculty_id", "f.name", "f.color").
		From("students s").
		Join("faculties f ON f.id = s.faculty_id")
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	student := &models.Student{Faculty: &models.Faculty{}}
	if err := row.Scan(&student.ID, &student.Name, &student.Age, &student.FacultyID,
		&student.Faculty.Name, &student.Faculty.Color); err != nil {
		return nil, err
	}
	student.Faculty.ID = student.FacultyID
	return student, nil
}

func (r *StudentRepository) queryStudents(ctx context.Context, query squirrel.SelectBuilder, op string) ([]*models.Student, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		logger.Error().Err(err).Msgf("Error building %s SQL", op)
		return nil, fmt.Errorf("failed to build %s query: %w", op, err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msgf("Error executing %s query", op)
		return nil, fmt.Errorf("error querying students: %w", err)
	}
	defer rows.Close()

	students := []*models.Student{}
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			logger.Error().Err(err).Msgf("Error scanning student row during %s", op)
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating student rows")
		return nil, fmt.Errorf("error iterating student rows: %w", err)
	}

	return students, nil
}

// CreateStudent inserts a student and returns its id
func (r *StudentRepository) CreateStudent(ctx context.Context, student *models.Student) (int64, error) {
	sql, args, err := r.sb.Insert("students").
		Columns("name", "age", "faculty_id").
		Values(student.Name, student.Age, student.FacultyID).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create student SQL")
		return 0, fmt.Errorf("failed to build create student query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrFacultyNotFound
		}
		if dberrors.IsCheckViolation(err) {
			return 0, fmt.Errorf("%w: age must be positive", apperrors.ErrInvalidInput)
		}
		logger.Error().Err(err).Msg("Error executing create student query")
		return 0, fmt.Errorf("error creating student: %w", err)
	}

	return id, nil
}

// GetStudentByID retrieves a student with its faculty
func (r *StudentRepository) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	sql, args, err := r.selectStudents().
		Where(squirrel.Eq{"s.id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get student by ID SQL")
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Int64("studentID", id).Msg("Error scanning student row")
		return nil, fmt.Errorf("error getting student by ID: %w", err)
	}

	return student, nil
}

// StudentExists reports whether a student with id exists
func (r *StudentRepository) StudentExists(ctx context.Context, id int64) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("students").
		Where(squirrel.Eq{"id": id}).
		Prefix("SELECT EXISTS (").Suffix(")").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building student exists SQL")
		return false, fmt.Errorf("failed to build student existence query: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		logger.Error().Err(err).Int64("studentID", id).Msg("Error checking student existence")
		return false, fmt.Errorf("error checking student existence: %w", err)
	}

	return exists, nil
}

// GetAllStudents retrieves every student ordered by id
func (r *StudentRepository) GetAllStudents(ctx context.Context) ([]*models.Student, error) {
	return r.queryStudents(ctx, r.selectStudents().OrderBy("s.id ASC"), "get all students")
}

// UpdateStudent replaces the mutable fields of a student
func (r *StudentRepository) UpdateStudent(ctx context.Context, student *models.Student) error {
	sql, args, err := r.sb.Update("students").
		SetMap(map[string]interface{}{
			"name":       student.Name,
			"age":        student.Age,
			"faculty_id": student.FacultyID,
		}).
		Where(squirrel.Eq{"id": student.ID}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building update student SQL")
		return fmt.Errorf("failed to build update student query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrFacultyNotFound
		}
		logger.Error().Err(err).Int64("studentID", student.ID).Msg("Error executing update student query")
		return fmt.Errorf("error updating student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// DeleteStudent removes a student together with its avatar row in one transaction.
// removeFile is called with the avatar file path (if any) before commit; an error
// from it rolls the whole removal back.
func (r *StudentRepository) DeleteStudent(ctx context.Context, id int64, removeFile func(filePath string) error) error {
	avatarSQL, avatarArgs, err := r.sb.Delete("avatars").
		Where(squirrel.Eq{"student_id": id}).
		Suffix("RETURNING file_path").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete student avatar SQL")
		return fmt.Errorf("failed to build delete student avatar query: %w", err)
	}

	studentSQL, studentArgs, err := r.sb.Delete("students").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete student SQL")
		return fmt.Errorf("failed to build delete student query: %w", err)
	}

	return withTransaction(ctx, r.db, func(tx pgx.Tx) error {
		var filePath string
		err := tx.QueryRow(ctx, avatarSQL, avatarArgs...).Scan(&filePath)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			logger.Error().Err(err).Int64("studentID", id).Msg("Error deleting student avatar")
			return fmt.Errorf("error deleting student avatar: %w", err)
		}

		cmdTag, err := tx.Exec(ctx, studentSQL, studentArgs...)
		if err != nil {
			logger.Error().Err(err).Int64("studentID", id).Msg("Error executing delete student query")
			return fmt.Errorf("error deleting student: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrStudentNotFound
		}

		if filePath != "" && removeFile != nil {
			if err := removeFile(filePath); err != nil {
				return err
			}
		}
		return nil
	})
}

// CountStudents returns the number of students
func (r *StudentRepository) CountStudents(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").From("students").ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count students SQL")
		return 0, fmt.Errorf("failed to build count students query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		logger.Error().Err(err).Msg("Error executing count students query")
		return 0, fmt.Errorf("error counting students: %w", err)
	}

	return count, nil
}

// AverageAge returns the mean student age, 0 when there are no students
func (r *StudentRepository) AverageAge(ctx context.Context) (float64, error) {
	sql, args, err := r.sb.Select("COALESCE(AVG(age), 0)::float8").From("students").ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building average age SQL")
		return 0, fmt.Errorf("failed to build average age query: %w", err)
	}

	var avg float64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&avg); err != nil {
		logger.Error().Err(err).Msg("Error executing average age query")
		return 0, fmt.Errorf("error computing average age: %w", err)
	}

	return avg, nil
}

// FindStudentsByAge returns students of exactly age
func (r *StudentRepository) FindStudentsByAge(ctx context.Context, age int) ([]*models.Student, error) {
	return r.queryStudents(ctx,
		r.selectStudents().Where(squirrel.Eq{"s.age": age}).OrderBy("s.id ASC"),
		"find students by age")
}

// FindStudentsByAgeBetween returns students with from <= age <= to
func (r *StudentRepository) FindStudentsByAgeBetween(ctx context.Context, from, to int) ([]*models.Student, error) {
	return r.queryStudents(ctx,
		r.selectStudents().
			Where(squirrel.GtOrEq{"s.age": from}).
			Where(squirrel.LtOrEq{"s.age": to}).
			OrderBy("s.age ASC", "s.id ASC"),
		"find students by age range")
}

// FindStudentByNameFragment returns the first student (lowest id) whose name contains fragment, ignoring case
func (r *StudentRepository) FindStudentByNameFragment(ctx context.Context, fragment string) (*models.Student, error) {
	sql, args, err := r.selectStudents().
		Where(squirrel.ILike{"s.name": containsPattern(fragment)}).
		OrderBy("s.id ASC").
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building find student by name SQL")
		return nil, fmt.Errorf("failed to build find student by name query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Str("name", fragment).Msg("Error scanning student row")
		return nil, fmt.Errorf("error finding student by name: %w", err)
	}

	return student, nil
}

// GetLastStudents returns the limit most recently added students, newest first
func (r *StudentRepository) GetLastStudents(ctx context.Context, limit uint64) ([]*models.Student, error) {
	return r.queryStudents(ctx,
		r.selectStudents().OrderBy("s.id DESC").Limit(limit),
		"get last students")
}

// GetStudentsByFaculty returns the students of a faculty
func (r *StudentRepository) GetStudentsByFaculty(ctx context.Context, facultyID int64) ([]*models.Student, error) {
	return r.queryStudents(ctx,
		r.selectStudents().Where(squirrel.Eq{"s.faculty_id": facultyID}).OrderBy("s.id ASC"),
		"get students by faculty")
}

// FindNamesStartingWith returns the names of students whose name starts with prefix (case-sensitive)
func (r *StudentRepository) FindNamesStartingWith(ctx context.Context, prefix string) ([]string, error) {
	sql, args, err := r.sb.Select("name").
		From("students").
		Where(squirrel.Like{"name": prefixPattern(prefix)}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building names starting with SQL")
		return nil, fmt.Errorf("failed to build names starting with query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing names starting with query")
		return nil, fmt.Errorf("error querying student names: %w", err)
	}

	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		logger.Error().Err(err).Msg("Error collecting student names")
		return nil, fmt.Errorf("error collecting student names: %w", err)
	}

	return names, nil
}
