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

const facultyNameConstraint = "faculties_name_key"

var facultyColumns = []string{"id", "name", "color"}

// FacultyRepository handles faculty database operations
type FacultyRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewFacultyRepository creates a new FacultyRepository
func NewFacultyRepository(db DBTX) *FacultyRepository {
	return &FacultyRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanFaculty(row pgx.Row) (*models.Faculty, error) {
	faculty := &models.Faculty{}
	if err := row.Scan(&faculty.ID, &faculty.Name, &faculty.Color); err != nil {
		return nil, err
	}
	return faculty, nil
}

func (r *FacultyRepository) queryFaculties(ctx context.Context, query squirrel.SelectBuilder, op string) ([]*models.Faculty, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		logger.Error().Err(err).Msgf("Error building %s SQL", op)
		return nil, fmt.Errorf("failed to build %s query: %w", op, err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msgf("Error executing %s query", op)
		return nil, fmt.Errorf("error querying faculties: %w", err)
	}
	defer rows.Close()

	faculties := []*models.Faculty{}
	for rows.Next() {
		faculty, err := scanFaculty(rows)
		if err != nil {
			logger.Error().Err(err).Msgf("Error scanning faculty row during %s", op)
			return nil, fmt.Errorf("error scanning faculty row: %w", err)
		}
		faculties = append(faculties, faculty)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating faculty rows")
		return nil, fmt.Errorf("error iterating faculty rows: %w", err)
	}

	return faculties, nil
}

// CreateFaculty creates a new faculty
func (r *FacultyRepository) CreateFaculty(ctx context.Context, faculty *models.Faculty) (int64, error) {
	sql, args, err := r.sb.Insert("faculties").
		Columns("name", "color").
		Values(faculty.Name, faculty.Color).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create faculty SQL")
		return 0, fmt.Errorf("failed to build create faculty query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, facultyNameConstraint) {
			return 0, apperrors.ErrFacultyAlreadyExists
		}
		logger.Error().Err(err).Msg("Error executing create faculty query")
		return 0, fmt.Errorf("error creating faculty: %w", err)
	}

	return id, nil
}

// GetFacultyByID retrieves a faculty by ID
func (r *FacultyRepository) GetFacultyByID(ctx context.Context, id int64) (*models.Faculty, error) {
	sql, args, err := r.sb.Select(facultyColumns...).
		From("faculties").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get faculty by ID SQL")
		return nil, fmt.Errorf("failed to build get faculty query: %w", err)
	}

	faculty, err := scanFaculty(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFacultyNotFound
		}
		logger.Error().Err(err).Int64("facultyID", id).Msg("Error scanning faculty row")
		return nil, fmt.Errorf("error getting faculty by ID: %w", err)
	}

	return faculty, nil
}

// GetAllFaculties retrieves all faculties ordered by id
func (r *FacultyRepository) GetAllFaculties(ctx context.Context) ([]*models.Faculty, error) {
	return r.queryFaculties(ctx,
		r.sb.Select(facultyColumns...).From("faculties").OrderBy("id ASC"),
		"get all faculties")
}

// UpdateFaculty replaces name and color of an existing faculty
func (r *FacultyRepository) UpdateFaculty(ctx context.Context, faculty *models.Faculty) error {
	sql, args, err := r.sb.Update("faculties").
		SetMap(map[string]interface{}{
			"name":  faculty.Name,
			"color": faculty.Color,
		}).
		Where(squirrel.Eq{"id": faculty.ID}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building update faculty SQL")
		return fmt.Errorf("failed to build update faculty query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, facultyNameConstraint) {
			return apperrors.ErrFacultyAlreadyExists
		}
		logger.Error().Err(err).Int64("facultyID", faculty.ID).Msg("Error executing update faculty query")
		return fmt.Errorf("error updating faculty: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrFacultyNotFound
	}

	return nil
}

// DeleteFaculty deletes a faculty by ID. Its students are removed by the
// ON DELETE CASCADE rule and their avatars become orphans.
func (r *FacultyRepository) DeleteFaculty(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("faculties").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building delete faculty SQL")
		return fmt.Errorf("failed to build delete faculty query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("facultyID", id).Msg("Error executing delete faculty query")
		return fmt.Errorf("error deleting faculty: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrFacultyNotFound
	}

	return nil
}

// CountFaculties returns the number of faculties
func (r *FacultyRepository) CountFaculties(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").From("faculties").ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count faculties SQL")
		return 0, fmt.Errorf("failed to build count faculties query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		logger.Error().Err(err).Msg("Error executing count faculties query")
		return 0, fmt.Errorf("error counting faculties: %w", err)
	}

	return count, nil
}

// FindFacultiesByColor returns faculties whose color contains fragment, ignoring case
func (r *FacultyRepository) FindFacultiesByColor(ctx context.Context, fragment string) ([]*models.Faculty, error) {
	return r.queryFaculties(ctx,
		r.sb.Select(facultyColumns...).
			From("faculties").
			Where(squirrel.ILike{"color": containsPattern(fragment)}).
			OrderBy("id ASC"),
		"find faculties by color")
}

// FindFacultiesByNameOrColor returns faculties whose name or color equals the given
// value, ignoring case. Blank arguments are not matched.
func (r *FacultyRepository) FindFacultiesByNameOrColor(ctx context.Context, name, color string) ([]*models.Faculty, error) {
	or := squirrel.Or{}
	if name != "" {
		or = append(or, squirrel.Expr("LOWER(name) = LOWER(?)", name))
	}
	if color != "" {
		or = append(or, squirrel.Expr("LOWER(color) = LOWER(?)", color))
	}
	if len(or) == 0 {
		return []*models.Faculty{}, nil
	}

	return r.queryFaculties(ctx,
		r.sb.Select(facultyColumns...).From("faculties").Where(or).OrderBy("id ASC"),
		"find faculties by name or color")
}

// FindFacultyByNameFragment returns the first faculty (lowest id) whose name contains fragment
func (r *FacultyRepository) FindFacultyByNameFragment(ctx context.Context, fragment string) (*models.Faculty, error) {
	sql, args, err := r.sb.Select(facultyColumns...).
		From("faculties").
		Where(squirrel.ILike{"name": containsPattern(fragment)}).
		OrderBy("id ASC").
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building find faculty by name SQL")
		return nil, fmt.Errorf("failed to build find faculty by name query: %w", err)
	}

	faculty, err := scanFaculty(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFacultyNotFound
		}
		logger.Error().Err(err).Str("name", fragment).Msg("Error scanning faculty row")
		return nil, fmt.Errorf("error finding faculty by name: %w", err)
	}

	return faculty, nil
}

// GetFacultyWithLongestName returns the faculty with the longest name, lowest id on ties
func (r *FacultyRepository) GetFacultyWithLongestName(ctx context.Context) (*models.Faculty, error) {
	sql, args, err := r.sb.Select(facultyColumns...).
		From("faculties").
		OrderBy("char_length(name) DESC", "id ASC").
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building longest faculty name SQL")
		return nil, fmt.Errorf("failed to build longest faculty name query: %w", err)
	}

	faculty, err := scanFaculty(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEmptyStorage
		}
		logger.Error().Err(err).Msg("Error scanning faculty row")
		return nil, fmt.Errorf("error getting longest faculty name: %w", err)
	}

	return faculty, nil
}
