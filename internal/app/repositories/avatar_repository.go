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

var avatarColumns = []string{"id", "student_id", "file_path", "file_size", "media_type", "preview"}

// AvatarRepository handles avatar metadata operations
type AvatarRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewAvatarRepository creates a new AvatarRepository
func NewAvatarRepository(db DBTX) *AvatarRepository {
	return &AvatarRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanAvatar(row pgx.Row) (*models.Avatar, error) {
	avatar := &models.Avatar{}
	if err := row.Scan(&avatar.ID, &avatar.StudentID, &avatar.FilePath, &avatar.FileSize,
		&avatar.MediaType, &avatar.Preview); err != nil {
		return nil, err
	}
	return avatar, nil
}

// UpsertAvatar stores the avatar of avatar.StudentID, replacing any existing row.
// commitFile runs inside the transaction after the row is written and receives the
// file path of the replaced row (empty when there was none); if it fails the row
// change is rolled back.
func (r *AvatarRepository) UpsertAvatar(ctx context.Context, avatar *models.Avatar, commitFile func(previousPath string) error) error {
	if avatar.StudentID == nil {
		return fmt.Errorf("%w: avatar must belong to a student", apperrors.ErrInvalidInput)
	}
	studentID := *avatar.StudentID

	lockSQL, lockArgs, err := r.sb.Select("file_path").
		From("avatars").
		Where(squirrel.Eq{"student_id": studentID}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building lock avatar SQL")
		return fmt.Errorf("failed to build lock avatar query: %w", err)
	}

	upsertSQL, upsertArgs, err := r.sb.Insert("avatars").
		Columns("student_id", "file_path", "file_size", "media_type", "preview").
		Values(studentID, avatar.FilePath, avatar.FileSize, avatar.MediaType, avatar.Preview).
		Suffix("ON CONFLICT (student_id) DO UPDATE SET " +
			"file_path = EXCLUDED.file_path, file_size = EXCLUDED.file_size, " +
			"media_type = EXCLUDED.media_type, preview = EXCLUDED.preview " +
			"RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building upsert avatar SQL")
		return fmt.Errorf("failed to build upsert avatar query: %w", err)
	}

	return withTransaction(ctx, r.db, func(tx pgx.Tx) error {
		var previousPath string
		if err := tx.QueryRow(ctx, lockSQL, lockArgs...).Scan(&previousPath); err != nil && !errors.Is(err, pgx.ErrNoRows) {
			logger.Error().Err(err).Int64("studentID", studentID).Msg("Error locking avatar row")
			return fmt.Errorf("error locking avatar row: %w", err)
		}

		if err := tx.QueryRow(ctx, upsertSQL, upsertArgs...).Scan(&avatar.ID); err != nil {
			if dberrors.IsForeignKeyViolation(err) {
				return apperrors.ErrStudentNotFound
			}
			logger.Error().Err(err).Int64("studentID", studentID).Msg("Error executing upsert avatar query")
			return fmt.Errorf("error upserting avatar: %w", err)
		}

		if commitFile != nil {
			return commitFile(previousPath)
		}
		return nil
	})
}

// GetAvatarByStudentID returns the avatar of a student
func (r *AvatarRepository) GetAvatarByStudentID(ctx context.Context, studentID int64) (*models.Avatar, error) {
	sql, args, err := r.sb.Select(avatarColumns...).
		From("avatars").
		Where(squirrel.Eq{"student_id": studentID}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get avatar SQL")
		return nil, fmt.Errorf("failed to build get avatar query: %w", err)
	}

	avatar, err := scanAvatar(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAvatarNotFound
		}
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error scanning avatar row")
		return nil, fmt.Errorf("error getting avatar: %w", err)
	}

	return avatar, nil
}

// DeleteAvatarByStudentID removes the avatar row of a student. The file is not touched.
func (r *AvatarRepository) DeleteAvatarByStudentID(ctx context.Context, studentID int64) error {
	sql, args, err := r.sb.Delete("avatars").
		Where(squirrel.Eq{"student_id": studentID}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building delete avatar SQL")
		return fmt.Errorf("failed to build delete avatar query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error executing delete avatar query")
		return fmt.Errorf("error deleting avatar: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAvatarNotFound
	}

	return nil
}

// ListAvatars returns a page of avatars ordered by id, preview included
func (r *AvatarRepository) ListAvatars(ctx context.Context, offset, limit uint64) ([]*models.Avatar, error) {
	sql, args, err := r.sb.Select(avatarColumns...).
		From("avatars").
		OrderBy("id ASC").
		Offset(offset).
		Limit(limit).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building list avatars SQL")
		return nil, fmt.Errorf("failed to build list avatars query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list avatars query")
		return nil, fmt.Errorf("error querying avatars: %w", err)
	}
	defer rows.Close()

	avatars := []*models.Avatar{}
	for rows.Next() {
		avatar, err := scanAvatar(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning avatar row during list")
			return nil, fmt.Errorf("error scanning avatar row: %w", err)
		}
		avatars = append(avatars, avatar)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating avatar rows")
		return nil, fmt.Errorf("error iterating avatar rows: %w", err)
	}

	return avatars, nil
}

// CountAvatars returns the number of avatar rows
func (r *AvatarRepository) CountAvatars(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").From("avatars").ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count avatars SQL")
		return 0, fmt.Errorf("failed to build count avatars query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		logger.Error().Err(err).Msg("Error executing count avatars query")
		return 0, fmt.Errorf("error counting avatars: %w", err)
	}

	return count, nil
}

// DeleteOrphanAvatars removes rows whose student is gone and calls removeFile for each
// of their paths inside the same transaction. Returns the number of rows removed.
func (r *AvatarRepository) DeleteOrphanAvatars(ctx context.Context, removeFile func(filePath string) error) (int, error) {
	sql, args, err := r.sb.Delete("avatars").
		Where(squirrel.Eq{"student_id": nil}).
		Suffix("RETURNING file_path").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building delete orphan avatars SQL")
		return 0, fmt.Errorf("failed to build delete orphan avatars query: %w", err)
	}

	var removed int
	err = withTransaction(ctx, r.db, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, sql, args...)
		if err != nil {
			logger.Error().Err(err).Msg("Error executing delete orphan avatars query")
			return fmt.Errorf("error deleting orphan avatars: %w", err)
		}

		paths, err := pgx.CollectRows(rows, pgx.RowTo[string])
		if err != nil {
			return fmt.Errorf("error collecting orphan avatar paths: %w", err)
		}

		for _, p := range paths {
			if err := removeFile(p); err != nil {
				return err
			}
		}
		removed = len(paths)
		return nil
	})
	if err != nil {
		return 0, err
	}

	return removed, nil
}

// ListAvatarPaths returns the file path of every avatar row
func (r *AvatarRepository) ListAvatarPaths(ctx context.Context) ([]string, error) {
	sql, args, err := r.sb.Select("file_path").From("avatars").ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list avatar paths SQL")
		return nil, fmt.Errorf("failed to build list avatar paths query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list avatar paths query")
		return nil, fmt.Errorf("error querying avatar paths: %w", err)
	}

	paths, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("error collecting avatar paths: %w", err)
	}

	return paths, nil
}
