package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	appModels "github.com/hogwarts/school/internal/app/models"
	appRepos "github.com/hogwarts/school/internal/app/repositories"
	"github.com/hogwarts/school/internal/pkg/apperrors"
)

// DefaultFaculties are the four houses created on an empty database.
var DefaultFaculties = []appModels.Faculty{
	{Name: "Gryffindor", Color: "red"},
	{Name: "Slytherin", Color: "green"},
	{Name: "Ravenclaw", Color: "blue"},
	{Name: "Hufflepuff", Color: "yellow"},
}

// CreateDefaultData creates the default houses if they don't exist.
// Errors are collected so one failing house does not stop the others.
func CreateDefaultData(ctx context.Context, db appRepos.DBTX, lgr zerolog.Logger) error {
	facultyRepo := appRepos.NewFacultyRepository(db)

	lgr.Info().Msg("Checking/Creating default faculties...")
	var finalErr error

	for _, def := range DefaultFaculties {
		faculty := def
		id, err := facultyRepo.CreateFaculty(ctx, &faculty)
		switch {
		case errors.Is(err, apperrors.ErrFacultyAlreadyExists):
			lgr.Debug().Str("faculty", faculty.Name).Msg("Faculty already exists, skipping")
		case err != nil:
			lgr.Error().Err(err).Str("faculty", faculty.Name).Msg("Error creating faculty")
			finalErr = errors.Join(finalErr, err)
		default:
			lgr.Info().Int64("facultyID", id).Str("faculty", faculty.Name).Msg("Default faculty created")
		}
	}

	lgr.Info().Msg("Default data check/creation finished.")
	return finalErr
}
