package seed

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

var defaultCourses = []string{
	"Mathematics",
	"Physics",
	"Computer Science",
}

// CreateDefaultData inserts a starter course catalog when the course table is
// empty. Failures are reported but should not abort startup.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	var count int64
	if err := dbPool.QueryRow(ctx, `SELECT COUNT(*) FROM course`).Scan(&count); err != nil {
		lgr.Error().Err(err).Msg("Error checking course catalog")
		return err
	}
	if count > 0 {
		lgr.Debug().Int64("courses", count).Msg("Course catalog already populated, skipping seed")
		return nil
	}

	lgr.Info().Msg("Seeding default course catalog...")
	for _, name := range defaultCourses {
		if _, err := dbPool.Exec(ctx, `INSERT INTO course (name) VALUES ($1)`, name); err != nil {
			lgr.Error().Err(err).Str("course", name).Msg("Error seeding course")
			return err
		}
	}

	lgr.Info().Int("courses", len(defaultCourses)).Msg("Default course catalog created")
	return nil
}
