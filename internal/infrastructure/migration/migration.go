package migration

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"
	"go.uber.org/zap"
)

// Migration represents a database migration.
type Migration struct {
	Name string
	Up   func(ctx context.Context, pool *pgxpool.Pool) error
}

// RunMigrations executes all necessary database migrations on startup.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, log *zap.Logger) error {
	migrations := []Migration{
		{Name: "create_render_jobs", Up: createRenderJobs},
	}

	for _, m := range migrations {
		if err := m.Up(ctx, pool); err != nil {
			log.Error("migration failed", zap.String("name", m.Name), zap.Error(err))
			return err
		}
		log.Info("migration completed", zap.String("name", m.Name))
	}
	return nil
}

func createRenderJobs(ctx context.Context, pool *pgxpool.Pool) error {
	query := `
		CREATE TABLE IF NOT EXISTS render_jobs (
			id UUID PRIMARY KEY,
			status TEXT NOT NULL,
			document JSONB,
			metadata JSONB DEFAULT '{}'::jsonb,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);
	`
	_, err := pool.Exec(ctx, query)
	return err
}
