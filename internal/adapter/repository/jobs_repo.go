package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"resume-renderer/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"
)

// JobsRepo persists render jobs. A nil pool makes every operation a
// no-op so the service can run without a database.
type JobsRepo struct {
	pool *pgxpool.Pool
}

func NewJobsRepo(pool *pgxpool.Pool) *JobsRepo {
	return &JobsRepo{pool: pool}
}

func (r *JobsRepo) Save(ctx context.Context, j *domain.RenderJob) error {
	if r.pool == nil {
		return nil
	}

	docB, err := json.Marshal(j.Document)
	if err != nil {
		return fmt.Errorf("marshal job document: %w", err)
	}
	metaB, err := json.Marshal(j.Metadata)
	if err != nil {
		return fmt.Errorf("marshal job metadata: %w", err)
	}

	_, err = r.pool.Exec(ctx, `INSERT INTO render_jobs (id, status, document, metadata, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (id) DO UPDATE SET status = EXCLUDED.status, document = EXCLUDED.document, metadata = EXCLUDED.metadata, updated_at = EXCLUDED.updated_at`,
		j.ID, j.Status, docB, metaB, j.CreatedAt, j.UpdatedAt)
	return err
}

func (r *JobsRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.RenderJob, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("jobs repository not configured")
	}

	j := &domain.RenderJob{}
	var docB, metaB []byte
	err := r.pool.QueryRow(ctx, `SELECT id, status, document, metadata, created_at, updated_at FROM render_jobs WHERE id = $1`, id).
		Scan(&j.ID, &j.Status, &docB, &metaB, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(docB) > 0 {
		if err := json.Unmarshal(docB, &j.Document); err != nil {
			return nil, fmt.Errorf("unmarshal job document: %w", err)
		}
	}
	if len(metaB) > 0 {
		if err := json.Unmarshal(metaB, &j.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshal job metadata: %w", err)
		}
	}
	return j, nil
}
