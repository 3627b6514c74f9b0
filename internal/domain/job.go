package domain

import (
	"time"

	"github.com/google/uuid"
)

// Job statuses.
const (
	JobPending   = "pending"
	JobCompleted = "completed"
	JobFailed    = "failed"
)

// RenderJob records one render invocation: the raw document it was given
// and what came out of it. The enriched view model itself is transient
// and never persisted; only artifact paths and failure details land in
// Metadata.
type RenderJob struct {
	ID        uuid.UUID              `json:"id"`
	Status    string                 `json:"status"`
	Document  map[string]interface{} `json:"document"`
	Metadata  map[string]interface{} `json:"metadata"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

func NewRenderJob(doc map[string]interface{}) *RenderJob {
	now := time.Now()
	return &RenderJob{
		ID:        uuid.New(),
		Status:    JobPending,
		Document:  doc,
		Metadata:  map[string]interface{}{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
