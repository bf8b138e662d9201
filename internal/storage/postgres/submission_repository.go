package postgres

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"

	"github.com/recuperacasa/intake-api/internal/domain/form"
	"github.com/recuperacasa/intake-api/internal/logger"
)

// SubmissionRepository persists form submissions. Rows are append-only:
// this service never updates or deletes what it stored.
type SubmissionRepository interface {
	Create(ctx context.Context, submission form.Submission) error
}

// GormSubmissionRepository implements SubmissionRepository using GORM.
// One repository serves all four form kinds; the submission's model
// decides the target table.
type GormSubmissionRepository struct {
	db  *gorm.DB
	log *log.Logger
}

// NewSubmissionRepository creates a new submission repository
func NewSubmissionRepository(db *gorm.DB) *GormSubmissionRepository {
	return &GormSubmissionRepository{
		db:  db,
		log: logger.Repository("submission"),
	}
}

// Create inserts the submission as a single row and fills in the
// database-assigned identifier. The insert and identifier assignment are
// one atomic statement, so identifiers are unique and increasing per
// kind even under concurrent writers. Failures are not retried.
func (r *GormSubmissionRepository) Create(ctx context.Context, submission form.Submission) error {
	if submission == nil {
		r.log.Error("submission cannot be nil")
		return fmt.Errorf("submission cannot be nil")
	}

	kind := submission.Kind().String()
	r.log.Debug("creating submission", "kind", kind, "attachments", len(submission.AttachmentRecords()))

	if err := r.db.WithContext(ctx).Create(submission).Error; err != nil {
		r.log.Error("failed to create submission", "kind", kind, "error", err)
		return fmt.Errorf("failed to create %s submission: %w", kind, err)
	}

	r.log.Info("submission created", "kind", kind, "id", submission.RecordID())
	return nil
}
