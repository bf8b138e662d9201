package intake

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/recuperacasa/intake-api/internal/domain/form"
	"github.com/recuperacasa/intake-api/internal/logger"
)

// Store persists one submission and assigns its identifier.
type Store interface {
	Create(ctx context.Context, submission form.Submission) error
}

// Notifier delivers a best-effort summary of a persisted submission.
// It never reports failure; delivery problems stay on its side.
type Notifier interface {
	Dispatch(ctx context.Context, def form.Definition, submission form.Submission)
}

// Pipeline runs the shared intake flow: normalize the parsed request into
// a record, persist it, then notify. One instance serves all form kinds;
// the Definition passed to Execute selects fields, table and template.
type Pipeline struct {
	store    Store
	notifier Notifier
}

func NewPipeline(store Store, notifier Notifier) *Pipeline {
	return &Pipeline{
		store:    store,
		notifier: notifier,
	}
}

// Execute processes one submission and returns the assigned identifier.
//
// Persistence is the correctness boundary: a store failure aborts the
// flow before any notification is attempted and is the only error
// surfaced to the caller. Once the row is written the identifier is
// final, and a notification failure cannot take it back.
func (p *Pipeline) Execute(ctx context.Context, def form.Definition, values map[string]string, files []*multipart.FileHeader) (uint64, error) {
	log := logger.Intake(def.Kind.String())

	submission := def.New()
	submission.Assign(values)
	submission.SetAttachments(SummarizeFiles(files))

	if err := p.store.Create(ctx, submission); err != nil {
		log.Error("failed to persist submission", "error", err, "fields", len(values), "files", len(files))
		return 0, fmt.Errorf("persist %s submission: %w", def.Kind, err)
	}

	log.Info("submission persisted", "id", submission.RecordID(), "files", len(files))

	p.notifier.Dispatch(ctx, def, submission)

	return submission.RecordID(), nil
}
