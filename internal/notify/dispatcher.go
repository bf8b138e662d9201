// Package notify formats and dispatches operator notifications for
// persisted submissions. Delivery is advisory: it may fail without any
// effect on the submission that triggered it.
package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/recuperacasa/intake-api/internal/domain/form"
	"github.com/recuperacasa/intake-api/internal/logger"
	"github.com/recuperacasa/intake-api/internal/mail"
)

// Placeholder rendered for fields the requester left empty.
const emptyFieldPlaceholder = "(não indicado)"

// Dispatcher builds a human-readable summary of a submission and sends
// it through the configured mail channel.
type Dispatcher struct {
	sender mail.Sender
}

func NewDispatcher(sender mail.Sender) *Dispatcher {
	return &Dispatcher{sender: sender}
}

// Dispatch attempts exactly one delivery for the given submission.
// Failures are logged and discarded; Dispatch never reports them, so a
// broken mail channel cannot affect the response already owed to the
// requester.
func (d *Dispatcher) Dispatch(ctx context.Context, def form.Definition, submission form.Submission) {
	log := logger.WithContext("component", "notify", "kind", def.Kind.String())

	subject := fmt.Sprintf("%s #%d", def.Subject, submission.RecordID())
	body := FormatBody(submission)

	if err := d.sender.Send(ctx, subject, body); err != nil {
		log.Error("failed to send notification", "id", submission.RecordID(), "error", err)
		return
	}

	log.Info("notification sent", "id", submission.RecordID())
}

// FormatBody renders the submission's fields and attachment summary as
// plain text, one "label: value" line per field.
func FormatBody(submission form.Submission) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Pedido #%d (%s)\n\n", submission.RecordID(), submission.Kind())

	for _, field := range submission.Fields() {
		value := field.Value
		if value == "" {
			value = emptyFieldPlaceholder
		}
		fmt.Fprintf(&b, "%s: %s\n", field.Name, value)
	}

	attachments := submission.AttachmentRecords()
	fmt.Fprintf(&b, "\nFicheiros (%d):\n", len(attachments))
	if len(attachments) == 0 {
		b.WriteString("(nenhum)\n")
	}
	for _, att := range attachments {
		name := att.OriginalName
		if name == "" {
			name = emptyFieldPlaceholder
		}
		mediaType := att.MediaType
		if mediaType == "" {
			mediaType = "desconhecido"
		}
		fmt.Fprintf(&b, "- %s (%d bytes, %s)\n", name, att.SizeBytes, mediaType)
	}

	return b.String()
}
