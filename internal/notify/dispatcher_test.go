package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recuperacasa/intake-api/internal/domain/form"
)

type fakeSender struct {
	subject string
	body    string
	calls   int
	err     error
}

func (s *fakeSender) Send(ctx context.Context, subject string, body string) error {
	s.calls++
	s.subject = subject
	s.body = body
	return s.err
}

func insuranceDefinition(t *testing.T) form.Definition {
	t.Helper()
	for _, def := range form.Definitions() {
		if def.Kind == form.KindInsurance {
			return def
		}
	}
	t.Fatal("insurance definition not registered")
	return form.Definition{}
}

func TestDispatchBuildsSubjectAndBody(t *testing.T) {
	sender := &fakeSender{}
	dispatcher := NewDispatcher(sender)

	submission := &form.InsuranceRequest{
		ID:      42,
		Name:    "Ana Silva",
		Insurer: "Fidelidade",
	}
	submission.SetAttachments([]form.Attachment{
		{OriginalName: "apolice.pdf", SizeBytes: 1024, MediaType: "application/pdf"},
	})

	dispatcher.Dispatch(context.Background(), insuranceDefinition(t), submission)

	require.Equal(t, 1, sender.calls)
	assert.Equal(t, "Novo pedido de apoio com seguro #42", sender.subject)
	assert.Contains(t, sender.body, "name: Ana Silva")
	assert.Contains(t, sender.body, "insurer: Fidelidade")
	assert.Contains(t, sender.body, "apolice.pdf (1024 bytes, application/pdf)")
}

func TestDispatchRendersPlaceholderForEmptyFields(t *testing.T) {
	sender := &fakeSender{}
	dispatcher := NewDispatcher(sender)

	dispatcher.Dispatch(context.Background(), insuranceDefinition(t), &form.InsuranceRequest{ID: 7})

	require.Equal(t, 1, sender.calls)
	assert.Contains(t, sender.body, "name: (não indicado)")
	assert.Contains(t, sender.body, "policy_number: (não indicado)")
	assert.Contains(t, sender.body, "Ficheiros (0)")
	assert.Contains(t, sender.body, "(nenhum)")
}

func TestDispatchSwallowsDeliveryFailure(t *testing.T) {
	sender := &fakeSender{err: errors.New("relay unreachable")}
	dispatcher := NewDispatcher(sender)

	// Must not panic or propagate; the caller has no error to see.
	dispatcher.Dispatch(context.Background(), insuranceDefinition(t), &form.InsuranceRequest{ID: 8})

	assert.Equal(t, 1, sender.calls)
}

func TestFormatBodyFieldOrder(t *testing.T) {
	submission := &form.BudgetRequest{ID: 1, Name: "Ana", Urgency: "alta"}
	submission.SetAttachments(nil)

	body := FormatBody(submission)

	assert.Regexp(t, `(?s)name:.*email:.*phone:.*address:.*district:.*damage_type:.*description:.*urgency:`, body)
}
