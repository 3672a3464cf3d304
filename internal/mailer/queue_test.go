package mailer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureSender struct {
	mu   sync.Mutex
	sent []Message
	err  error
}

func (s *captureSender) Send(_ context.Context, msg Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, msg)
	return nil
}

func (s *captureSender) all() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.sent...)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestQueueDeliversInOrder(t *testing.T) {
	sender := &captureSender{}
	q := NewQueue(sender, 8, discardLogger())

	q.Enqueue(Message{To: "a@example.com", Subject: "first", Template: TemplateOrderConfirmation})
	q.Enqueue(Message{To: "b@example.com", Subject: "second", Template: TemplateOrderShipped})
	q.Close()

	sent := sender.all()
	require.Len(t, sent, 2)
	assert.Equal(t, "first", sent[0].Subject)
	assert.Equal(t, "second", sent[1].Subject)
}

func TestQueueDropsWhenFull(t *testing.T) {
	// no dispatcher can drain a zero-size buffer until Enqueue returns,
	// so at least one of these must be dropped rather than block
	sender := &captureSender{}
	q := NewQueue(sender, 1, discardLogger())
	defer q.Close()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			q.Enqueue(Message{To: "x@example.com", Template: TemplateOrderConfirmation})
		}
		close(done)
	}()

	<-done // Enqueue never blocks
}

func TestQueueSurvivesSenderFailure(t *testing.T) {
	sender := &captureSender{err: errors.New("smtp down")}
	q := NewQueue(sender, 4, discardLogger())

	q.Enqueue(Message{To: "a@example.com", Template: TemplateOrderConfirmation})
	q.Close()

	assert.Empty(t, sender.all())
}

func TestQueueCloseIdempotent(t *testing.T) {
	q := NewQueue(&captureSender{}, 1, discardLogger())
	q.Close()
	q.Close()
}

func TestRenderKnownTemplates(t *testing.T) {
	data := map[string]any{
		"CustomerName": "Mary",
		"OrderNumber":  "ORD-ABC123",
		"Subtotal":     "50.00",
		"TotalAmount":  "54.00",
		"Currency":     "USD",
		"Name":         "Mary",
		"ServiceType":  "wedding",
	}

	for _, name := range []string{
		TemplateOrderConfirmation,
		TemplateOrderShipped,
		TemplateOrderStatusUpdate,
		TemplateQuoteRequestConfirmation,
		TemplateContactFormConfirmation,
	} {
		buf, err := renderTemplate(name, data)
		require.NoError(t, err, "template %s", name)
		assert.Positive(t, buf.Len(), "template %s", name)
	}
}
