package mailer

import (
	"context"
	"log/slog"
	"sync"
)

// Queue decouples email delivery from the request path. Enqueue never
// blocks: when the buffer is full the message is dropped and logged, which
// matches the at-least-once, best-effort contract of the callers.
type Queue struct {
	ch     chan Message
	sender Sender
	logger *slog.Logger

	wg        sync.WaitGroup
	closeOnce sync.Once
}

func NewQueue(sender Sender, size int, logger *slog.Logger) *Queue {
	q := &Queue{
		ch:     make(chan Message, size),
		sender: sender,
		logger: logger,
	}

	q.wg.Add(1)
	go q.dispatch()

	return q
}

func (q *Queue) Enqueue(msg Message) {
	select {
	case q.ch <- msg:
	default:
		q.logger.Error("mail queue full, dropping message",
			"to", msg.To,
			"template", msg.Template,
		)
	}
}

func (q *Queue) dispatch() {
	defer q.wg.Done()

	for msg := range q.ch {
		if err := q.sender.Send(context.Background(), msg); err != nil {
			q.logger.Error("failed to send email",
				"to", msg.To,
				"template", msg.Template,
				"error", err,
			)
		}
	}
}

// Close drains queued messages and stops the dispatcher.
func (q *Queue) Close() {
	q.closeOnce.Do(func() {
		close(q.ch)
	})
	q.wg.Wait()
}
