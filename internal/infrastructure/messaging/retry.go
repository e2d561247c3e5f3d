package messaging

import (
	"context"
	"errors"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/oksasatya/go-ddd-registration/pkg/mailer"
)

// AttemptsHeader counts failed deliveries of a republished job.
const AttemptsHeader = "x-attempts"

const maxBackoff = time.Minute

// Republisher is satisfied by *amqp.Channel.
type Republisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type Outcome string

const (
	OutcomeAcked      Outcome = "acked"
	OutcomeRetried    Outcome = "retried"
	OutcomeDeadLetter Outcome = "dead_lettered"
	OutcomeRequeued   Outcome = "requeued"
)

// RetryPolicy settles processed deliveries. Failed sends are republished with
// an attempt counter after a backoff, up to MaxAttempts, then dead-lettered.
type RetryPolicy struct {
	Queue       string
	MaxAttempts int
	Pub         Republisher
	Backoff     func(attempt int) time.Duration
}

func NewRetryPolicy(pub Republisher, queue string, maxAttempts int) *RetryPolicy {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &RetryPolicy{Queue: queue, MaxAttempts: maxAttempts, Pub: pub, Backoff: Backoff}
}

// Backoff doubles from one second per attempt, capped at a minute.
func Backoff(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	if attempt > 6 {
		return maxBackoff
	}
	d := time.Second << (attempt - 1)
	if d > maxBackoff {
		return maxBackoff
	}
	return d
}

// Attempts reads the attempt counter from delivery headers, 0 when absent.
func Attempts(h amqp.Table) int {
	switch v := h[AttemptsHeader].(type) {
	case int8:
		return int(v)
	case int16:
		return int(v)
	case int32:
		return int(v)
	case int64:
		return int(v)
	case int:
		return v
	case uint8:
		return int(v)
	case uint16:
		return int(v)
	case uint32:
		return int(v)
	default:
		return 0
	}
}

// Settle acknowledges d according to the processing error.
func (p *RetryPolicy) Settle(ctx context.Context, d amqp.Delivery, err error) (Outcome, error) {
	switch {
	case err == nil:
		return OutcomeAcked, d.Ack(false)
	case errors.Is(err, mailer.ErrBadJob):
		return OutcomeDeadLetter, d.Nack(false, false)
	}

	attempts := Attempts(d.Headers) + 1
	if attempts >= p.MaxAttempts {
		return OutcomeDeadLetter, d.Nack(false, false)
	}

	if p.Backoff != nil {
		t := time.NewTimer(p.Backoff(attempts))
		select {
		case <-ctx.Done():
			t.Stop()
			return OutcomeRequeued, d.Nack(false, true)
		case <-t.C:
		}
	}

	if perr := p.Pub.PublishWithContext(ctx, "", p.Queue, false, false, retryPublishing(d, attempts)); perr != nil {
		return OutcomeRequeued, errors.Join(perr, d.Nack(false, true))
	}
	return OutcomeRetried, d.Ack(false)
}

func retryPublishing(d amqp.Delivery, attempts int) amqp.Publishing {
	headers := amqp.Table{}
	for k, v := range d.Headers {
		headers[k] = v
	}
	headers[AttemptsHeader] = int32(attempts)
	return amqp.Publishing{
		Headers:      headers,
		ContentType:  d.ContentType,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         d.Body,
	}
}
