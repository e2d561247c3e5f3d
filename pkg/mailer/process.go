package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/oksasatya/go-ddd-registration/pkg/mailer/templates"
)

// ErrBadJob marks a message that can never be delivered and must not be requeued.
var ErrBadJob = errors.New("bad email job")

type Sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// Process decodes one queued job, renders it and hands it to sender.
// Decode, validation and render failures wrap ErrBadJob; send failures are returned as is.
func Process(ctx context.Context, body []byte, sender Sender) error {
	var job EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		return fmt.Errorf("%w: decode: %w", ErrBadJob, err)
	}
	job.To = strings.TrimSpace(job.To)
	if job.To == "" {
		return fmt.Errorf("%w: missing recipient", ErrBadJob)
	}

	subject, text, html, err := job.Render(templates.Render)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBadJob, err)
	}
	if text == "" && html == "" {
		return fmt.Errorf("%w: empty body", ErrBadJob)
	}
	return sender.Send(ctx, job.To, subject, text, html)
}
