package worker

// email_worker.go
// Delivers quote PDFs by email. Transient SMTP failures are retried with
// exponential backoff; after maxAttempts the job goes to the DLQ.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	emailMaxAttempts = 3
	emailBaseBackoff = 2 * time.Second
)

// EmailJobPayload is the job envelope sent to QueueEmail.
type EmailJobPayload struct {
	ToEmail string `json:"to_email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	PDFPath string `json:"pdf_path,omitempty"`
}

// Mailer sends an email with an optional file attachment.
type Mailer interface {
	Send(to, subject, body, attachmentPath string) error
}

type EmailWorker struct {
	mailer Mailer
}

func NewEmailWorker(mailer Mailer) *EmailWorker {
	return &EmailWorker{mailer: mailer}
}

func (w *EmailWorker) Process(ctx context.Context, rdb *redis.Client, raw json.RawMessage) {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		SendToDLQ(ctx, rdb, QueueEmail, "email", raw, "unmarshal: "+err.Error(), 0)
		return
	}

	err := withRetry(ctx, emailMaxAttempts, emailBaseBackoff, func() error {
		return w.mailer.Send(payload.ToEmail, payload.Subject, payload.Body, payload.PDFPath)
	})
	if err != nil {
		log.Error().Err(err).Str("email", payload.ToEmail).Msg("email_worker: delivery failed after retries")
		SendToDLQ(ctx, rdb, QueueEmail, "email", raw, err.Error(), emailMaxAttempts)
		return
	}

	log.Info().Str("email", payload.ToEmail).Msg("email_worker: email sent")
}

// withRetry runs fn up to maxAttempts times with exponential backoff
// (base, 2*base, 4*base, ...). Bails out early on context cancellation.
func withRetry(ctx context.Context, maxAttempts int, base time.Duration, fn func() error) error {
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if attempt == maxAttempts {
			break
		}
		backoff := base * time.Duration(1<<(attempt-1))
		log.Warn().Err(err).Int("attempt", attempt).Dur("backoff", backoff).Msg("retrying after failure")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
	return err
}
