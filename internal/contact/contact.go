// Package contact handles the contact form: validation, submission with a
// local fallback, drafts, and redelivery of queued submissions.
package contact

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"github.com/five82/capture/internal/backend"
	"github.com/five82/capture/internal/storage"
	"github.com/five82/capture/internal/validate"
)

// ErrInvalidPayload wraps validation failures.
var ErrInvalidPayload = errors.New("invalid contact payload")

const (
	sentFallback  = "Message sent. Thank you!"
	queuedMessage = "Server unavailable, message saved locally."
)

// Payload is a contact form submission.
type Payload struct {
	Name    string `validate:"required,max=200"`
	Email   string `validate:"required,email"`
	Service string `validate:"max=200"`
	Message string `validate:"required,max=5000"`
}

// Trimmed returns p with surrounding whitespace removed. Service is kept
// verbatim, matching the form's select value.
func (p Payload) Trimmed() Payload {
	return Payload{
		Name:    strings.TrimSpace(p.Name),
		Email:   strings.TrimSpace(p.Email),
		Service: p.Service,
		Message: strings.TrimSpace(p.Message),
	}
}

// Validate checks the trimmed payload.
func Validate(p Payload) error {
	if err := validate.Struct(p.Trimmed()); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidPayload, validate.Describe(err))
	}
	return nil
}

// Result describes the outcome of Submit.
type Result struct {
	Message  string // user-facing confirmation
	Queued   bool   // true when the submission went to the local outbox
	OutboxID string
}

// Store is the persistence the service needs. *storage.DB implements it.
type Store interface {
	SaveDraft(ctx context.Context, d storage.Draft) error
	Draft(ctx context.Context) (storage.Draft, bool, error)
	ClearDraft(ctx context.Context) error
	AppendOutbox(ctx context.Context, e storage.OutboxEntry) error
	Outbox(ctx context.Context) ([]storage.OutboxEntry, error)
	CountOutbox(ctx context.Context) (int, error)
	MarkAttempt(ctx context.Context, id, lastError string) error
	DeleteOutbox(ctx context.Context, id string) error
}

var _ Store = (*storage.DB)(nil)

// Submitter delivers a payload to the backend. *backend.Client implements it.
type Submitter interface {
	SubmitContact(ctx context.Context, payload backend.ContactPayload) (backend.Confirmation, error)
}

// Service ties the backend and local storage together.
type Service struct {
	client Submitter
	store  Store
	clock  clockwork.Clock
	newID  func() string
}

// NewService builds a Service. A nil clock uses the real clock.
func NewService(client Submitter, store Store, clock clockwork.Clock) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Service{client: client, store: store, clock: clock, newID: uuid.NewString}
}

// Submit validates p and posts it. On any delivery failure the payload is
// appended to the outbox and a queued Result is returned; only validation and
// local storage failures are reported as errors. A successful post clears the
// saved draft.
func (s *Service) Submit(ctx context.Context, p Payload) (Result, error) {
	p = p.Trimmed()
	if err := Validate(p); err != nil {
		return Result{}, err
	}

	conf, err := s.client.SubmitContact(ctx, toWire(p))
	if err == nil {
		if cerr := s.store.ClearDraft(ctx); cerr != nil {
			logrus.WithError(cerr).Warn("submitted contact but could not clear draft")
		}
		msg := strings.TrimSpace(conf.Message)
		if msg == "" {
			msg = sentFallback
		}
		logrus.WithField("email", p.Email).Info("contact submitted")
		return Result{Message: msg}, nil
	}

	entry := storage.OutboxEntry{
		ID:        s.newID(),
		Contact:   toStored(p),
		CreatedAt: s.clock.Now(),
		LastError: err.Error(),
	}
	logrus.WithError(err).WithField("outbox_id", entry.ID).Warn("contact post failed; saving locally")
	if serr := s.store.AppendOutbox(ctx, entry); serr != nil {
		return Result{}, fmt.Errorf("submit contact: %w", errors.Join(err, serr))
	}
	return Result{Message: queuedMessage, Queued: true, OutboxID: entry.ID}, nil
}

// SaveDraft stores p as the current draft, replacing any earlier one. Drafts
// are saved verbatim; validation happens on submit.
func (s *Service) SaveDraft(ctx context.Context, p Payload) error {
	return s.store.SaveDraft(ctx, storage.Draft{Contact: toStored(p), SavedAt: s.clock.Now()})
}

// LoadDraft returns the saved draft, if any.
func (s *Service) LoadDraft(ctx context.Context) (Payload, bool, error) {
	d, ok, err := s.store.Draft(ctx)
	if err != nil || !ok {
		return Payload{}, false, err
	}
	return fromStored(d.Contact), true, nil
}

// Pending lists queued submissions, oldest first.
func (s *Service) Pending(ctx context.Context) ([]storage.OutboxEntry, error) {
	return s.store.Outbox(ctx)
}

// PendingCount returns the number of queued submissions.
func (s *Service) PendingCount(ctx context.Context) (int, error) {
	return s.store.CountOutbox(ctx)
}

// FlushReport summarises a Flush run.
type FlushReport struct {
	Delivered int
	Rejected  int // dropped after the backend refused them as invalid
	Remaining int
}

// Flush redelivers queued submissions oldest first. Delivered entries are
// deleted. Entries the backend rejects with a 4xx are dropped, since sending
// them again cannot succeed. The first transport or server failure stops the
// run and is returned after recording the attempt.
func (s *Service) Flush(ctx context.Context) (FlushReport, error) {
	entries, err := s.store.Outbox(ctx)
	if err != nil {
		return FlushReport{}, err
	}

	var report FlushReport
	for i, e := range entries {
		if err := ctx.Err(); err != nil {
			report.Remaining = len(entries) - i
			return report, err
		}
		log := logrus.WithField("outbox_id", e.ID)

		_, err := s.client.SubmitContact(ctx, toWire(fromStored(e.Contact)))
		if err == nil {
			if derr := s.store.DeleteOutbox(ctx, e.ID); derr != nil {
				return report, derr
			}
			report.Delivered++
			log.Info("queued contact delivered")
			continue
		}

		var serr *backend.StatusError
		if errors.As(err, &serr) && !serr.Temporary() {
			if derr := s.store.DeleteOutbox(ctx, e.ID); derr != nil {
				return report, derr
			}
			report.Rejected++
			log.WithError(err).Warn("queued contact rejected by backend; dropped")
			continue
		}

		if merr := s.store.MarkAttempt(ctx, e.ID, err.Error()); merr != nil {
			log.WithError(merr).Warn("could not record delivery attempt")
		}
		report.Remaining = len(entries) - i
		return report, fmt.Errorf("deliver %s: %w", e.ID, err)
	}
	return report, nil
}

func toWire(p Payload) backend.ContactPayload {
	return backend.ContactPayload{Name: p.Name, Email: p.Email, Service: p.Service, Message: p.Message}
}

func toStored(p Payload) storage.Contact {
	return storage.Contact{Name: p.Name, Email: p.Email, Service: p.Service, Message: p.Message}
}

func fromStored(c storage.Contact) Payload {
	return Payload{Name: c.Name, Email: c.Email, Service: c.Service, Message: c.Message}
}
