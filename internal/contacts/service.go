package contacts

import (
	"context"

	"github.com/Zachkp/portfolio/internal/logger"
)

// Notifier tells people about a new message.
type Notifier interface {
	NotifyContact(ctx context.Context, c Contact) error
}

// Service accepts public submissions and serves the admin inbox.
type Service struct {
	store    *Store
	notifier Notifier
	log      *logger.Logger
}

// NewService wires a store and an optional notifier.
func NewService(store *Store, notifier Notifier, log *logger.Logger) *Service {
	return &Service{
		store:    store,
		notifier: notifier,
		log:      log.WithFields(map[string]any{"component": "contacts"}),
	}
}

// Submit validates and stores a message, then sends notifications. A failed
// notification is logged; the stored message is still returned.
func (s *Service) Submit(ctx context.Context, req CreateRequest) (*Contact, error) {
	req.Normalize()
	if err := Validate(req); err != nil {
		return nil, err
	}

	c := &Contact{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Message:   req.Message,
		Status:    StatusNew,
	}
	if err := s.store.Create(ctx, c); err != nil {
		return nil, err
	}
	s.log.WithFields(map[string]any{"contact_id": c.ID}).Info("contact message stored")

	if s.notifier != nil {
		if err := s.notifier.NotifyContact(ctx, *c); err != nil {
			s.log.WithFields(map[string]any{"contact_id": c.ID}).Error(err, "contact notification failed")
		}
	}
	return c, nil
}

// List returns contacts for the inbox.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]Contact, error) {
	if opts.Status != "" {
		if err := Validate(StatusUpdate{Status: opts.Status}); err != nil {
			return nil, err
		}
	}
	return s.store.List(ctx, opts)
}

// Get returns one contact.
func (s *Service) Get(ctx context.Context, id int64) (*Contact, error) {
	return s.store.Get(ctx, id)
}

// UpdateStatus validates and applies a triage change.
func (s *Service) UpdateStatus(ctx context.Context, id int64, upd StatusUpdate) (*Contact, error) {
	if err := Validate(upd); err != nil {
		return nil, err
	}
	return s.store.UpdateStatus(ctx, id, upd.Status)
}

// Delete removes a contact.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.store.Delete(ctx, id)
}

// Counts returns the number of contacts per status.
func (s *Service) Counts(ctx context.Context) (map[string]int64, error) {
	return s.store.CountByStatus(ctx)
}
