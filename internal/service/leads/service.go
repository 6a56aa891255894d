// Package leads owns lead capture and funnel-stage transitions. Captures may
// fan out to an operator webhook; delivery is best-effort and never blocks or
// fails the capture itself.
package leads

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/brickbase/estate-backend/internal/domain/models"
	"github.com/brickbase/estate-backend/pkg/clients/webhook"
)

// ErrInvalidStatus rejects transitions to statuses outside the funnel.
var ErrInvalidStatus = errors.New("invalid lead status")

const notifyTimeout = 10 * time.Second

// Store is the slice of the lead repository the service needs.
type Store interface {
	Insert(ctx context.Context, l models.Lead) (models.Lead, error)
	FindAll(ctx context.Context, status string) ([]models.Lead, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// Service captures and manages leads.
type Service struct {
	store    Store
	notifier webhook.Notifier
	logger   *zap.Logger
}

// NewService wires the lead service. notifier may be nil when no webhook is
// configured.
func NewService(store Store, notifier webhook.Notifier, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, notifier: notifier, logger: logger}
}

// Capture stores a new lead with funnel defaults and notifies the webhook in
// the background.
func (s *Service) Capture(ctx context.Context, lead models.Lead) (models.Lead, error) {
	if lead.Status == "" {
		lead.Status = models.LeadStatusNew
	}
	if !models.AllowedLeadStatuses[lead.Status] {
		return models.Lead{}, ErrInvalidStatus
	}
	if lead.Source == "" {
		lead.Source = "website"
	}
	if lead.Priority == "" {
		lead.Priority = models.LeadPriorityMedium
	}

	saved, err := s.store.Insert(ctx, lead)
	if err != nil {
		return models.Lead{}, fmt.Errorf("capture lead: %w", err)
	}

	if s.notifier != nil {
		// Detached from the request context: the capture already succeeded.
		go s.notify(saved)
	}

	return saved, nil
}

func (s *Service) notify(lead models.Lead) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	event := webhook.LeadEvent{
		LeadID:      lead.ID.Hex(),
		Name:        lead.ContactInfo.Name,
		Phone:       lead.ContactInfo.Phone,
		Email:       lead.ContactInfo.Email,
		SearchQuery: lead.SearchQuery,
		Source:      lead.Source,
		CapturedAt:  lead.CreatedAt,
	}

	if err := s.notifier.NotifyLeadCaptured(ctx, event); err != nil {
		s.logger.Warn("lead webhook delivery failed",
			zap.String("lead_id", event.LeadID), zap.Error(err))
		return
	}
	s.logger.Debug("lead webhook delivered", zap.String("lead_id", event.LeadID))
}

// List returns leads, optionally filtered by a valid status.
func (s *Service) List(ctx context.Context, status string) ([]models.Lead, error) {
	if status != "" && !models.AllowedLeadStatuses[status] {
		return nil, ErrInvalidStatus
	}
	return s.store.FindAll(ctx, status)
}

// UpdateStatus moves a lead to a new funnel stage.
func (s *Service) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	if !models.AllowedLeadStatuses[status] {
		return ErrInvalidStatus
	}
	return s.store.UpdateStatus(ctx, id, status)
}

// Delete removes a lead.
func (s *Service) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.store.Delete(ctx, id)
}
