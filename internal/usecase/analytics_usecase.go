package usecase

import (
	"context"

	"tapcard/internal/domain/entity"

	"github.com/google/uuid"
)

// LeadInput is a public visitor's contact-request submission.
type LeadInput struct {
	CardID  uuid.UUID `json:"business_card_id" validate:"required"`
	Name    string    `json:"name" validate:"required,max=255"`
	Phone   string    `json:"phone" validate:"required,max=20"`
	Message *string   `json:"message"`
}

// VisitInput is a public analytics event submission.
type VisitInput struct {
	CardID   uuid.UUID      `json:"business_card_id" validate:"required"`
	Type     string         `json:"type" validate:"required,max=50"`
	Metadata map[string]any `json:"metadata"`
}

// AnalyticsUsecase covers the append-only visit/lead side of a card. Visits
// are pure appends with an open type vocabulary; they are never deduplicated
// or rate limited here.
type AnalyticsUsecase interface {
	// RecordVisit appends a visit event for an existing card.
	RecordVisit(ctx context.Context, input *VisitInput, fp *entity.Fingerprint) (*entity.Visit, error)

	// SubmitLead stores a contact request left by a public visitor.
	SubmitLead(ctx context.Context, input *LeadInput) (*entity.Lead, error)

	// ListLeads returns the card's leads for its owner, newest first.
	ListLeads(ctx context.Context, ownerID, cardID uuid.UUID) ([]*entity.Lead, error)

	// MarkLeadRead flags a lead as read by the card owner.
	MarkLeadRead(ctx context.Context, ownerID, leadID uuid.UUID) error

	// GetSummary aggregates the card's visit history for the owner dashboard.
	GetSummary(ctx context.Context, ownerID, cardID uuid.UUID) (*entity.AnalyticsSummary, error)
}
