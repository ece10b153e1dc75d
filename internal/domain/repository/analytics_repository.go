package repository

import (
	"context"

	"tapcard/internal/domain/entity"
	"tapcard/internal/errors"

	"github.com/google/uuid"
)

// ErrLeadNotFound is returned when a lead is not found.
var ErrLeadNotFound = errors.New("lead not found")

// VisitRepository defines the append-only persistence interface for visit
// events. There is no update or delete path by design.
type VisitRepository interface {
	// CreateVisit appends a visit event.
	CreateVisit(ctx context.Context, visit *entity.Visit) error

	// CountByCard returns the total number of visit events for a card.
	CountByCard(ctx context.Context, cardID uuid.UUID) (int64, error)

	// CountsByType returns per-type visit counts for a card.
	CountsByType(ctx context.Context, cardID uuid.UUID) (map[string]int64, error)

	// FindRecentByCard returns the most recent visit events, newest first.
	FindRecentByCard(ctx context.Context, cardID uuid.UUID, limit int) ([]*entity.Visit, error)
}

// LeadRepository defines persistence operations for contact-request leads.
type LeadRepository interface {
	CreateLead(ctx context.Context, lead *entity.Lead) error
	FindLeadByID(ctx context.Context, id uuid.UUID) (*entity.Lead, error)
	FindLeadsByCard(ctx context.Context, cardID uuid.UUID) ([]*entity.Lead, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
}
