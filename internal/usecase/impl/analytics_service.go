package impl

import (
	"context"
	"time"

	"tapcard/config"
	"tapcard/internal/domain/entity"
	domainerrors "tapcard/internal/domain/errors"
	"tapcard/internal/domain/repository"
	"tapcard/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const defaultRecentVisitsLimit = 20

// analyticsService is the append-only visit/lead side of a card. It shares no
// code with the aggregate write path: visits and leads are created by public
// traffic and never touched by reconciliation.
type analyticsService struct {
	cardRepo  repository.CardRepository
	visitRepo repository.VisitRepository
	leadRepo  repository.LeadRepository
	validate  *validator.Validate
	config    *config.Config
}

// AnalyticsServiceParams holds dependencies for AnalyticsService, injected by Fx.
type AnalyticsServiceParams struct {
	fx.In

	CardRepo  repository.CardRepository
	VisitRepo repository.VisitRepository
	LeadRepo  repository.LeadRepository
	Config    *config.Config
}

// NewAnalyticsService creates a new analytics service instance.
func NewAnalyticsService(params AnalyticsServiceParams) usecase.AnalyticsUsecase {
	return &analyticsService{
		cardRepo:  params.CardRepo,
		visitRepo: params.VisitRepo,
		leadRepo:  params.LeadRepo,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		config:    params.Config,
	}
}

// RecordVisit appends a visit event. The type vocabulary is open ended
// ("view", "click", "scan" or caller-supplied labels); there is no dedup and
// no rate limiting here.
func (s *analyticsService) RecordVisit(ctx context.Context, input *usecase.VisitInput, fp *entity.Fingerprint) (*entity.Visit, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, domainerrors.NewValidationError(err.Error())
	}

	if err := s.requireCard(ctx, input.CardID); err != nil {
		return nil, err
	}

	visit := &entity.Visit{
		ID:        uuid.New(),
		CardID:    input.CardID,
		Type:      input.Type,
		Metadata:  input.Metadata,
		VisitedAt: time.Now(),
	}
	if fp != nil {
		visit.IPAddress = fp.IPAddress
		visit.UserAgent = fp.UserAgent
	}

	if err := s.visitRepo.CreateVisit(ctx, visit); err != nil {
		return nil, errors.Wrap(err, "failed to record visit")
	}

	return visit, nil
}

// SubmitLead stores a contact request left by a public visitor.
func (s *analyticsService) SubmitLead(ctx context.Context, input *usecase.LeadInput) (*entity.Lead, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, domainerrors.NewValidationError(err.Error())
	}

	if err := s.requireCard(ctx, input.CardID); err != nil {
		return nil, err
	}

	lead := &entity.Lead{
		ID:      uuid.New(),
		CardID:  input.CardID,
		Name:    input.Name,
		Phone:   input.Phone,
		Message: strValue(input.Message),
	}
	if err := s.leadRepo.CreateLead(ctx, lead); err != nil {
		return nil, errors.Wrap(err, "failed to create lead")
	}

	return lead, nil
}

// ListLeads returns the card's leads for its owner, newest first.
func (s *analyticsService) ListLeads(ctx context.Context, ownerID, cardID uuid.UUID) ([]*entity.Lead, error) {
	if err := s.authorizeCard(ctx, ownerID, cardID); err != nil {
		return nil, err
	}

	leads, err := s.leadRepo.FindLeadsByCard(ctx, cardID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list leads")
	}

	return leads, nil
}

// MarkLeadRead flags a lead as read by the card owner.
func (s *analyticsService) MarkLeadRead(ctx context.Context, ownerID, leadID uuid.UUID) error {
	lead, err := s.leadRepo.FindLeadByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, repository.ErrLeadNotFound) {
			return domainerrors.ErrLeadNotFound
		}

		return errors.Wrap(err, "failed to find lead")
	}

	if err := s.authorizeCard(ctx, ownerID, lead.CardID); err != nil {
		return err
	}

	if err := s.leadRepo.MarkRead(ctx, leadID); err != nil {
		return errors.Wrap(err, "failed to mark lead read")
	}

	return nil
}

// GetSummary aggregates the card's visit history for the owner dashboard.
func (s *analyticsService) GetSummary(ctx context.Context, ownerID, cardID uuid.UUID) (*entity.AnalyticsSummary, error) {
	if err := s.authorizeCard(ctx, ownerID, cardID); err != nil {
		return nil, err
	}

	total, err := s.visitRepo.CountByCard(ctx, cardID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count visits")
	}

	counts, err := s.visitRepo.CountsByType(ctx, cardID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count visits by type")
	}

	limit := defaultRecentVisitsLimit
	if s.config.Analytics != nil && s.config.Analytics.RecentVisitsLimit > 0 {
		limit = s.config.Analytics.RecentVisitsLimit
	}
	recent, err := s.visitRepo.FindRecentByCard(ctx, cardID, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load recent visits")
	}

	return &entity.AnalyticsSummary{
		CardID:       cardID,
		TotalVisits:  total,
		CountsByType: counts,
		RecentVisits: recent,
	}, nil
}

func (s *analyticsService) requireCard(ctx context.Context, cardID uuid.UUID) error {
	exists, err := s.cardRepo.CardExists(ctx, cardID)
	if err != nil {
		return errors.Wrap(err, "failed to check card existence")
	}
	if !exists {
		return domainerrors.ErrCardNotFound
	}

	return nil
}

func (s *analyticsService) authorizeCard(ctx context.Context, ownerID, cardID uuid.UUID) error {
	card, err := s.cardRepo.FindCardByID(ctx, cardID)
	if err != nil {
		if errors.Is(err, repository.ErrCardNotFound) {
			return domainerrors.ErrCardNotFound
		}

		return errors.Wrap(err, "failed to find card by id")
	}
	if card.OwnerID != ownerID {
		return domainerrors.ErrCardForbidden
	}

	return nil
}
