package postgres

import (
	"context"

	"tapcard/internal/domain/entity"
	domainerrors "tapcard/internal/domain/errors"
	"tapcard/internal/domain/repository"
	"tapcard/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// leadRepository implements the repository.LeadRepository interface.
type leadRepository struct {
	db *gorm.DB
}

// NewLeadRepository is the constructor for leadRepository.
func NewLeadRepository(db *gorm.DB) repository.LeadRepository {
	return &leadRepository{
		db: db,
	}
}

func (repo *leadRepository) CreateLead(ctx context.Context, lead *entity.Lead) error {
	leadM := fromLeadDomain(lead)

	if err := repo.db.WithContext(ctx).Create(leadM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrCardNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create lead")
	}

	lead.CreatedAt = leadM.CreatedAt

	return nil
}

func (repo *leadRepository) FindLeadByID(ctx context.Context, id uuid.UUID) (*entity.Lead, error) {
	var leadM model.LeadModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&leadM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrLeadNotFound
		}

		return nil, errors.Wrap(err, "failed to find lead")
	}

	return toLeadDomain(&leadM), nil
}

// FindLeadsByCard returns the card's leads, newest first.
func (repo *leadRepository) FindLeadsByCard(ctx context.Context, cardID uuid.UUID) ([]*entity.Lead, error) {
	var leadMs []*model.LeadModel

	if err := repo.db.WithContext(ctx).
		Where("card_id = ?", cardID).
		Order("created_at DESC").
		Find(&leadMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list leads")
	}

	leads := make([]*entity.Lead, 0, len(leadMs))
	for _, leadM := range leadMs {
		leads = append(leads, toLeadDomain(leadM))
	}

	return leads, nil
}

func (repo *leadRepository) MarkRead(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Model(&model.LeadModel{}).
		Where("id = ?", id).
		Update("is_read", true)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to mark lead as read")
	}
	if result.RowsAffected == 0 {
		return repository.ErrLeadNotFound
	}

	return nil
}
