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

// proprietorRepository implements the repository.ProprietorRepository interface.
type proprietorRepository struct {
	db *gorm.DB
}

// NewProprietorRepository is the constructor for proprietorRepository.
func NewProprietorRepository(db *gorm.DB) repository.ProprietorRepository {
	return &proprietorRepository{
		db: db,
	}
}

func (repo *proprietorRepository) FindByCard(ctx context.Context, cardID uuid.UUID) ([]*entity.Proprietor, error) {
	var proprietorMs []*model.ProprietorModel

	if err := repo.db.WithContext(ctx).
		Where("card_id = ?", cardID).
		Order("created_at ASC").
		Find(&proprietorMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list proprietors")
	}

	proprietors := make([]*entity.Proprietor, 0, len(proprietorMs))
	for _, proprietorM := range proprietorMs {
		proprietors = append(proprietors, toProprietorDomain(proprietorM))
	}

	return proprietors, nil
}

func (repo *proprietorRepository) FindByCardAndID(ctx context.Context, cardID, id uuid.UUID) (*entity.Proprietor, error) {
	var proprietorM model.ProprietorModel

	if err := repo.db.WithContext(ctx).
		Where("card_id = ? AND id = ?", cardID, id).
		First(&proprietorM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrChildNotFound
		}

		return nil, errors.Wrap(err, "failed to find proprietor")
	}

	return toProprietorDomain(&proprietorM), nil
}

func (repo *proprietorRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Proprietor, error) {
	var proprietorM model.ProprietorModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&proprietorM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrChildNotFound
		}

		return nil, errors.Wrap(err, "failed to find proprietor by ID")
	}

	return toProprietorDomain(&proprietorM), nil
}

func (repo *proprietorRepository) Create(ctx context.Context, proprietor *entity.Proprietor) error {
	proprietorM := fromProprietorDomain(proprietor)

	if err := repo.db.WithContext(ctx).Create(proprietorM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create proprietor")
	}

	proprietor.CreatedAt = proprietorM.CreatedAt
	proprietor.UpdatedAt = proprietorM.UpdatedAt

	return nil
}

func (repo *proprietorRepository) Update(ctx context.Context, proprietor *entity.Proprietor) error {
	proprietorM := fromProprietorDomain(proprietor)

	result := repo.db.WithContext(ctx).
		Model(&model.ProprietorModel{}).
		Where("id = ? AND card_id = ?", proprietor.ID, proprietor.CardID).
		Omit("id", "card_id", "created_at").
		Select("*").
		Updates(proprietorM)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update proprietor")
	}
	if result.RowsAffected == 0 {
		return repository.ErrChildNotFound
	}

	return nil
}

func (repo *proprietorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.ProprietorModel{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete proprietor")
	}
	if result.RowsAffected == 0 {
		return repository.ErrChildNotFound
	}

	return nil
}

func (repo *proprietorRepository) DeleteNotIn(ctx context.Context, cardID uuid.UUID, keep []uuid.UUID) error {
	query := repo.db.WithContext(ctx).Where("card_id = ?", cardID)
	if len(keep) > 0 {
		query = query.Where("id NOT IN ?", keep)
	}

	if err := query.Delete(&model.ProprietorModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to prune proprietors")
	}

	return nil
}
