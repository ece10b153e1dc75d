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

// socialLinkRepository implements the repository.SocialLinkRepository interface.
type socialLinkRepository struct {
	db *gorm.DB
}

// NewSocialLinkRepository is the constructor for socialLinkRepository.
func NewSocialLinkRepository(db *gorm.DB) repository.SocialLinkRepository {
	return &socialLinkRepository{
		db: db,
	}
}

func (repo *socialLinkRepository) FindByCard(ctx context.Context, cardID uuid.UUID) ([]*entity.SocialLink, error) {
	var linkMs []*model.SocialLinkModel

	if err := repo.db.WithContext(ctx).
		Where("card_id = ?", cardID).
		Order("created_at ASC").
		Find(&linkMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list social links")
	}

	links := make([]*entity.SocialLink, 0, len(linkMs))
	for _, linkM := range linkMs {
		links = append(links, toSocialLinkDomain(linkM))
	}

	return links, nil
}

// FindByCardAndPlatform looks a link up by its natural key within the card.
func (repo *socialLinkRepository) FindByCardAndPlatform(ctx context.Context, cardID uuid.UUID, platform string) (*entity.SocialLink, error) {
	var linkM model.SocialLinkModel

	if err := repo.db.WithContext(ctx).
		Where("card_id = ? AND platform = ?", cardID, platform).
		First(&linkM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrChildNotFound
		}

		return nil, errors.Wrap(err, "failed to find social link by platform")
	}

	return toSocialLinkDomain(&linkM), nil
}

func (repo *socialLinkRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.SocialLink, error) {
	var linkM model.SocialLinkModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&linkM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrChildNotFound
		}

		return nil, errors.Wrap(err, "failed to find social link")
	}

	return toSocialLinkDomain(&linkM), nil
}

func (repo *socialLinkRepository) Create(ctx context.Context, link *entity.SocialLink) error {
	linkM := fromSocialLinkDomain(link)

	if err := repo.db.WithContext(ctx).Create(linkM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create social link")
	}

	link.CreatedAt = linkM.CreatedAt
	link.UpdatedAt = linkM.UpdatedAt

	return nil
}

func (repo *socialLinkRepository) Update(ctx context.Context, link *entity.SocialLink) error {
	linkM := fromSocialLinkDomain(link)

	result := repo.db.WithContext(ctx).
		Model(&model.SocialLinkModel{}).
		Where("id = ? AND card_id = ?", link.ID, link.CardID).
		Omit("id", "card_id", "created_at").
		Select("*").
		Updates(linkM)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update social link")
	}
	if result.RowsAffected == 0 {
		return repository.ErrChildNotFound
	}

	return nil
}

func (repo *socialLinkRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.SocialLinkModel{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete social link")
	}
	if result.RowsAffected == 0 {
		return repository.ErrChildNotFound
	}

	return nil
}

// DeleteNotIn removes every link of the card whose ID is absent from keep.
// An empty keep set wipes the whole collection.
func (repo *socialLinkRepository) DeleteNotIn(ctx context.Context, cardID uuid.UUID, keep []uuid.UUID) error {
	query := repo.db.WithContext(ctx).Where("card_id = ?", cardID)
	if len(keep) > 0 {
		query = query.Where("id NOT IN ?", keep)
	}

	if err := query.Delete(&model.SocialLinkModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to prune social links")
	}

	return nil
}
