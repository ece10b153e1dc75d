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

// cardRepository implements the repository.CardRepository interface.
type cardRepository struct {
	db *gorm.DB
}

// NewCardRepository is the constructor for cardRepository.
func NewCardRepository(db *gorm.DB) repository.CardRepository {
	return &cardRepository{
		db: db,
	}
}

// CreateCard persists a new card root row. Unique violations on the slug or
// owner columns are translated to the corresponding domain errors so the use
// case layer can retry or reject without inspecting driver details.
func (repo *cardRepository) CreateCard(ctx context.Context, card *entity.Card) error {
	cardM := fromCardDomain(card)

	if err := repo.db.WithContext(ctx).Omit("SocialLinks", "Products", "Proprietors", "PaymentMethods").Create(cardM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			if isSlugConstraint(err) {
				return repository.ErrDuplicateSlug
			}

			return repository.ErrDuplicateOwner
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create card")
	}

	card.CreatedAt = cardM.CreatedAt
	card.UpdatedAt = cardM.UpdatedAt

	return nil
}

// FindCardByID retrieves the card root row only, without child collections.
func (repo *cardRepository) FindCardByID(ctx context.Context, id uuid.UUID) (*entity.Card, error) {
	var cardM model.CardModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&cardM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCardNotFound
		}

		return nil, errors.Wrap(err, "failed to find card by ID")
	}

	return toCardDomain(&cardM), nil
}

// FindCardBySlug retrieves a card by slug with all child collections attached
// in insertion order.
func (repo *cardRepository) FindCardBySlug(ctx context.Context, slug string) (*entity.Card, error) {
	var cardM model.CardModel

	if err := repo.preloadChildren(repo.db.WithContext(ctx)).
		Where("slug = ?", slug).
		First(&cardM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCardNotFound
		}

		return nil, errors.Wrap(err, "failed to find card by slug")
	}

	return toCardDomain(&cardM), nil
}

// FindCardByOwner retrieves the owner's card with all child collections.
func (repo *cardRepository) FindCardByOwner(ctx context.Context, ownerID uuid.UUID) (*entity.Card, error) {
	var cardM model.CardModel

	if err := repo.preloadChildren(repo.db.WithContext(ctx)).
		Where("owner_id = ?", ownerID).
		First(&cardM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCardNotFound
		}

		return nil, errors.Wrap(err, "failed to find card by owner")
	}

	return toCardDomain(&cardM), nil
}

// LoadAggregate retrieves a card by ID with all child collections attached.
func (repo *cardRepository) LoadAggregate(ctx context.Context, id uuid.UUID) (*entity.Card, error) {
	var cardM model.CardModel

	if err := repo.preloadChildren(repo.db.WithContext(ctx)).
		Where("id = ?", id).
		First(&cardM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCardNotFound
		}

		return nil, errors.Wrap(err, "failed to load card aggregate")
	}

	return toCardDomain(&cardM), nil
}

// OwnerHasCard reports whether the owner already has a card.
func (repo *cardRepository) OwnerHasCard(ctx context.Context, ownerID uuid.UUID) (bool, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.CardModel{}).
		Where("owner_id = ?", ownerID).
		Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to count owner cards")
	}

	return count > 0, nil
}

// SlugExists reports whether a slug is already taken.
func (repo *cardRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.CardModel{}).
		Where("slug = ?", slug).
		Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to probe slug")
	}

	return count > 0, nil
}

// CardExists reports whether a card row exists.
func (repo *cardRepository) CardExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.CardModel{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to check card existence")
	}

	return count > 0, nil
}

// UpdateCard saves the card's root columns. The slug column is deliberately
// omitted: it is immutable once minted.
func (repo *cardRepository) UpdateCard(ctx context.Context, card *entity.Card) error {
	cardM := fromCardDomain(card)

	result := repo.db.WithContext(ctx).
		Model(&model.CardModel{}).
		Where("id = ?", card.ID).
		Omit("id", "owner_id", "slug", "created_at").
		Select("*").
		Updates(cardM)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update card")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCardNotFound
	}

	return nil
}

// UpdateMediaRefs persists only the media reference columns, the second root
// write after file uploads complete.
func (repo *cardRepository) UpdateMediaRefs(ctx context.Context, card *entity.Card) error {
	result := repo.db.WithContext(ctx).
		Model(&model.CardModel{}).
		Where("id = ?", card.ID).
		Updates(map[string]any{
			"profile_photo":   card.ProfilePhoto,
			"cover_photo":     card.CoverPhoto,
			"payment_qr_code": card.PaymentQRCode,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update card media")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCardNotFound
	}

	return nil
}

// DeleteCard removes a card; the FK constraints cascade to every child table.
func (repo *cardRepository) DeleteCard(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.CardModel{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete card")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCardNotFound
	}

	return nil
}

func (repo *cardRepository) preloadChildren(db *gorm.DB) *gorm.DB {
	return db.
		Preload("SocialLinks", orderByCreation).
		Preload("Products", orderByCreation).
		Preload("Proprietors", orderByCreation).
		Preload("PaymentMethods", orderByCreation)
}

// orderByCreation keeps child collections in insertion order on read-back.
func orderByCreation(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC")
}
