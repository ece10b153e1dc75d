package repository

import (
	"context"

	"tapcard/internal/domain/entity"
	"tapcard/internal/errors"

	"github.com/google/uuid"
)

// ErrChildNotFound is returned when a child row of any collection type is not found.
var ErrChildNotFound = errors.New("card child not found")

// SocialLinkRepository defines persistence operations for social links.
// The platform value is the natural key within a card, so lookups during
// aggregate sync go through FindByCardAndPlatform.
type SocialLinkRepository interface {
	FindByCard(ctx context.Context, cardID uuid.UUID) ([]*entity.SocialLink, error)
	FindByCardAndPlatform(ctx context.Context, cardID uuid.UUID, platform string) (*entity.SocialLink, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.SocialLink, error)
	Create(ctx context.Context, link *entity.SocialLink) error
	Update(ctx context.Context, link *entity.SocialLink) error
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteNotIn removes every social link of the card whose ID is not in keep.
	// An empty keep set wipes the collection.
	DeleteNotIn(ctx context.Context, cardID uuid.UUID, keep []uuid.UUID) error
}

// ProductRepository defines persistence operations for product listings.
type ProductRepository interface {
	FindByCard(ctx context.Context, cardID uuid.UUID) ([]*entity.Product, error)
	FindByCardAndID(ctx context.Context, cardID, id uuid.UUID) (*entity.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	Create(ctx context.Context, product *entity.Product) error
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteNotIn(ctx context.Context, cardID uuid.UUID, keep []uuid.UUID) error
}

// ProprietorRepository defines persistence operations for proprietors.
type ProprietorRepository interface {
	FindByCard(ctx context.Context, cardID uuid.UUID) ([]*entity.Proprietor, error)
	FindByCardAndID(ctx context.Context, cardID, id uuid.UUID) (*entity.Proprietor, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Proprietor, error)
	Create(ctx context.Context, proprietor *entity.Proprietor) error
	Update(ctx context.Context, proprietor *entity.Proprietor) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteNotIn(ctx context.Context, cardID uuid.UUID, keep []uuid.UUID) error
}

// PaymentMethodRepository defines persistence operations for payment methods.
type PaymentMethodRepository interface {
	FindByCard(ctx context.Context, cardID uuid.UUID) ([]*entity.PaymentMethod, error)
	FindByCardAndID(ctx context.Context, cardID, id uuid.UUID) (*entity.PaymentMethod, error)
	Create(ctx context.Context, method *entity.PaymentMethod) error
	Update(ctx context.Context, method *entity.PaymentMethod) error
	DeleteNotIn(ctx context.Context, cardID uuid.UUID, keep []uuid.UUID) error
}
