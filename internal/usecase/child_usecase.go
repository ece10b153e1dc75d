package usecase

import (
	"context"

	"tapcard/internal/domain/entity"

	"github.com/google/uuid"
)

// ChildUsecase covers the narrow per-resource endpoints that exist alongside
// the aggregate sync path. They operate on single child rows under the same
// ownership rule and never touch sibling collections.
type ChildUsecase interface {
	AddSocialLink(ctx context.Context, ownerID, cardID uuid.UUID, input *SocialLinkInput) (*entity.SocialLink, error)
	UpdateSocialLink(ctx context.Context, ownerID, linkID uuid.UUID, input *SocialLinkInput) (*entity.SocialLink, error)
	DeleteSocialLink(ctx context.Context, ownerID, linkID uuid.UUID) error

	ListProducts(ctx context.Context, cardID uuid.UUID) ([]*entity.Product, error)
	AddProduct(ctx context.Context, ownerID, cardID uuid.UUID, input *ProductInput) (*entity.Product, error)
	UpdateProduct(ctx context.Context, ownerID, productID uuid.UUID, input *ProductInput) (*entity.Product, error)
	DeleteProduct(ctx context.Context, ownerID, productID uuid.UUID) error

	ListProprietors(ctx context.Context, cardID uuid.UUID) ([]*entity.Proprietor, error)
	AddProprietor(ctx context.Context, ownerID, cardID uuid.UUID, input *ProprietorInput) (*entity.Proprietor, error)
	UpdateProprietor(ctx context.Context, ownerID, proprietorID uuid.UUID, input *ProprietorInput) (*entity.Proprietor, error)
	DeleteProprietor(ctx context.Context, ownerID, proprietorID uuid.UUID) error
}
