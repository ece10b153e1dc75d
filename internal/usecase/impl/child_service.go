package impl

import (
	"context"

	"tapcard/internal/domain/entity"
	domainerrors "tapcard/internal/domain/errors"
	"tapcard/internal/domain/repository"
	"tapcard/internal/domain/service"
	"tapcard/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// childService implements the narrow per-resource endpoints that exist beside
// the aggregate sync path. Each operation touches a single child row under the
// card's ownership rule.
type childService struct {
	cardRepo       repository.CardRepository
	socialRepo     repository.SocialLinkRepository
	productRepo    repository.ProductRepository
	proprietorRepo repository.ProprietorRepository
	storage        service.MediaStorage
	validate       *validator.Validate
}

// ChildServiceParams holds dependencies for ChildService, injected by Fx.
type ChildServiceParams struct {
	fx.In

	CardRepo       repository.CardRepository
	SocialRepo     repository.SocialLinkRepository
	ProductRepo    repository.ProductRepository
	ProprietorRepo repository.ProprietorRepository
	Storage        service.MediaStorage
}

// NewChildService creates a new child resource service instance.
func NewChildService(params ChildServiceParams) usecase.ChildUsecase {
	return &childService{
		cardRepo:       params.CardRepo,
		socialRepo:     params.SocialRepo,
		productRepo:    params.ProductRepo,
		proprietorRepo: params.ProprietorRepo,
		storage:        params.Storage,
		validate:       validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (s *childService) AddSocialLink(ctx context.Context, ownerID, cardID uuid.UUID, input *usecase.SocialLinkInput) (*entity.SocialLink, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, domainerrors.NewValidationError(err.Error())
	}
	if err := s.authorizeCard(ctx, ownerID, cardID); err != nil {
		return nil, err
	}

	link := &entity.SocialLink{
		ID:       uuid.New(),
		CardID:   cardID,
		Platform: input.Platform,
		URL:      input.URL,
	}
	if err := s.socialRepo.Create(ctx, link); err != nil {
		return nil, errors.Wrap(err, "failed to create social link")
	}

	return link, nil
}

func (s *childService) UpdateSocialLink(ctx context.Context, ownerID, linkID uuid.UUID, input *usecase.SocialLinkInput) (*entity.SocialLink, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, domainerrors.NewValidationError(err.Error())
	}

	link, err := s.socialRepo.FindByID(ctx, linkID)
	if err != nil {
		return nil, childLookupError(err, "failed to find social link")
	}
	if err := s.authorizeCard(ctx, ownerID, link.CardID); err != nil {
		return nil, err
	}

	link.Platform = input.Platform
	link.URL = input.URL
	if err := s.socialRepo.Update(ctx, link); err != nil {
		return nil, errors.Wrap(err, "failed to update social link")
	}

	return link, nil
}

func (s *childService) DeleteSocialLink(ctx context.Context, ownerID, linkID uuid.UUID) error {
	link, err := s.socialRepo.FindByID(ctx, linkID)
	if err != nil {
		return childLookupError(err, "failed to find social link")
	}
	if err := s.authorizeCard(ctx, ownerID, link.CardID); err != nil {
		return err
	}

	if err := s.socialRepo.Delete(ctx, linkID); err != nil {
		return errors.Wrap(err, "failed to delete social link")
	}

	return nil
}

func (s *childService) ListProducts(ctx context.Context, cardID uuid.UUID) ([]*entity.Product, error) {
	products, err := s.productRepo.FindByCard(ctx, cardID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return products, nil
}

func (s *childService) AddProduct(ctx context.Context, ownerID, cardID uuid.UUID, input *usecase.ProductInput) (*entity.Product, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, domainerrors.NewValidationError(err.Error())
	}
	if err := s.authorizeCard(ctx, ownerID, cardID); err != nil {
		return nil, err
	}

	product := &entity.Product{
		ID:          uuid.New(),
		CardID:      cardID,
		Name:        input.Name,
		Price:       input.Price,
		Description: strValue(input.Description),
		Link:        strValue(input.Link),
		Category:    strValue(input.Category),
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, errors.Wrap(err, "failed to create product")
	}

	if err := s.attachProductImage(ctx, product, input.ImageFile); err != nil {
		return nil, err
	}

	return product, nil
}

func (s *childService) UpdateProduct(ctx context.Context, ownerID, productID uuid.UUID, input *usecase.ProductInput) (*entity.Product, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, domainerrors.NewValidationError(err.Error())
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, childLookupError(err, "failed to find product")
	}
	if err := s.authorizeCard(ctx, ownerID, product.CardID); err != nil {
		return nil, err
	}

	product.Name = input.Name
	product.Price = input.Price
	product.Description = strValue(input.Description)
	product.Link = strValue(input.Link)
	product.Category = strValue(input.Category)
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, errors.Wrap(err, "failed to update product")
	}

	if err := s.attachProductImage(ctx, product, input.ImageFile); err != nil {
		return nil, err
	}

	return product, nil
}

func (s *childService) DeleteProduct(ctx context.Context, ownerID, productID uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return childLookupError(err, "failed to find product")
	}
	if err := s.authorizeCard(ctx, ownerID, product.CardID); err != nil {
		return err
	}

	if err := s.productRepo.Delete(ctx, productID); err != nil {
		return errors.Wrap(err, "failed to delete product")
	}

	return nil
}

func (s *childService) ListProprietors(ctx context.Context, cardID uuid.UUID) ([]*entity.Proprietor, error) {
	proprietors, err := s.proprietorRepo.FindByCard(ctx, cardID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list proprietors")
	}

	return proprietors, nil
}

func (s *childService) AddProprietor(ctx context.Context, ownerID, cardID uuid.UUID, input *usecase.ProprietorInput) (*entity.Proprietor, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, domainerrors.NewValidationError(err.Error())
	}
	if err := s.authorizeCard(ctx, ownerID, cardID); err != nil {
		return nil, err
	}

	proprietor := &entity.Proprietor{
		ID:          uuid.New(),
		CardID:      cardID,
		Name:        input.Name,
		Designation: strValue(input.Designation),
		Phone:       strValue(input.Phone),
		Email:       strValue(input.Email),
		Bio:         strValue(input.Bio),
		LinkedinURL: strValue(input.LinkedinURL),
	}
	if err := s.proprietorRepo.Create(ctx, proprietor); err != nil {
		return nil, errors.Wrap(err, "failed to create proprietor")
	}

	if err := s.attachProprietorPhoto(ctx, proprietor, input.PhotoFile); err != nil {
		return nil, err
	}

	return proprietor, nil
}

func (s *childService) UpdateProprietor(ctx context.Context, ownerID, proprietorID uuid.UUID, input *usecase.ProprietorInput) (*entity.Proprietor, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, domainerrors.NewValidationError(err.Error())
	}

	proprietor, err := s.proprietorRepo.FindByID(ctx, proprietorID)
	if err != nil {
		return nil, childLookupError(err, "failed to find proprietor")
	}
	if err := s.authorizeCard(ctx, ownerID, proprietor.CardID); err != nil {
		return nil, err
	}

	proprietor.Name = input.Name
	proprietor.Designation = strValue(input.Designation)
	proprietor.Phone = strValue(input.Phone)
	proprietor.Email = strValue(input.Email)
	proprietor.Bio = strValue(input.Bio)
	proprietor.LinkedinURL = strValue(input.LinkedinURL)
	if err := s.proprietorRepo.Update(ctx, proprietor); err != nil {
		return nil, errors.Wrap(err, "failed to update proprietor")
	}

	if err := s.attachProprietorPhoto(ctx, proprietor, input.PhotoFile); err != nil {
		return nil, err
	}

	return proprietor, nil
}

func (s *childService) DeleteProprietor(ctx context.Context, ownerID, proprietorID uuid.UUID) error {
	proprietor, err := s.proprietorRepo.FindByID(ctx, proprietorID)
	if err != nil {
		return childLookupError(err, "failed to find proprietor")
	}
	if err := s.authorizeCard(ctx, ownerID, proprietor.CardID); err != nil {
		return err
	}

	if err := s.proprietorRepo.Delete(ctx, proprietorID); err != nil {
		return errors.Wrap(err, "failed to delete proprietor")
	}

	return nil
}

func (s *childService) attachProductImage(ctx context.Context, product *entity.Product, upload *service.Upload) error {
	if upload == nil {
		return nil
	}

	url, err := s.storage.Store(ctx, upload, "products")
	if err != nil {
		return domainerrors.ErrStorageFailed.WithDetails(err.Error())
	}
	product.Image = url

	return errors.Wrap(s.productRepo.Update(ctx, product), "failed to persist product image")
}

func (s *childService) attachProprietorPhoto(ctx context.Context, proprietor *entity.Proprietor, upload *service.Upload) error {
	if upload == nil {
		return nil
	}

	url, err := s.storage.Store(ctx, upload, "proprietors")
	if err != nil {
		return domainerrors.ErrStorageFailed.WithDetails(err.Error())
	}
	proprietor.Photo = url

	return errors.Wrap(s.proprietorRepo.Update(ctx, proprietor), "failed to persist proprietor photo")
}

// authorizeCard loads the card root and enforces ownership.
func (s *childService) authorizeCard(ctx context.Context, ownerID, cardID uuid.UUID) error {
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

func childLookupError(err error, message string) error {
	if errors.Is(err, repository.ErrChildNotFound) {
		return domainerrors.ErrChildNotFound
	}

	return errors.Wrap(err, message)
}
