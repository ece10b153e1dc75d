package impl

import (
	"context"

	"tapcard/internal/domain/entity"
	"tapcard/internal/domain/repository"
	"tapcard/internal/domain/service"
	"tapcard/internal/usecase"

	"github.com/google/uuid"
)

// Per-item field application is a full overwrite: the incoming item is a
// snapshot, so an absent optional field clears the persisted value.

func socialLinkSync(repo repository.SocialLinkRepository) *childSync[*usecase.SocialLinkInput, entity.SocialLink] {
	return &childSync[*usecase.SocialLinkInput, entity.SocialLink]{
		find: func(ctx context.Context, cardID uuid.UUID, item *usecase.SocialLinkInput) (*entity.SocialLink, error) {
			return repo.FindByCardAndPlatform(ctx, cardID, item.Platform)
		},
		create: func(ctx context.Context, cardID uuid.UUID, item *usecase.SocialLinkInput) (*entity.SocialLink, error) {
			link := &entity.SocialLink{
				ID:       uuid.New(),
				CardID:   cardID,
				Platform: item.Platform,
				URL:      item.URL,
			}

			return link, repo.Create(ctx, link)
		},
		update: func(ctx context.Context, existing *entity.SocialLink, item *usecase.SocialLinkInput) error {
			existing.URL = item.URL

			return repo.Update(ctx, existing)
		},
		id:          func(link *entity.SocialLink) uuid.UUID { return link.ID },
		deleteNotIn: repo.DeleteNotIn,
	}
}

func productSync(repo repository.ProductRepository) *childSync[*usecase.ProductInput, entity.Product] {
	apply := func(product *entity.Product, item *usecase.ProductInput) {
		product.Name = item.Name
		product.Price = item.Price
		product.Description = strValue(item.Description)
		product.Link = strValue(item.Link)
		product.Category = strValue(item.Category)
	}

	return &childSync[*usecase.ProductInput, entity.Product]{
		find: func(ctx context.Context, cardID uuid.UUID, item *usecase.ProductInput) (*entity.Product, error) {
			if item.ID == nil {
				return nil, repository.ErrChildNotFound
			}

			return repo.FindByCardAndID(ctx, cardID, *item.ID)
		},
		create: func(ctx context.Context, cardID uuid.UUID, item *usecase.ProductInput) (*entity.Product, error) {
			product := &entity.Product{ID: uuid.New(), CardID: cardID}
			apply(product, item)

			return product, repo.Create(ctx, product)
		},
		update: func(ctx context.Context, existing *entity.Product, item *usecase.ProductInput) error {
			apply(existing, item)

			return repo.Update(ctx, existing)
		},
		id:   func(product *entity.Product) uuid.UUID { return product.ID },
		file: func(item *usecase.ProductInput) *service.Upload { return item.ImageFile },
		attach: func(ctx context.Context, product *entity.Product, url string) error {
			product.Image = url

			return repo.Update(ctx, product)
		},
		deleteNotIn: repo.DeleteNotIn,
		uploadDir:   "products",
	}
}

func proprietorSync(repo repository.ProprietorRepository) *childSync[*usecase.ProprietorInput, entity.Proprietor] {
	apply := func(proprietor *entity.Proprietor, item *usecase.ProprietorInput) {
		proprietor.Name = item.Name
		proprietor.Designation = strValue(item.Designation)
		proprietor.Phone = strValue(item.Phone)
		proprietor.Email = strValue(item.Email)
		proprietor.Bio = strValue(item.Bio)
		proprietor.LinkedinURL = strValue(item.LinkedinURL)
	}

	return &childSync[*usecase.ProprietorInput, entity.Proprietor]{
		find: func(ctx context.Context, cardID uuid.UUID, item *usecase.ProprietorInput) (*entity.Proprietor, error) {
			if item.ID == nil {
				return nil, repository.ErrChildNotFound
			}

			return repo.FindByCardAndID(ctx, cardID, *item.ID)
		},
		create: func(ctx context.Context, cardID uuid.UUID, item *usecase.ProprietorInput) (*entity.Proprietor, error) {
			proprietor := &entity.Proprietor{ID: uuid.New(), CardID: cardID}
			apply(proprietor, item)

			return proprietor, repo.Create(ctx, proprietor)
		},
		update: func(ctx context.Context, existing *entity.Proprietor, item *usecase.ProprietorInput) error {
			apply(existing, item)

			return repo.Update(ctx, existing)
		},
		id:   func(proprietor *entity.Proprietor) uuid.UUID { return proprietor.ID },
		file: func(item *usecase.ProprietorInput) *service.Upload { return item.PhotoFile },
		attach: func(ctx context.Context, proprietor *entity.Proprietor, url string) error {
			proprietor.Photo = url

			return repo.Update(ctx, proprietor)
		},
		deleteNotIn: repo.DeleteNotIn,
		uploadDir:   "proprietors",
	}
}

func paymentMethodSync(repo repository.PaymentMethodRepository) *childSync[*usecase.PaymentMethodInput, entity.PaymentMethod] {
	apply := func(method *entity.PaymentMethod, item *usecase.PaymentMethodInput) {
		method.Type = item.Type
		method.Details = item.Details
		if method.Details == nil {
			method.Details = map[string]any{}
		}
		if item.IsActive != nil {
			method.IsActive = *item.IsActive
		} else {
			method.IsActive = true
		}
	}

	return &childSync[*usecase.PaymentMethodInput, entity.PaymentMethod]{
		find: func(ctx context.Context, cardID uuid.UUID, item *usecase.PaymentMethodInput) (*entity.PaymentMethod, error) {
			if item.ID == nil {
				return nil, repository.ErrChildNotFound
			}

			return repo.FindByCardAndID(ctx, cardID, *item.ID)
		},
		create: func(ctx context.Context, cardID uuid.UUID, item *usecase.PaymentMethodInput) (*entity.PaymentMethod, error) {
			method := &entity.PaymentMethod{ID: uuid.New(), CardID: cardID}
			apply(method, item)

			return method, repo.Create(ctx, method)
		},
		update: func(ctx context.Context, existing *entity.PaymentMethod, item *usecase.PaymentMethodInput) error {
			apply(existing, item)

			return repo.Update(ctx, existing)
		},
		id:          func(method *entity.PaymentMethod) uuid.UUID { return method.ID },
		deleteNotIn: repo.DeleteNotIn,
	}
}

func strValue(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
