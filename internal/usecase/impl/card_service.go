// Package impl contains the concrete implementations of the use case layer.
package impl

import (
	"context"
	"log/slog"

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

// slugRetryAttempts bounds retries when a concurrent create wins the same slug
// between the probe and the insert.
const slugRetryAttempts = 3

type cardService struct {
	txManager repository.TransactionManager
	cardRepo  repository.CardRepository
	storage   service.MediaStorage
	qrcodeSvc service.QRCodeService
	validate  *validator.Validate
	logger    *slog.Logger
}

// CardServiceParams holds dependencies for CardService, injected by Fx.
type CardServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	CardRepo  repository.CardRepository
	Storage   service.MediaStorage
	QRCodeSvc service.QRCodeService
	Logger    *slog.Logger
}

// NewCardService creates a new card service instance.
func NewCardService(params CardServiceParams) usecase.CardUsecase {
	return &cardService{
		txManager: params.TxManager,
		cardRepo:  params.CardRepo,
		storage:   params.Storage,
		qrcodeSvc: params.QRCodeSvc,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		logger:    params.Logger,
	}
}

// CreateCard creates the owner's single card from the full aggregate snapshot.
// The root write, media reference writes and all four child sync passes share
// one transaction, so a failure in any step leaves no partial aggregate.
func (s *cardService) CreateCard(ctx context.Context, ownerID uuid.UUID, input *usecase.CardInput) (*entity.Card, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	hasCard, err := s.cardRepo.OwnerHasCard(ctx, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check owner card")
	}
	if hasCard {
		return nil, domainerrors.ErrCardAlreadyExists
	}

	// The card ID is minted up front so upload paths can be scoped to it
	// before the root row exists.
	cardID := uuid.New()

	var result *entity.Card
	for attempt := 0; attempt < slugRetryAttempts; attempt++ {
		err = s.txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
			cards := f.NewCardRepository()

			slug, allocErr := allocateSlug(ctx, cards, input.BusinessName)
			if allocErr != nil {
				return allocErr
			}

			card := &entity.Card{ID: cardID, OwnerID: ownerID, Slug: slug}
			applyRootFields(card, input)

			if createErr := cards.CreateCard(ctx, card); createErr != nil {
				return createErr
			}

			if mediaErr := s.applyRootMedia(ctx, cards, card, input); mediaErr != nil {
				return mediaErr
			}

			if syncErr := s.syncChildren(ctx, f, cardID, input); syncErr != nil {
				return syncErr
			}

			var loadErr error
			result, loadErr = cards.LoadAggregate(ctx, cardID)

			return loadErr
		})

		if errors.Is(err, repository.ErrDuplicateSlug) {
			// Lost the probe-to-insert race; reprobe against the new state.
			s.logger.Warn("slug collision on create, retrying",
				slog.String("cardID", cardID.String()),
				slog.Int("attempt", attempt+1))

			continue
		}

		break
	}

	switch {
	case err == nil:
		return result, nil
	case errors.Is(err, repository.ErrDuplicateSlug):
		return nil, domainerrors.ErrSlugConflict
	case errors.Is(err, repository.ErrDuplicateOwner):
		return nil, domainerrors.ErrCardAlreadyExists
	default:
		return nil, errors.Wrap(err, "failed to create card")
	}
}

// UpdateCard replaces the card aggregate with the incoming snapshot. The slug
// is never regenerated, even when the business name changes.
func (s *cardService) UpdateCard(ctx context.Context, ownerID, cardID uuid.UUID, input *usecase.CardInput) (*entity.Card, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	existing, err := s.findOwnedCard(ctx, ownerID, cardID)
	if err != nil {
		return nil, err
	}

	var result *entity.Card
	err = s.txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		cards := f.NewCardRepository()

		applyRootFields(existing, input)
		if updateErr := cards.UpdateCard(ctx, existing); updateErr != nil {
			return updateErr
		}

		if mediaErr := s.applyRootMedia(ctx, cards, existing, input); mediaErr != nil {
			return mediaErr
		}

		if syncErr := s.syncChildren(ctx, f, cardID, input); syncErr != nil {
			return syncErr
		}

		var loadErr error
		result, loadErr = cards.LoadAggregate(ctx, cardID)

		return loadErr
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update card")
	}

	return result, nil
}

// DeleteCard removes the owner's card; child rows cascade at the storage layer.
func (s *cardService) DeleteCard(ctx context.Context, ownerID, cardID uuid.UUID) error {
	if _, err := s.findOwnedCard(ctx, ownerID, cardID); err != nil {
		return err
	}

	if err := s.cardRepo.DeleteCard(ctx, cardID); err != nil {
		return errors.Wrap(err, "failed to delete card")
	}

	return nil
}

// GetCardBySlug fetches a card with all child collections for the public page.
func (s *cardService) GetCardBySlug(ctx context.Context, slug string) (*entity.Card, error) {
	card, err := s.cardRepo.FindCardBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrCardNotFound) {
			return nil, domainerrors.ErrCardNotFound
		}

		return nil, errors.Wrap(err, "failed to find card by slug")
	}

	return card, nil
}

// GetOwnCard fetches the caller's card with all child collections.
func (s *cardService) GetOwnCard(ctx context.Context, ownerID uuid.UUID) (*entity.Card, error) {
	card, err := s.cardRepo.FindCardByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrCardNotFound) {
			return nil, domainerrors.ErrCardNotFound
		}

		return nil, errors.Wrap(err, "failed to find card by owner")
	}

	return card, nil
}

// GenerateShareQR renders a PNG QR code for the card's public page.
func (s *cardService) GenerateShareQR(ctx context.Context, slug string) ([]byte, error) {
	exists, err := s.cardRepo.SlugExists(ctx, slug)
	if err != nil {
		return nil, errors.Wrap(err, "failed to probe slug")
	}
	if !exists {
		return nil, domainerrors.ErrCardNotFound
	}

	png, err := s.qrcodeSvc.GenerateCardQR(slug)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate card QR")
	}

	return png, nil
}

// validateInput is the fail-fast gate: any violation, including inside nested
// child arrays, rejects the whole aggregate write before persistence starts.
func (s *cardService) validateInput(input *usecase.CardInput) error {
	if err := s.validate.Struct(input); err != nil {
		return domainerrors.NewValidationError(err.Error())
	}

	return nil
}

// findOwnedCard loads the card root and enforces ownership. A mismatch is an
// authorization failure, not a validation failure, and stays opaque.
func (s *cardService) findOwnedCard(ctx context.Context, ownerID, cardID uuid.UUID) (*entity.Card, error) {
	card, err := s.cardRepo.FindCardByID(ctx, cardID)
	if err != nil {
		if errors.Is(err, repository.ErrCardNotFound) {
			return nil, domainerrors.ErrCardNotFound
		}

		return nil, errors.Wrap(err, "failed to find card by id")
	}

	if card.OwnerID != ownerID {
		return nil, domainerrors.ErrCardForbidden
	}

	return card, nil
}

// applyRootMedia uploads any root-level files into the card's own bucket
// directory and persists the returned references as a second root write.
func (s *cardService) applyRootMedia(ctx context.Context, cards repository.CardRepository, card *entity.Card, input *usecase.CardInput) error {
	dir := "cards/" + card.ID.String()
	changed := false

	uploads := []struct {
		file *service.Upload
		dest *string
	}{
		{input.ProfilePhotoFile, &card.ProfilePhoto},
		{input.CoverPhotoFile, &card.CoverPhoto},
		{input.PaymentQRCodeFile, &card.PaymentQRCode},
	}
	for _, u := range uploads {
		if u.file == nil {
			continue
		}
		url, err := s.storage.Store(ctx, u.file, dir)
		if err != nil {
			return domainerrors.ErrStorageFailed.WithDetails(err.Error())
		}
		*u.dest = url
		changed = true
	}

	if !changed {
		return nil
	}

	return cards.UpdateMediaRefs(ctx, card)
}

// syncChildren runs the full-replace reconciliation once per child collection
// type. Collections absent from the snapshot arrive as empty slices and wipe
// the persisted set.
func (s *cardService) syncChildren(ctx context.Context, f repository.RepositoryFactory, cardID uuid.UUID, input *usecase.CardInput) error {
	if _, err := socialLinkSync(f.NewSocialLinkRepository()).reconcile(ctx, s.storage, cardID, input.SocialLinks); err != nil {
		return errors.Wrap(err, "failed to sync social links")
	}
	if _, err := productSync(f.NewProductRepository()).reconcile(ctx, s.storage, cardID, input.Products); err != nil {
		return errors.Wrap(err, "failed to sync products")
	}
	if _, err := proprietorSync(f.NewProprietorRepository()).reconcile(ctx, s.storage, cardID, input.Proprietors); err != nil {
		return errors.Wrap(err, "failed to sync proprietors")
	}
	if _, err := paymentMethodSync(f.NewPaymentMethodRepository()).reconcile(ctx, s.storage, cardID, input.PaymentMethods); err != nil {
		return errors.Wrap(err, "failed to sync payment methods")
	}

	return nil
}

// applyRootFields merges the snapshot's root fields onto the card. Absent
// optional fields (nil pointers) leave the persisted value untouched.
func applyRootFields(card *entity.Card, input *usecase.CardInput) {
	card.BusinessName = input.BusinessName

	setStr(&card.Tagline, input.Tagline)
	setStr(&card.SubHeader, input.SubHeader)
	setStr(&card.Description, input.Description)
	setStr(&card.Category, input.Category)
	setStr(&card.SubCategory, input.SubCategory)
	setStr(&card.Phone, input.Phone)
	setStr(&card.Email, input.Email)
	setStr(&card.Website, input.Website)
	setStr(&card.Address, input.Address)
	setStr(&card.City, input.City)
	setStr(&card.State, input.State)
	setStr(&card.Country, input.Country)
	setStr(&card.Pincode, input.Pincode)
	setStr(&card.MapURL, input.MapURL)
	setStr(&card.GoogleMapEmbedURL, input.GoogleMapEmbedURL)
	setStr(&card.ThemeColor, input.ThemeColor)
	setStr(&card.PrimaryContactDesignation, input.PrimaryContactDesignation)

	if input.FoundedAt != nil {
		card.FoundedAt = input.FoundedAt
	}
	if input.Latitude != nil {
		card.Latitude = input.Latitude
	}
	if input.Longitude != nil {
		card.Longitude = input.Longitude
	}
	if input.YearsOfExperience != nil {
		card.YearsOfExperience = input.YearsOfExperience
	}
	if input.BankDetails != nil {
		card.BankDetails = input.BankDetails
	}
	if input.BusinessHours != nil {
		card.BusinessHours = input.BusinessHours
	}
}

func setStr(dest *string, src *string) {
	if src != nil {
		*dest = *src
	}
}
