package impl

import (
	"context"
	"errors"
	"strings"
	"testing"

	domainerrors "tapcard/internal/domain/errors"
	"tapcard/internal/domain/service"
	"tapcard/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCardServiceForTest(store *fakeStore, storage *fakeStorage) usecase.CardUsecase {
	return NewCardService(CardServiceParams{
		TxManager: &fakeTxManager{store: store},
		CardRepo:  store.NewCardRepository(),
		Storage:   storage,
		QRCodeSvc: &fakeQRCode{},
		Logger:    discardLogger(),
	})
}

func str(s string) *string { return &s }

func upload(name string) *service.Upload {
	return &service.Upload{
		Filename:    name,
		ContentType: "image/png",
		Content:     strings.NewReader("fake image bytes"),
	}
}

func TestCreateCard_BuildsFullAggregate(t *testing.T) {
	store := newFakeStore()
	storage := &fakeStorage{}
	svc := newCardServiceForTest(store, storage)
	ownerID := uuid.New()

	input := &usecase.CardInput{
		BusinessName: "Acme Corp",
		Tagline:      str("Everything for coyotes"),
		SocialLinks: []*usecase.SocialLinkInput{
			{Platform: "instagram", URL: "https://instagram.com/acme"},
			{Platform: "facebook", URL: "https://facebook.com/acme"},
		},
		Products: []*usecase.ProductInput{
			{Name: "Anvil", Price: float64Ptr(99.5)},
		},
		Proprietors: []*usecase.ProprietorInput{
			{Name: "Wile E."},
		},
		PaymentMethods: []*usecase.PaymentMethodInput{
			{Type: "upi", Details: map[string]any{"vpa": "acme@upi"}},
		},
	}

	card, err := svc.CreateCard(context.Background(), ownerID, input)
	require.NoError(t, err)

	assert.Equal(t, ownerID, card.OwnerID)
	assert.Equal(t, "acme-corp", card.Slug)
	assert.Equal(t, "Everything for coyotes", card.Tagline)
	assert.Len(t, card.SocialLinks, 2)
	assert.Len(t, card.Products, 1)
	assert.Len(t, card.Proprietors, 1)
	require.Len(t, card.PaymentMethods, 1)
	assert.True(t, card.PaymentMethods[0].IsActive)
}

func TestCreateCard_SecondCardForOwnerRejected(t *testing.T) {
	store := newFakeStore()
	svc := newCardServiceForTest(store, &fakeStorage{})
	ownerID := uuid.New()

	_, err := svc.CreateCard(context.Background(), ownerID, &usecase.CardInput{BusinessName: "Acme"})
	require.NoError(t, err)

	_, err = svc.CreateCard(context.Background(), ownerID, &usecase.CardInput{BusinessName: "Acme Again"})
	assert.ErrorIs(t, err, domainerrors.ErrCardAlreadyExists)
}

func TestCreateCard_SameNameGetsSuffixedSlug(t *testing.T) {
	store := newFakeStore()
	svc := newCardServiceForTest(store, &fakeStorage{})

	first, err := svc.CreateCard(context.Background(), uuid.New(), &usecase.CardInput{BusinessName: "Acme Corp"})
	require.NoError(t, err)
	second, err := svc.CreateCard(context.Background(), uuid.New(), &usecase.CardInput{BusinessName: "Acme Corp"})
	require.NoError(t, err)

	assert.Equal(t, "acme-corp", first.Slug)
	assert.Equal(t, "acme-corp-1", second.Slug)
}

func TestCreateCard_ValidationRejectsBadInput(t *testing.T) {
	svc := newCardServiceForTest(newFakeStore(), &fakeStorage{})

	tests := []struct {
		name  string
		input *usecase.CardInput
	}{
		{"missing business name", &usecase.CardInput{}},
		{"bad social link url", &usecase.CardInput{
			BusinessName: "Acme",
			SocialLinks:  []*usecase.SocialLinkInput{{Platform: "x", URL: "not-a-url"}},
		}},
		{"negative product price", &usecase.CardInput{
			BusinessName: "Acme",
			Products:     []*usecase.ProductInput{{Name: "Anvil", Price: float64Ptr(-1)}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateCard(context.Background(), uuid.New(), tt.input)
			require.Error(t, err)

			var appErr domainerrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, "VALIDATION_FAILED", appErr.ErrorCode())
		})
	}
}

func TestUpdateCard_ForeignOwnerForbidden(t *testing.T) {
	store := newFakeStore()
	svc := newCardServiceForTest(store, &fakeStorage{})

	card, err := svc.CreateCard(context.Background(), uuid.New(), &usecase.CardInput{BusinessName: "Acme"})
	require.NoError(t, err)

	_, err = svc.UpdateCard(context.Background(), uuid.New(), card.ID, &usecase.CardInput{BusinessName: "Hijack"})
	assert.ErrorIs(t, err, domainerrors.ErrCardForbidden)

	err = svc.DeleteCard(context.Background(), uuid.New(), card.ID)
	assert.ErrorIs(t, err, domainerrors.ErrCardForbidden)
}

func TestUpdateCard_SlugNeverRegenerated(t *testing.T) {
	store := newFakeStore()
	svc := newCardServiceForTest(store, &fakeStorage{})
	ownerID := uuid.New()

	card, err := svc.CreateCard(context.Background(), ownerID, &usecase.CardInput{BusinessName: "Acme Corp"})
	require.NoError(t, err)
	require.Equal(t, "acme-corp", card.Slug)

	updated, err := svc.UpdateCard(context.Background(), ownerID, card.ID, &usecase.CardInput{BusinessName: "Totally New Name"})
	require.NoError(t, err)

	assert.Equal(t, "Totally New Name", updated.BusinessName)
	assert.Equal(t, "acme-corp", updated.Slug)
}

func TestUpdateCard_FullReplaceDeletesUnlistedChildren(t *testing.T) {
	store := newFakeStore()
	svc := newCardServiceForTest(store, &fakeStorage{})
	ownerID := uuid.New()

	card, err := svc.CreateCard(context.Background(), ownerID, &usecase.CardInput{
		BusinessName: "Acme",
		SocialLinks: []*usecase.SocialLinkInput{
			{Platform: "instagram", URL: "https://instagram.com/acme"},
			{Platform: "facebook", URL: "https://facebook.com/acme"},
		},
	})
	require.NoError(t, err)
	require.Len(t, card.SocialLinks, 2)

	// Resend only one platform; the other row must go.
	updated, err := svc.UpdateCard(context.Background(), ownerID, card.ID, &usecase.CardInput{
		BusinessName: "Acme",
		SocialLinks: []*usecase.SocialLinkInput{
			{Platform: "instagram", URL: "https://instagram.com/acme-new"},
		},
	})
	require.NoError(t, err)

	require.Len(t, updated.SocialLinks, 1)
	assert.Equal(t, "instagram", updated.SocialLinks[0].Platform)
	assert.Equal(t, "https://instagram.com/acme-new", updated.SocialLinks[0].URL)
}

func TestUpdateCard_OmittedCollectionWipes(t *testing.T) {
	store := newFakeStore()
	svc := newCardServiceForTest(store, &fakeStorage{})
	ownerID := uuid.New()

	card, err := svc.CreateCard(context.Background(), ownerID, &usecase.CardInput{
		BusinessName: "Acme",
		Products: []*usecase.ProductInput{
			{Name: "Anvil"},
			{Name: "Rocket Skates"},
		},
	})
	require.NoError(t, err)
	require.Len(t, card.Products, 2)

	updated, err := svc.UpdateCard(context.Background(), ownerID, card.ID, &usecase.CardInput{BusinessName: "Acme"})
	require.NoError(t, err)

	assert.Empty(t, updated.Products)
}

func TestUpdateCard_ResendingSnapshotIsIdempotent(t *testing.T) {
	store := newFakeStore()
	svc := newCardServiceForTest(store, &fakeStorage{})
	ownerID := uuid.New()

	input := &usecase.CardInput{
		BusinessName: "Acme",
		SocialLinks: []*usecase.SocialLinkInput{
			{Platform: "instagram", URL: "https://instagram.com/acme"},
		},
		PaymentMethods: []*usecase.PaymentMethodInput{
			{Type: "upi"},
		},
	}

	card, err := svc.CreateCard(context.Background(), ownerID, input)
	require.NoError(t, err)

	// Pin the explicit-id items to their persisted rows and resend twice.
	input.PaymentMethods[0].ID = &card.PaymentMethods[0].ID

	first, err := svc.UpdateCard(context.Background(), ownerID, card.ID, input)
	require.NoError(t, err)
	second, err := svc.UpdateCard(context.Background(), ownerID, card.ID, input)
	require.NoError(t, err)

	require.Len(t, second.SocialLinks, 1)
	require.Len(t, second.PaymentMethods, 1)
	assert.Equal(t, first.SocialLinks[0].ID, second.SocialLinks[0].ID)
	assert.Equal(t, first.PaymentMethods[0].ID, second.PaymentMethods[0].ID)
}

func TestUpdateCard_DuplicatePlatformLastWriteWins(t *testing.T) {
	store := newFakeStore()
	svc := newCardServiceForTest(store, &fakeStorage{})
	ownerID := uuid.New()

	card, err := svc.CreateCard(context.Background(), ownerID, &usecase.CardInput{
		BusinessName: "Acme",
		SocialLinks: []*usecase.SocialLinkInput{
			{Platform: "instagram", URL: "https://instagram.com/first"},
			{Platform: "instagram", URL: "https://instagram.com/second"},
		},
	})
	require.NoError(t, err)

	require.Len(t, card.SocialLinks, 1)
	assert.Equal(t, "https://instagram.com/second", card.SocialLinks[0].URL)
}

func TestCreateCard_StorageFailureSurfacesAsStorageError(t *testing.T) {
	store := newFakeStore()
	storage := &fakeStorage{failWith: errors.New("bucket unreachable")}
	svc := newCardServiceForTest(store, storage)

	tests := []struct {
		name  string
		input *usecase.CardInput
	}{
		{
			name: "root media upload",
			input: &usecase.CardInput{
				BusinessName:     "Acme Corp",
				ProfilePhotoFile: upload("profile.png"),
			},
		},
		{
			name: "product image upload",
			input: &usecase.CardInput{
				BusinessName: "Acme Corp",
				Products: []*usecase.ProductInput{
					{Name: "Anvil", ImageFile: upload("anvil.png")},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateCard(context.Background(), uuid.New(), tt.input)

			var appErr domainerrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, "STORAGE_FAILED", appErr.ErrorCode())
			assert.Contains(t, appErr.Details(), "bucket unreachable")
		})
	}
}

func TestCardLifecycle_WithMediaUploads(t *testing.T) {
	store := newFakeStore()
	storage := &fakeStorage{}
	svc := newCardServiceForTest(store, storage)
	ownerID := uuid.New()
	ctx := context.Background()

	card, err := svc.CreateCard(ctx, ownerID, &usecase.CardInput{
		BusinessName:     "Acme",
		ProfilePhotoFile: upload("profile.png"),
	})
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.test/cards/"+card.ID.String()+"/profile.png", card.ProfilePhoto)

	// Update adds a product with its own image.
	updated, err := svc.UpdateCard(ctx, ownerID, card.ID, &usecase.CardInput{
		BusinessName: "Acme",
		Products: []*usecase.ProductInput{
			{Name: "Anvil", ImageFile: upload("anvil.png")},
		},
	})
	require.NoError(t, err)

	require.Len(t, updated.Products, 1)
	assert.Equal(t, "https://cdn.test/products/anvil.png", updated.Products[0].Image)
	assert.Equal(t, card.ProfilePhoto, updated.ProfilePhoto)

	// A final snapshot without products empties the collection again.
	final, err := svc.UpdateCard(ctx, ownerID, card.ID, &usecase.CardInput{BusinessName: "Acme"})
	require.NoError(t, err)
	assert.Empty(t, final.Products)

	require.Len(t, storage.stored, 2)
	assert.Equal(t, "cards/"+card.ID.String(), storage.stored[0].dir)
	assert.Equal(t, "products", storage.stored[1].dir)
}

func TestDeleteCard_RemovesAggregate(t *testing.T) {
	store := newFakeStore()
	svc := newCardServiceForTest(store, &fakeStorage{})
	ownerID := uuid.New()

	card, err := svc.CreateCard(context.Background(), ownerID, &usecase.CardInput{
		BusinessName: "Acme",
		Products:     []*usecase.ProductInput{{Name: "Anvil"}},
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCard(context.Background(), ownerID, card.ID))

	_, err = svc.GetCardBySlug(context.Background(), card.Slug)
	assert.ErrorIs(t, err, domainerrors.ErrCardNotFound)
	assert.Empty(t, store.products.rows)
}

func TestGenerateShareQR(t *testing.T) {
	store := newFakeStore()
	svc := newCardServiceForTest(store, &fakeStorage{})

	card, err := svc.CreateCard(context.Background(), uuid.New(), &usecase.CardInput{BusinessName: "Acme"})
	require.NoError(t, err)

	png, err := svc.GenerateShareQR(context.Background(), card.Slug)
	require.NoError(t, err)
	assert.Equal(t, []byte("png:acme"), png)

	_, err = svc.GenerateShareQR(context.Background(), "missing")
	assert.ErrorIs(t, err, domainerrors.ErrCardNotFound)
}

func float64Ptr(f float64) *float64 { return &f }
