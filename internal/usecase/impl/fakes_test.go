package impl

import (
	"context"
	"io"
	"log/slog"
	"slices"

	"tapcard/internal/domain/entity"
	"tapcard/internal/domain/repository"
	"tapcard/internal/domain/service"

	"github.com/google/uuid"
)

// fakeStore is the in-memory persistence backend shared by the fakes. It
// doubles as the transaction-scoped repository factory; transactional rollback
// is not simulated, which the flow tests do not rely on.
type fakeStore struct {
	cards       map[uuid.UUID]*entity.Card
	socials     *fakeSocialLinkRepo
	products    *fakeProductRepo
	proprietors *fakeProprietorRepo
	payments    *fakePaymentMethodRepo
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		cards:       make(map[uuid.UUID]*entity.Card),
		socials:     &fakeSocialLinkRepo{},
		products:    &fakeProductRepo{},
		proprietors: &fakeProprietorRepo{},
		payments:    &fakePaymentMethodRepo{},
	}
}

func (s *fakeStore) NewCardRepository() repository.CardRepository { return &fakeCardRepo{store: s} }
func (s *fakeStore) NewSocialLinkRepository() repository.SocialLinkRepository {
	return s.socials
}
func (s *fakeStore) NewProductRepository() repository.ProductRepository { return s.products }
func (s *fakeStore) NewProprietorRepository() repository.ProprietorRepository {
	return s.proprietors
}
func (s *fakeStore) NewPaymentMethodRepository() repository.PaymentMethodRepository {
	return s.payments
}

// fakeTxManager runs the callback directly against the shared store.
type fakeTxManager struct {
	store *fakeStore
}

func (m *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m.store)
}

// fakeCardRepo implements repository.CardRepository over the shared store.
type fakeCardRepo struct {
	store *fakeStore
}

func (r *fakeCardRepo) CreateCard(_ context.Context, card *entity.Card) error {
	for _, existing := range r.store.cards {
		if existing.Slug == card.Slug {
			return repository.ErrDuplicateSlug
		}
		if existing.OwnerID == card.OwnerID {
			return repository.ErrDuplicateOwner
		}
	}

	clone := *card
	r.store.cards[card.ID] = &clone

	return nil
}

func (r *fakeCardRepo) FindCardByID(_ context.Context, id uuid.UUID) (*entity.Card, error) {
	card, ok := r.store.cards[id]
	if !ok {
		return nil, repository.ErrCardNotFound
	}

	clone := *card

	return &clone, nil
}

func (r *fakeCardRepo) FindCardBySlug(ctx context.Context, slug string) (*entity.Card, error) {
	for id, card := range r.store.cards {
		if card.Slug == slug {
			return r.LoadAggregate(ctx, id)
		}
	}

	return nil, repository.ErrCardNotFound
}

func (r *fakeCardRepo) FindCardByOwner(ctx context.Context, ownerID uuid.UUID) (*entity.Card, error) {
	for id, card := range r.store.cards {
		if card.OwnerID == ownerID {
			return r.LoadAggregate(ctx, id)
		}
	}

	return nil, repository.ErrCardNotFound
}

func (r *fakeCardRepo) LoadAggregate(_ context.Context, id uuid.UUID) (*entity.Card, error) {
	card, ok := r.store.cards[id]
	if !ok {
		return nil, repository.ErrCardNotFound
	}

	clone := *card
	clone.SocialLinks = r.store.socials.byCard(id)
	clone.Products = r.store.products.byCard(id)
	clone.Proprietors = r.store.proprietors.byCard(id)
	clone.PaymentMethods = r.store.payments.byCard(id)

	return &clone, nil
}

func (r *fakeCardRepo) OwnerHasCard(_ context.Context, ownerID uuid.UUID) (bool, error) {
	for _, card := range r.store.cards {
		if card.OwnerID == ownerID {
			return true, nil
		}
	}

	return false, nil
}

func (r *fakeCardRepo) SlugExists(_ context.Context, slug string) (bool, error) {
	for _, card := range r.store.cards {
		if card.Slug == slug {
			return true, nil
		}
	}

	return false, nil
}

func (r *fakeCardRepo) UpdateCard(_ context.Context, card *entity.Card) error {
	if _, ok := r.store.cards[card.ID]; !ok {
		return repository.ErrCardNotFound
	}

	clone := *card
	r.store.cards[card.ID] = &clone

	return nil
}

func (r *fakeCardRepo) UpdateMediaRefs(_ context.Context, card *entity.Card) error {
	existing, ok := r.store.cards[card.ID]
	if !ok {
		return repository.ErrCardNotFound
	}

	existing.ProfilePhoto = card.ProfilePhoto
	existing.CoverPhoto = card.CoverPhoto
	existing.PaymentQRCode = card.PaymentQRCode

	return nil
}

func (r *fakeCardRepo) DeleteCard(_ context.Context, id uuid.UUID) error {
	if _, ok := r.store.cards[id]; !ok {
		return repository.ErrCardNotFound
	}

	delete(r.store.cards, id)
	r.store.socials.wipeCard(id)
	r.store.products.wipeCard(id)
	r.store.proprietors.wipeCard(id)
	r.store.payments.wipeCard(id)

	return nil
}

func (r *fakeCardRepo) CardExists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := r.store.cards[id]

	return ok, nil
}

// Child fakes keep rows in insertion order, matching the created_at ordering
// of the real repositories.

type fakeSocialLinkRepo struct {
	rows []*entity.SocialLink
}

func (r *fakeSocialLinkRepo) byCard(cardID uuid.UUID) []*entity.SocialLink {
	var out []*entity.SocialLink
	for _, row := range r.rows {
		if row.CardID == cardID {
			clone := *row
			out = append(out, &clone)
		}
	}

	return out
}

func (r *fakeSocialLinkRepo) wipeCard(cardID uuid.UUID) {
	r.rows = slices.DeleteFunc(r.rows, func(row *entity.SocialLink) bool {
		return row.CardID == cardID
	})
}

func (r *fakeSocialLinkRepo) FindByCard(_ context.Context, cardID uuid.UUID) ([]*entity.SocialLink, error) {
	return r.byCard(cardID), nil
}

func (r *fakeSocialLinkRepo) FindByCardAndPlatform(_ context.Context, cardID uuid.UUID, platform string) (*entity.SocialLink, error) {
	for _, row := range r.rows {
		if row.CardID == cardID && row.Platform == platform {
			return row, nil
		}
	}

	return nil, repository.ErrChildNotFound
}

func (r *fakeSocialLinkRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.SocialLink, error) {
	for _, row := range r.rows {
		if row.ID == id {
			return row, nil
		}
	}

	return nil, repository.ErrChildNotFound
}

func (r *fakeSocialLinkRepo) Create(_ context.Context, link *entity.SocialLink) error {
	r.rows = append(r.rows, link)

	return nil
}

func (r *fakeSocialLinkRepo) Update(_ context.Context, link *entity.SocialLink) error {
	for i, row := range r.rows {
		if row.ID == link.ID {
			r.rows[i] = link

			return nil
		}
	}

	return repository.ErrChildNotFound
}

func (r *fakeSocialLinkRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, row := range r.rows {
		if row.ID == id {
			r.rows = slices.Delete(r.rows, i, i+1)

			return nil
		}
	}

	return repository.ErrChildNotFound
}

func (r *fakeSocialLinkRepo) DeleteNotIn(_ context.Context, cardID uuid.UUID, keep []uuid.UUID) error {
	r.rows = slices.DeleteFunc(r.rows, func(row *entity.SocialLink) bool {
		return row.CardID == cardID && !slices.Contains(keep, row.ID)
	})

	return nil
}

type fakeProductRepo struct {
	rows []*entity.Product
}

func (r *fakeProductRepo) byCard(cardID uuid.UUID) []*entity.Product {
	var out []*entity.Product
	for _, row := range r.rows {
		if row.CardID == cardID {
			clone := *row
			out = append(out, &clone)
		}
	}

	return out
}

func (r *fakeProductRepo) wipeCard(cardID uuid.UUID) {
	r.rows = slices.DeleteFunc(r.rows, func(row *entity.Product) bool {
		return row.CardID == cardID
	})
}

func (r *fakeProductRepo) FindByCard(_ context.Context, cardID uuid.UUID) ([]*entity.Product, error) {
	return r.byCard(cardID), nil
}

func (r *fakeProductRepo) FindByCardAndID(_ context.Context, cardID, id uuid.UUID) (*entity.Product, error) {
	for _, row := range r.rows {
		if row.CardID == cardID && row.ID == id {
			return row, nil
		}
	}

	return nil, repository.ErrChildNotFound
}

func (r *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	for _, row := range r.rows {
		if row.ID == id {
			return row, nil
		}
	}

	return nil, repository.ErrChildNotFound
}

func (r *fakeProductRepo) Create(_ context.Context, product *entity.Product) error {
	r.rows = append(r.rows, product)

	return nil
}

func (r *fakeProductRepo) Update(_ context.Context, product *entity.Product) error {
	for i, row := range r.rows {
		if row.ID == product.ID {
			r.rows[i] = product

			return nil
		}
	}

	return repository.ErrChildNotFound
}

func (r *fakeProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, row := range r.rows {
		if row.ID == id {
			r.rows = slices.Delete(r.rows, i, i+1)

			return nil
		}
	}

	return repository.ErrChildNotFound
}

func (r *fakeProductRepo) DeleteNotIn(_ context.Context, cardID uuid.UUID, keep []uuid.UUID) error {
	r.rows = slices.DeleteFunc(r.rows, func(row *entity.Product) bool {
		return row.CardID == cardID && !slices.Contains(keep, row.ID)
	})

	return nil
}

type fakeProprietorRepo struct {
	rows []*entity.Proprietor
}

func (r *fakeProprietorRepo) byCard(cardID uuid.UUID) []*entity.Proprietor {
	var out []*entity.Proprietor
	for _, row := range r.rows {
		if row.CardID == cardID {
			clone := *row
			out = append(out, &clone)
		}
	}

	return out
}

func (r *fakeProprietorRepo) wipeCard(cardID uuid.UUID) {
	r.rows = slices.DeleteFunc(r.rows, func(row *entity.Proprietor) bool {
		return row.CardID == cardID
	})
}

func (r *fakeProprietorRepo) FindByCard(_ context.Context, cardID uuid.UUID) ([]*entity.Proprietor, error) {
	return r.byCard(cardID), nil
}

func (r *fakeProprietorRepo) FindByCardAndID(_ context.Context, cardID, id uuid.UUID) (*entity.Proprietor, error) {
	for _, row := range r.rows {
		if row.CardID == cardID && row.ID == id {
			return row, nil
		}
	}

	return nil, repository.ErrChildNotFound
}

func (r *fakeProprietorRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Proprietor, error) {
	for _, row := range r.rows {
		if row.ID == id {
			return row, nil
		}
	}

	return nil, repository.ErrChildNotFound
}

func (r *fakeProprietorRepo) Create(_ context.Context, proprietor *entity.Proprietor) error {
	r.rows = append(r.rows, proprietor)

	return nil
}

func (r *fakeProprietorRepo) Update(_ context.Context, proprietor *entity.Proprietor) error {
	for i, row := range r.rows {
		if row.ID == proprietor.ID {
			r.rows[i] = proprietor

			return nil
		}
	}

	return repository.ErrChildNotFound
}

func (r *fakeProprietorRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, row := range r.rows {
		if row.ID == id {
			r.rows = slices.Delete(r.rows, i, i+1)

			return nil
		}
	}

	return repository.ErrChildNotFound
}

func (r *fakeProprietorRepo) DeleteNotIn(_ context.Context, cardID uuid.UUID, keep []uuid.UUID) error {
	r.rows = slices.DeleteFunc(r.rows, func(row *entity.Proprietor) bool {
		return row.CardID == cardID && !slices.Contains(keep, row.ID)
	})

	return nil
}

type fakePaymentMethodRepo struct {
	rows []*entity.PaymentMethod
}

func (r *fakePaymentMethodRepo) byCard(cardID uuid.UUID) []*entity.PaymentMethod {
	var out []*entity.PaymentMethod
	for _, row := range r.rows {
		if row.CardID == cardID {
			clone := *row
			out = append(out, &clone)
		}
	}

	return out
}

func (r *fakePaymentMethodRepo) wipeCard(cardID uuid.UUID) {
	r.rows = slices.DeleteFunc(r.rows, func(row *entity.PaymentMethod) bool {
		return row.CardID == cardID
	})
}

func (r *fakePaymentMethodRepo) FindByCard(_ context.Context, cardID uuid.UUID) ([]*entity.PaymentMethod, error) {
	return r.byCard(cardID), nil
}

func (r *fakePaymentMethodRepo) FindByCardAndID(_ context.Context, cardID, id uuid.UUID) (*entity.PaymentMethod, error) {
	for _, row := range r.rows {
		if row.CardID == cardID && row.ID == id {
			return row, nil
		}
	}

	return nil, repository.ErrChildNotFound
}

func (r *fakePaymentMethodRepo) Create(_ context.Context, method *entity.PaymentMethod) error {
	r.rows = append(r.rows, method)

	return nil
}

func (r *fakePaymentMethodRepo) Update(_ context.Context, method *entity.PaymentMethod) error {
	for i, row := range r.rows {
		if row.ID == method.ID {
			r.rows[i] = method

			return nil
		}
	}

	return repository.ErrChildNotFound
}

func (r *fakePaymentMethodRepo) DeleteNotIn(_ context.Context, cardID uuid.UUID, keep []uuid.UUID) error {
	r.rows = slices.DeleteFunc(r.rows, func(row *entity.PaymentMethod) bool {
		return row.CardID == cardID && !slices.Contains(keep, row.ID)
	})

	return nil
}

// fakeStorage records uploads and hands back deterministic URLs. Setting
// failWith makes every Store call fail.
type fakeStorage struct {
	stored   []storedUpload
	failWith error
}

type storedUpload struct {
	dir      string
	filename string
}

func (s *fakeStorage) Store(_ context.Context, upload *service.Upload, dir string) (string, error) {
	if s.failWith != nil {
		return "", s.failWith
	}
	s.stored = append(s.stored, storedUpload{dir: dir, filename: upload.Filename})

	return "https://cdn.test/" + dir + "/" + upload.Filename, nil
}

// fakeQRCode renders a predictable payload instead of a real PNG.
type fakeQRCode struct{}

func (f *fakeQRCode) GenerateCardQR(slug string) ([]byte, error) {
	return []byte("png:" + slug), nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
