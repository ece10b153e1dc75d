// Package usecase defines the application's use case interfaces and the input
// shapes they accept from the delivery layer.
package usecase

import (
	"context"
	"time"

	"tapcard/internal/domain/entity"
	"tapcard/internal/domain/service"

	"github.com/google/uuid"
)

// CardInput is the full aggregate snapshot accepted by the create and update
// paths. Optional root fields are pointers so an absent field leaves the
// persisted value untouched; child collections are always reconciled, and a
// collection that is absent from the request wipes the persisted set
// (full-replace semantics).
type CardInput struct {
	BusinessName string     `json:"business_name" validate:"required,max=255"`
	Tagline      *string    `json:"tagline" validate:"omitempty,max=255"`
	SubHeader    *string    `json:"sub_header" validate:"omitempty,max=255"`
	Description  *string    `json:"description"`
	FoundedAt    *time.Time `json:"founded_at"`
	Category     *string    `json:"category"`
	SubCategory  *string    `json:"sub_category"`

	Phone             *string  `json:"phone" validate:"omitempty,max=20"`
	Email             *string  `json:"email" validate:"omitempty,email,max=255"`
	Website           *string  `json:"website" validate:"omitempty,url,max=255"`
	Address           *string  `json:"address"`
	City              *string  `json:"city"`
	State             *string  `json:"state"`
	Country           *string  `json:"country"`
	Pincode           *string  `json:"pincode"`
	Latitude          *float64 `json:"latitude"`
	Longitude         *float64 `json:"longitude"`
	MapURL            *string  `json:"map_url" validate:"omitempty,url"`
	GoogleMapEmbedURL *string  `json:"google_map_embed_url"`

	ThemeColor                *string `json:"theme_color" validate:"omitempty,max=7"`
	YearsOfExperience         *int    `json:"years_of_experience" validate:"omitempty,gte=0"`
	PrimaryContactDesignation *string `json:"primary_contact_designation"`

	BankDetails   *entity.BankDetails   `json:"bank_details"`
	BusinessHours *entity.BusinessHours `json:"business_hours"`

	SocialLinks    []*SocialLinkInput    `json:"social_links" validate:"dive"`
	Products       []*ProductInput       `json:"products" validate:"dive"`
	Proprietors    []*ProprietorInput    `json:"proprietors" validate:"dive"`
	PaymentMethods []*PaymentMethodInput `json:"payment_methods" validate:"dive"`

	// Root-level media uploads; nil when the request carries no file.
	ProfilePhotoFile  *service.Upload `json:"-"`
	CoverPhotoFile    *service.Upload `json:"-"`
	PaymentQRCodeFile *service.Upload `json:"-"`
}

// SocialLinkInput is one incoming social link item. Platform is both a
// required field and the reconciliation match key.
type SocialLinkInput struct {
	Platform string `json:"platform" validate:"required,max=50"`
	URL      string `json:"url" validate:"required,url,max=255"`
}

// ProductInput is one incoming product item. A non-nil ID pairs it with an
// existing row; a nil ID forces creation.
type ProductInput struct {
	ID          *uuid.UUID `json:"id"`
	Name        string     `json:"name" validate:"required,max=255"`
	Price       *float64   `json:"price" validate:"omitempty,gte=0"`
	Description *string    `json:"description"`
	Link        *string    `json:"link" validate:"omitempty,url"`
	Category    *string    `json:"category"`

	// ImageFile is the optional per-item upload co-located with this index in
	// the multipart body.
	ImageFile *service.Upload `json:"-"`
}

// ProprietorInput is one incoming proprietor item.
type ProprietorInput struct {
	ID          *uuid.UUID `json:"id"`
	Name        string     `json:"name" validate:"required,max=255"`
	Designation *string    `json:"designation"`
	Phone       *string    `json:"phone" validate:"omitempty,max=20"`
	Email       *string    `json:"email" validate:"omitempty,email"`
	Bio         *string    `json:"bio"`
	LinkedinURL *string    `json:"linkedin_url" validate:"omitempty,url"`

	PhotoFile *service.Upload `json:"-"`
}

// PaymentMethodInput is one incoming payment method item. Details is an open
// structured object whose shape depends on Type.
type PaymentMethodInput struct {
	ID       *uuid.UUID     `json:"id"`
	Type     string         `json:"type" validate:"required,max=50"`
	Details  map[string]any `json:"details"`
	IsActive *bool          `json:"is_active"`
}

// CardUsecase defines the aggregate write and read operations for cards.
type CardUsecase interface {
	// CreateCard creates the owner's single card: validates the snapshot,
	// allocates a slug from the business name, writes the root row, uploads
	// media, and syncs all four child collections in one transaction.
	CreateCard(ctx context.Context, ownerID uuid.UUID, input *CardInput) (*entity.Card, error)

	// UpdateCard replaces the card aggregate with the incoming snapshot. The
	// caller must own the card; the slug is never regenerated.
	UpdateCard(ctx context.Context, ownerID, cardID uuid.UUID, input *CardInput) (*entity.Card, error)

	// DeleteCard removes the owner's card; children cascade.
	DeleteCard(ctx context.Context, ownerID, cardID uuid.UUID) error

	// GetCardBySlug fetches a card with all child collections for the public page.
	GetCardBySlug(ctx context.Context, slug string) (*entity.Card, error)

	// GetOwnCard fetches the caller's card with all child collections.
	GetOwnCard(ctx context.Context, ownerID uuid.UUID) (*entity.Card, error)

	// GenerateShareQR renders a PNG QR code for the card's public page.
	GenerateShareQR(ctx context.Context, slug string) ([]byte, error)
}
