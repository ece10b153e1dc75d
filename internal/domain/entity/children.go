// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// SocialLink is a card child pairing a platform label with a profile URL.
// The platform value is the natural identifying key during aggregate sync.
type SocialLink struct {
	ID        uuid.UUID `json:"id"`
	CardID    uuid.UUID `json:"card_id"`
	Platform  string    `json:"platform"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Product is a card child describing a product or service listing.
type Product struct {
	ID          uuid.UUID `json:"id"`
	CardID      uuid.UUID `json:"card_id"`
	Name        string    `json:"name"`
	Price       *float64  `json:"price,omitempty"`
	Description string    `json:"description,omitempty"`
	Link        string    `json:"link,omitempty"`
	Category    string    `json:"category,omitempty"`
	Image       string    `json:"image,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Proprietor is a card child describing a person behind the business.
type Proprietor struct {
	ID          uuid.UUID `json:"id"`
	CardID      uuid.UUID `json:"card_id"`
	Name        string    `json:"name"`
	Designation string    `json:"designation,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Email       string    `json:"email,omitempty"`
	Bio         string    `json:"bio,omitempty"`
	LinkedinURL string    `json:"linkedin_url,omitempty"`
	Photo       string    `json:"photo,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PaymentMethod is a typed payment option ("upi", "bank_transfer", "wallet", ...)
// whose details shape depends on the type value.
type PaymentMethod struct {
	ID        uuid.UUID      `json:"id"`
	CardID    uuid.UUID      `json:"card_id"`
	Type      string         `json:"type"`
	Details   map[string]any `json:"details"`
	IsActive  bool           `json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}
