// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Card is the aggregate root of the system: a single digital business card
// owned by exactly one account. All child collections (social links, products,
// proprietors, payment methods) are lifecycle-managed through the card's
// aggregate sync path and never outlive it.
type Card struct {
	ID           uuid.UUID `json:"id"`
	OwnerID      uuid.UUID `json:"owner_id"`
	BusinessName string    `json:"business_name"`
	// Slug is the globally unique, URL-safe public identifier. It is minted
	// once on creation and never regenerated afterwards.
	Slug        string     `json:"slug"`
	Tagline     string     `json:"tagline,omitempty"`
	SubHeader   string     `json:"sub_header,omitempty"`
	Description string     `json:"description,omitempty"`
	FoundedAt   *time.Time `json:"founded_at,omitempty"`
	Category    string     `json:"category,omitempty"`
	SubCategory string     `json:"sub_category,omitempty"`

	Phone            string   `json:"phone,omitempty"`
	Email            string   `json:"email,omitempty"`
	Website          string   `json:"website,omitempty"`
	Address          string   `json:"address,omitempty"`
	City             string   `json:"city,omitempty"`
	State            string   `json:"state,omitempty"`
	Country          string   `json:"country,omitempty"`
	Pincode          string   `json:"pincode,omitempty"`
	Latitude         *float64 `json:"latitude,omitempty"`
	Longitude        *float64 `json:"longitude,omitempty"`
	MapURL           string   `json:"map_url,omitempty"`
	GoogleMapEmbedURL string  `json:"google_map_embed_url,omitempty"`

	ThemeColor                string `json:"theme_color,omitempty"`
	YearsOfExperience         *int   `json:"years_of_experience,omitempty"`
	PrimaryContactDesignation string `json:"primary_contact_designation,omitempty"`

	// Media references are public URLs returned by the storage gateway.
	ProfilePhoto  string `json:"profile_photo,omitempty"`
	CoverPhoto    string `json:"cover_photo,omitempty"`
	PaymentQRCode string `json:"payment_qr_code,omitempty"`

	BankDetails   *BankDetails   `json:"bank_details,omitempty"`
	BusinessHours *BusinessHours `json:"business_hours,omitempty"`

	SocialLinks    []*SocialLink    `json:"social_links"`
	Products       []*Product       `json:"products"`
	Proprietors    []*Proprietor    `json:"proprietors"`
	PaymentMethods []*PaymentMethod `json:"payment_methods"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BankDetails is the structured bank account block shown on the payment section.
type BankDetails struct {
	AccountName   string `json:"account_name,omitempty"`
	AccountNumber string `json:"account_number,omitempty"`
	BankName      string `json:"bank_name,omitempty"`
	BranchName    string `json:"branch_name,omitempty"`
	IFSCCode      string `json:"ifsc_code,omitempty"`
	UPIID         string `json:"upi_id,omitempty"`
}

// BusinessHours maps a weekday name ("monday" .. "sunday") to its opening
// window, e.g. {"open": "09:00", "close": "18:00", "closed": false}.
type BusinessHours map[string]DayHours

// DayHours describes a single day's opening window.
type DayHours struct {
	Open   string `json:"open,omitempty"`
	Close  string `json:"close,omitempty"`
	Closed bool   `json:"closed,omitempty"`
}
