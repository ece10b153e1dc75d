// Package model contains the GORM-specific structs mapping domain entities to
// database tables.
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// CardModel is the GORM struct for the 'cards' table, the aggregate root row.
// The owner and slug columns carry unique constraints backing the
// single-card-per-owner rule and the slug allocation race backstop.
type CardModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	OwnerID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	BusinessName string    `gorm:"size:255;not null"`
	Slug         string    `gorm:"size:255;not null;uniqueIndex"`
	Tagline      string    `gorm:"size:255"`
	SubHeader    string    `gorm:"size:255"`
	Description  string
	FoundedAt    *time.Time
	Category     string `gorm:"size:100"`
	SubCategory  string `gorm:"size:100"`

	Phone             string `gorm:"size:20"`
	Email             string `gorm:"size:255"`
	Website           string `gorm:"size:255"`
	Address           string
	City              string `gorm:"size:100"`
	State             string `gorm:"size:100"`
	Country           string `gorm:"size:100"`
	Pincode           string `gorm:"size:20"`
	Latitude          *float64 `gorm:"type:decimal(10,7)"`
	Longitude         *float64 `gorm:"type:decimal(10,7)"`
	MapURL            string
	GoogleMapEmbedURL string

	ThemeColor                string `gorm:"size:7"`
	YearsOfExperience         *int
	PrimaryContactDesignation string `gorm:"size:100"`

	ProfilePhoto  string
	CoverPhoto    string
	PaymentQRCode string

	BankDetails   datatypes.JSON
	BusinessHours datatypes.JSON

	CreatedAt time.Time
	UpdatedAt time.Time

	// Child collections; the FK constraint cascades deletes to all of them.
	SocialLinks    []SocialLinkModel    `gorm:"foreignKey:CardID;constraint:OnDelete:CASCADE"`
	Products       []ProductModel       `gorm:"foreignKey:CardID;constraint:OnDelete:CASCADE"`
	Proprietors    []ProprietorModel    `gorm:"foreignKey:CardID;constraint:OnDelete:CASCADE"`
	PaymentMethods []PaymentMethodModel `gorm:"foreignKey:CardID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (CardModel) TableName() string {
	return "cards"
}
