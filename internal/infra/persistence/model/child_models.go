package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SocialLinkModel is the GORM struct for the 'social_links' table.
// Platform is unique per card; it is the natural key during aggregate sync.
type SocialLinkModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CardID    uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_social_links_card_platform"`
	Platform  string    `gorm:"size:50;not null;uniqueIndex:idx_social_links_card_platform"`
	URL       string    `gorm:"size:255;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (SocialLinkModel) TableName() string {
	return "social_links"
}

// ProductModel is the GORM struct for the 'products' table.
type ProductModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	CardID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"size:255;not null"`
	Price       *float64  `gorm:"type:decimal(12,2)"`
	Description string
	Link        string
	Category    string `gorm:"size:100"`
	Image       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}

// ProprietorModel is the GORM struct for the 'proprietors' table.
type ProprietorModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	CardID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"size:255;not null"`
	Designation string    `gorm:"size:100"`
	Phone       string    `gorm:"size:20"`
	Email       string    `gorm:"size:255"`
	Bio         string
	LinkedinURL string
	Photo       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProprietorModel) TableName() string {
	return "proprietors"
}

// PaymentMethodModel is the GORM struct for the 'payment_methods' table.
// Details is a JSON column whose shape depends on the type value.
type PaymentMethodModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CardID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Type      string    `gorm:"size:50;not null"`
	Details   datatypes.JSON
	IsActive  bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (PaymentMethodModel) TableName() string {
	return "payment_methods"
}
