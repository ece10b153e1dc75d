package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// VisitModel is the GORM struct for the append-only 'card_visits' table.
type VisitModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CardID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Type      string    `gorm:"size:50;not null"`
	Metadata  datatypes.JSON
	IPAddress string `gorm:"size:45"`
	UserAgent string `gorm:"size:512"`
	VisitedAt time.Time `gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (VisitModel) TableName() string {
	return "card_visits"
}

// LeadModel is the GORM struct for the 'leads' table.
type LeadModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CardID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"size:255;not null"`
	Phone     string    `gorm:"size:20;not null"`
	Message   string
	IsRead    bool `gorm:"not null;default:false"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (LeadModel) TableName() string {
	return "leads"
}
