// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Visit is an append-only analytics event attached to a card. It is created by
// public traffic (page views, link clicks, QR scans or caller-supplied labels)
// and is never updated or deleted by normal flow.
type Visit struct {
	ID        uuid.UUID      `json:"id"`
	CardID    uuid.UUID      `json:"card_id"`
	Type      string         `json:"type"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	IPAddress string         `json:"ip_address,omitempty"`
	UserAgent string         `json:"user_agent,omitempty"`
	VisitedAt time.Time      `json:"visited_at"`
}

// Fingerprint carries the requester's network/agent identity for visit tracking.
// It is passed explicitly from the delivery layer instead of being read from
// ambient request state.
type Fingerprint struct {
	IPAddress string
	UserAgent string
}

// Lead is a contact-request submission left by a public visitor.
type Lead struct {
	ID        uuid.UUID `json:"id"`
	CardID    uuid.UUID `json:"card_id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Message   string    `json:"message,omitempty"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// AnalyticsSummary aggregates a card's visit history for the owner dashboard.
type AnalyticsSummary struct {
	CardID       uuid.UUID      `json:"card_id"`
	TotalVisits  int64          `json:"total_visits"`
	CountsByType map[string]int64 `json:"counts_by_type"`
	RecentVisits []*Visit       `json:"recent_visits"`
}
