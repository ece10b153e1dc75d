// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"tapcard/internal/domain/entity"
	"tapcard/internal/errors"

	"github.com/google/uuid"
)

// Domain-specific errors for card persistence.
var (
	// ErrCardNotFound is returned when a card is not found.
	ErrCardNotFound = errors.New("card not found")
	// ErrDuplicateSlug is returned when an insert collides with an existing slug.
	// The slug probe is check-then-act, so concurrent creates with the same base
	// name can both pass it; the storage-level unique constraint is the backstop
	// and callers retry allocation on this error.
	ErrDuplicateSlug = errors.New("slug already taken")
	// ErrDuplicateOwner is returned when the owner already has a card.
	ErrDuplicateOwner = errors.New("owner already has a card")
)

// CardRepository defines the interface for card root-row operations.
type CardRepository interface {
	// CreateCard persists a new card root row.
	CreateCard(ctx context.Context, card *entity.Card) error

	// FindCardByID retrieves a card root row by its unique ID.
	FindCardByID(ctx context.Context, id uuid.UUID) (*entity.Card, error)

	// FindCardBySlug retrieves a card by its public slug with all four child
	// collections attached in insertion order.
	FindCardBySlug(ctx context.Context, slug string) (*entity.Card, error)

	// FindCardByOwner retrieves the owner's card with all four child
	// collections attached in insertion order.
	FindCardByOwner(ctx context.Context, ownerID uuid.UUID) (*entity.Card, error)

	// LoadAggregate retrieves a card by ID with all four child collections
	// attached in insertion order. Used for the post-write read-back.
	LoadAggregate(ctx context.Context, id uuid.UUID) (*entity.Card, error)

	// OwnerHasCard reports whether the owner already has a card.
	OwnerHasCard(ctx context.Context, ownerID uuid.UUID) (bool, error)

	// SlugExists reports whether a slug is already taken.
	SlugExists(ctx context.Context, slug string) (bool, error)

	// UpdateCard merges the card's root fields onto the existing row.
	UpdateCard(ctx context.Context, card *entity.Card) error

	// UpdateMediaRefs persists only the media reference columns. This is the
	// second root write after file uploads complete.
	UpdateMediaRefs(ctx context.Context, card *entity.Card) error

	// DeleteCard removes a card; child rows cascade at the storage layer.
	DeleteCard(ctx context.Context, id uuid.UUID) error

	// CardExists reports whether a card row exists. Used by the append-only
	// analytics path which must not load the aggregate.
	CardExists(ctx context.Context, id uuid.UUID) (bool, error)
}
