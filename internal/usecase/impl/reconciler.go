package impl

import (
	"context"

	domainerrors "tapcard/internal/domain/errors"
	"tapcard/internal/domain/repository"
	"tapcard/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// childSync is the generic full-replace reconciliation engine for one child
// collection type. The aggregate write instantiates it four times (social
// links, products, proprietors, payment methods); only the strategy functions
// differ.
type childSync[In any, E any] struct {
	// find looks up the existing child matching the item's key (natural key or
	// explicit id). It returns repository.ErrChildNotFound when the item has no
	// match, which forces creation.
	find func(ctx context.Context, cardID uuid.UUID, item In) (*E, error)

	// create inserts a new child of the card from the incoming item.
	create func(ctx context.Context, cardID uuid.UUID, item In) (*E, error)

	// update applies the incoming item's fields onto the existing child.
	update func(ctx context.Context, existing *E, item In) error

	// id extracts the persisted child's identifier.
	id func(e *E) uuid.UUID

	// file extracts the item's co-located upload, nil when the collection type
	// carries no per-item files or this item has none.
	file func(item In) *service.Upload

	// attach persists an uploaded file's URL onto the just-written child as a
	// second write.
	attach func(ctx context.Context, e *E, url string) error

	// deleteNotIn removes every persisted child of the card not in the keep
	// set. An empty keep set wipes the collection.
	deleteNotIn func(ctx context.Context, cardID uuid.UUID, keep []uuid.UUID) error

	// uploadDir is the storage directory for per-item files.
	uploadDir string
}

// reconcile processes the incoming items in order, upserting each against the
// persisted set, then deletes every persisted child not touched. Two items
// resolving to the same match key fold onto one row with the later item's
// fields winning, because each lookup sees the previous iteration's write. At
// return the persisted set corresponds 1:1 with the incoming set deduplicated
// by match key.
func (s *childSync[In, E]) reconcile(ctx context.Context, store service.MediaStorage, cardID uuid.UUID, items []In) ([]uuid.UUID, error) {
	surviving := make([]uuid.UUID, 0, len(items))

	for _, item := range items {
		existing, err := s.find(ctx, cardID, item)
		if err != nil && !errors.Is(err, repository.ErrChildNotFound) {
			return nil, errors.Wrap(err, "failed to look up existing child")
		}

		var row *E
		if existing != nil {
			if err := s.update(ctx, existing, item); err != nil {
				return nil, errors.Wrap(err, "failed to update child")
			}
			row = existing
		} else {
			row, err = s.create(ctx, cardID, item)
			if err != nil {
				return nil, errors.Wrap(err, "failed to create child")
			}
		}

		if s.file != nil {
			if upload := s.file(item); upload != nil {
				url, err := store.Store(ctx, upload, s.uploadDir)
				if err != nil {
					return nil, domainerrors.ErrStorageFailed.WithDetails(err.Error())
				}
				if err := s.attach(ctx, row, url); err != nil {
					return nil, errors.Wrap(err, "failed to attach upload reference")
				}
			}
		}

		surviving = append(surviving, s.id(row))
	}

	// Omission from the incoming snapshot means deletion.
	if err := s.deleteNotIn(ctx, cardID, surviving); err != nil {
		return nil, errors.Wrap(err, "failed to delete unmatched children")
	}

	return surviving, nil
}
