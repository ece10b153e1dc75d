package impl

import (
	"context"
	"testing"

	"tapcard/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple name", "Acme", "acme"},
		{"spaces collapse to hyphens", "Acme Corp", "acme-corp"},
		{"symbol runs collapse once", "Acme  &  Sons!!", "acme-sons"},
		{"leading and trailing symbols trimmed", "--Acme--", "acme"},
		{"digits preserved", "24/7 Store", "24-7-store"},
		{"mixed case lowered", "TapCard PRO", "tapcard-pro"},
		{"symbols only", "!!!", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slugify(tt.in))
		})
	}
}

func TestAllocateSlug_ProbesSuffixSequence(t *testing.T) {
	store := newFakeStore()
	cards := store.NewCardRepository()
	ctx := context.Background()

	slug, err := allocateSlug(ctx, cards, "Acme Corp")
	require.NoError(t, err)
	assert.Equal(t, "acme-corp", slug)

	// Occupy the base and probe again.
	require.NoError(t, cards.CreateCard(ctx, &entity.Card{ID: uuid.New(), OwnerID: uuid.New(), Slug: "acme-corp"}))

	slug, err = allocateSlug(ctx, cards, "Acme Corp")
	require.NoError(t, err)
	assert.Equal(t, "acme-corp-1", slug)

	require.NoError(t, cards.CreateCard(ctx, &entity.Card{ID: uuid.New(), OwnerID: uuid.New(), Slug: "acme-corp-1"}))

	slug, err = allocateSlug(ctx, cards, "Acme Corp")
	require.NoError(t, err)
	assert.Equal(t, "acme-corp-2", slug)
}

func TestAllocateSlug_SymbolOnlyNameFallsBack(t *testing.T) {
	store := newFakeStore()

	slug, err := allocateSlug(context.Background(), store.NewCardRepository(), "!!!")
	require.NoError(t, err)
	assert.Equal(t, "card", slug)
}
