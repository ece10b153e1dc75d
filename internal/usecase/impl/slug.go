package impl

import (
	"context"
	"strconv"
	"strings"
	"unicode"

	"tapcard/internal/domain/repository"

	"github.com/pkg/errors"
)

// slugify normalizes a display name to a URL-safe base token: lowercase, with
// every run of non-alphanumeric characters collapsed to a single hyphen and
// leading/trailing hyphens trimmed.
func slugify(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	lastHyphen := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false

			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	return strings.Trim(b.String(), "-")
}

// allocateSlug derives a unique slug from the display name by probing
// base, base-1, base-2, ... against the current card set. It is a pure read
// over persisted state; the caller performs the insert, and the storage-level
// unique constraint backstops the probe's check-then-act window.
func allocateSlug(ctx context.Context, cards repository.CardRepository, displayName string) (string, error) {
	base := slugify(displayName)
	if base == "" {
		// Display names made entirely of symbols still need a public address.
		base = "card"
	}

	slug := base
	for n := 1; ; n++ {
		exists, err := cards.SlugExists(ctx, slug)
		if err != nil {
			return "", errors.Wrap(err, "failed to probe slug")
		}
		if !exists {
			return slug, nil
		}
		slug = base + "-" + strconv.Itoa(n)
	}
}
