package cartstore

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/cozythreads/storefront/internal/models"
)

// Store persists one cart blob per session key.
type Store interface {
	Load(ctx context.Context, key string) ([]models.CartEntry, error)
	Save(ctx context.Context, key string, entries []models.CartEntry) error
	Delete(ctx context.Context, key string) error
}

// ErrNotLoaded is returned by Session.Save when no Load has completed yet,
// so an empty initial state can never clobber a cart that was not read first.
var ErrNotLoaded = errors.New("cartstore: save before load")

// decodeEntries accepts the current format ([{"productId":N,"quantity":M}])
// and the legacy one (a bare list of product ids), upgrading the latter to
// quantity-1 entries.
func decodeEntries(raw []byte) ([]models.CartEntry, error) {
	if len(raw) == 0 {
		return []models.CartEntry{}, nil
	}

	var entries []models.CartEntry
	if err := json.Unmarshal(raw, &entries); err == nil {
		return normalize(entries), nil
	}

	var ids []int
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, err
	}
	entries = make([]models.CartEntry, 0, len(ids))
	for _, id := range ids {
		entries = append(entries, models.CartEntry{ProductID: id, Quantity: 1})
	}
	return normalize(entries), nil
}

func encodeEntries(entries []models.CartEntry) ([]byte, error) {
	if entries == nil {
		entries = []models.CartEntry{}
	}
	return json.Marshal(entries)
}

// normalize enforces set semantics over product id and drops quantities below 1.
// First occurrence wins to keep insertion order stable.
func normalize(entries []models.CartEntry) []models.CartEntry {
	seen := make(map[int]bool, len(entries))
	out := make([]models.CartEntry, 0, len(entries))
	for _, e := range entries {
		if e.Quantity < 1 || seen[e.ProductID] {
			continue
		}
		seen[e.ProductID] = true
		out = append(out, e)
	}
	return out
}
