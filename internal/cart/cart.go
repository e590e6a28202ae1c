package cart

import (
	"github.com/cozythreads/storefront/internal/models"
)

// Lookup resolves a product by id, reporting whether it exists.
// The catalog repository satisfies this; tests use a map-backed fake.
type Lookup interface {
	ByID(id int) (models.Product, bool)
}

// Join enriches entries with catalog data, preserving entry order.
// Entries whose product id is unknown are dropped.
func Join(entries []models.CartEntry, catalog Lookup) []models.CartLineItem {
	items := make([]models.CartLineItem, 0, len(entries))
	for _, e := range entries {
		p, ok := catalog.ByID(e.ProductID)
		if !ok {
			continue
		}
		items = append(items, models.CartLineItem{Product: p, Quantity: e.Quantity})
	}
	return items
}

func Total(items []models.CartLineItem) float64 {
	var sum float64
	for _, it := range items {
		sum += it.Price * float64(it.Quantity)
	}
	return sum
}

func ItemCount(entries []models.CartEntry) int {
	var n int
	for _, e := range entries {
		n += e.Quantity
	}
	return n
}

// SetQuantity replaces the quantity of the matching entry. A quantity below 1
// removes the entry; an absent product id is a no-op. The input is not mutated.
func SetQuantity(entries []models.CartEntry, productID, quantity int) []models.CartEntry {
	if quantity < 1 {
		return Remove(entries, productID)
	}
	out := make([]models.CartEntry, 0, len(entries))
	for _, e := range entries {
		if e.ProductID == productID {
			e.Quantity = quantity
		}
		out = append(out, e)
	}
	return out
}

func Remove(entries []models.CartEntry, productID int) []models.CartEntry {
	out := make([]models.CartEntry, 0, len(entries))
	for _, e := range entries {
		if e.ProductID == productID {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Toggle removes the entry entirely when present, whatever its quantity,
// and inserts it with quantity 1 when absent.
func Toggle(entries []models.CartEntry, productID int) []models.CartEntry {
	for _, e := range entries {
		if e.ProductID == productID {
			return Remove(entries, productID)
		}
	}
	out := make([]models.CartEntry, 0, len(entries)+1)
	out = append(out, entries...)
	return append(out, models.CartEntry{ProductID: productID, Quantity: 1})
}

func Clear(_ []models.CartEntry) []models.CartEntry {
	return []models.CartEntry{}
}
