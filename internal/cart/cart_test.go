package cart

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cozythreads/storefront/internal/catalog"
	"github.com/cozythreads/storefront/internal/models"
)

func testCatalog() *catalog.Repo {
	return catalog.FromProducts([]models.Product{
		{ID: 1, Name: "Organic Cotton Tee", Price: 20.00},
		{ID: 2, Name: "Recycled Wool Sweater", Price: 68.00},
		{ID: 3, Name: "Hemp Canvas Tote", Price: 32.00},
	})
}

func TestJoinDropsDanglingIDs(t *testing.T) {
	entries := []models.CartEntry{
		{ProductID: 1, Quantity: 2},
		{ProductID: 99, Quantity: 1},
		{ProductID: 3, Quantity: 1},
	}

	items := Join(entries, testCatalog())
	require.Len(t, items, 2)
	require.Equal(t, "Organic Cotton Tee", items[0].Name)
	require.Equal(t, 2, items[0].Quantity)
	require.Equal(t, "Hemp Canvas Tote", items[1].Name)
}

func TestJoinPreservesOrder(t *testing.T) {
	entries := []models.CartEntry{
		{ProductID: 3, Quantity: 1},
		{ProductID: 1, Quantity: 1},
		{ProductID: 2, Quantity: 1},
	}

	items := Join(entries, testCatalog())
	require.Len(t, items, 3)
	require.Equal(t, 3, items[0].ID)
	require.Equal(t, 1, items[1].ID)
	require.Equal(t, 2, items[2].ID)
}

func TestTotal(t *testing.T) {
	entries := []models.CartEntry{{ProductID: 1, Quantity: 2}}
	items := Join(entries, testCatalog())
	require.Equal(t, 40.00, Total(items))

	require.Equal(t, 0.0, Total(nil))
	require.Equal(t, 0.0, Total(Join(nil, testCatalog())))
}

func TestItemCount(t *testing.T) {
	require.Equal(t, 0, ItemCount(nil))
	require.Equal(t, 5, ItemCount([]models.CartEntry{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 3},
	}))
}

func TestSetQuantity(t *testing.T) {
	entries := []models.CartEntry{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
	}

	updated := SetQuantity(entries, 1, 5)
	require.Equal(t, 5, updated[0].Quantity)
	require.Equal(t, 2, entries[0].Quantity, "input must not be mutated")

	// Unknown id is a no-op.
	require.Equal(t, entries, SetQuantity(entries, 42, 3))
}

func TestSetQuantityZeroRemoves(t *testing.T) {
	entries := []models.CartEntry{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
	}

	require.Equal(t, Remove(entries, 1), SetQuantity(entries, 1, 0))
	require.Equal(t, Remove(entries, 1), SetQuantity(entries, 1, -3))
}

func TestRemoveIdempotent(t *testing.T) {
	entries := []models.CartEntry{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
	}

	once := Remove(entries, 1)
	twice := Remove(once, 1)
	require.Equal(t, once, twice)
	require.Len(t, once, 1)
	require.Equal(t, 2, once[0].ProductID)
}

func TestToggleRemovesWholeEntry(t *testing.T) {
	entries := []models.CartEntry{{ProductID: 1, Quantity: 3}}

	toggled := Toggle(entries, 1)
	require.Empty(t, toggled)

	// Toggling again re-adds at quantity 1, not 3.
	again := Toggle(toggled, 1)
	require.Len(t, again, 1)
	require.Equal(t, 1, again[0].Quantity)
}

func TestToggleAppendsAtEnd(t *testing.T) {
	entries := []models.CartEntry{{ProductID: 2, Quantity: 1}}

	toggled := Toggle(entries, 3)
	require.Len(t, toggled, 2)
	require.Equal(t, 3, toggled[1].ProductID)
}

func TestClear(t *testing.T) {
	entries := []models.CartEntry{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
	}
	require.Empty(t, Clear(entries))
	require.Equal(t, 0, ItemCount(Clear(entries)))
}
