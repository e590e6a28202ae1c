package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cozythreads/storefront/internal/models"
)

func TestGetCartEmpty(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodGet, "/api/v1/cart", nil)
	require.NoError(t, env.Cart.GetCart(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var view CartView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.Empty(t, view.Entries)
	require.Equal(t, 0, view.ItemCount)
	require.Equal(t, 0.0, view.Total)
}

func TestGetCartJoinsCatalog(t *testing.T) {
	env := newTestEnv(t)
	env.seedCart([]models.CartEntry{
		{ProductID: 1, Quantity: 2},
		{ProductID: 99, Quantity: 1}, // dangling, dropped from items
	})

	rec, c := env.doJSONRequest(http.MethodGet, "/api/v1/cart", nil)
	require.NoError(t, env.Cart.GetCart(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var view CartView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.Len(t, view.Entries, 2)
	require.Len(t, view.Items, 1)
	require.Equal(t, "Organic Cotton Tee", view.Items[0].Name)
	require.Equal(t, 40.00, view.Total)
	require.Equal(t, 3, view.ItemCount)
}

func TestSetQuantity(t *testing.T) {
	env := newTestEnv(t)
	env.seedCart([]models.CartEntry{{ProductID: 1, Quantity: 2}})

	rec, c := env.doJSONRequest(http.MethodPut, "/api/v1/cart/items/1", map[string]int{"quantity": 5})
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, env.Cart.SetQuantity(c))
	require.Equal(t, http.StatusOK, rec.Code)

	require.Equal(t, []models.CartEntry{{ProductID: 1, Quantity: 5}}, env.storedCart())
}

func TestSetQuantityZeroRemoves(t *testing.T) {
	env := newTestEnv(t)
	env.seedCart([]models.CartEntry{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
	})

	rec, c := env.doJSONRequest(http.MethodPut, "/api/v1/cart/items/1", map[string]int{"quantity": 0})
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, env.Cart.SetQuantity(c))
	require.Equal(t, http.StatusOK, rec.Code)

	require.Equal(t, []models.CartEntry{{ProductID: 2, Quantity: 1}}, env.storedCart())
}

func TestRemoveItem(t *testing.T) {
	env := newTestEnv(t)
	env.seedCart([]models.CartEntry{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
	})

	rec, c := env.doJSONRequest(http.MethodDelete, "/api/v1/cart/items/2", nil)
	c.SetParamNames("id")
	c.SetParamValues("2")
	require.NoError(t, env.Cart.RemoveItem(c))
	require.Equal(t, http.StatusOK, rec.Code)

	require.Equal(t, []models.CartEntry{{ProductID: 1, Quantity: 2}}, env.storedCart())
}

func TestToggleRemovesRegardlessOfQuantity(t *testing.T) {
	env := newTestEnv(t)
	env.seedCart([]models.CartEntry{{ProductID: 1, Quantity: 3}})

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/cart/toggle/1", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, env.Cart.Toggle(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, env.storedCart())

	// Toggling again re-adds with quantity 1.
	rec, c = env.doJSONRequest(http.MethodPost, "/api/v1/cart/toggle/1", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, env.Cart.Toggle(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []models.CartEntry{{ProductID: 1, Quantity: 1}}, env.storedCart())
}

func TestClearCart(t *testing.T) {
	env := newTestEnv(t)
	env.seedCart([]models.CartEntry{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
	})

	rec, c := env.doJSONRequest(http.MethodDelete, "/api/v1/cart", nil)
	require.NoError(t, env.Cart.ClearCart(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var view CartView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.Equal(t, 0, view.ItemCount)
	require.Empty(t, env.storedCart())
}

func TestCartMintsSessionCookie(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	require.NoError(t, env.Cart.GetCart(c))
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	require.Equal(t, "cartSession", cookies[0].Name)
	require.NotEmpty(t, cookies[0].Value)
}
