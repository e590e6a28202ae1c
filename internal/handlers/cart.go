package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/cozythreads/storefront/internal/cart"
	"github.com/cozythreads/storefront/internal/cartstore"
	"github.com/cozythreads/storefront/internal/models"
	"github.com/cozythreads/storefront/internal/mykafka"
)

type CartHandler struct {
	Store         cartstore.Store
	Catalog       cart.Lookup
	Producer      *mykafka.Producer
	SessionSecret []byte
}

// CartView is the cart as the storefront renders it: raw entries plus
// catalog-joined line items and totals.
type CartView struct {
	Entries   []models.CartEntry    `json:"entries"`
	Items     []models.CartLineItem `json:"items"`
	Total     float64               `json:"total"`
	ItemCount int                   `json:"itemCount"`
}

func (h *CartHandler) view(entries []models.CartEntry) CartView {
	items := cart.Join(entries, h.Catalog)
	return CartView{
		Entries:   entries,
		Items:     items,
		Total:     cart.Total(items),
		ItemCount: cart.ItemCount(entries),
	}
}

func (h *CartHandler) GetCart(c echo.Context) error {
	key, err := SessionKey(c, h.SessionSecret)
	if err != nil {
		return err
	}

	sess := cartstore.NewSession(h.Store, key)
	entries, err := sess.Load(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, h.view(entries))
}

// SetQuantity replaces the quantity of one cart entry. Quantity below 1
// removes the entry; an unknown product id is a no-op.
func (h *CartHandler) SetQuantity(c echo.Context) error {
	key, err := SessionKey(c, h.SessionSecret)
	if err != nil {
		return err
	}

	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil || productID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return h.mutate(c, key, func(entries []models.CartEntry) []models.CartEntry {
		return cart.SetQuantity(entries, productID, req.Quantity)
	}, map[string]any{
		"type":       "cart_quantity_set",
		"session":    key,
		"product_id": productID,
		"quantity":   req.Quantity,
	})
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	key, err := SessionKey(c, h.SessionSecret)
	if err != nil {
		return err
	}

	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil || productID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	return h.mutate(c, key, func(entries []models.CartEntry) []models.CartEntry {
		return cart.Remove(entries, productID)
	}, map[string]any{
		"type":       "cart_item_removed",
		"session":    key,
		"product_id": productID,
	})
}

// Toggle removes the product entirely when present (whatever its quantity)
// and adds it with quantity 1 when absent.
func (h *CartHandler) Toggle(c echo.Context) error {
	key, err := SessionKey(c, h.SessionSecret)
	if err != nil {
		return err
	}

	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil || productID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	return h.mutate(c, key, func(entries []models.CartEntry) []models.CartEntry {
		return cart.Toggle(entries, productID)
	}, map[string]any{
		"type":       "cart_item_toggled",
		"session":    key,
		"product_id": productID,
	})
}

func (h *CartHandler) ClearCart(c echo.Context) error {
	key, err := SessionKey(c, h.SessionSecret)
	if err != nil {
		return err
	}

	return h.mutate(c, key, cart.Clear, map[string]any{
		"type":    "cart_cleared",
		"session": key,
	})
}

// mutate loads the session's cart, applies fn, saves, and responds with the
// updated view. The session wrapper enforces load-before-save ordering.
func (h *CartHandler) mutate(c echo.Context, key string, fn func([]models.CartEntry) []models.CartEntry, event map[string]any) error {
	ctx := c.Request().Context()
	sess := cartstore.NewSession(h.Store, key)

	entries, err := sess.Load(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	entries = fn(entries)
	if err := sess.Save(ctx, entries); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	publish(c, h.Producer, "cart_events", key, event)
	return c.JSON(http.StatusOK, h.view(entries))
}
