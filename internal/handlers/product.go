package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/cozythreads/storefront/internal/catalog"
	"github.com/cozythreads/storefront/internal/util"
)

type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type ProductHandler struct {
	Catalog *catalog.Repo
}

func errorResponse(c echo.Context, code int, msg string) error {
	return c.JSON(code, Response{
		Status:  "error",
		Message: msg,
	})
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	idParam := c.Param("id")
	id, err := strconv.Atoi(idParam)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid product id")
	}

	product, ok := h.Catalog.ByID(id)
	if !ok {
		return errorResponse(c, http.StatusNotFound, "product not found")
	}

	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) GetProducts(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	if page < 1 {
		page = 1
	}

	offset, limit := util.Calculate(page, size)
	items, total := h.Catalog.List(page, size)
	return c.JSON(http.StatusOK, map[string]any{
		"data": items,
		"meta": map[string]any{
			"page":        page,
			"size":        limit,
			"total":       total,
			"total_pages": (total + limit - 1) / limit,
			"has_prev":    page > 1,
			"has_next":    offset+limit < total,
		},
	})
}
