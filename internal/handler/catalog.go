package handler

import (
	"net/http"
	"strconv"

	"floral-commerce/internal/dto"
	"floral-commerce/internal/service"

	"github.com/labstack/echo/v4"
)

type CatalogHandler struct {
	products      *service.ProductService
	prices        *service.PriceService
	catalogImport *service.CatalogImportService
}

func NewCatalogHandler(products *service.ProductService, prices *service.PriceService, catalogImport *service.CatalogImportService) *CatalogHandler {
	return &CatalogHandler{
		products:      products,
		prices:        prices,
		catalogImport: catalogImport,
	}
}

// ListActive is the storefront product listing.
func (h *CatalogHandler) ListActive(c echo.Context) error {
	products, err := h.products.ListActive(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, products)
}

// Import pulls the provider catalog into local products and prices.
func (h *CatalogHandler) Import(c echo.Context) error {
	var req dto.ImportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
		}
		req.Limit = limit
	}
	if raw := c.QueryParam("force"); raw != "" {
		force, err := strconv.ParseBool(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid force")
		}
		req.Force = force
	}

	result, err := h.catalogImport.Import(c.Request().Context(), req.Limit, req.Force)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

// SetCurrentPrice makes one price the product's storefront default.
func (h *CatalogHandler) SetCurrentPrice(c echo.Context) error {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	priceID, err := strconv.ParseUint(c.Param("priceID"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid price id")
	}

	price, err := h.prices.SetCurrent(c.Request().Context(), uint(productID), uint(priceID))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, price)
}
