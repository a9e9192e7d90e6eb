package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"lcenhub/internal/auth"
	"lcenhub/internal/model"
	"lcenhub/internal/service"
)

// MarketHandler handles the member's marketplace listings.
type MarketHandler struct {
	marketService service.MarketService
}

// NewMarketHandler creates a new market handler.
func NewMarketHandler(marketService service.MarketService) *MarketHandler {
	return &MarketHandler{marketService: marketService}
}

// AddStockRequest represents a new marketplace listing.
type AddStockRequest struct {
	Type     string          `json:"type" validate:"required,oneof=fertile_eggs table_eggs culled_meat live_rir"`
	Quantity int             `json:"quantity" validate:"required,gt=0"`
	Price    decimal.Decimal `json:"price" validate:"required"`
}

// List godoc
// @Summary List the current member's stock listings, newest first
// @Tags market
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.MarketStock
// @Failure 401 {object} errors.ErrorResponse
// @Router /market/stocks [get]
func (h *MarketHandler) List(c echo.Context) error {
	sess, err := auth.SessionFromContext(c)
	if err != nil {
		return httpError(err)
	}
	stocks, err := h.marketService.List(c.Request().Context(), sess)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, stocks)
}

// Add godoc
// @Summary List stock on the marketplace
// @Tags market
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AddStockRequest true "Listing data"
// @Success 201 {object} model.MarketStock
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /market/stocks [post]
func (h *MarketHandler) Add(c echo.Context) error {
	var req AddStockRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sess, err := auth.SessionFromContext(c)
	if err != nil {
		return httpError(err)
	}

	stock, err := h.marketService.Add(c.Request().Context(), sess, service.AddStockInput{
		Type:     model.MarketStockType(req.Type),
		Quantity: req.Quantity,
		Price:    req.Price,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, stock)
}

// Delete godoc
// @Summary Remove a stock listing
// @Tags market
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Router /market/stocks/{id} [delete]
func (h *MarketHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	sess, err := auth.SessionFromContext(c)
	if err != nil {
		return httpError(err)
	}

	if err := h.marketService.Delete(c.Request().Context(), sess, id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
