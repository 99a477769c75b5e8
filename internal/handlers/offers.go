package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ESPSA/El-Wataneya/internal/models"
	"github.com/ESPSA/El-Wataneya/internal/services"
)

type OfferHandler struct {
	offers *services.OfferService
}

func NewOfferHandler(offers *services.OfferService) *OfferHandler {
	return &OfferHandler{offers: offers}
}

// ListPublic returns currently active offers.
// @Summary List active offers
// @Tags offers
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/offers [get]
func (h *OfferHandler) ListPublic(c echo.Context) error {
	offers, err := h.offers.ActiveOffers(c.Request().Context(), time.Now())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"data": offers, "total": len(offers)})
}

// ListAdmin returns every offer regardless of status.
// @Summary List all offers
// @Tags admin
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/admin/offers [get]
func (h *OfferHandler) ListAdmin(c echo.Context) error {
	page, limit := pagination(c)
	offers, total, err := h.offers.List(c.Request().Context(), page, limit, nil, []string{"start_date"}, "desc")
	if err != nil {
		return serviceError(c, err)
	}
	return listResponse(c, offers, total, page, limit)
}

// Create adds an offer. The stored status is derived from the date range.
// @Summary Create an offer
// @Tags admin
// @Accept json
// @Produce json
// @Param request body models.Offer true "Offer"
// @Success 201 {object} models.Offer
// @Failure 400 {object} map[string]string "Validation error or inverted date range"
// @Router /api/admin/offers [post]
func (h *OfferHandler) Create(c echo.Context) error {
	var offer models.Offer
	if err := c.Bind(&offer); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := c.Validate(offer); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if offer.EndDate.Before(offer.StartDate) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "endDate must not precede startDate"})
	}

	if err := h.offers.Create(c.Request().Context(), &offer); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, offer)
}

// Update edits an offer and recomputes its status from the new dates.
// @Summary Update an offer
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Offer ID"
// @Param request body models.Offer true "Offer"
// @Success 200 {object} models.Offer
// @Router /api/admin/offers/{id} [put]
func (h *OfferHandler) Update(c echo.Context) error {
	id := c.Param("id")

	if _, err := h.offers.Get(c.Request().Context(), id); err != nil {
		return serviceError(c, err)
	}

	var changes models.Offer
	if err := c.Bind(&changes); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := c.Validate(changes); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if changes.EndDate.Before(changes.StartDate) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "endDate must not precede startDate"})
	}

	changes.Status = changes.EffectiveStatus(time.Now())
	if err := h.offers.BaseService.Update(c.Request().Context(), id, &changes); err != nil {
		return serviceError(c, err)
	}

	updated, err := h.offers.Get(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete removes an offer; affected products revert to full price.
// @Summary Delete an offer
// @Tags admin
// @Produce json
// @Param id path string true "Offer ID"
// @Success 200 {object} map[string]bool
// @Router /api/admin/offers/{id} [delete]
func (h *OfferHandler) Delete(c echo.Context) error {
	if _, err := h.offers.Get(c.Request().Context(), c.Param("id")); err != nil {
		return serviceError(c, err)
	}
	if err := h.offers.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
