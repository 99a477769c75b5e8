package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ESPSA/El-Wataneya/internal/models"
	"github.com/ESPSA/El-Wataneya/internal/services"
	"github.com/ESPSA/El-Wataneya/internal/utils/logger"
)

type ProductHandler struct {
	products *services.ProductService
	log      *logger.Logger
}

func NewProductHandler(products *services.ProductService) *ProductHandler {
	return &ProductHandler{products: products, log: logger.New("ProductHandler")}
}

type StatusRequest struct {
	Status string `json:"status" validate:"required,content_status"`
}

// ListPublic returns the approved catalog with discounts applied.
// @Summary List products
// @Tags products
// @Produce json
// @Param category query string false "Category key filter"
// @Success 200 {object} map[string]interface{}
// @Router /api/products [get]
func (h *ProductHandler) ListPublic(c echo.Context) error {
	page, limit := pagination(c)
	products, total, err := h.products.PublicList(c.Request().Context(), c.QueryParam("category"), page, limit)
	if err != nil {
		return serviceError(c, err)
	}
	return listResponse(c, products, total, page, limit)
}

// GetPublic returns one approved product.
// @Summary Get a product
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.Product
// @Failure 404 {object} map[string]string
// @Router /api/products/{id} [get]
func (h *ProductHandler) GetPublic(c echo.Context) error {
	product, err := h.products.PublicGet(c.Request().Context(), c.Param("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

// ListAdmin returns the full catalog, pending first.
// @Summary List products for moderation
// @Tags admin
// @Produce json
// @Param status query string false "Status filter"
// @Success 200 {object} map[string]interface{}
// @Router /api/admin/products [get]
func (h *ProductHandler) ListAdmin(c echo.Context) error {
	page, limit := pagination(c)
	products, total, err := h.products.AdminList(c.Request().Context(), c.QueryParam("status"), page, limit)
	if err != nil {
		return serviceError(c, err)
	}
	return listResponse(c, products, total, page, limit)
}

// GetAdmin returns any product, regardless of status.
// @Summary Get a product for moderation
// @Tags admin
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.Product
// @Failure 404 {object} map[string]string
// @Router /api/admin/products/{id} [get]
func (h *ProductHandler) GetAdmin(c echo.Context) error {
	product, err := h.products.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

// Create adds a product to the catalog. New products always start pending.
// @Summary Create a product
// @Tags admin
// @Accept json
// @Produce json
// @Param request body models.Product true "Product"
// @Success 201 {object} models.Product
// @Router /api/admin/products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var product models.Product
	if err := c.Bind(&product); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := c.Validate(product); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	product.Status = models.StatusPending
	if err := h.products.Create(c.Request().Context(), &product); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, product)
}

// Update edits a product. The moderation status is preserved: approved
// catalog entries stay live across corrections.
// @Summary Update a product
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param request body models.Product true "Product"
// @Success 200 {object} models.Product
// @Router /api/admin/products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	id := c.Param("id")

	existing, err := h.products.Get(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err)
	}

	var changes models.Product
	if err := c.Bind(&changes); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := c.Validate(changes); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	changes.Status = existing.Status
	if err := h.products.BaseService.Update(c.Request().Context(), id, &changes); err != nil {
		return serviceError(c, err)
	}

	updated, err := h.products.Get(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// SetStatus applies a moderation decision to a product.
// @Summary Moderate a product
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param request body StatusRequest true "Decision"
// @Success 200 {object} models.Product
// @Failure 400 {object} map[string]string "Invalid or unchanged status"
// @Router /api/admin/products/{id}/status [patch]
func (h *ProductHandler) SetStatus(c echo.Context) error {
	var req StatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	product, err := h.products.SetStatus(c.Request().Context(), c.Param("id"), models.ContentStatus(req.Status))
	if err != nil {
		return serviceError(c, err)
	}

	h.log.Info("Product %s moderated: %s", product.ID, product.Status)
	return c.JSON(http.StatusOK, product)
}

// Delete soft-deletes a product.
// @Summary Delete a product
// @Tags admin
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} map[string]bool
// @Router /api/admin/products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	if _, err := h.products.Get(c.Request().Context(), c.Param("id")); err != nil {
		return serviceError(c, err)
	}
	if err := h.products.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
