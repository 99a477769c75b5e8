package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ESPSA/El-Wataneya/internal/models"
	"github.com/ESPSA/El-Wataneya/internal/services"
	"github.com/ESPSA/El-Wataneya/internal/utils/logger"
)

// HomeHandler serves the landing-page aggregate. Each section degrades
// independently: one failing query empties its section instead of failing
// the whole response.
type HomeHandler struct {
	products *services.ProductService
	projects *services.ProjectService
	articles *services.ArticleService
	offers   *services.OfferService
	log      *logger.Logger
}

func NewHomeHandler(products *services.ProductService, projects *services.ProjectService, articles *services.ArticleService, offers *services.OfferService) *HomeHandler {
	return &HomeHandler{
		products: products,
		projects: projects,
		articles: articles,
		offers:   offers,
		log:      logger.New("HomeHandler"),
	}
}

// Get returns featured products, projects, articles and active offers.
// @Summary Landing page aggregate
// @Tags home
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/home [get]
func (h *HomeHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	products, _, err := h.products.PublicList(ctx, "", 1, 8)
	if err != nil {
		h.log.Warn("home: products section failed: %v", err)
		products = []models.Product{}
	}

	projects, _, err := h.projects.PublicList(ctx, "", 1, 6)
	if err != nil {
		h.log.Warn("home: projects section failed: %v", err)
		projects = []models.Project{}
	}

	articles, _, err := h.articles.PublicList(ctx, 1, 3)
	if err != nil {
		h.log.Warn("home: articles section failed: %v", err)
		articles = []models.Article{}
	}

	offers, err := h.offers.ActiveOffers(ctx, time.Now())
	if err != nil {
		h.log.Warn("home: offers section failed: %v", err)
		offers = []models.Offer{}
	}

	// Empty sections serialize as [] rather than null.
	if products == nil {
		products = []models.Product{}
	}
	if projects == nil {
		projects = []models.Project{}
	}
	if articles == nil {
		articles = []models.Article{}
	}
	if offers == nil {
		offers = []models.Offer{}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"products": products,
		"projects": projects,
		"articles": articles,
		"offers":   offers,
	})
}
