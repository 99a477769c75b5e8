package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ESPSA/El-Wataneya/internal/api/middleware"
	"github.com/ESPSA/El-Wataneya/internal/models"
	"github.com/ESPSA/El-Wataneya/internal/services"
)

type ArticleHandler struct {
	articles *services.ArticleService
}

func NewArticleHandler(articles *services.ArticleService) *ArticleHandler {
	return &ArticleHandler{articles: articles}
}

// ListPublic returns published articles.
// @Summary List articles
// @Tags articles
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/articles [get]
func (h *ArticleHandler) ListPublic(c echo.Context) error {
	page, limit := pagination(c)
	articles, total, err := h.articles.PublicList(c.Request().Context(), page, limit)
	if err != nil {
		return serviceError(c, err)
	}
	return listResponse(c, articles, total, page, limit)
}

// GetPublic returns one published article.
// @Summary Get an article
// @Tags articles
// @Produce json
// @Param id path string true "Article ID"
// @Success 200 {object} models.Article
// @Failure 404 {object} map[string]string
// @Router /api/articles/{id} [get]
func (h *ArticleHandler) GetPublic(c echo.Context) error {
	article, err := h.articles.PublicGet(c.Request().Context(), c.Param("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, article)
}

// ListAdmin returns every article, drafts included.
// @Summary List all articles
// @Tags admin
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/admin/articles [get]
func (h *ArticleHandler) ListAdmin(c echo.Context) error {
	page, limit := pagination(c)
	articles, total, err := h.articles.AdminList(c.Request().Context(), page, limit)
	if err != nil {
		return serviceError(c, err)
	}
	return listResponse(c, articles, total, page, limit)
}

// Create authors a new article attributed to the caller.
// @Summary Create an article
// @Tags admin
// @Accept json
// @Produce json
// @Param request body models.Article true "Article"
// @Success 201 {object} models.Article
// @Router /api/admin/articles [post]
func (h *ArticleHandler) Create(c echo.Context) error {
	var article models.Article
	if err := c.Bind(&article); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	author := middleware.GetUser(c)
	article.AuthorID = author.ID
	if err := c.Validate(article); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := h.articles.Author(c.Request().Context(), author, &article); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, article)
}

// Update edits an article, including moving it between draft and published.
// @Summary Update an article
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Article ID"
// @Param request body models.Article true "Article"
// @Success 200 {object} models.Article
// @Router /api/admin/articles/{id} [put]
func (h *ArticleHandler) Update(c echo.Context) error {
	id := c.Param("id")

	existing, err := h.articles.Get(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err)
	}

	var changes models.Article
	if err := c.Bind(&changes); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	// Authorship never changes on edit.
	changes.AuthorID = existing.AuthorID
	changes.AuthorName = existing.AuthorName

	if err := h.articles.BaseService.Update(c.Request().Context(), id, &changes); err != nil {
		return serviceError(c, err)
	}

	updated, err := h.articles.Get(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete removes an article.
// @Summary Delete an article
// @Tags admin
// @Produce json
// @Param id path string true "Article ID"
// @Success 200 {object} map[string]bool
// @Router /api/admin/articles/{id} [delete]
func (h *ArticleHandler) Delete(c echo.Context) error {
	if _, err := h.articles.Get(c.Request().Context(), c.Param("id")); err != nil {
		return serviceError(c, err)
	}
	if err := h.articles.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
