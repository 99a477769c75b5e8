package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/ESPSA/El-Wataneya/internal/models"
)

// ArticleService owns editorial content. Articles live in a draft/published
// cycle rather than the moderation queue: admins author them directly.
type ArticleService struct {
	BaseService[models.Article]
	db *gorm.DB
}

func NewArticleService(db *gorm.DB) *ArticleService {
	return &ArticleService{
		BaseService: NewBaseService(db, models.Article{}),
		db:          db,
	}
}

// PublicList returns published articles, newest first.
func (s *ArticleService) PublicList(ctx context.Context, page, limit int) ([]models.Article, int64, error) {
	filters := map[string]interface{}{"status": models.ArticlePublished}
	return s.List(ctx, page, limit, filters, []string{"created_at"}, "desc")
}

// PublicGet returns a single article only if it is published.
func (s *ArticleService) PublicGet(ctx context.Context, id string) (*models.Article, error) {
	article, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if article.Status != models.ArticlePublished {
		return nil, gorm.ErrRecordNotFound
	}
	return article, nil
}

// AdminList returns every article, drafts included.
func (s *ArticleService) AdminList(ctx context.Context, page, limit int) ([]models.Article, int64, error) {
	return s.List(ctx, page, limit, nil, []string{"created_at"}, "desc")
}

// Author creates an article attributed to the given admin.
func (s *ArticleService) Author(ctx context.Context, author *models.User, article *models.Article) error {
	article.AuthorID = author.ID
	article.AuthorName = author.Name
	if article.Status == "" {
		article.Status = models.ArticleDraft
	}
	return s.Create(ctx, article)
}
