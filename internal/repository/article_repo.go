package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"blogapi/internal/model"
	"blogapi/internal/util"

	"gorm.io/gorm"
)

type ArticleRepository interface {
	Create(article *model.Article) error
	FindByID(id string) (*model.Article, error)
	FindAll(params ArticleQuery) ([]*model.Article, int64, error)
	Save(article *model.Article) error
	ReplaceTags(article *model.Article, titles []string) error
	IncrementViews(id string) error
	Delete(id string) error
}

// ArticleQuery filters the article list
type ArticleQuery struct {
	Limit    int
	Offset   int
	OrderBy  string // title, created_at, updated_at
	State    string
	AuthorID string
	Search   string
}

type articleRepository struct {
	db    *gorm.DB
	redis *util.RedisClient
}

const (
	articleCachePrefix     = "article:"
	articleCacheExpiration = 15 * time.Minute
)

func NewArticleRepository(db *gorm.DB, redis *util.RedisClient) ArticleRepository {
	return &articleRepository{
		db:    db,
		redis: redis,
	}
}

// Create creates a new article
func (r *articleRepository) Create(article *model.Article) error {
	return r.db.Create(article).Error
}

// FindByID finds an article by ID
func (r *articleRepository) FindByID(id string) (*model.Article, error) {
	// Try cache first
	if r.redis != nil {
		if cached, err := r.redis.Get(articleCachePrefix + id); err == nil {
			var article model.Article
			if json.Unmarshal([]byte(cached), &article) == nil {
				return &article, nil
			}
		}
	}

	var article model.Article
	err := r.db.Preload("Author").Preload("Tags").
		Where("id = ?", id).First(&article).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	// Cache the result
	if r.redis != nil {
		if articleJSON, err := json.Marshal(&article); err == nil {
			r.redis.Set(articleCachePrefix+id, string(articleJSON), articleCacheExpiration)
		}
	}

	return &article, nil
}

// FindAll finds articles matching the query with the total count
func (r *articleRepository) FindAll(params ArticleQuery) ([]*model.Article, int64, error) {
	query := r.db.Model(&model.Article{})

	if params.State != "" {
		query = query.Where("state = ?", params.State)
	}
	if params.AuthorID != "" {
		query = query.Where("author_id = ?", params.AuthorID)
	}
	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		query = query.Where("title ILIKE ? OR content ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderBy := params.OrderBy
	switch orderBy {
	case "title", "updated_at", "created_at":
	default:
		orderBy = "created_at"
	}

	var articles []*model.Article
	err := query.Preload("Author").Preload("Tags").
		Order(orderBy + " DESC").
		Limit(params.Limit).Offset(params.Offset).
		Find(&articles).Error
	if err != nil {
		return nil, 0, err
	}

	return articles, total, nil
}

// Save persists article changes and invalidates cache
func (r *articleRepository) Save(article *model.Article) error {
	if err := r.db.Save(article).Error; err != nil {
		return err
	}

	r.invalidateCache(article.ID)
	return nil
}

// ReplaceTags reconciles the article's tag set, creating missing tags
func (r *articleRepository) ReplaceTags(article *model.Article, titles []string) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		tags := make([]model.Tag, 0, len(titles))
		for _, title := range titles {
			var tag model.Tag
			if err := tx.Where("title = ?", title).FirstOrCreate(&tag, model.Tag{Title: title}).Error; err != nil {
				return err
			}
			tags = append(tags, tag)
		}
		return tx.Model(article).Association("Tags").Replace(tags)
	})
	if err != nil {
		return err
	}

	r.invalidateCache(article.ID)
	return nil
}

// IncrementViews bumps the view counter in place. A single UPDATE keeps
// concurrent readers from losing increments to read-modify-write races.
func (r *articleRepository) IncrementViews(id string) error {
	err := r.db.Model(&model.Article{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
	if err != nil {
		return err
	}

	r.invalidateCache(id)
	return nil
}

// Delete hard-deletes an article row
func (r *articleRepository) Delete(id string) error {
	if err := r.db.Where("id = ?", id).Delete(&model.Article{}).Error; err != nil {
		return err
	}

	r.invalidateCache(id)
	return nil
}

func (r *articleRepository) invalidateCache(id string) {
	if r.redis == nil {
		return
	}
	r.redis.Delete(fmt.Sprintf("%s%s", articleCachePrefix, id))
}
