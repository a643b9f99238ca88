package repository

import (
	"encoding/json"
	"time"

	"blogapi/internal/model"
	"blogapi/internal/util"

	"gorm.io/gorm"
)

type CommentRepository interface {
	// CreateWithBranch inserts the comment row and its closure-table branch
	// in one transaction. parentLevel is -1 for roots.
	CreateWithBranch(comment *model.Comment, parentID *string, articleID string, parentLevel int) error
	FindByID(id string) (*model.Comment, error)
	Save(comment *model.Comment) error
	FindTreeByArticle(articleID string) ([]CommentTreeRow, error)
	DeleteByArticleID(articleID string) error
}

type commentRepository struct {
	db    *gorm.DB
	redis *util.RedisClient
	tree  CommentTreeRepository
}

const (
	commentTreeCachePrefix = "comment:tree:"
	commentCacheExpiration = 15 * time.Minute
)

func NewCommentRepository(db *gorm.DB, redis *util.RedisClient, tree CommentTreeRepository) CommentRepository {
	return &commentRepository{
		db:    db,
		redis: redis,
		tree:  tree,
	}
}

// CreateWithBranch creates a comment and its branch atomically and
// invalidates the article's tree cache
func (r *commentRepository) CreateWithBranch(comment *model.Comment, parentID *string, articleID string, parentLevel int) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		return r.tree.CreateBranch(tx, parentID, comment.ID, articleID, parentLevel)
	})
	if err != nil {
		return err
	}

	r.invalidateTreeCache(articleID)
	return nil
}

// FindByID finds a comment by ID
func (r *commentRepository) FindByID(id string) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.Preload("Author").Where("id = ?", id).First(&comment).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// Save persists content/state changes and invalidates the tree cache of
// the owning article
func (r *commentRepository) Save(comment *model.Comment) error {
	if err := r.db.Save(comment).Error; err != nil {
		return err
	}

	if r.redis != nil {
		if edge, err := r.tree.FindSelfEdge(comment.ID); err == nil && edge != nil {
			r.invalidateTreeCache(edge.ArticleID)
		}
	}
	return nil
}

// FindTreeByArticle returns the article's flat edge-annotated comment list
func (r *commentRepository) FindTreeByArticle(articleID string) ([]CommentTreeRow, error) {
	// Try cache first
	cacheKey := commentTreeCachePrefix + articleID
	if r.redis != nil {
		if cached, err := r.redis.Get(cacheKey); err == nil {
			var rows []CommentTreeRow
			if json.Unmarshal([]byte(cached), &rows) == nil {
				return rows, nil
			}
		}
	}

	rows, err := r.tree.FindTreeByArticle(articleID)
	if err != nil {
		return nil, err
	}

	// Cache the result
	if r.redis != nil {
		if rowsJSON, err := json.Marshal(rows); err == nil {
			r.redis.Set(cacheKey, string(rowsJSON), commentCacheExpiration)
		}
	}

	return rows, nil
}

// DeleteByArticleID hard-deletes all comments and edges of an article in
// one transaction
func (r *commentRepository) DeleteByArticleID(articleID string) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		return r.tree.DeleteArticleBranches(tx, articleID)
	})
	if err != nil {
		return err
	}

	r.invalidateTreeCache(articleID)
	return nil
}

func (r *commentRepository) invalidateTreeCache(articleID string) {
	if r.redis == nil {
		return
	}
	r.redis.Delete(commentTreeCachePrefix + articleID)
}
