package repository

import (
	"time"

	"blogapi/internal/model"

	"gorm.io/gorm"
)

// CommentTreeRepository is the closure-table engine. It stores one row per
// (ancestor, descendant) pair plus a self-edge per comment, which makes a
// whole article tree retrievable in one join and a subtree's ancestry
// extendable in one set-based insert.
//
// Mutating methods take the caller's transaction handle: a comment row and
// its branch must commit or roll back together, and a partial branch would
// corrupt the ancestor chains of every future descendant.
type CommentTreeRepository interface {
	CreateBranch(tx *gorm.DB, parentID *string, newCommentID, articleID string, parentLevel int) error
	FindSelfEdge(commentID string) (*model.CommentTreeEdge, error)
	FindTreeByArticle(articleID string) ([]CommentTreeRow, error)
	DeleteArticleBranches(tx *gorm.DB, articleID string) error
}

// CommentTreeRow is one comment joined with its self-edge: everything
// needed to rebuild the tree without further queries.
type CommentTreeRow struct {
	ID                string     `json:"id"`
	AuthorID          string     `json:"author_id"`
	AuthorUsername    string     `json:"author_username"`
	Content           string     `json:"content"`
	State             string     `json:"state"`
	NearestAncestorID *string    `json:"nearest_ancestor_id"`
	Level             int        `json:"level"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         *time.Time `json:"updated_at"`
}

type commentTreeRepository struct {
	db *gorm.DB
}

func NewCommentTreeRepository(db *gorm.DB) CommentTreeRepository {
	return &commentTreeRepository{db: db}
}

// createBranchSQL extends every ancestor edge of the parent to the new
// descendant and adds the new comment's self-edge, as one statement. With a
// null parent the SELECT matches nothing and only the self-edge remains.
const createBranchSQL = `
INSERT INTO comment_tree (ancestor_id, descendant_id, nearest_ancestor_id, article_id, level)
SELECT ancestor_id, @new_comment_id, @parent_id, @article_id, @level
FROM comment_tree
WHERE descendant_id = @parent_id
UNION ALL
SELECT @new_comment_id, @new_comment_id, @parent_id, @article_id, @level`

func (r *commentTreeRepository) CreateBranch(tx *gorm.DB, parentID *string, newCommentID, articleID string, parentLevel int) error {
	return tx.Exec(createBranchSQL, map[string]interface{}{
		"new_comment_id": newCommentID,
		"parent_id":      parentID,
		"article_id":     articleID,
		"level":          parentLevel + 1,
	}).Error
}

// FindSelfEdge returns the anchor row of a comment: its level, article and
// nearest parent, without touching the comment row itself.
func (r *commentTreeRepository) FindSelfEdge(commentID string) (*model.CommentTreeEdge, error) {
	var edge model.CommentTreeEdge
	err := r.db.Where("ancestor_id = ? AND descendant_id = ?", commentID, commentID).
		First(&edge).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &edge, nil
}

// findTreeSQL joins comments to their self-edges only. Ordering by creation
// time (id as tie-breaker) preserves display order; uuid ids alone are not
// monotonic.
const findTreeSQL = `
SELECT c.id,
       c.author_id,
       u.username AS author_username,
       c.content,
       c.state,
       t.nearest_ancestor_id,
       t.level,
       c.created_at,
       c.updated_at
FROM comments AS c
JOIN comment_tree AS t ON t.descendant_id = c.id
JOIN users AS u ON u.id = c.author_id
WHERE t.article_id = ?
  AND t.ancestor_id = c.id
ORDER BY c.created_at ASC, c.id ASC`

func (r *commentTreeRepository) FindTreeByArticle(articleID string) ([]CommentTreeRow, error) {
	var rows []CommentTreeRow
	if err := r.db.Raw(findTreeSQL, articleID).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// DeleteArticleBranches hard-deletes an article's comments and edges.
// Like edges and comments go first: the "which comments belong to this
// article" lookup needs the self-edges still present.
func (r *commentTreeRepository) DeleteArticleBranches(tx *gorm.DB, articleID string) error {
	err := tx.Exec(`
		DELETE FROM likes
		WHERE target_type = 'comment' AND target_id IN (
			SELECT descendant_id FROM comment_tree
			WHERE ancestor_id = descendant_id AND article_id = ?
		)`, articleID).Error
	if err != nil {
		return err
	}

	err = tx.Exec(`
		DELETE FROM comments
		WHERE id IN (
			SELECT descendant_id FROM comment_tree
			WHERE ancestor_id = descendant_id AND article_id = ?
		)`, articleID).Error
	if err != nil {
		return err
	}

	return tx.Exec(`DELETE FROM comment_tree WHERE article_id = ?`, articleID).Error
}
