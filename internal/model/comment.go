package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment carries no parent column: parentage lives entirely in the
// comment_tree closure table (CommentTreeEdge).
type Comment struct {
	ID        string     `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	AuthorID  string     `gorm:"type:uuid;not null;index;references:users(id)" json:"author_id"`
	Content   string     `gorm:"type:text;not null" json:"content"`
	State     string     `gorm:"type:varchar(20);not null;default:'published'" json:"state"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt *time.Time `gorm:"type:timestamp" json:"updated_at,omitempty"`

	// Relationships
	Author User `gorm:"foreignKey:AuthorID;references:ID" json:"author,omitempty"`
}

// BeforeCreate hook to generate UUID
func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name
func (Comment) TableName() string {
	return "comments"
}

// Comment lifecycle states. Deletion is terminal: a deleted comment stays
// in the tree as a tombstone and never returns to published.
const (
	CommentStatePublished = "published"
	CommentStateDeleted   = "deleted"
)

// TombstoneContent replaces the content of deleted comments for callers
// without the elevated read capability.
const TombstoneContent = "comment deleted"

// CommentTreeEdge is one ancestor->descendant row of the closure table.
// Every comment owns exactly one self-edge (ancestor = descendant = id)
// anchoring its level, article and nearest parent; plus one row per proper
// ancestor, all sharing the same level and nearest ancestor.
type CommentTreeEdge struct {
	AncestorID        string  `gorm:"type:uuid;primaryKey" json:"ancestor_id"`
	DescendantID      string  `gorm:"type:uuid;primaryKey;index" json:"descendant_id"`
	NearestAncestorID *string `gorm:"type:uuid" json:"nearest_ancestor_id,omitempty"`
	ArticleID         string  `gorm:"type:uuid;not null;index" json:"article_id"`
	Level             int     `gorm:"not null" json:"level"`
}

// TableName specifies the table name
func (CommentTreeEdge) TableName() string {
	return "comment_tree"
}
