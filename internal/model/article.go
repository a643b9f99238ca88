package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Article struct {
	ID        string    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	AuthorID  string    `gorm:"type:uuid;not null;index;references:users(id)" json:"author_id"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	State     string    `gorm:"type:varchar(20);not null;default:'draft';index" json:"state"`
	Views     int64     `gorm:"not null;default:0" json:"views"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Author User  `gorm:"foreignKey:AuthorID;references:ID" json:"author,omitempty"`
	Tags   []Tag `gorm:"many2many:article_tags" json:"tags,omitempty"`

	// Likes are counted from the like edge table, never stored
	LikeCount int64 `gorm:"-" json:"like_count"`
	IsRated   bool  `gorm:"-" json:"is_rated"`
}

// BeforeCreate hook to generate UUID
func (a *Article) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name
func (Article) TableName() string {
	return "articles"
}

// Article lifecycle states
const (
	ArticleStateDraft     = "draft"
	ArticleStatePublished = "published"
	ArticleStateArchived  = "archived"
	ArticleStateDeleted   = "deleted"
)

type Tag struct {
	ID    string `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title string `gorm:"type:varchar(32);uniqueIndex;not null" json:"title"`
}

// BeforeCreate hook to generate UUID
func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name
func (Tag) TableName() string {
	return "tags"
}
