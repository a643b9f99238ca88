package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Like is a rate edge: presence means "liked", absence "neutral". Rows are
// inserted and deleted, never updated. The composite unique index is the
// concurrency guard: a double-like race fails one side with a constraint
// violation instead of inserting twice.
type Like struct {
	ID         string    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID     string    `gorm:"type:uuid;not null;index:idx_user_target,unique" json:"user_id"`
	TargetType string    `gorm:"type:varchar(20);not null;index:idx_user_target,unique" json:"target_type"` // article, comment
	TargetID   string    `gorm:"type:uuid;not null;index:idx_user_target,unique" json:"target_id"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// BeforeCreate hook to generate UUID
func (l *Like) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name
func (Like) TableName() string {
	return "likes"
}

// Constants for target types
const (
	TargetTypeArticle = "article"
	TargetTypeComment = "comment"
)

// RateState is the explicit target state of a rate request. Repeating the
// current state is rejected, not silently accepted.
type RateState string

const (
	RateStateLike    RateState = "like"
	RateStateNeutral RateState = "neutral"
)
