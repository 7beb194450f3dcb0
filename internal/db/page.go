package db

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Page 是后台编辑的页面，已发布的页面按 slug 对外访问。
type Page struct {
	ID              string    `gorm:"primaryKey;size:36" json:"id" db:"id"`
	Title           string    `gorm:"not null" json:"title" db:"title"`
	Slug            string    `gorm:"uniqueIndex;not null" json:"slug" db:"slug"`
	Content         string    `gorm:"type:text" json:"content" db:"content"`
	MetaDescription string    `json:"meta_description" db:"meta_description"`
	FeaturedImage   string    `json:"featured_image" db:"featured_image"`
	Published       bool      `gorm:"not null;default:false;index" json:"published" db:"published"`
	UserID          uint      `gorm:"index" json:"user_id" db:"user_id"`
	CreatedAt       time.Time `gorm:"index" json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `gorm:"index" json:"updated_at" db:"updated_at"`
}

// BeforeCreate 在未指定 ID 时生成 UUID。
func (p *Page) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
