package models

import (
	"time"

	"github.com/google/uuid"
)

// Category is a curated storefront grouping. The "under-25" shop filter is
// not a Category row; it is a pricing rule evaluated by the catalog pipeline.
type Category struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Slug      string    `gorm:"column:slug;not null;uniqueIndex"`
	Title     string    `gorm:"column:title;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
