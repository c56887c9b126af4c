package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Product is a catalog listing. Price is the list price; SalePrice, when
// set, overrides it as the effective price for every filter, sort, and
// display decision downstream.
type Product struct {
	ID          uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CategoryID  *uuid.UUID     `gorm:"column:category_id;type:uuid"`
	Slug        string         `gorm:"column:slug;not null;uniqueIndex"`
	Title       string         `gorm:"column:title;not null"`
	Description *string        `gorm:"column:description"`
	Price       float64        `gorm:"column:price;type:numeric(10,2);not null"`
	SalePrice   *float64       `gorm:"column:sale_price;type:numeric(10,2)"`
	Tags        pq.StringArray `gorm:"column:tags;type:text[]"`
	IsActive    bool           `gorm:"column:is_active;not null;default:true"`
	Media       []ProductMedia `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
