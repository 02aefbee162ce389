package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultImage is the reserved image name for products created without an
// upload. It is served from static assets and must never be written to or
// deleted from the asset store.
const DefaultImage = "default.jpg"

type Product struct {
	ID            int64           `json:"id"`
	CategoryID    int64           `json:"category_id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Discount      int             `json:"discount"`
	DiscountPrice decimal.Decimal `json:"discount_price"`
	Stock         int             `json:"stock"`
	Image         string          `json:"image"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	Category      *Category       `json:"category,omitempty"`
}

// DeriveDiscountPrice recomputes DiscountPrice from Price and Discount.
// Called on every create and update so the stored value never drifts.
func (p *Product) DeriveDiscountPrice() {
	pct := decimal.NewFromInt(int64(100 - p.Discount))
	p.DiscountPrice = p.Price.Mul(pct).Div(decimal.NewFromInt(100))
}

type CreateProductRequest struct {
	CategoryID  int64           `json:"category_id" validate:"required"`
	Title       string          `json:"title" validate:"required,max=500"`
	Description string          `json:"description" validate:"max=5000"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	Discount    int             `json:"discount" validate:"gte=0,lte=100"`
	Stock       int             `json:"stock" validate:"gte=0"`
	IsActive    bool            `json:"is_active"`
	Image       *ImageUpload    `json:"-"`
}

type UpdateProductRequest struct {
	CategoryID  *int64           `json:"category_id,omitempty"`
	Title       *string          `json:"title,omitempty" validate:"omitempty,min=1,max=500"`
	Description *string          `json:"description,omitempty" validate:"omitempty,max=5000"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Discount    *int             `json:"discount,omitempty" validate:"omitempty,gte=0,lte=100"`
	Stock       *int             `json:"stock,omitempty" validate:"omitempty,gte=0"`
	IsActive    *bool            `json:"is_active,omitempty"`
	Image       *ImageUpload     `json:"-"`
}
