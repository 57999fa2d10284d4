package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProductStatus string

const (
	ProductOpen   ProductStatus = "OPEN"
	ProductClosed ProductStatus = "CLOSED"
	ProductHidden ProductStatus = "HIDDEN"
)

var ProductStatuses = []ProductStatus{ProductOpen, ProductClosed, ProductHidden}

type Product struct {
	ID          int64           `json:"id"`
	ProductNo   string          `json:"productNo,omitempty"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	Status      ProductStatus   `json:"status,omitempty"`
	StartAt     *time.Time      `json:"startAt,omitempty"`
	EndAt       *time.Time      `json:"endAt,omitempty"`
	CreatedAt   *time.Time      `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time      `json:"updatedAt,omitempty"`
}

func (p Product) InStock() bool { return p.Stock > 0 }

// ProductRequest is the body for admin create and update.
type ProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Status      ProductStatus   `json:"status"`
	StartAt     *time.Time      `json:"startAt,omitempty"`
	EndAt       *time.Time      `json:"endAt,omitempty"`
}

// ProductQuery holds the admin listing filters and paging.
type ProductQuery struct {
	Name    string
	Page    int
	Size    int
	SortBy  string
	SortDir string
}
