package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type CartItem struct {
	ID                 int64           `json:"id"`
	ProductID          int64           `json:"productId"`
	ProductName        string          `json:"productName"`
	ProductDescription string          `json:"productDescription,omitempty"`
	ProductImageURL    string          `json:"productImageUrl,omitempty"`
	ProductPrice       decimal.Decimal `json:"productPrice"`
	ProductStock       int             `json:"productStock"`
	Quantity           int             `json:"quantity"`
	Checked            bool            `json:"checked"`
	Subtotal           decimal.Decimal `json:"subtotal"`
	ProductDeleted     bool            `json:"productDeleted,omitempty"`
	StockInsufficient  bool            `json:"stockInsufficient,omitempty"`
	ErrorMessage       string          `json:"errorMessage,omitempty"`
	CreatedAt          *time.Time      `json:"createdAt,omitempty"`
	UpdatedAt          *time.Time      `json:"updatedAt,omitempty"`
}

// Purchasable reports whether the line can go into an order as-is.
func (i CartItem) Purchasable() bool {
	return !i.ProductDeleted && !i.StockInsufficient
}

type Cart struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"userId"`
	Items       []CartItem      `json:"items"`
	TotalItems  int             `json:"totalItems"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

func (c *Cart) CheckedItems() []CartItem {
	if c == nil {
		return nil
	}
	out := make([]CartItem, 0, len(c.Items))
	for _, it := range c.Items {
		if it.Checked {
			out = append(out, it)
		}
	}
	return out
}

// CheckedTotal sums the server-computed subtotals of the checked lines.
func (c *Cart) CheckedTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.CheckedItems() {
		total = total.Add(it.Subtotal)
	}
	return total
}

func (c *Cart) AllChecked() bool {
	if c == nil || len(c.Items) == 0 {
		return false
	}
	for _, it := range c.Items {
		if !it.Checked {
			return false
		}
	}
	return true
}

type AddToCartRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}
