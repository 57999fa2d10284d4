package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/order"
)

type OrderItem struct {
	ID           int64           `json:"id"`
	ProductID    int64           `json:"productId"`
	ProductName  string          `json:"productName"`
	ProductImage string          `json:"productImage,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

type Order struct {
	ID                int64           `json:"id"`
	OrderNumber       string          `json:"orderNumber"`
	UserID            int64           `json:"userId"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`
	Status            order.Status    `json:"status"`
	StatusDescription string          `json:"statusDescription,omitempty"`
	ReceiverName      string          `json:"receiverName"`
	ReceiverPhone     string          `json:"receiverPhone"`
	ReceiverAddress   string          `json:"receiverAddress"`
	Remark            string          `json:"remark,omitempty"`
	OrderItems        []OrderItem     `json:"orderItems"`
	CreatedAt         *time.Time      `json:"createdAt,omitempty"`
	UpdatedAt         *time.Time      `json:"updatedAt,omitempty"`
}

func (o Order) Cancellable() bool { return o.Status.Cancellable() }

type CreateOrderRequest struct {
	ReceiverName    string `json:"receiverName"`
	ReceiverPhone   string `json:"receiverPhone"`
	ReceiverAddress string `json:"receiverAddress"`
	Remark          string `json:"remark,omitempty"`
}
