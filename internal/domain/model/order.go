package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "CASH"
	PaymentDebit  PaymentMethod = "DEBIT"
	PaymentCredit PaymentMethod = "CREDIT"
	PaymentPix    PaymentMethod = "PIX"
)

func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentCash, PaymentDebit, PaymentCredit, PaymentPix:
		return true
	}
	return false
}

type Order struct {
	ID            int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	UserClient    int64         `gorm:"column:user_client;not null;index" json:"user_client"`
	Client        *User         `gorm:"foreignKey:UserClient;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"client,omitempty"`
	PaymentMethod PaymentMethod `gorm:"type:varchar(10);not null" json:"payment_method"`
	Status        OrderStatus   `gorm:"type:varchar(20);not null;index" json:"status"`
	Items         []OrderItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt     time.Time     `gorm:"not null;autoCreateTime;index" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// the purchaser owns the order
func (o Order) OwnerID() int64 { return o.UserClient }

func (o Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}
