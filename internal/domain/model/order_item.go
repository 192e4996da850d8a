package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem is an immutable order line. Description and price are copied
// from the catalog when the order is placed.
type OrderItem struct {
	ID                  int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID             int64           `gorm:"not null;index" json:"order_id"`
	ItemID              int64           `gorm:"not null;index" json:"item_id"`
	Item                *Item           `gorm:"foreignKey:ItemID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Quantity            int64           `gorm:"not null;check:quantity >= 1" json:"quantity"`
	DescriptionSnapshot string          `gorm:"type:varchar(255);not null" json:"description"`
	UnitPriceSnapshot   decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"unit_price"`
	CreatedAt           time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (it OrderItem) Subtotal() decimal.Decimal {
	return it.UnitPriceSnapshot.Mul(decimal.NewFromInt(it.Quantity))
}
