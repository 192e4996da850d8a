package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Description string    `gorm:"type:varchar(255);not null" json:"description"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// Item is a sellable catalog entry.
type Item struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Description string          `gorm:"type:varchar(255);not null" json:"description"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"unit_price"`
	CategoryID  int64           `gorm:"not null;index" json:"category_id"`
	//categories referenced by items cannot be deleted
	Category  *Category `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"category,omitempty"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
