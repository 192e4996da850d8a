package model

import "time"

// Address is the single delivery address of a user.
type Address struct {
	ID     int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID int64 `gorm:"not null;uniqueIndex" json:"user_id"`
	User   *User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	Street   string `gorm:"type:varchar(255);not null" json:"street"`
	Number   string `gorm:"type:varchar(20);not null" json:"number"`
	District string `gorm:"type:varchar(255);not null" json:"district"`
	City     string `gorm:"type:varchar(255);not null" json:"city"`
	//UF, two letters
	State   string `gorm:"type:char(2);not null" json:"state"`
	ZipCode string `gorm:"type:char(8);not null" json:"zip_code"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (a Address) OwnerID() int64 { return a.UserID }
