package model

import "time"

type Role string

const (
	RoleClient Role = "CLIENT"
	RoleAdmin  Role = "ADMIN"
)

func (r Role) Valid() bool {
	return r == RoleClient || r == RoleAdmin
}

type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;not null" json:"-"`
	Role         Role      `gorm:"type:varchar(20);not null;default:'CLIENT'" json:"role"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Phone        string    `gorm:"type:varchar(11);not null" json:"phone"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// a user owns its own record
func (u User) OwnerID() int64 { return u.ID }
