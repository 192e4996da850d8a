package model

import "time"

type AuditAction string

const (
	AuditActionUpdateOrderStatus AuditAction = "UPDATE_ORDER_STATUS"
	AuditActionUpdateUserRole    AuditAction = "UPDATE_USER_ROLE"
	AuditActionDeleteUser        AuditAction = "DELETE_USER"
)

func (a AuditAction) Valid() bool {
	switch a {
	case AuditActionUpdateOrderStatus, AuditActionUpdateUserRole, AuditActionDeleteUser:
		return true
	}
	return false
}

type AuditResourceType string

const (
	AuditResourceOrder AuditResourceType = "order"
	AuditResourceUser  AuditResourceType = "user"
)

func (r AuditResourceType) Valid() bool {
	return r == AuditResourceOrder || r == AuditResourceUser
}

// AuditLog records who changed what on which resource, with before/after
// snapshots as JSON text.
type AuditLog struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	ActorUserID  int64             `gorm:"not null;index" json:"actor_user_id"`
	Action       AuditAction       `gorm:"type:varchar(50);not null;index" json:"action"`
	ResourceType AuditResourceType `gorm:"type:varchar(50);not null;index" json:"resource_type"`
	ResourceID   int64             `gorm:"not null;index" json:"resource_id"`

	BeforeJSON string `gorm:"type:text" json:"before_json"`
	AfterJSON  string `gorm:"type:text" json:"after_json"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}
