package repository

import (
	"context"
	"time"

	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/domain/model"
)

// Page size bounds for audit log listings.
const (
	DefaultAuditLogLimit = 50
	MaxAuditLogLimit     = 100
)

type AuditLogFilter struct {
	ActorUserID  *int64
	Action       *model.AuditAction
	ResourceType *model.AuditResourceType
	ResourceID   *int64
	CreatedFrom  *time.Time
	CreatedTo    *time.Time
	Limit        int
	Offset       int
}

type AuditLogRepository interface {
	Create(ctx context.Context, log model.AuditLog) error
	//newest first
	List(ctx context.Context, filter AuditLogFilter) ([]model.AuditLog, error)
}
