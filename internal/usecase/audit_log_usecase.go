package usecase

import (
	"context"

	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/domain/model"
	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/domain/policy"
	repo "github.com/Larissa2801/Projeto-UaiFood-Back/internal/repository"
)

type AuditLogUsecase struct {
	logs repo.AuditLogRepository
}

func NewAuditLogUsecase(logs repo.AuditLogRepository) *AuditLogUsecase {
	return &AuditLogUsecase{logs: logs}
}

// List returns audit entries newest first. Admin only.
func (u *AuditLogUsecase) List(ctx context.Context, actor policy.Actor, f repo.AuditLogFilter) ([]model.AuditLog, error) {
	if !policy.CanReadAuditLogs(actor).Allowed() {
		return []model.AuditLog{}, Forbidden()
	}
	if f.Limit == 0 {
		f.Limit = repo.DefaultAuditLogLimit
	}
	if f.Limit < 1 || f.Limit > repo.MaxAuditLogLimit {
		return []model.AuditLog{}, Validation("invalid limit")
	}
	if f.Offset < 0 {
		return []model.AuditLog{}, Validation("invalid offset")
	}
	if f.Action != nil && !f.Action.Valid() {
		return []model.AuditLog{}, Validation("invalid action %q", *f.Action)
	}
	if f.ResourceType != nil && !f.ResourceType.Valid() {
		return []model.AuditLog{}, Validation("invalid resource_type %q", *f.ResourceType)
	}
	if f.CreatedFrom != nil && f.CreatedTo != nil && f.CreatedFrom.After(*f.CreatedTo) {
		return []model.AuditLog{}, Validation("from must not be after to")
	}

	logs, err := u.logs.List(ctx, f)
	if err != nil {
		return []model.AuditLog{}, fromRepoError(ctx, "list audit logs", "audit_log", err)
	}
	return logs, nil
}
