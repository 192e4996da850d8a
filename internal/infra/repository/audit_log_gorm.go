package repository

import (
	"context"

	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/domain/model"
	repo "github.com/Larissa2801/Projeto-UaiFood-Back/internal/repository"

	"gorm.io/gorm"
)

type auditLogGormRepository struct {
	db *gorm.DB
}

func NewAuditLogGormRepository(db *gorm.DB) repo.AuditLogRepository {
	return &auditLogGormRepository{db: db}
}

// Create runs on the caller's transaction so the entry commits with the change it records.
func (r *auditLogGormRepository) Create(ctx context.Context, entry model.AuditLog) error {
	return translateWriteError(r.db.WithContext(ctx).Create(&entry).Error)
}

func (r *auditLogGormRepository) List(ctx context.Context, f repo.AuditLogFilter) ([]model.AuditLog, error) {
	limit, offset := auditLogPage(f)

	var entries []model.AuditLog
	err := auditLogScope(r.db.WithContext(ctx).Model(&model.AuditLog{}), f).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error
	if err != nil {
		return []model.AuditLog{}, err
	}
	return entries, nil
}

func auditLogScope(q *gorm.DB, f repo.AuditLogFilter) *gorm.DB {
	if f.ActorUserID != nil {
		q = q.Where("actor_user_id = ?", *f.ActorUserID)
	}
	if f.Action != nil {
		q = q.Where("action = ?", string(*f.Action))
	}
	if f.ResourceType != nil {
		q = q.Where("resource_type = ?", string(*f.ResourceType))
	}
	if f.ResourceID != nil {
		q = q.Where("resource_id = ?", *f.ResourceID)
	}
	if f.CreatedFrom != nil {
		q = q.Where("created_at >= ?", *f.CreatedFrom)
	}
	if f.CreatedTo != nil {
		q = q.Where("created_at <= ?", *f.CreatedTo)
	}
	return q
}

// same bounds the usecase validates; callers that skip it still get a sane page
func auditLogPage(f repo.AuditLogFilter) (limit, offset int) {
	limit = f.Limit
	switch {
	case limit <= 0:
		limit = repo.DefaultAuditLogLimit
	case limit > repo.MaxAuditLogLimit:
		limit = repo.MaxAuditLogLimit
	}
	offset = f.Offset
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
