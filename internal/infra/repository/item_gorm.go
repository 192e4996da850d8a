package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/domain/model"
	repo "github.com/Larissa2801/Projeto-UaiFood-Back/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ItemGormRepository struct {
	db *gorm.DB
}

func NewItemGormRepository(db *gorm.DB) *ItemGormRepository {
	return &ItemGormRepository{db: db}
}

// category_id pointing nowhere -> *ReferenceError
func (r *ItemGormRepository) Create(ctx context.Context, item *model.Item) error {
	return translateWriteError(r.db.WithContext(ctx).Omit(clause.Associations).Create(item).Error)
}

func (r *ItemGormRepository) FindByID(ctx context.Context, id int64) (model.Item, error) {
	var it model.Item
	err := r.db.WithContext(ctx).Preload("Category").First(&it, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Item{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Item{}, err
	}
	return it, nil
}

func (r *ItemGormRepository) FindByIDs(ctx context.Context, ids []int64) ([]model.Item, error) {
	if len(ids) == 0 {
		return []model.Item{}, nil
	}
	var items []model.Item
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return []model.Item{}, err
	}
	return items, nil
}

func (r *ItemGormRepository) List(ctx context.Context, q repo.ItemListQuery) ([]model.Item, int64, error) {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 || q.Limit > 100 {
		q.Limit = 50
	}

	tx := r.db.WithContext(ctx).Model(&model.Item{})
	if q.CategoryID != nil {
		tx = tx.Where("category_id = ?", *q.CategoryID)
	}
	if s := strings.TrimSpace(q.Q); s != "" {
		tx = tx.Where("description ILIKE ?", "%"+s+"%")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return []model.Item{}, 0, err
	}

	var items []model.Item
	err := tx.Preload("Category").
		Order("id asc").
		Offset((q.Page - 1) * q.Limit).
		Limit(q.Limit).
		Find(&items).Error
	if err != nil {
		return []model.Item{}, 0, err
	}
	return items, total, nil
}

func (r *ItemGormRepository) Update(ctx context.Context, item model.Item) error {
	res := r.db.WithContext(ctx).Model(&model.Item{}).Where("id = ?", item.ID).Updates(map[string]interface{}{
		"description": item.Description,
		"unit_price":  item.UnitPrice,
		"category_id": item.CategoryID,
	})
	if res.Error != nil {
		return translateWriteError(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// items already ordered are kept by order_items -> ErrConflict
func (r *ItemGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Item{}, id)
	if res.Error != nil {
		return translateDeleteError(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
