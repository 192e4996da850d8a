package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/domain/model"
	repo "github.com/Larissa2801/Projeto-UaiFood-Back/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type addressGormRepository struct {
	db *gorm.DB
}

func NewAddressGormRepository(db *gorm.DB) repo.AddressRepository {
	return &addressGormRepository{db: db}
}

func (r *addressGormRepository) FindByUserID(ctx context.Context, userID int64) (model.Address, error) {
	var a model.Address
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Address{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Address{}, err
	}
	return a, nil
}

// user_id is unique, so ON CONFLICT replaces the existing row
func (r *addressGormRepository) Upsert(ctx context.Context, address model.Address) (model.Address, error) {
	now := time.Now()
	address.ID = 0
	address.CreatedAt = now
	address.UpdatedAt = now

	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"street", "number", "district", "city", "state", "zip_code", "updated_at"}),
		}).
		Create(&address).Error
	if err != nil {
		return model.Address{}, translateWriteError(err)
	}
	return r.FindByUserID(ctx, address.UserID)
}

func (r *addressGormRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.Address{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
