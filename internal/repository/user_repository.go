package repository

import (
	"context"

	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/domain/model"
)

type UserRepository interface {
	//ID is filled in on success. duplicate email -> ErrConflict
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id int64) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	List(ctx context.Context, page int, limit int) ([]model.User, int64, error)
	Update(ctx context.Context, user model.User) error
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}
