package repository

import (
	"context"

	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/domain/model"
)

type ItemListQuery struct {
	CategoryID *int64
	Q          string
	Page       int
	Limit      int
}

type ItemRepository interface {
	Create(ctx context.Context, item *model.Item) error
	//Category is preloaded
	FindByID(ctx context.Context, id int64) (model.Item, error)
	//missing ids are simply absent from the result
	FindByIDs(ctx context.Context, ids []int64) ([]model.Item, error)
	List(ctx context.Context, q ItemListQuery) ([]model.Item, int64, error)
	Update(ctx context.Context, item model.Item) error
	Delete(ctx context.Context, id int64) error
}

type CategoryRepository interface {
	Create(ctx context.Context, c *model.Category) error
	FindByID(ctx context.Context, id int64) (model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
	Update(ctx context.Context, c model.Category) error
	//still referenced by items -> ErrConflict
	Delete(ctx context.Context, id int64) error
}
