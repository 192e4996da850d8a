package repository

import (
	"context"

	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/domain/model"
)

// Each user has at most one address, so it is addressed by user id.
type AddressRepository interface {
	FindByUserID(ctx context.Context, userID int64) (model.Address, error)

	//insert or replace the user's address. missing user -> *ReferenceError
	Upsert(ctx context.Context, address model.Address) (model.Address, error)

	DeleteByUserID(ctx context.Context, userID int64) error
}
