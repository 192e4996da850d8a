package repository

import (
	"errors"
	"fmt"
	"testing"

	repo "github.com/Larissa2801/Projeto-UaiFood-Back/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestTranslateWriteError(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.NoError(t, translateWriteError(nil))
	})

	t.Run("record not found", func(t *testing.T) {
		assert.ErrorIs(t, translateWriteError(gorm.ErrRecordNotFound), repo.ErrNotFound)
	})

	t.Run("missing item", func(t *testing.T) {
		err := translateWriteError(fmt.Errorf("insert: %w", &pgconn.PgError{
			Code:           "23503",
			Detail:         `Key (item_id)=(999) is not present in table "items".`,
			ConstraintName: "fk_order_items_item",
		}))
		var ref *repo.ReferenceError
		require.True(t, errors.As(err, &ref))
		assert.Equal(t, "item", ref.Entity)
		assert.Equal(t, int64(999), ref.ID)
	})

	t.Run("missing purchaser", func(t *testing.T) {
		err := translateWriteError(&pgconn.PgError{
			Code:   "23503",
			Detail: `Key (user_client)=(42) is not present in table "users".`,
		})
		var ref *repo.ReferenceError
		require.True(t, errors.As(err, &ref))
		assert.Equal(t, "user", ref.Entity)
		assert.Equal(t, int64(42), ref.ID)
	})

	t.Run("unparseable detail", func(t *testing.T) {
		err := translateWriteError(&pgconn.PgError{Code: "23503"})
		var ref *repo.ReferenceError
		require.True(t, errors.As(err, &ref))
		assert.Equal(t, int64(0), ref.ID)
	})

	t.Run("unknown column", func(t *testing.T) {
		err := translateWriteError(&pgconn.PgError{
			Code:   "23503",
			Detail: `Key (coupon_id)=(3) is not present in table "coupons".`,
		})
		var ref *repo.ReferenceError
		require.True(t, errors.As(err, &ref))
		assert.Equal(t, "resource", ref.Entity)
		assert.Equal(t, int64(3), ref.ID)
	})

	t.Run("unique violation", func(t *testing.T) {
		err := translateWriteError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_users_email"})
		assert.ErrorIs(t, err, repo.ErrConflict)
	})

	t.Run("other errors pass through", func(t *testing.T) {
		boom := errors.New("connection reset")
		assert.Same(t, boom, translateWriteError(boom))
	})
}

func TestTranslateDeleteError_StillReferenced(t *testing.T) {
	err := translateDeleteError(&pgconn.PgError{
		Code:   "23503",
		Detail: `Key (id)=(7) is still referenced from table "order_items".`,
	})
	assert.ErrorIs(t, err, repo.ErrConflict)
}
