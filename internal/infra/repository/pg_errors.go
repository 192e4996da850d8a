package repository

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	repo "github.com/Larissa2801/Projeto-UaiFood-Back/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// SQLSTATE codes we translate
const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

// Key (item_id)=(7) is not present in table "items".
var fkDetailRe = regexp.MustCompile(`Key \(([a-z_]+)\)=\((\d+)\)`)

var fkColumnEntity = map[string]string{
	"user_client": "user",
	"user_id":     "user",
	"item_id":     "item",
	"category_id": "category",
	"order_id":    "order",
}

// translateWriteError maps driver errors raised by INSERT/UPDATE to repository errors.
func translateWriteError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repo.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgForeignKeyViolation:
			return referenceErrorFrom(pgErr)
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", repo.ErrConflict, pgErr.ConstraintName)
		}
	}
	return err
}

// translateDeleteError: a foreign key violation on DELETE means the row is
// still referenced, not that a reference is missing.
func translateDeleteError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return fmt.Errorf("%w: %s", repo.ErrConflict, pgErr.ConstraintName)
	}
	return translateWriteError(err)
}

func referenceErrorFrom(pgErr *pgconn.PgError) error {
	ref := &repo.ReferenceError{Entity: "resource"}
	m := fkDetailRe.FindStringSubmatch(pgErr.Detail)
	if len(m) == 3 {
		if entity, ok := fkColumnEntity[m[1]]; ok {
			ref.Entity = entity
		}
		if id, err := strconv.ParseInt(m[2], 10, 64); err == nil {
			ref.ID = id
		}
	}
	return ref
}
