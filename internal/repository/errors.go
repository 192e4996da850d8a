package repository

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("not found")
	//unique violation or a row still referenced by others
	ErrConflict = errors.New("conflict")
)

// ReferenceError reports a foreign key that points at a missing row.
// ID is zero when the database did not tell which row it was.
type ReferenceError struct {
	Entity string
	ID     int64
}

func (e *ReferenceError) Error() string {
	if e.ID > 0 {
		return fmt.Sprintf("%s %d does not exist", e.Entity, e.ID)
	}
	return fmt.Sprintf("referenced %s does not exist", e.Entity)
}
