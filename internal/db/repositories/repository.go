package repositories

import (
	"errors"

	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"
)

// repository works against either the connection pool or a transaction.
type repository struct {
	db orm.DB
}

func isNoRows(err error) bool {
	return errors.Is(err, pg.ErrNoRows)
}

// sqlStateUniqueViolation is the SQLSTATE of a duplicate key. Other class 23
// errors, such as a missing foreign key row, are not duplicates.
const sqlStateUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr pg.Error
	return errors.As(err, &pgErr) && pgErr.Field('C') == sqlStateUniqueViolation
}
