package repository

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// ErrDuplicate is returned when an insert violates a primary key or unique index.
var ErrDuplicate = errors.New("duplicate entry")

// mysqlDuplicateEntry is ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
		return true
	}
	// sqlite, when the dialector does not translate
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// translate maps driver errors onto the package sentinels.
func translate(err error) error {
	if isDuplicateKey(err) {
		return ErrDuplicate
	}
	return err
}
