package sqlite

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vadimbarashkov/trimmer/internal/entity"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

func sqliteCode(err error) (int, bool) {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return 0, false
	}
	return sqliteErr.Code(), true
}

func isUniqueViolationError(err error) bool {
	code, ok := sqliteCode(err)
	if !ok {
		return false
	}

	switch code {
	case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
		return true
	case sqlite3.SQLITE_CONSTRAINT:
		return strings.Contains(err.Error(), "UNIQUE constraint failed")
	default:
		return false
	}
}

func isUnavailableError(err error) bool {
	code, ok := sqliteCode(err)
	if !ok {
		return false
	}

	switch code & 0xff {
	case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED, sqlite3.SQLITE_CANTOPEN, sqlite3.SQLITE_IOERR:
		return true
	default:
		return false
	}
}

// storeError marks lock contention and I/O failures with
// entity.ErrStoreUnavailable and leaves every other error untouched.
func storeError(err error) error {
	if isUnavailableError(err) {
		return fmt.Errorf("%w: %w", entity.ErrStoreUnavailable, err)
	}
	return err
}
