package postgres

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/vadimbarashkov/trimmer/internal/entity"
)

const (
	uniqueViolationErrCode        = "23505"
	invalidTextRepresentationCode = "22P02"
	connectionExceptionClass      = "08"
	adminShutdownErrCode          = "57P01"
	cannotConnectNowErrCode       = "57P03"
)

func isUniqueViolationError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationErrCode
}

// isInvalidIDError reports whether err was caused by an id that is not a
// valid uuid.
func isInvalidIDError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == invalidTextRepresentationCode
}

func isUnavailableError(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return true
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, connectionExceptionClass) ||
			pgErr.Code == adminShutdownErrCode ||
			pgErr.Code == cannotConnectNowErrCode
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}

// storeError marks connectivity failures with entity.ErrStoreUnavailable
// and leaves every other error untouched.
func storeError(err error) error {
	if isUnavailableError(err) {
		return fmt.Errorf("%w: %w", entity.ErrStoreUnavailable, err)
	}
	return err
}
