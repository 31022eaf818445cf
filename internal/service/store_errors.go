package service

import (
	"context"
	"database/sql/driver"
	stderrors "errors"
	"net"
	"syscall"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"idcard/internal/errors"
)

// storeError classifies a repository error. notFound is returned for missing rows.
func storeError(err error, notFound error) error {
	var appErr *errors.Error
	switch {
	case err == nil:
		return nil
	case stderrors.As(err, &appErr):
		return err
	case stderrors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	case unavailable(err):
		return errors.Unavailable(err)
	default:
		return errors.Internal(err)
	}
}

// duplicateOr classifies err, reporting a unique index violation as key=value.
func duplicateOr(err error, key string, value any, notFound error) error {
	if stderrors.Is(err, gorm.ErrDuplicatedKey) {
		return errors.Duplicate(key, value)
	}
	return storeError(err, notFound)
}

func unavailable(err error) bool {
	if stderrors.Is(err, context.DeadlineExceeded) ||
		stderrors.Is(err, context.Canceled) ||
		stderrors.Is(err, driver.ErrBadConn) ||
		stderrors.Is(err, mysqldriver.ErrInvalidConn) ||
		stderrors.Is(err, syscall.ECONNREFUSED) ||
		stderrors.Is(err, syscall.ECONNRESET) {
		return true
	}
	var connErr *pgconn.ConnectError
	if stderrors.As(err, &connErr) || pgconn.Timeout(err) {
		return true
	}
	var netErr net.Error
	return stderrors.As(err, &netErr)
}
