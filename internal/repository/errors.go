package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/shahinrahmannaim/CleanServiceManager-sub001/internal/domain"
)

// SQLSTATE codes that are safe to retry outside the connection exception class.
const (
	sqlStateSerializationFailure = "40001"
	sqlStateDeadlockDetected     = "40P01"
	sqlStateAdminShutdown        = "57P01"
	sqlStateCrashShutdown        = "57P02"
	sqlStateCannotConnectNow     = "57P03"
	sqlStateUniqueViolation      = "23505"
)

// wrapError tags err with op and a retry classification.
func wrapError(op string, err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == sqlStateUniqueViolation {
		err = &domain.DomainError{Err: domain.ErrConflict, Message: pgErr.Message}
	}
	return domain.NewStoreError(op, classify(err), err)
}

// classify maps driver failures onto domain.ErrorKind.
func classify(err error) domain.ErrorKind {
	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, driver.ErrBadConn),
		pgconn.Timeout(err):
		return domain.KindTransient
	case errors.Is(err, context.Canceled),
		errors.Is(err, gorm.ErrRecordNotFound),
		errors.Is(err, domain.ErrConflict):
		return domain.KindPermanent
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return domain.KindTransient
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case strings.HasPrefix(pgErr.Code, "08"),
			pgErr.Code == sqlStateSerializationFailure,
			pgErr.Code == sqlStateDeadlockDetected,
			pgErr.Code == sqlStateAdminShutdown,
			pgErr.Code == sqlStateCrashShutdown,
			pgErr.Code == sqlStateCannotConnectNow:
			return domain.KindTransient
		}
		return domain.KindPermanent
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return domain.KindTransient
	}

	return domain.KindUnknown
}
