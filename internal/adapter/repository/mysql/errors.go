package mysql

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"nexo-backend/internal/domain/uow"
)

// MySQL server error numbers for lock waits.
const (
	erLockWaitTimeout     = 1205
	erStatementTimeout    = 3024
	erLockNowaitUnavailed = 3572
)

// translate maps driver-level errors to the domain's vocabulary. notFound is
// the error to return for gorm.ErrRecordNotFound in the caller's context.
func translate(err, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case erLockWaitTimeout, erStatementTimeout, erLockNowaitUnavailed:
			return uow.ErrLockTimeout
		}
	}
	return err
}
