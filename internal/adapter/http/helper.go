package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	investmentDomain "nexo-backend/internal/domain/investment"
	loanDomain "nexo-backend/internal/domain/loan"
	repaymentDomain "nexo-backend/internal/domain/repayment"
	transactionDomain "nexo-backend/internal/domain/transaction"
	"nexo-backend/internal/domain/uow"
	walletDomain "nexo-backend/internal/domain/wallet"
	"nexo-backend/internal/usecase/schedule"
)

// userID pulls the authenticated caller from the Ax-User-Id header. Real
// authentication sits in front of this service; the header carries the
// already-verified identity.
func userID(c echo.Context) (string, bool) {
	id := strings.TrimSpace(c.Request().Header.Get("Ax-User-Id"))
	if !reHex32.MatchString(id) {
		return "", false
	}
	return id, true
}

func missingUser(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing or invalid Ax-User-Id"})
}

func queryInt(c echo.Context, name string, def int) int {
	if v := c.QueryParam(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return def
}

// Map domain errors → HTTP codes. Unknown errors become a 500 without
// leaking internals.
func toHTTPError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, walletDomain.ErrNotFound),
		errors.Is(err, loanDomain.ErrNotFound),
		errors.Is(err, investmentDomain.ErrNotFound),
		errors.Is(err, transactionDomain.ErrNotFound),
		errors.Is(err, repaymentDomain.ErrScheduleNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})

	case errors.Is(err, walletDomain.ErrInvalidAmount),
		errors.Is(err, schedule.ErrInvalidTerm):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})

	case errors.Is(err, walletDomain.ErrInsufficientBalance):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})

	case errors.Is(err, walletDomain.ErrInactive),
		errors.Is(err, transactionDomain.ErrNotOwner),
		errors.Is(err, repaymentDomain.ErrNotBorrower),
		errors.Is(err, investmentDomain.ErrOwnLoan):
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})

	case errors.Is(err, loanDomain.ErrNotFunding),
		errors.Is(err, loanDomain.ErrInvalidTransition),
		errors.Is(err, loanDomain.ErrPendingExists),
		errors.Is(err, investmentDomain.ErrOverfunding),
		errors.Is(err, repaymentDomain.ErrAlreadyPaid),
		errors.Is(err, repaymentDomain.ErrHasRepayments),
		errors.Is(err, transactionDomain.ErrAlreadySettled):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})

	case errors.Is(err, uow.ErrLockTimeout):
		return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "busy, retry"})
	}
	c.Logger().Error(err)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}
