package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"nexo-backend/internal/usecase/repayment"
)

type RepaymentHandler struct{ uc *repayment.Usecase }

func NewRepaymentHandler(uc *repayment.Usecase) *RepaymentHandler {
	return &RepaymentHandler{uc: uc}
}

func (h *RepaymentHandler) PayInstallment(c echo.Context) error {
	uid, ok := userID(c)
	if !ok {
		return missingUser(c)
	}
	schedID, err := strconv.ParseUint(c.Param("schedule_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid schedule_id"})
	}
	res, err := h.uc.ProcessRepayment(c.Request().Context(), schedID, uid)
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{
		"repayment":      res.Repayment,
		"loan_code":      res.LoanCode,
		"loan_completed": res.LoanCompleted,
		"lender_returns": res.Returns,
	})
}

func (h *RepaymentHandler) ListUpcoming(c echo.Context) error {
	uid, ok := userID(c)
	if !ok {
		return missingUser(c)
	}
	rows, err := h.uc.Upcoming(c.Request().Context(), uid)
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"schedules": rows})
}

func (h *RepaymentHandler) ListOverdue(c echo.Context) error {
	uid, ok := userID(c)
	if !ok {
		return missingUser(c)
	}
	rows, err := h.uc.Overdue(c.Request().Context(), uid)
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"schedules": rows})
}

func (h *RepaymentHandler) ListHistory(c echo.Context) error {
	uid, ok := userID(c)
	if !ok {
		return missingUser(c)
	}
	rows, err := h.uc.History(c.Request().Context(), c.Param("loan_code"), uid)
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"repayments": rows})
}

// ScanOverdue is the operator trigger for the overdue sweep; deploys without
// a scheduler call it from cron.
func (h *RepaymentHandler) ScanOverdue(c echo.Context) error {
	items, err := h.uc.ScanOverdueSchedules(c.Request().Context())
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"overdue": items, "count": len(items)})
}
