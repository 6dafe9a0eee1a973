package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"nexo-backend/internal/usecase/loan"
	"nexo-backend/internal/usecase/repayment"
)

type LoanHandler struct {
	uc  *loan.Usecase
	rep *repayment.Usecase
}

func NewLoanHandler(uc *loan.Usecase, rep *repayment.Usecase) *LoanHandler {
	return &LoanHandler{uc: uc, rep: rep}
}

type createLoanReq struct {
	Title        string  `json:"title"         validate:"required,max=255"`
	Description  string  `json:"description"`
	Amount       float64 `json:"amount"        validate:"required,gt=0,dec2"`
	InterestRate float64 `json:"interest_rate" validate:"required,gte=0,lte=100,dec2"`
	TermMonths   int     `json:"term_months"   validate:"required,gte=1,lte=360"`
}

func (h *LoanHandler) CreateLoan(c echo.Context) error {
	uid, ok := userID(c)
	if !ok {
		return missingUser(c)
	}
	var req createLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	l, err := h.uc.Create(c.Request().Context(), loan.CreateLoanInput{
		BorrowerID:   uid,
		Title:        req.Title,
		Description:  req.Description,
		Amount:       decimal.NewFromFloat(req.Amount),
		InterestRate: decimal.NewFromFloat(req.InterestRate),
		TermMonths:   req.TermMonths,
	})
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusCreated, l)
}

func (h *LoanHandler) SubmitLoan(c echo.Context) error {
	uid, ok := userID(c)
	if !ok {
		return missingUser(c)
	}
	l, err := h.uc.Submit(c.Request().Context(), c.Param("loan_code"), uid)
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

func (h *LoanHandler) CancelLoan(c echo.Context) error {
	uid, ok := userID(c)
	if !ok {
		return missingUser(c)
	}
	l, err := h.uc.Cancel(c.Request().Context(), c.Param("loan_code"), uid)
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

type reviewLoanReq struct {
	Approve bool   `json:"approve"`
	Reason  string `json:"reason"`
}

// ReviewLoan is the back-office approval step that opens a loan for funding.
func (h *LoanHandler) ReviewLoan(c echo.Context) error {
	uid, ok := userID(c)
	if !ok {
		return missingUser(c)
	}
	var req reviewLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	l, err := h.uc.Review(c.Request().Context(), c.Param("loan_code"), uid, req.Approve, req.Reason)
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	l, err := h.uc.Get(c.Request().Context(), c.Param("loan_code"))
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

func (h *LoanHandler) ListFundingLoans(c echo.Context) error {
	ls, err := h.uc.ListFunding(c.Request().Context(), queryInt(c, "limit", 20), queryInt(c, "offset", 0))
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"loans": ls})
}

func (h *LoanHandler) GetSchedule(c echo.Context) error {
	rows, err := h.uc.GetSchedule(c.Request().Context(), c.Param("loan_code"))
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"schedule": rows})
}

// RegenerateSchedule is the admin escape hatch for correcting a plan before
// any installment has been paid.
func (h *LoanHandler) RegenerateSchedule(c echo.Context) error {
	rows, err := h.rep.RegenerateSchedule(c.Request().Context(), c.Param("loan_code"))
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"schedule": rows})
}
