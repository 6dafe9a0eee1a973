package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"nexo-backend/internal/usecase/investment"
	"nexo-backend/internal/usecase/repayment"
)

type InvestmentHandler struct {
	uc  *investment.Usecase
	rep *repayment.Usecase
}

func NewInvestmentHandler(uc *investment.Usecase, rep *repayment.Usecase) *InvestmentHandler {
	return &InvestmentHandler{uc: uc, rep: rep}
}

type createInvestmentReq struct {
	LoanCode string  `json:"loan_code" validate:"required"`
	Amount   float64 `json:"amount"    validate:"required,gt=0,dec2"`
}

func (h *InvestmentHandler) CreateInvestment(c echo.Context) error {
	uid, ok := userID(c)
	if !ok {
		return missingUser(c)
	}
	var req createInvestmentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	res, err := h.uc.Create(c.Request().Context(), investment.CreateInput{
		LenderID: uid,
		LoanCode: req.LoanCode,
		Amount:   decimal.NewFromFloat(req.Amount),
	})
	if err != nil {
		return toHTTPError(c, err)
	}
	body := map[string]any{
		"investment":  res.Investment,
		"loan_status": res.LoanStatus,
	}
	if res.Disbursed {
		body["disbursed_net_amount"] = res.NetDisbursed.StringFixed(2)
	}
	return c.JSON(http.StatusCreated, body)
}

func (h *InvestmentHandler) ListInvestments(c echo.Context) error {
	uid, ok := userID(c)
	if !ok {
		return missingUser(c)
	}
	invs, err := h.uc.ListByLender(c.Request().Context(), uid, queryInt(c, "limit", 20), queryInt(c, "offset", 0))
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"investments": invs})
}

func (h *InvestmentHandler) GetInvestment(c echo.Context) error {
	uid, ok := userID(c)
	if !ok {
		return missingUser(c)
	}
	inv, err := h.uc.Get(c.Request().Context(), c.Param("investment_code"), uid)
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, inv)
}

func (h *InvestmentHandler) ListReturns(c echo.Context) error {
	uid, ok := userID(c)
	if !ok {
		return missingUser(c)
	}
	rows, err := h.rep.LenderReturns(c.Request().Context(), c.Param("investment_code"), uid)
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"returns": rows})
}
