package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	transactionDomain "nexo-backend/internal/domain/transaction"
	"nexo-backend/internal/usecase/wallet"
)

type WalletHandler struct{ uc *wallet.Usecase }

func NewWalletHandler(uc *wallet.Usecase) *WalletHandler { return &WalletHandler{uc: uc} }

func (h *WalletHandler) CreateWallet(c echo.Context) error {
	uid, ok := userID(c)
	if !ok {
		return missingUser(c)
	}
	w, err := h.uc.CreateWallet(c.Request().Context(), uid)
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusCreated, w)
}

func (h *WalletHandler) GetWallet(c echo.Context) error {
	uid, ok := userID(c)
	if !ok {
		return missingUser(c)
	}
	w, err := h.uc.GetWallet(c.Request().Context(), uid)
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, w)
}

type depositReq struct {
	Amount float64 `json:"amount" validate:"required,gt=0,dec2"`
}

func (h *WalletHandler) Deposit(c echo.Context) error {
	uid, ok := userID(c)
	if !ok {
		return missingUser(c)
	}
	var req depositReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	t, err := h.uc.Deposit(c.Request().Context(), uid, decimal.NewFromFloat(req.Amount))
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusCreated, t)
}

type withdrawReq struct {
	Amount      float64 `json:"amount"      validate:"required,gt=0,dec2"`
	Destination string  `json:"destination" validate:"required"`
}

func (h *WalletHandler) RequestWithdraw(c echo.Context) error {
	uid, ok := userID(c)
	if !ok {
		return missingUser(c)
	}
	var req withdrawReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	t, err := h.uc.RequestWithdraw(c.Request().Context(), uid, decimal.NewFromFloat(req.Amount), req.Destination)
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusAccepted, t)
}

type settleWithdrawReq struct {
	Approved bool   `json:"approved"`
	Note     string `json:"note"`
}

// SettleWithdraw is the back-office confirmation of a pending withdrawal.
func (h *WalletHandler) SettleWithdraw(c echo.Context) error {
	ref := c.Param("reference_code")
	if ref == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing reference_code path param"})
	}
	var req settleWithdrawReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	t, err := h.uc.SettleWithdraw(c.Request().Context(), ref, req.Approved, req.Note)
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

func (h *WalletHandler) ListTransactions(c echo.Context) error {
	uid, ok := userID(c)
	if !ok {
		return missingUser(c)
	}
	f := transactionDomain.Filter{
		Type:   transactionDomain.Type(c.QueryParam("type")),
		Status: transactionDomain.Status(c.QueryParam("status")),
		Limit:  queryInt(c, "limit", 50),
		Offset: queryInt(c, "offset", 0),
	}
	ts, err := h.uc.ListTransactions(c.Request().Context(), uid, f)
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"transactions": ts})
}

func (h *WalletHandler) GetTransaction(c echo.Context) error {
	uid, ok := userID(c)
	if !ok {
		return missingUser(c)
	}
	t, err := h.uc.GetTransaction(c.Request().Context(), c.Param("reference_code"), uid)
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

func (h *WalletHandler) Reconcile(c echo.Context) error {
	uid, ok := userID(c)
	if !ok {
		return missingUser(c)
	}
	replayed, stored, err := h.uc.Reconcile(c.Request().Context(), uid)
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"replayed_balance": replayed.StringFixed(2),
		"stored_balance":   stored.StringFixed(2),
		"consistent":       replayed.Equal(stored),
	})
}
