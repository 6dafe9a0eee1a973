package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	loanDomain "nexo-backend/internal/domain/loan"
	"nexo-backend/internal/domain/uow"
	"nexo-backend/internal/testutil/loanmock"
	"nexo-backend/internal/testutil/notifymock"
	"nexo-backend/internal/testutil/repaymentmock"
	"nexo-backend/internal/testutil/uowmock"
	loanUsecase "nexo-backend/internal/usecase/loan"
	repaymentUsecase "nexo-backend/internal/usecase/repayment"
)

func newLoanHandler(loans *loanmock.Repo) *LoanHandler {
	repos := uow.Repos{Loans: loans, Repayments: &repaymentmock.Repo{}}
	tx := uowmock.Passthrough(repos)
	return NewLoanHandler(
		loanUsecase.NewUsecase(tx),
		repaymentUsecase.NewUsecase(tx, &notifymock.Notifier{}, &notifymock.Scorer{}),
	)
}

func TestCreateLoan_Success(t *testing.T) {
	e := newEchoWithValidator()
	h := newLoanHandler(&loanmock.Repo{
		GetPendingByBorrowerIDFn: func(ctx context.Context, borrowerID string) (*loanDomain.Loan, error) {
			return nil, gorm.ErrRecordNotFound
		},
	})

	reqBody := map[string]any{
		"title":         "Working capital",
		"amount":        10000000,
		"interest_rate": 12.00,
		"term_months":   12,
	}
	req := httptest.NewRequest(stdhttp.MethodPost, "/loans", mustJSON(reqBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("Ax-User-Id", testUserID)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreateLoan(c); err != nil {
		t.Fatalf("CreateLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	var got loanDomain.Loan
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if got.BorrowerID != testUserID || got.Status != loanDomain.StatusDraft {
		t.Fatalf("unexpected loan: %+v", got)
	}
	if !strings.HasPrefix(got.LoanCode, "LN-") {
		t.Fatalf("loan code = %q, want LN- prefix", got.LoanCode)
	}
}

func TestCreateLoan_PendingConflict(t *testing.T) {
	e := newEchoWithValidator()
	h := newLoanHandler(&loanmock.Repo{
		GetPendingByBorrowerIDFn: func(ctx context.Context, borrowerID string) (*loanDomain.Loan, error) {
			return &loanDomain.Loan{LoanCode: "LN-EXISTING", Status: loanDomain.StatusFunding}, nil
		},
	})

	reqBody := map[string]any{
		"title":         "Second application",
		"amount":        5000000,
		"interest_rate": 10.00,
		"term_months":   6,
	}
	req := httptest.NewRequest(stdhttp.MethodPost, "/loans", mustJSON(reqBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("Ax-User-Id", testUserID)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreateLoan(c); err != nil {
		t.Fatalf("CreateLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusConflict {
		t.Fatalf("status = %d, want 409: %s", rec.Code, rec.Body.String())
	}
}

func TestCreateLoan_ValidationError(t *testing.T) {
	e := newEchoWithValidator()
	h := newLoanHandler(&loanmock.Repo{})

	// amount with 3 decimals, rate above 100, term above the cap
	reqBody := map[string]any{
		"title":         "Bad input",
		"amount":        1000.555,
		"interest_rate": 120.00,
		"term_months":   999,
	}
	req := httptest.NewRequest(stdhttp.MethodPost, "/loans", mustJSON(reqBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("Ax-User-Id", testUserID)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreateLoan(c); err != nil {
		t.Fatalf("CreateLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	var er ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &er); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if !containsFieldMsg(er.Details, "Amount", "at most 2 decimal places") {
		t.Fatalf("missing dec2 detail: %+v", er.Details)
	}
	if !containsFieldMsg(er.Details, "InterestRate", "less than or equal to 100") {
		t.Fatalf("missing lte detail: %+v", er.Details)
	}
	if !containsFieldMsg(er.Details, "TermMonths", "less than or equal to 360") {
		t.Fatalf("missing term cap detail: %+v", er.Details)
	}
}

func TestGetLoan_NotFound(t *testing.T) {
	e := newEchoWithValidator()
	h := newLoanHandler(&loanmock.Repo{})

	req := httptest.NewRequest(stdhttp.MethodGet, "/loans/LN-NOPE", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("loan_code")
	c.SetParamValues("LN-NOPE")

	if err := h.GetLoan(c); err != nil {
		t.Fatalf("GetLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestReviewLoan_ApproveOpensFunding(t *testing.T) {
	e := newEchoWithValidator()
	l := &loanDomain.Loan{ID: 1, LoanCode: "LN-REVIEW", BorrowerID: strings.Repeat("b", 32), Status: loanDomain.StatusPendingReview}
	h := newLoanHandler(&loanmock.Repo{
		GetByLoanCodeForUpdateFn: func(ctx context.Context, loanCode string) (*loanDomain.Loan, error) {
			if loanCode != l.LoanCode {
				return nil, loanDomain.ErrNotFound
			}
			return l, nil
		},
	})

	req := httptest.NewRequest(stdhttp.MethodPost, "/loans/LN-REVIEW/review", mustJSON(map[string]any{"approve": true}))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("Ax-User-Id", testUserID)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("loan_code")
	c.SetParamValues("LN-REVIEW")

	if err := h.ReviewLoan(c); err != nil {
		t.Fatalf("ReviewLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var got loanDomain.Loan
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if got.Status != loanDomain.StatusFunding {
		t.Fatalf("status = %s, want funding", got.Status)
	}
	if got.FundingDeadline == nil {
		t.Fatalf("funding deadline not set")
	}
}

func TestCancelLoan_InvalidTransition(t *testing.T) {
	e := newEchoWithValidator()
	l := &loanDomain.Loan{ID: 1, LoanCode: "LN-ACTIVE", BorrowerID: testUserID, Status: loanDomain.StatusActive}
	h := newLoanHandler(&loanmock.Repo{
		GetByLoanCodeForUpdateFn: func(ctx context.Context, loanCode string) (*loanDomain.Loan, error) {
			return l, nil
		},
	})

	req := httptest.NewRequest(stdhttp.MethodPost, "/loans/LN-ACTIVE/cancel", nil)
	req.Header.Set("Ax-User-Id", testUserID)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("loan_code")
	c.SetParamValues("LN-ACTIVE")

	if err := h.CancelLoan(c); err != nil {
		t.Fatalf("CancelLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusConflict {
		t.Fatalf("status = %d, want 409: %s", rec.Code, rec.Body.String())
	}
}
