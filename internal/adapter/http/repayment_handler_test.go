package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	loanDomain "nexo-backend/internal/domain/loan"
	repaymentDomain "nexo-backend/internal/domain/repayment"
	"nexo-backend/internal/domain/uow"
	"nexo-backend/internal/testutil/loanmock"
	"nexo-backend/internal/testutil/notifymock"
	"nexo-backend/internal/testutil/repaymentmock"
	"nexo-backend/internal/testutil/uowmock"
	repaymentUsecase "nexo-backend/internal/usecase/repayment"
)

func newRepaymentHandler(repos uow.Repos) *RepaymentHandler {
	uc := repaymentUsecase.NewUsecase(uowmock.Passthrough(repos), &notifymock.Notifier{}, &notifymock.Scorer{})
	return NewRepaymentHandler(uc)
}

func TestPayInstallment_BadScheduleID(t *testing.T) {
	e := newEchoWithValidator()
	h := newRepaymentHandler(uow.Repos{Repayments: &repaymentmock.Repo{}, Loans: &loanmock.Repo{}})

	req := httptest.NewRequest(stdhttp.MethodPost, "/repayments/schedules/abc/pay", nil)
	req.Header.Set("Ax-User-Id", testUserID)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("schedule_id")
	c.SetParamValues("abc")

	if err := h.PayInstallment(c); err != nil {
		t.Fatalf("PayInstallment error: %v", err)
	}
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestPayInstallment_NotBorrower(t *testing.T) {
	e := newEchoWithValidator()
	h := newRepaymentHandler(uow.Repos{
		Repayments: &repaymentmock.Repo{
			GetScheduleByIDFn: func(ctx context.Context, id uint64) (*repaymentDomain.Schedule, error) {
				return &repaymentDomain.Schedule{ID: id, LoanID: 1}, nil
			},
		},
		Loans: &loanmock.Repo{
			GetByIDForUpdateFn: func(ctx context.Context, id uint64) (*loanDomain.Loan, error) {
				return &loanDomain.Loan{ID: id, BorrowerID: strings.Repeat("b", 32), Status: loanDomain.StatusActive}, nil
			},
		},
	})

	req := httptest.NewRequest(stdhttp.MethodPost, "/repayments/schedules/5/pay", nil)
	req.Header.Set("Ax-User-Id", testUserID)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("schedule_id")
	c.SetParamValues("5")

	if err := h.PayInstallment(c); err != nil {
		t.Fatalf("PayInstallment error: %v", err)
	}
	if rec.Code != stdhttp.StatusForbidden {
		t.Fatalf("status = %d, want 403: %s", rec.Code, rec.Body.String())
	}
}

func TestPayInstallment_ScheduleNotFound(t *testing.T) {
	e := newEchoWithValidator()
	h := newRepaymentHandler(uow.Repos{Repayments: &repaymentmock.Repo{}, Loans: &loanmock.Repo{}})

	req := httptest.NewRequest(stdhttp.MethodPost, "/repayments/schedules/99/pay", nil)
	req.Header.Set("Ax-User-Id", testUserID)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("schedule_id")
	c.SetParamValues("99")

	if err := h.PayInstallment(c); err != nil {
		t.Fatalf("PayInstallment error: %v", err)
	}
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestListUpcoming_ReturnsWindow(t *testing.T) {
	e := newEchoWithValidator()
	due := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	h := newRepaymentHandler(uow.Repos{
		Repayments: &repaymentmock.Repo{
			ListUnpaidSchedulesByBorrowerDueBetweenFn: func(ctx context.Context, borrowerID string, from, to time.Time) ([]repaymentDomain.Schedule, error) {
				if borrowerID != testUserID {
					t.Fatalf("borrowerID = %q", borrowerID)
				}
				return []repaymentDomain.Schedule{
					{ID: 1, InstallmentNumber: 1, DueDate: due, TotalAmount: dec("888487.89")},
				}, nil
			},
		},
	})

	req := httptest.NewRequest(stdhttp.MethodGet, "/repayments/upcoming", nil)
	req.Header.Set("Ax-User-Id", testUserID)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListUpcoming(c); err != nil {
		t.Fatalf("ListUpcoming error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Schedules []repaymentDomain.Schedule `json:"schedules"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if len(body.Schedules) != 1 || body.Schedules[0].InstallmentNumber != 1 {
		t.Fatalf("unexpected schedules: %+v", body.Schedules)
	}
}
