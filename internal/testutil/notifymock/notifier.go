package notifymock

import (
	"context"
	"sync"

	"nexo-backend/internal/notify"
)

var (
	_ notify.Notifier     = (*Notifier)(nil)
	_ notify.CreditScorer = (*Scorer)(nil)
)

// Notifier records every call so tests can assert on post-commit behavior.
type Notifier struct {
	mu    sync.Mutex
	Calls []string
}

func (n *Notifier) record(s string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Calls = append(n.Calls, s)
}

func (n *Notifier) InvestmentCreated(_ context.Context, borrowerID, lenderID, loanCode, amount string) {
	n.record("investment_created:" + loanCode)
}

func (n *Notifier) LoanDisbursed(_ context.Context, borrowerID, loanCode, netAmount string) {
	n.record("loan_disbursed:" + loanCode)
}

func (n *Notifier) RepaymentReceived(_ context.Context, lenderID, loanCode, amount string) {
	n.record("repayment_received:" + lenderID)
}

func (n *Notifier) RepaymentOverdue(_ context.Context, borrowerID, loanCode string, installment, daysOverdue int) {
	n.record("repayment_overdue:" + loanCode)
}

func (n *Notifier) LoanCompleted(_ context.Context, borrowerID, loanCode string) {
	n.record("loan_completed:" + loanCode)
}

// Scorer records credit-score callbacks and can be made to fail.
type Scorer struct {
	mu        sync.Mutex
	Repaid    []int
	Completed []string
	Err       error
}

func (s *Scorer) OnRepayment(_ context.Context, borrowerID string, daysLate int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Repaid = append(s.Repaid, daysLate)
	return s.Err
}

func (s *Scorer) OnLoanCompleted(_ context.Context, borrowerID, loanCode string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Completed = append(s.Completed, loanCode)
	return s.Err
}
