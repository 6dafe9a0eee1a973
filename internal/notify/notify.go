// Package notify holds the outbound collaborator ports the settlement core
// calls after a commit. Both are strictly fire-and-forget: implementations
// must never be invoked inside a settlement transaction, and their failures
// are logged, never propagated.
package notify

import "context"

type Notifier interface {
	InvestmentCreated(ctx context.Context, borrowerID, lenderID, loanCode, amount string)
	LoanDisbursed(ctx context.Context, borrowerID, loanCode, netAmount string)
	RepaymentReceived(ctx context.Context, lenderID, loanCode, amount string)
	RepaymentOverdue(ctx context.Context, borrowerID, loanCode string, installment, daysOverdue int)
	LoanCompleted(ctx context.Context, borrowerID, loanCode string)
}

type CreditScorer interface {
	OnRepayment(ctx context.Context, borrowerID string, daysLate int) error
	OnLoanCompleted(ctx context.Context, borrowerID, loanCode string) error
}
