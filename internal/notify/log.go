package notify

import (
	"context"
	"log"
)

// LogNotifier writes notifications to the application log. The real delivery
// channel (email/push) lives outside this service.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier { return &LogNotifier{} }

func (LogNotifier) InvestmentCreated(_ context.Context, borrowerID, lenderID, loanCode, amount string) {
	log.Printf("notify: investment %s on loan %s (borrower=%s lender=%s)", amount, loanCode, borrowerID, lenderID)
}

func (LogNotifier) LoanDisbursed(_ context.Context, borrowerID, loanCode, netAmount string) {
	log.Printf("notify: loan %s disbursed %s to borrower %s", loanCode, netAmount, borrowerID)
}

func (LogNotifier) RepaymentReceived(_ context.Context, lenderID, loanCode, amount string) {
	log.Printf("notify: lender %s received %s from loan %s", lenderID, amount, loanCode)
}

func (LogNotifier) RepaymentOverdue(_ context.Context, borrowerID, loanCode string, installment, daysOverdue int) {
	log.Printf("notify: loan %s installment #%d overdue %d day(s) (borrower=%s)", loanCode, installment, daysOverdue, borrowerID)
}

func (LogNotifier) LoanCompleted(_ context.Context, borrowerID, loanCode string) {
	log.Printf("notify: loan %s completed (borrower=%s)", loanCode, borrowerID)
}

// LogCreditScorer stands in for the credit-scoring collaborator.
type LogCreditScorer struct{}

func NewLogCreditScorer() *LogCreditScorer { return &LogCreditScorer{} }

func (LogCreditScorer) OnRepayment(_ context.Context, borrowerID string, daysLate int) error {
	log.Printf("creditscore: repayment by %s, %d day(s) late", borrowerID, daysLate)
	return nil
}

func (LogCreditScorer) OnLoanCompleted(_ context.Context, borrowerID, loanCode string) error {
	log.Printf("creditscore: loan %s completed by %s", loanCode, borrowerID)
	return nil
}
