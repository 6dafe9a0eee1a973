package repayment

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	investmentDomain "nexo-backend/internal/domain/investment"
	loanDomain "nexo-backend/internal/domain/loan"
	repaymentDomain "nexo-backend/internal/domain/repayment"
	"nexo-backend/internal/domain/transaction"
	"nexo-backend/internal/domain/uow"
	"nexo-backend/internal/notify"
	walletLedger "nexo-backend/internal/usecase/wallet"
	"nexo-backend/pkg/code"
)

// LateFeeRate is charged per day overdue, as a fraction of the installment
// total (1% per day).
var LateFeeRate = decimal.RequireFromString("0.01")

type Usecase struct {
	uow      uow.UnitOfWork
	notifier notify.Notifier
	scorer   notify.CreditScorer
	nowFn    func() time.Time
}

func NewUsecase(tx uow.UnitOfWork, n notify.Notifier, cs notify.CreditScorer) *Usecase {
	return &Usecase{uow: tx, notifier: n, scorer: cs, nowFn: func() time.Time { return time.Now().UTC() }}
}

type ProcessResult struct {
	Repayment     *repaymentDomain.Repayment
	LoanCode      string
	LoanCompleted bool
	Returns       []repaymentDomain.LenderReturn
}

// ProcessRepayment settles one installment: it debits the borrower for the
// installment total plus late fee, records the repayment, distributes the
// proceeds to every active investor and completes the loan once the last
// installment is paid. All of it is one transaction; an error at any point
// (including an insufficient borrower balance) rolls back every wallet
// mutation made in this call.
func (u *Usecase) ProcessRepayment(ctx context.Context, scheduleID uint64, borrowerID string) (*ProcessResult, error) {
	res := &ProcessResult{}
	daysLate := 0

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		sched, err := r.Repayments.GetScheduleByID(ctx, scheduleID)
		if err != nil {
			return err
		}
		// Lock the loan row: cumulative totals and the completion check must
		// be serialized with any concurrent installment payment.
		l, err := r.Loans.GetByIDForUpdate(ctx, sched.LoanID)
		if err != nil {
			return err
		}
		if l.BorrowerID != borrowerID {
			return repaymentDomain.ErrNotBorrower
		}

		exists, err := r.Repayments.ExistsRepaymentForSchedule(ctx, scheduleID)
		if err != nil {
			return err
		}
		if exists {
			return repaymentDomain.ErrAlreadyPaid
		}

		now := u.nowFn()
		daysLate = daysOverdue(sched.DueDate, now)
		lateFee := decimal.Zero
		if daysLate > 0 {
			lateFee = sched.TotalAmount.Mul(LateFeeRate).Mul(decimal.NewFromInt(int64(daysLate))).Round(2)
		}
		amountDue := sched.TotalAmount.Add(lateFee)

		status := repaymentDomain.StatusPaid
		if daysLate > 0 {
			status = repaymentDomain.StatusLate
		}
		rep := &repaymentDomain.Repayment{
			RepaymentCode: code.Repayment(),
			LoanID:        l.ID,
			BorrowerID:    borrowerID,
			ScheduleID:    sched.ID,
			DueAmount:     sched.TotalAmount,
			PaidAmount:    amountDue,
			LateFee:       lateFee,
			DaysOverdue:   daysLate,
			DueDate:       sched.DueDate,
			Status:        status,
			PaidAt:        now,
		}
		if err := r.Repayments.CreateRepayment(ctx, rep); err != nil {
			return err
		}

		// Borrower side: full-or-nothing debit under the wallet lock.
		if _, err := walletLedger.Apply(ctx, r, walletLedger.Entry{
			UserID:      borrowerID,
			Type:        transaction.TypeRepaymentPaid,
			Amount:      amountDue,
			Fee:         decimal.Zero,
			LoanID:      &l.ID,
			RepaymentID: &rep.ID,
			Description: fmt.Sprintf("Repayment installment #%d for loan %s", sched.InstallmentNumber, l.LoanCode),
		}); err != nil {
			return err
		}

		l.TotalRepaid = l.TotalRepaid.Add(sched.PrincipalAmount.Add(sched.InterestAmount))
		l.TotalInterest = l.TotalInterest.Add(sched.InterestAmount)

		returns, err := distribute(ctx, r, l, sched, rep)
		if err != nil {
			return err
		}

		paid, err := r.Repayments.CountRepaymentsByLoanID(ctx, l.ID)
		if err != nil {
			return err
		}
		rows, err := r.Repayments.ListSchedulesByLoanID(ctx, l.ID)
		if err != nil {
			return err
		}
		completed := paid == int64(len(rows))
		if completed {
			if err := l.Transition(loanDomain.StatusCompleted); err != nil {
				return err
			}
			if err := completeInvestments(ctx, r, l.ID); err != nil {
				return err
			}
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

		res.Repayment = rep
		res.LoanCode = l.LoanCode
		res.LoanCompleted = completed
		res.Returns = returns
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Collaborator callbacks stay outside the settlement transaction; their
	// failures are logged and never undo the settlement.
	for _, lr := range res.Returns {
		u.notifier.RepaymentReceived(ctx, lr.LenderID, res.LoanCode, lr.TotalAmount.StringFixed(2))
	}
	if res.LoanCompleted {
		u.notifier.LoanCompleted(ctx, borrowerID, res.LoanCode)
	}
	if err := u.scorer.OnRepayment(ctx, borrowerID, daysLate); err != nil {
		log.Printf("credit score update failed after repayment %s: %v", res.Repayment.RepaymentCode, err)
	}
	if res.LoanCompleted {
		if err := u.scorer.OnLoanCompleted(ctx, borrowerID, res.LoanCode); err != nil {
			log.Printf("credit score update failed after loan %s completion: %v", res.LoanCode, err)
		}
	}
	return res, nil
}

func completeInvestments(ctx context.Context, r uow.Repos, loanID uint64) error {
	invs, err := r.Investments.ListActiveByLoanID(ctx, loanID)
	if err != nil {
		return err
	}
	for i := range invs {
		invs[i].Status = investmentDomain.StatusCompleted
		if err := r.Investments.Save(ctx, &invs[i]); err != nil {
			return err
		}
	}
	return nil
}

// daysOverdue compares calendar dates, not instants: an installment due
// today is not late.
func daysOverdue(dueDate, now time.Time) int {
	due := time.Date(dueDate.Year(), dueDate.Month(), dueDate.Day(), 0, 0, 0, 0, time.UTC)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if !today.After(due) {
		return 0
	}
	return int(today.Sub(due).Hours() / 24)
}
