package investment

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	investmentDomain "nexo-backend/internal/domain/investment"
	loanDomain "nexo-backend/internal/domain/loan"
	"nexo-backend/internal/domain/transaction"
	"nexo-backend/internal/domain/uow"
	walletDomain "nexo-backend/internal/domain/wallet"
	"nexo-backend/internal/notify"
	loanUsecase "nexo-backend/internal/usecase/loan"
	walletLedger "nexo-backend/internal/usecase/wallet"
	"nexo-backend/pkg/code"
)

var twelveHundred = decimal.NewFromInt(1200)

type Usecase struct {
	uow      uow.UnitOfWork
	notifier notify.Notifier
	nowFn    func() time.Time
}

func NewUsecase(tx uow.UnitOfWork, n notify.Notifier) *Usecase {
	return &Usecase{uow: tx, notifier: n, nowFn: func() time.Time { return time.Now().UTC() }}
}

type CreateInput struct {
	LenderID string
	LoanCode string
	Amount   decimal.Decimal
}

type CreateResult struct {
	Investment *investmentDomain.Investment
	// Disbursed is set when this investment completed the funding round and
	// triggered disbursement; it carries the net amount credited to the
	// borrower.
	Disbursed    bool
	NetDisbursed decimal.Decimal
	BorrowerID   string
	LoanStatus   loanDomain.Status
}

// Create commits a lender's stake in a funding loan. The entire funding step
// runs under the loan row lock, so two concurrent investments can never both
// pass the capacity check: the second waits on the lock, re-reads the
// incremented funded amount, and is rejected if it no longer fits.
func (u *Usecase) Create(ctx context.Context, in CreateInput) (*CreateResult, error) {
	if !in.Amount.IsPositive() {
		return nil, walletDomain.ErrInvalidAmount
	}

	res := &CreateResult{}
	err := u.uow.WithinLoanTx(ctx, in.LoanCode, func(r uow.Repos, l *loanDomain.Loan) error {
		if l.Status != loanDomain.StatusFunding {
			return loanDomain.ErrNotFunding
		}
		if l.BorrowerID == in.LenderID {
			return investmentDomain.ErrOwnLoan
		}
		if in.Amount.GreaterThan(l.RemainingCapacity()) {
			return investmentDomain.ErrOverfunding
		}

		now := u.nowFn()
		inv := &investmentDomain.Investment{
			InvestmentCode: code.Investment(),
			LoanID:         l.ID,
			LenderID:       in.LenderID,
			Amount:         in.Amount,
			InterestRate:   l.InterestRate,
			ExpectedReturn: expectedReturn(in.Amount, l.InterestRate, l.TermMonths),
			ActualReturn:   decimal.Zero,
			Status:         investmentDomain.StatusActive,
			InvestedAt:     now,
		}
		maturity := now.AddDate(0, l.TermMonths, 0)
		inv.MaturityDate = &maturity
		if err := r.Investments.Create(ctx, inv); err != nil {
			return err
		}

		// Escrow the money immediately: direct debit, no lock-then-confirm.
		if _, err := walletLedger.Apply(ctx, r, walletLedger.Entry{
			UserID:       in.LenderID,
			Type:         transaction.TypeInvestment,
			Amount:       in.Amount,
			Fee:          decimal.Zero,
			LoanID:       &l.ID,
			InvestmentID: &inv.ID,
			Description:  "Investment in loan: " + l.LoanCode,
		}); err != nil {
			return err
		}

		l.FundedAmount = l.FundedAmount.Add(in.Amount)
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

		res.Investment = inv
		res.BorrowerID = l.BorrowerID

		if l.IsFullyFunded() {
			net, err := loanUsecase.Disburse(ctx, r, l, now)
			if err != nil {
				return err
			}
			res.Disbursed = true
			res.NetDisbursed = net
		}
		res.LoanStatus = l.Status
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Outside the settlement transaction: failures here never roll it back.
	u.notifier.InvestmentCreated(ctx, res.BorrowerID, in.LenderID, in.LoanCode, in.Amount.StringFixed(2))
	if res.Disbursed {
		u.notifier.LoanDisbursed(ctx, res.BorrowerID, in.LoanCode, res.NetDisbursed.StringFixed(2))
	}
	return res, nil
}

func (u *Usecase) ListByLender(ctx context.Context, lenderID string, limit, offset int) ([]investmentDomain.Investment, error) {
	var out []investmentDomain.Investment
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		invs, err := r.Investments.ListByLenderID(ctx, lenderID, limit, offset)
		if err != nil {
			return err
		}
		out = invs
		return nil
	})
	return out, err
}

func (u *Usecase) Get(ctx context.Context, investmentCode, lenderID string) (*investmentDomain.Investment, error) {
	var out *investmentDomain.Investment
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		inv, err := r.Investments.GetByInvestmentCode(ctx, investmentCode)
		if err != nil {
			return err
		}
		if inv.LenderID != lenderID {
			return investmentDomain.ErrNotFound
		}
		out = inv
		return nil
	})
	return out, err
}

// expectedReturn is the simple-interest estimate shown to lenders:
// amount * annualRatePct * termMonths / 1200.
func expectedReturn(amount, annualRatePct decimal.Decimal, termMonths int) decimal.Decimal {
	return amount.Mul(annualRatePct).Mul(decimal.NewFromInt(int64(termMonths))).DivRound(twelveHundred, 2)
}

