package wallet

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"nexo-backend/internal/domain/transaction"
	"nexo-backend/internal/domain/uow"
	walletDomain "nexo-backend/internal/domain/wallet"
	"nexo-backend/pkg/code"
	"nexo-backend/pkg/id"
)

// DefaultWithdrawFee is the flat fee charged on every withdrawal request.
var DefaultWithdrawFee = decimal.NewFromInt(10000)

type Usecase struct {
	uow         uow.UnitOfWork
	withdrawFee decimal.Decimal
}

func NewUsecase(tx uow.UnitOfWork) *Usecase {
	return &Usecase{uow: tx, withdrawFee: DefaultWithdrawFee}
}

// Entry describes one balance-affecting movement to be applied atomically.
type Entry struct {
	UserID       string
	Type         transaction.Type
	Amount       decimal.Decimal
	Fee          decimal.Decimal
	Description  string
	LoanID       *uint64
	InvestmentID *uint64
	RepaymentID  *uint64
}

// Apply is the ledger primitive every settlement step goes through. It locks
// the wallet row, mutates the balance according to the entry type, and
// appends exactly one completed transaction with balance before/after
// captured under the same lock. It must run inside a caller-owned unit of
// work so that multi-wallet settlements commit or roll back as one.
func Apply(ctx context.Context, r uow.Repos, e Entry) (*transaction.Transaction, error) {
	if !e.Amount.IsPositive() {
		return nil, walletDomain.ErrInvalidAmount
	}
	if e.Fee.IsNegative() {
		return nil, walletDomain.ErrInvalidAmount
	}

	w, err := r.Wallets.GetByUserIDForUpdate(ctx, e.UserID)
	if err != nil {
		return nil, err
	}
	if !w.IsActive {
		return nil, walletDomain.ErrInactive
	}

	before := w.Balance
	net := e.Amount.Sub(e.Fee)

	switch e.Type {
	case transaction.TypeDeposit, transaction.TypeLoanDisbursement, transaction.TypeRepaymentReceived:
		err = w.Deposit(net)
	case transaction.TypeInvestment, transaction.TypeRepaymentPaid:
		// Direct debit: the platform escrows investment money immediately,
		// and repayments settle in full or not at all.
		err = w.Withdraw(e.Amount)
		net = e.Amount
	case transaction.TypeWithdraw:
		err = w.ConfirmLocked(e.Amount.Add(e.Fee))
		net = e.Amount
	default:
		err = fmt.Errorf("ledger: unsupported transaction type %q", e.Type)
	}
	if err != nil {
		return nil, err
	}
	if err := r.Wallets.Save(ctx, w); err != nil {
		return nil, err
	}

	t := &transaction.Transaction{
		ReferenceCode: code.Transaction(),
		WalletID:      w.ID,
		UserID:        e.UserID,
		Type:          e.Type,
		Status:        transaction.StatusCompleted,
		Amount:        e.Amount,
		Fee:           e.Fee,
		NetAmount:     net,
		BalanceBefore: before,
		BalanceAfter:  w.Balance,
		Currency:      w.Currency,
		LoanID:        e.LoanID,
		InvestmentID:  e.InvestmentID,
		RepaymentID:   e.RepaymentID,
		Description:   e.Description,
	}
	if err := r.Transactions.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// CreateWallet provisions a wallet at user registration.
func (u *Usecase) CreateWallet(ctx context.Context, userID string) (*walletDomain.Wallet, error) {
	w := &walletDomain.Wallet{
		WalletID: id.NewID32(),
		UserID:   userID,
		Currency: walletDomain.DefaultCurrency,
		IsActive: true,
	}
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		return r.Wallets.Create(ctx, w)
	})
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (u *Usecase) GetWallet(ctx context.Context, userID string) (*walletDomain.Wallet, error) {
	var out *walletDomain.Wallet
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		w, err := r.Wallets.GetByUserID(ctx, userID)
		if err != nil {
			return err
		}
		out = w
		return nil
	})
	return out, err
}

// Deposit credits the wallet immediately and appends the ledger entry.
func (u *Usecase) Deposit(ctx context.Context, userID string, amount decimal.Decimal) (*transaction.Transaction, error) {
	var out *transaction.Transaction
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		t, err := Apply(ctx, r, Entry{
			UserID:      userID,
			Type:        transaction.TypeDeposit,
			Amount:      amount,
			Fee:         decimal.Zero,
			Description: "Wallet deposit",
		})
		if err != nil {
			return err
		}
		out = t
		return nil
	})
	return out, err
}

// RequestWithdraw reserves amount+fee and records a pending withdrawal.
// The balance itself does not move until SettleWithdraw.
func (u *Usecase) RequestWithdraw(ctx context.Context, userID string, amount decimal.Decimal, destination string) (*transaction.Transaction, error) {
	if !amount.IsPositive() {
		return nil, walletDomain.ErrInvalidAmount
	}
	var out *transaction.Transaction
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		w, err := r.Wallets.GetByUserIDForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if !w.IsActive {
			return walletDomain.ErrInactive
		}
		total := amount.Add(u.withdrawFee)
		if err := w.Lock(total); err != nil {
			return err
		}
		if err := r.Wallets.Save(ctx, w); err != nil {
			return err
		}
		t := &transaction.Transaction{
			ReferenceCode: code.Transaction(),
			WalletID:      w.ID,
			UserID:        userID,
			Type:          transaction.TypeWithdraw,
			Status:        transaction.StatusPending,
			Amount:        amount,
			Fee:           u.withdrawFee,
			NetAmount:     amount,
			BalanceBefore: w.Balance,
			BalanceAfter:  w.Balance,
			Currency:      w.Currency,
			Description:   "Withdraw to " + destination,
		}
		if err := r.Transactions.Create(ctx, t); err != nil {
			return err
		}
		out = t
		return nil
	})
	return out, err
}

// SettleWithdraw finalizes a pending withdrawal: approved confirms the locked
// amount as spent, rejected releases the reservation. Either way the pending
// entry flips to its terminal status exactly once.
func (u *Usecase) SettleWithdraw(ctx context.Context, referenceCode string, approved bool, note string) (*transaction.Transaction, error) {
	var out *transaction.Transaction
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		t, err := r.Transactions.GetByReferenceCode(ctx, referenceCode)
		if err != nil {
			return err
		}
		if t.Type != transaction.TypeWithdraw || t.Status != transaction.StatusPending {
			return transaction.ErrAlreadySettled
		}
		w, err := r.Wallets.GetByUserIDForUpdate(ctx, t.UserID)
		if err != nil {
			return err
		}
		total := t.Amount.Add(t.Fee)
		if approved {
			// The balance may have moved since the request was recorded;
			// re-anchor the before/after pair under the settle-time lock so
			// the entry stays contiguous.
			t.BalanceBefore = w.Balance
			if err := w.ConfirmLocked(total); err != nil {
				return err
			}
			t.Status = transaction.StatusCompleted
			t.BalanceAfter = w.Balance
		} else {
			w.Unlock(total)
			t.Status = transaction.StatusCancelled
			if note != "" {
				t.Description = t.Description + " - Rejected: " + note
			}
		}
		if err := r.Wallets.Save(ctx, w); err != nil {
			return err
		}
		if err := r.Transactions.Save(ctx, t); err != nil {
			return err
		}
		out = t
		return nil
	})
	return out, err
}

// Lock reserves part of the available balance against a pending obligation.
func (u *Usecase) Lock(ctx context.Context, userID string, amount decimal.Decimal) error {
	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		w, err := r.Wallets.GetByUserIDForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if err := w.Lock(amount); err != nil {
			return err
		}
		return r.Wallets.Save(ctx, w)
	})
}

func (u *Usecase) Unlock(ctx context.Context, userID string, amount decimal.Decimal) error {
	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		w, err := r.Wallets.GetByUserIDForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		w.Unlock(amount)
		return r.Wallets.Save(ctx, w)
	})
}

func (u *Usecase) ListTransactions(ctx context.Context, userID string, f transaction.Filter) ([]transaction.Transaction, error) {
	var out []transaction.Transaction
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		ts, err := r.Transactions.ListByUserID(ctx, userID, f)
		if err != nil {
			return err
		}
		out = ts
		return nil
	})
	return out, err
}

func (u *Usecase) GetTransaction(ctx context.Context, referenceCode, userID string) (*transaction.Transaction, error) {
	var out *transaction.Transaction
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		t, err := r.Transactions.GetByReferenceCode(ctx, referenceCode)
		if err != nil {
			return err
		}
		if t.UserID != userID {
			return transaction.ErrNotOwner
		}
		out = t
		return nil
	})
	return out, err
}

// Reconcile replays the wallet's ledger entries in insertion order and
// reports the replayed balance next to the stored one. The two must match;
// a mismatch means an entry was written outside the wallet lock.
func (u *Usecase) Reconcile(ctx context.Context, userID string) (replayed, stored decimal.Decimal, err error) {
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		w, err := r.Wallets.GetByUserID(ctx, userID)
		if err != nil {
			return err
		}
		ts, err := r.Transactions.ListByWalletID(ctx, w.ID)
		if err != nil {
			return err
		}
		sum := decimal.Zero
		for i := range ts {
			sum = sum.Add(balanceDelta(&ts[i]))
		}
		replayed, stored = sum, w.Balance
		return nil
	})
	return replayed, stored, err
}

func balanceDelta(t *transaction.Transaction) decimal.Decimal {
	if t.Status != transaction.StatusCompleted {
		return decimal.Zero
	}
	switch t.Type {
	case transaction.TypeDeposit, transaction.TypeLoanDisbursement, transaction.TypeRepaymentReceived:
		return t.NetAmount
	case transaction.TypeInvestment, transaction.TypeRepaymentPaid:
		return t.Amount.Neg()
	case transaction.TypeWithdraw:
		return t.Amount.Add(t.Fee).Neg()
	}
	return decimal.Zero
}
