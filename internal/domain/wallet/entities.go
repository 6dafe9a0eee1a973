package wallet

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound            = errors.New("wallet not found")
	ErrInactive            = errors.New("wallet is not active")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInsufficientBalance = errors.New("insufficient available balance")
)

const DefaultCurrency = "VND"

type Wallet struct {
	ID            uint64          `gorm:"primaryKey;column:id" json:"-"`
	WalletID      string          `gorm:"size:32;uniqueIndex:ux_wallets_wallet_id" json:"wallet_id"`
	UserID        string          `gorm:"size:32;uniqueIndex:ux_wallets_user_id" json:"user_id"`
	Balance       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"balance"`
	LockedBalance decimal.Decimal `gorm:"column:locked_balance;type:decimal(18,2);not null;default:0" json:"locked_balance"`
	Currency      string          `gorm:"size:3;default:'VND'" json:"currency"`
	IsActive      bool            `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Wallet) TableName() string { return "wallets" }

func (w *Wallet) AvailableBalance() decimal.Decimal {
	return w.Balance.Sub(w.LockedBalance)
}

// Deposit increases the balance. The only failure mode is a non-positive amount.
func (w *Wallet) Deposit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	w.Balance = w.Balance.Add(amount)
	return nil
}

// Withdraw decreases the balance against the available (unlocked) portion.
func (w *Wallet) Withdraw(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if w.AvailableBalance().LessThan(amount) {
		return ErrInsufficientBalance
	}
	w.Balance = w.Balance.Sub(amount)
	return nil
}

// Lock reserves part of the available balance without changing the balance itself.
func (w *Wallet) Lock(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if w.AvailableBalance().LessThan(amount) {
		return ErrInsufficientBalance
	}
	w.LockedBalance = w.LockedBalance.Add(amount)
	return nil
}

// Unlock releases a reservation, floored at zero.
func (w *Wallet) Unlock(amount decimal.Decimal) {
	w.LockedBalance = w.LockedBalance.Sub(amount)
	if w.LockedBalance.IsNegative() {
		w.LockedBalance = decimal.Zero
	}
}

// ConfirmLocked finalizes a previously locked amount as spent: both the
// balance and the locked portion drop by amount.
func (w *Wallet) ConfirmLocked(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if w.LockedBalance.LessThan(amount) || w.Balance.LessThan(amount) {
		return ErrInsufficientBalance
	}
	w.LockedBalance = w.LockedBalance.Sub(amount)
	w.Balance = w.Balance.Sub(amount)
	return nil
}
