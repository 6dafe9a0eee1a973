package transaction

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound       = errors.New("transaction not found")
	ErrNotOwner       = errors.New("transaction belongs to another user")
	ErrAlreadySettled = errors.New("transaction already settled")
)

type Type string

const (
	TypeDeposit           Type = "deposit"
	TypeWithdraw          Type = "withdraw"
	TypeInvestment        Type = "investment"
	TypeLoanDisbursement  Type = "loan_disbursement"
	TypeRepaymentPaid     Type = "repayment_paid"
	TypeRepaymentReceived Type = "repayment_received"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// Transaction is one append-only ledger entry. A row is written exactly once
// per settlement step; after reaching a terminal status it is never mutated,
// the only allowed update is flipping pending to a terminal status.
type Transaction struct {
	ID            uint64          `gorm:"primaryKey;column:id" json:"-"`
	ReferenceCode string          `gorm:"column:reference_code;size:20;uniqueIndex:ux_transactions_reference" json:"reference_code"`
	WalletID      uint64          `gorm:"column:wallet_id;index" json:"-"`
	UserID        string          `gorm:"column:user_id;size:32;index" json:"user_id"`
	Type          Type            `gorm:"size:20;not null" json:"type"`
	Status        Status          `gorm:"size:10;not null" json:"status"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	Fee           decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"fee"`
	NetAmount     decimal.Decimal `gorm:"column:net_amount;type:decimal(18,2);not null" json:"net_amount"`
	BalanceBefore decimal.Decimal `gorm:"column:balance_before;type:decimal(18,2);not null" json:"balance_before"`
	BalanceAfter  decimal.Decimal `gorm:"column:balance_after;type:decimal(18,2);not null" json:"balance_after"`
	Currency      string          `gorm:"size:3;default:'VND'" json:"currency"`
	LoanID        *uint64         `gorm:"column:loan_id;index" json:"loan_id,omitempty"`
	InvestmentID  *uint64         `gorm:"column:investment_id;index" json:"investment_id,omitempty"`
	RepaymentID   *uint64         `gorm:"column:repayment_id;index" json:"repayment_id,omitempty"`
	Description   string          `gorm:"type:text" json:"description"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"-"`
}

func (Transaction) TableName() string { return "transactions" }
