// Package code builds the short human-facing reference codes that appear on
// transactions and repayments ("TXN-1A2B3C4D"). They are display handles, not
// primary keys; uniqueness is still enforced by the database index.
package code

import (
	"strings"

	"github.com/google/uuid"
)

func generate(prefix string) string {
	u := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + "-" + strings.ToUpper(u[:8])
}

func Transaction() string { return generate("TXN") }
func Repayment() string   { return generate("REP") }
func Loan() string        { return generate("LN") }
func Investment() string  { return generate("INV") }
