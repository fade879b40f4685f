package domain

import (
	"strconv"
	"strings"
)

// Account is a named, password-protected balance with an append-only
// transaction log. Accounts are created through the bank registry and
// identified by a fixed-width numeric account number that never changes.
type Account struct {
	Number       string
	Name         string
	PasswordHash string
	Balance      float64
	Transactions []string
}

// NewAccount builds an account with an empty transaction log.
// The password must already be hashed; plaintext never reaches the entity.
func NewAccount(number, name, passwordHash string, balance float64) *Account {
	return &Account{
		Number:       number,
		Name:         name,
		PasswordHash: passwordHash,
		Balance:      balance,
	}
}

// Deposit increases the balance and records the transaction.
// Amounts must be strictly positive; anything else leaves the account
// untouched and returns ErrInvalidAmount.
func (a *Account) Deposit(amount float64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	a.Balance += amount
	a.Transactions = append(a.Transactions, "Deposited: $"+FormatAmount(amount))
	return nil
}

// Withdraw decreases the balance and records the transaction. The amount
// must be strictly positive and covered by the current balance, keeping
// the balance non-negative at all times.
func (a *Account) Withdraw(amount float64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if a.Balance < amount {
		return ErrInsufficientFunds
	}
	a.Balance -= amount
	a.Transactions = append(a.Transactions, "Withdrawn: $"+FormatAmount(amount))
	return nil
}

// TransactionHistory returns a copy of the log in insertion order. A fresh
// account reports a single "No transactions yet." entry instead of an
// empty slice; callers print the result verbatim.
func (a *Account) TransactionHistory() []string {
	if len(a.Transactions) == 0 {
		return []string{"No transactions yet."}
	}
	out := make([]string, len(a.Transactions))
	copy(out, a.Transactions)
	return out
}

// FormatAmount renders a currency amount the way existing data files and
// transaction logs expect: shortest decimal form, with integral values
// keeping a trailing ".0" (50 -> "50.0", 20.5 -> "20.5").
func FormatAmount(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
