package domain

import "errors"

var (
	// ErrInvalidAmount rejects deposits and withdrawals of zero or
	// negative amounts.
	ErrInvalidAmount = errors.New("amount must be greater than zero")

	// ErrInsufficientFunds rejects withdrawals that would take the
	// balance below zero.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidCredentials is returned for both unknown account numbers
	// and wrong passwords, so callers cannot enumerate account numbers.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrMalformedStore marks a persisted registry that exists but cannot
	// be decoded. There is no recovery path; startup fails.
	ErrMalformedStore = errors.New("account store is malformed")
)
