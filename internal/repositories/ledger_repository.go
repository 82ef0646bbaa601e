package repositories

import (
	"errors"

	"tribute/internal/models"
)

var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrStateNotFound       = errors.New("ledger state not found")
)

// LedgerRepository is the base balance/allowance ledger. Debits reject
// overdrafts; multi-leg operations run through ExecuteInTransaction so that
// either every leg applies or none does.
type LedgerRepository interface {
	// Balance operations
	BalanceOf(addr models.Address) (uint64, error)
	Credit(addr models.Address, amount uint64) error
	Debit(addr models.Address, amount uint64) error

	// Allowance operations
	AllowanceOf(owner, spender models.Address) (uint64, error)
	SetAllowance(owner, spender models.Address, amount uint64) error

	// Journal
	RecordMovement(m *models.Movement) error
	TotalSupply() (uint64, error)

	// ExecuteInTransaction runs fn against a transactional view of the
	// ledger; any error rolls back every change fn made.
	ExecuteInTransaction(fn func(LedgerRepository) error) error
}
