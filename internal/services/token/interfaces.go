package token

import (
	"context"

	"tribute/internal/models"
)

// Service defines the taxed-ledger service interface
type Service interface {
	// Lifecycle
	Load(ctx context.Context) error
	Initialize(ctx context.Context, params InitParams) error

	// Value movement
	Transfer(ctx context.Context, caller, recipient models.Address, amount uint64) error
	TransferFrom(ctx context.Context, spender, owner, recipient models.Address, amount uint64) error
	Approve(ctx context.Context, owner, spender models.Address, amount uint64) error

	// Read operations
	BalanceOf(ctx context.Context, addr models.Address) (uint64, error)
	AllowanceOf(ctx context.Context, owner, spender models.Address) (uint64, error)
	IsFeeExempt(addr models.Address) bool
	IsHalted() bool
	Info(ctx context.Context) (*TokenInfo, error)

	// Administrator operations
	SetTreasury(ctx context.Context, caller, newTreasury models.Address) error
	SetTaxFee(ctx context.Context, caller models.Address, percent uint64) error
	SetFeeExempt(ctx context.Context, caller, account models.Address, exempt bool) error
	Halt(ctx context.Context, caller models.Address) error
	Resume(ctx context.Context, caller models.Address) error
}

// AccessGate decides who the administrator is. Kept as an interface so the
// authorization policy is not hardwired into the ledger logic.
type AccessGate interface {
	IsAdministrator(account models.Address) bool
}

// StaticAccessGate authorizes a single fixed administrator account.
type StaticAccessGate struct {
	Admin models.Address
}

func (g StaticAccessGate) IsAdministrator(account models.Address) bool {
	return !account.IsZero() && account == g.Admin
}
