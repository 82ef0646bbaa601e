package repositories

import "tribute/internal/models"

// StateRepository persists the fee policy, the halt flag and the per-account
// exemption flags. Exemption rows are only flipped, never deleted.
type StateRepository interface {
	GetState() (*models.LedgerState, error)
	CreateState(state *models.LedgerState) error
	UpdateState(state *models.LedgerState) error

	SetExemption(addr models.Address, exempt bool) error
	GetExemptions() (map[models.Address]bool, error)

	// ExecuteInTransaction runs fn against a transactional view so a config
	// change and its side effects (e.g. exempting a new treasury) land
	// together.
	ExecuteInTransaction(fn func(StateRepository) error) error
}
