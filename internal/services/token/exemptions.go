package token

import "tribute/internal/models"

// ExemptionRegistry tracks which accounts bypass the transfer fee. Entries
// are only ever flipped, never removed. Not safe for concurrent use on its
// own; the service serializes access.
type ExemptionRegistry struct {
	flags map[models.Address]bool
}

func NewExemptionRegistry() *ExemptionRegistry {
	return &ExemptionRegistry{flags: make(map[models.Address]bool)}
}

// IsExempt returns the stored flag, defaulting to false for accounts never
// explicitly set.
func (r *ExemptionRegistry) IsExempt(account models.Address) bool {
	return r.flags[account]
}

// Set flips the flag. Idempotent once validated.
func (r *ExemptionRegistry) Set(account models.Address, exempt bool) error {
	if account.IsZero() {
		return ErrInvalidAccount
	}
	r.flags[account] = exempt
	return nil
}

// seed stores a flag without the null-account check; used for the
// construction-time exemptions (null account, treasury, deployer).
func (r *ExemptionRegistry) seed(account models.Address, exempt bool) {
	r.flags[account] = exempt
}
