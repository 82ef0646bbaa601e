package token

import (
	"math/bits"

	"tribute/internal/models"
)

// FeePolicy holds the treasury account and the fee percent and computes the
// fee for a transfer amount. Not safe for concurrent use on its own; the
// service serializes access.
type FeePolicy struct {
	treasury models.Address
	percent  uint64
}

// NewFeePolicy validates and stores the initial treasury and fee percent.
func NewFeePolicy(treasury models.Address, percent uint64) (*FeePolicy, error) {
	if treasury.IsZero() {
		return nil, ErrInvalidTreasury
	}
	if percent > MaxFeePercent {
		return nil, ErrInvalidFeePercent
	}
	return &FeePolicy{treasury: treasury, percent: percent}, nil
}

func (p *FeePolicy) Treasury() models.Address {
	return p.treasury
}

func (p *FeePolicy) Percent() uint64 {
	return p.percent
}

// SetTreasury replaces the treasury and returns the previous one.
func (p *FeePolicy) SetTreasury(treasury models.Address) (models.Address, error) {
	if treasury.IsZero() {
		return models.ZeroAddress, ErrInvalidTreasury
	}
	old := p.treasury
	p.treasury = treasury
	return old, nil
}

// SetPercent replaces the fee percent and returns the previous one.
func (p *FeePolicy) SetPercent(percent uint64) (uint64, error) {
	if percent > MaxFeePercent {
		return 0, ErrInvalidFeePercent
	}
	old := p.percent
	p.percent = percent
	return old, nil
}

// ComputeFee returns floor(amount * percent / 100). The multiplication runs
// through a 128-bit intermediate so it cannot overflow; the result never
// exceeds amount.
func (p *FeePolicy) ComputeFee(amount uint64) uint64 {
	if p.percent == 0 || amount == 0 {
		return 0
	}
	hi, lo := bits.Mul64(amount, p.percent)
	// hi < 100 because percent <= 100, so Div64 cannot panic.
	fee, _ := bits.Div64(hi, lo, 100)
	return fee
}
