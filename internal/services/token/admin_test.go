package token

import (
	"context"
	"testing"

	"tribute/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_AdminOnlyMutators(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()
	intruder := holderAddr

	tests := []struct {
		name string
		call func() error
	}{
		{"set treasury", func() error { return f.svc.SetTreasury(ctx, intruder, otherAddr) }},
		{"set tax fee", func() error { return f.svc.SetTaxFee(ctx, intruder, 5) }},
		{"set fee exempt", func() error { return f.svc.SetFeeExempt(ctx, intruder, otherAddr, true) }},
		{"halt", func() error { return f.svc.Halt(ctx, intruder) }},
		{"resume", func() error { return f.svc.Resume(ctx, intruder) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.call(), ErrNotAuthorized)
		})
	}

	// State is untouched by rejected calls.
	assert.Equal(t, treasuryAddr, f.state.state.Treasury)
	assert.Equal(t, uint64(10), f.state.state.FeePercent)
	assert.False(t, f.state.state.Halted)
	assert.False(t, f.svc.IsFeeExempt(otherAddr))
	assert.Empty(t, f.sink.ofType(EventTreasuryUpdated))
}

func TestService_SetTreasury(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()
	newTreasury := addr(0x72)

	t.Run("rejects null treasury", func(t *testing.T) {
		assert.ErrorIs(t, f.svc.SetTreasury(ctx, deployerAddr, models.ZeroAddress), ErrInvalidTreasury)
	})

	t.Run("redirects fees and exempts the new treasury", func(t *testing.T) {
		require.NoError(t, f.svc.SetTreasury(ctx, deployerAddr, newTreasury))

		assert.Equal(t, newTreasury, f.state.state.Treasury)
		assert.True(t, f.svc.IsFeeExempt(newTreasury))

		events := f.sink.ofType(EventTreasuryUpdated)
		require.Len(t, events, 1)
		assert.Equal(t, treasuryAddr.String(), events[0].Old)
		assert.Equal(t, newTreasury.String(), events[0].New)

		// Fees collected after the change land at the new treasury.
		f.unexemptDeployer(t)
		require.NoError(t, f.svc.Transfer(ctx, deployerAddr, holderAddr, 1000))
		assert.Equal(t, uint64(100), f.ledger.balances[newTreasury])
		assert.Equal(t, uint64(0), f.ledger.balances[treasuryAddr])
	})
}

func TestService_SetTreasury_OldTreasuryStaysExempt(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()
	newTreasury := addr(0x72)

	require.NoError(t, f.svc.SetTreasury(ctx, deployerAddr, newTreasury))

	// The old treasury's exemption flag is not revoked on change.
	assert.True(t, f.svc.IsFeeExempt(treasuryAddr))
	assert.True(t, f.state.exemptions[treasuryAddr])
}

func TestService_SetTaxFee(t *testing.T) {
	f := newFixture(t, 10)
	f.unexemptDeployer(t)
	ctx := context.Background()

	t.Run("rejects percent above 100", func(t *testing.T) {
		assert.ErrorIs(t, f.svc.SetTaxFee(ctx, deployerAddr, 101), ErrInvalidFeePercent)
		assert.Equal(t, uint64(10), f.state.state.FeePercent)
	})

	t.Run("takes effect for the next transfer", func(t *testing.T) {
		require.NoError(t, f.svc.SetTaxFee(ctx, deployerAddr, 25))
		assert.Equal(t, uint64(25), f.state.state.FeePercent)

		events := f.sink.ofType(EventTaxFeeUpdated)
		require.Len(t, events, 1)
		assert.Equal(t, "10", events[0].Old)
		assert.Equal(t, "25", events[0].New)

		require.NoError(t, f.svc.Transfer(ctx, deployerAddr, holderAddr, 1000))
		assert.Equal(t, uint64(250), f.ledger.balances[treasuryAddr])
		assert.Equal(t, uint64(750), f.ledger.balances[holderAddr])
	})

	t.Run("boundary value 100 is accepted", func(t *testing.T) {
		assert.NoError(t, f.svc.SetTaxFee(ctx, deployerAddr, 100))
	})
}

func TestService_SetFeeExempt(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()

	t.Run("rejects the null account", func(t *testing.T) {
		assert.ErrorIs(t, f.svc.SetFeeExempt(ctx, deployerAddr, models.ZeroAddress, true), ErrInvalidAccount)
	})

	t.Run("persists and notifies", func(t *testing.T) {
		require.NoError(t, f.svc.SetFeeExempt(ctx, deployerAddr, holderAddr, true))
		assert.True(t, f.svc.IsFeeExempt(holderAddr))
		assert.True(t, f.state.exemptions[holderAddr])

		events := f.sink.ofType(EventFeeExemptionUpdated)
		require.Len(t, events, 1)
		assert.Equal(t, holderAddr, events[0].Account)
		assert.Equal(t, "true", events[0].New)

		require.NoError(t, f.svc.SetFeeExempt(ctx, deployerAddr, holderAddr, false))
		assert.False(t, f.svc.IsFeeExempt(holderAddr))
	})

	t.Run("exemption changes a subsequent transfer", func(t *testing.T) {
		f := newFixture(t, 10)
		f.unexemptDeployer(t)

		require.NoError(t, f.svc.SetFeeExempt(ctx, deployerAddr, holderAddr, true))
		require.NoError(t, f.svc.Transfer(ctx, deployerAddr, holderAddr, 1000))

		assert.Equal(t, uint64(1000), f.ledger.balances[holderAddr])
		assert.Equal(t, uint64(0), f.ledger.balances[treasuryAddr])
	})
}

func TestService_AdminMutator_PersistFailureLeavesPolicyUnchanged(t *testing.T) {
	ctx := context.Background()
	ledger := newMemLedger()
	state := &faultyState{memState: newMemState()}
	svc := NewService(ledger, state, StaticAccessGate{Admin: deployerAddr}, nil, nil)
	require.NoError(t, svc.Initialize(ctx, InitParams{
		Name: "Tribute", Symbol: "TRB",
		Treasury: treasuryAddr, FeePercent: 10, Deployer: deployerAddr,
	}))

	state.failures = 1
	require.ErrorIs(t, svc.SetTaxFee(ctx, deployerAddr, 25), errStateDown)
	assert.Equal(t, uint64(10), state.state.FeePercent)

	state.failures = 1
	require.ErrorIs(t, svc.SetTreasury(ctx, deployerAddr, addr(0x72)), errStateDown)
	assert.Equal(t, treasuryAddr, state.state.Treasury)

	// The next transfer still runs with the stored policy: 10% to the
	// original treasury.
	require.NoError(t, svc.SetFeeExempt(ctx, deployerAddr, deployerAddr, false))
	require.NoError(t, svc.Transfer(ctx, deployerAddr, holderAddr, 1000))
	assert.Equal(t, uint64(100), ledger.balances[treasuryAddr])
	assert.Equal(t, uint64(900), ledger.balances[holderAddr])
	assert.Equal(t, uint64(0), ledger.balances[addr(0x72)])
}

func TestService_HaltResume_PersistAndNotify(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()

	require.NoError(t, f.svc.Halt(ctx, deployerAddr))
	assert.True(t, f.svc.IsHalted())
	assert.True(t, f.state.state.Halted)
	require.Len(t, f.sink.ofType(EventTransfersHalted), 1)

	require.NoError(t, f.svc.Resume(ctx, deployerAddr))
	assert.False(t, f.svc.IsHalted())
	assert.False(t, f.state.state.Halted)
	require.Len(t, f.sink.ofType(EventTransfersResumed), 1)
}
