package token

import (
	"context"
	"testing"

	"tribute/internal/models"
	"tribute/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewService_RequiresDependencies(t *testing.T) {
	ledger := newMemLedger()
	state := newMemState()
	gate := StaticAccessGate{Admin: deployerAddr}

	assert.Panics(t, func() { NewService(nil, state, gate, nil, nil) })
	assert.Panics(t, func() { NewService(ledger, nil, gate, nil, nil) })
	assert.Panics(t, func() { NewService(ledger, state, nil, nil, nil) })
	assert.NotPanics(t, func() { NewService(ledger, state, gate, nil, nil) })
}

func TestService_Initialize(t *testing.T) {
	ctx := context.Background()

	t.Run("validates construction parameters", func(t *testing.T) {
		svc := NewService(newMemLedger(), newMemState(), StaticAccessGate{Admin: deployerAddr}, nil, nil)

		err := svc.Initialize(ctx, InitParams{Treasury: models.ZeroAddress, FeePercent: 10, Deployer: deployerAddr})
		assert.ErrorIs(t, err, ErrInvalidTreasury)

		err = svc.Initialize(ctx, InitParams{Treasury: treasuryAddr, FeePercent: 101, Deployer: deployerAddr})
		assert.ErrorIs(t, err, ErrInvalidFeePercent)

		err = svc.Initialize(ctx, InitParams{Treasury: treasuryAddr, FeePercent: 10, Deployer: models.ZeroAddress})
		assert.ErrorIs(t, err, ErrInvalidAccount)
	})

	t.Run("mints the initial supply to the deployer", func(t *testing.T) {
		f := newFixture(t, 10)

		balance, err := f.svc.BalanceOf(ctx, deployerAddr)
		require.NoError(t, err)
		assert.Equal(t, InitialSupply, balance)

		total, err := f.ledger.TotalSupply()
		require.NoError(t, err)
		assert.Equal(t, InitialSupply, total)

		require.Len(t, f.ledger.movements, 1)
		assert.Equal(t, models.MovementTypeMint, f.ledger.movements[0].Type)
	})

	t.Run("seeds the construction exemptions", func(t *testing.T) {
		f := newFixture(t, 10)

		assert.True(t, f.svc.IsFeeExempt(models.ZeroAddress))
		assert.True(t, f.svc.IsFeeExempt(treasuryAddr))
		assert.True(t, f.svc.IsFeeExempt(deployerAddr))
		assert.False(t, f.svc.IsFeeExempt(holderAddr))
	})

	t.Run("refuses a second initialization", func(t *testing.T) {
		f := newFixture(t, 10)
		err := f.svc.Initialize(ctx, InitParams{
			Name: "Tribute", Symbol: "TRB",
			Treasury: treasuryAddr, FeePercent: 10, Deployer: deployerAddr,
		})
		assert.ErrorIs(t, err, ErrAlreadyInitialized)
	})
}

func TestService_Initialize_FailedMintIsRetryable(t *testing.T) {
	ctx := context.Background()
	ledger := &faultyLedger{memLedger: newMemLedger(), failures: 1}
	state := newMemState()
	svc := NewService(ledger, state, StaticAccessGate{Admin: deployerAddr}, nil, nil)

	params := InitParams{
		Name: "Tribute", Symbol: "TRB",
		Treasury: treasuryAddr, FeePercent: 10, Deployer: deployerAddr,
	}

	err := svc.Initialize(ctx, params)
	require.ErrorIs(t, err, errLedgerDown)

	// Nothing was committed: no state row, no supply, still uninitialized.
	_, err = state.GetState()
	assert.ErrorIs(t, err, repositories.ErrStateNotFound)
	total, err := ledger.TotalSupply()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), total)
	assert.ErrorIs(t, svc.Load(ctx), ErrNotInitialized)

	// The retry completes the initialization.
	require.NoError(t, svc.Initialize(ctx, params))
	balance, err := svc.BalanceOf(ctx, deployerAddr)
	require.NoError(t, err)
	assert.Equal(t, InitialSupply, balance)
}

func TestService_Initialize_FailedStateWriteDoesNotRemint(t *testing.T) {
	ctx := context.Background()
	ledger := newMemLedger()
	state := &faultyState{memState: newMemState(), failures: 1}
	svc := NewService(ledger, state, StaticAccessGate{Admin: deployerAddr}, nil, nil)

	params := InitParams{
		Name: "Tribute", Symbol: "TRB",
		Treasury: treasuryAddr, FeePercent: 10, Deployer: deployerAddr,
	}

	err := svc.Initialize(ctx, params)
	require.ErrorIs(t, err, errStateDown)
	assert.ErrorIs(t, svc.Load(ctx), ErrNotInitialized)

	// The retry creates the state row without minting a second supply.
	require.NoError(t, svc.Initialize(ctx, params))

	total, err := ledger.TotalSupply()
	require.NoError(t, err)
	assert.Equal(t, InitialSupply, total)
	require.Len(t, ledger.movements, 1)
	assert.Equal(t, models.MovementTypeMint, ledger.movements[0].Type)
}

func TestService_Load_RestoresPersistedState(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 10)

	// Mutate the configuration, then boot a second service over the same
	// storage.
	require.NoError(t, f.svc.SetTaxFee(ctx, deployerAddr, 30))
	require.NoError(t, f.svc.SetFeeExempt(ctx, deployerAddr, holderAddr, true))
	require.NoError(t, f.svc.Halt(ctx, deployerAddr))

	reloaded := NewService(f.ledger, f.state, StaticAccessGate{Admin: deployerAddr}, nil, nil)
	require.NoError(t, reloaded.Load(ctx))

	info, err := reloaded.Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Tribute", info.Name)
	assert.Equal(t, "TRB", info.Symbol)
	assert.Equal(t, uint8(Decimals), info.Decimals)
	assert.Equal(t, treasuryAddr, info.Treasury)
	assert.Equal(t, uint64(30), info.FeePercent)
	assert.True(t, info.Halted)
	assert.Equal(t, InitialSupply, info.TotalSupply)

	assert.True(t, reloaded.IsFeeExempt(holderAddr))
	assert.True(t, reloaded.IsHalted())

	// The halt survives the reboot.
	err = reloaded.Transfer(ctx, deployerAddr, holderAddr, 1)
	assert.ErrorIs(t, err, ErrTransfersHalted)
}

func TestService_Load_NotInitialized(t *testing.T) {
	svc := NewService(newMemLedger(), newMemState(), StaticAccessGate{Admin: deployerAddr}, nil, nil)
	assert.ErrorIs(t, svc.Load(context.Background()), ErrNotInitialized)
}

func TestService_OperationsBeforeInitialization(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemLedger(), newMemState(), StaticAccessGate{Admin: deployerAddr}, nil, nil)

	assert.ErrorIs(t, svc.Transfer(ctx, deployerAddr, holderAddr, 1), ErrNotInitialized)
	assert.ErrorIs(t, svc.TransferFrom(ctx, holderAddr, deployerAddr, otherAddr, 1), ErrNotInitialized)
	assert.ErrorIs(t, svc.SetTaxFee(ctx, deployerAddr, 5), ErrNotInitialized)
	_, err := svc.BalanceOf(ctx, deployerAddr)
	assert.ErrorIs(t, err, ErrNotInitialized)
	_, err = svc.Info(ctx)
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestStaticAccessGate(t *testing.T) {
	gate := StaticAccessGate{Admin: deployerAddr}

	assert.True(t, gate.IsAdministrator(deployerAddr))
	assert.False(t, gate.IsAdministrator(holderAddr))
	assert.False(t, gate.IsAdministrator(models.ZeroAddress))

	// A gate with a zero admin authorizes nobody.
	empty := StaticAccessGate{}
	assert.False(t, empty.IsAdministrator(models.ZeroAddress))
}
