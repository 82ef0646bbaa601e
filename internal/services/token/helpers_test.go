package token

import (
	"context"
	"errors"
	"maps"
	"testing"

	"tribute/internal/models"
	"tribute/internal/repositories"

	"github.com/stretchr/testify/require"
)

// addr builds a deterministic non-zero test address.
func addr(b byte) models.Address {
	var a models.Address
	a[models.AddressLength-1] = b
	return a
}

var (
	deployerAddr = addr(0xD1)
	treasuryAddr = addr(0x71)
	holderAddr   = addr(0x01)
	otherAddr    = addr(0x02)
)

// memLedger is an in-memory LedgerRepository with transactional rollback.
type memLedger struct {
	balances   map[models.Address]uint64
	allowances map[[2]models.Address]uint64
	movements  []models.Movement
}

func newMemLedger() *memLedger {
	return &memLedger{
		balances:   make(map[models.Address]uint64),
		allowances: make(map[[2]models.Address]uint64),
	}
}

func (l *memLedger) BalanceOf(a models.Address) (uint64, error) {
	return l.balances[a], nil
}

func (l *memLedger) Credit(a models.Address, amount uint64) error {
	l.balances[a] += amount
	return nil
}

func (l *memLedger) Debit(a models.Address, amount uint64) error {
	if l.balances[a] < amount {
		return repositories.ErrInsufficientBalance
	}
	l.balances[a] -= amount
	return nil
}

func (l *memLedger) AllowanceOf(owner, spender models.Address) (uint64, error) {
	return l.allowances[[2]models.Address{owner, spender}], nil
}

func (l *memLedger) SetAllowance(owner, spender models.Address, amount uint64) error {
	l.allowances[[2]models.Address{owner, spender}] = amount
	return nil
}

func (l *memLedger) RecordMovement(m *models.Movement) error {
	l.movements = append(l.movements, *m)
	return nil
}

func (l *memLedger) TotalSupply() (uint64, error) {
	var total uint64
	for _, amount := range l.balances {
		total += amount
	}
	return total, nil
}

func (l *memLedger) ExecuteInTransaction(fn func(repositories.LedgerRepository) error) error {
	balances := maps.Clone(l.balances)
	allowances := maps.Clone(l.allowances)
	journaled := len(l.movements)
	if err := fn(l); err != nil {
		l.balances = balances
		l.allowances = allowances
		l.movements = l.movements[:journaled]
		return err
	}
	return nil
}

// memState is an in-memory StateRepository with transactional rollback.
type memState struct {
	state      *models.LedgerState
	exemptions map[models.Address]bool
}

func newMemState() *memState {
	return &memState{exemptions: make(map[models.Address]bool)}
}

func (s *memState) GetState() (*models.LedgerState, error) {
	if s.state == nil {
		return nil, repositories.ErrStateNotFound
	}
	st := *s.state
	return &st, nil
}

func (s *memState) CreateState(state *models.LedgerState) error {
	st := *state
	s.state = &st
	return nil
}

func (s *memState) UpdateState(state *models.LedgerState) error {
	st := *state
	s.state = &st
	return nil
}

func (s *memState) SetExemption(a models.Address, exempt bool) error {
	s.exemptions[a] = exempt
	return nil
}

func (s *memState) GetExemptions() (map[models.Address]bool, error) {
	return maps.Clone(s.exemptions), nil
}

func (s *memState) ExecuteInTransaction(fn func(repositories.StateRepository) error) error {
	var stateCopy *models.LedgerState
	if s.state != nil {
		st := *s.state
		stateCopy = &st
	}
	exemptions := maps.Clone(s.exemptions)
	if err := fn(s); err != nil {
		s.state = stateCopy
		s.exemptions = exemptions
		return err
	}
	return nil
}

var (
	errLedgerDown = errors.New("ledger unavailable")
	errStateDown  = errors.New("state store unavailable")
)

// faultyLedger fails the next `failures` transactions, then behaves normally.
type faultyLedger struct {
	*memLedger
	failures int
}

func (l *faultyLedger) ExecuteInTransaction(fn func(repositories.LedgerRepository) error) error {
	if l.failures > 0 {
		l.failures--
		return errLedgerDown
	}
	return l.memLedger.ExecuteInTransaction(fn)
}

// faultyState fails the next `failures` transactions, then behaves normally.
type faultyState struct {
	*memState
	failures int
}

func (s *faultyState) ExecuteInTransaction(fn func(repositories.StateRepository) error) error {
	if s.failures > 0 {
		s.failures--
		return errStateDown
	}
	return s.memState.ExecuteInTransaction(fn)
}

// recordingSink captures emitted events for assertions.
type recordingSink struct {
	events []Event
}

func (s *recordingSink) Emit(event Event) {
	s.events = append(s.events, event)
}

func (s *recordingSink) ofType(t EventType) []Event {
	var out []Event
	for _, e := range s.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// fixture bundles a freshly initialized service with its collaborators. The
// deployer is the administrator.
type fixture struct {
	svc    Service
	ledger *memLedger
	state  *memState
	sink   *recordingSink
}

func newFixture(t *testing.T, feePercent uint64) *fixture {
	t.Helper()

	ledger := newMemLedger()
	state := newMemState()
	sink := &recordingSink{}
	svc := NewService(ledger, state, StaticAccessGate{Admin: deployerAddr}, sink, nil)

	err := svc.Initialize(context.Background(), InitParams{
		Name:       "Tribute",
		Symbol:     "TRB",
		Treasury:   treasuryAddr,
		FeePercent: feePercent,
		Deployer:   deployerAddr,
	})
	require.NoError(t, err)

	return &fixture{svc: svc, ledger: ledger, state: state, sink: sink}
}

// unexemptDeployer drops the deployer's construction-time exemption so taxed
// paths can be exercised from the funded account.
func (f *fixture) unexemptDeployer(t *testing.T) {
	t.Helper()
	require.NoError(t, f.svc.SetFeeExempt(context.Background(), deployerAddr, deployerAddr, false))
}

// fund moves amount from the deployer to an account without fees.
func (f *fixture) fund(t *testing.T, to models.Address, amount uint64) {
	t.Helper()
	f.ledger.balances[deployerAddr] -= amount
	f.ledger.balances[to] += amount
}
