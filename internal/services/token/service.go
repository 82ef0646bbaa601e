package token

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"tribute/internal/models"
	"tribute/internal/repositories"

	"github.com/google/uuid"
)

type service struct {
	ledger  repositories.LedgerRepository
	state   repositories.StateRepository
	access  AccessGate
	events  EventSink
	metrics MetricsCollector

	// mu serializes transfers and admin mutations so a configuration change
	// is never observable mid-transfer.
	mu         sync.Mutex
	ready      bool
	name       string
	symbol     string
	deployer   models.Address
	policy     *FeePolicy
	exemptions *ExemptionRegistry
	gate       *TransferGate
}

// NewService creates a new taxed-ledger service. The returned service must
// be loaded (or initialized) before it accepts operations.
func NewService(
	ledger repositories.LedgerRepository,
	state repositories.StateRepository,
	access AccessGate,
	events EventSink,
	metrics MetricsCollector,
) Service {
	if ledger == nil {
		panic("ledger repository is required")
	}
	if state == nil {
		panic("state repository is required")
	}
	if access == nil {
		panic("access gate is required")
	}

	// Event sink and metrics are optional
	if events == nil {
		events = noopSink{}
	}
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}

	return &service{
		ledger:     ledger,
		state:      state,
		access:     access,
		events:     events,
		metrics:    metrics,
		exemptions: NewExemptionRegistry(),
		gate:       NewTransferGate(false),
	}
}

// Load restores the fee policy, exemptions and halt flag from the persisted
// state. Returns ErrNotInitialized when the ledger has never been set up.
func (s *service) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.state.GetState()
	if err != nil {
		if errors.Is(err, repositories.ErrStateNotFound) {
			return ErrNotInitialized
		}
		return fmt.Errorf("failed to load ledger state: %w", err)
	}

	policy, err := NewFeePolicy(st.Treasury, st.FeePercent)
	if err != nil {
		return fmt.Errorf("persisted state is invalid: %w", err)
	}

	flags, err := s.state.GetExemptions()
	if err != nil {
		return fmt.Errorf("failed to load exemptions: %w", err)
	}
	registry := NewExemptionRegistry()
	for addr, exempt := range flags {
		registry.seed(addr, exempt)
	}

	s.name = st.Name
	s.symbol = st.Symbol
	s.deployer = st.Deployer
	s.policy = policy
	s.exemptions = registry
	s.gate = NewTransferGate(st.Halted)
	s.ready = true
	return nil
}

// Initialize sets up the ledger: validates the construction parameters,
// seeds the exemptions (null account, treasury, deployer) and mints the
// initial supply to the deployer.
func (s *service) Initialize(ctx context.Context, params InitParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ready {
		return ErrAlreadyInitialized
	}
	if _, err := s.state.GetState(); err == nil {
		return ErrAlreadyInitialized
	} else if !errors.Is(err, repositories.ErrStateNotFound) {
		return fmt.Errorf("failed to check ledger state: %w", err)
	}

	if params.Deployer.IsZero() {
		return ErrInvalidAccount
	}
	policy, err := NewFeePolicy(params.Treasury, params.FeePercent)
	if err != nil {
		return err
	}

	// The mint lands before the state row: Load treats a missing row as
	// uninitialized, so a failure between the two steps leaves the ledger
	// retryable instead of booted without supply. A retry finds the supply
	// already minted and skips the credit.
	err = s.ledger.ExecuteInTransaction(func(tx repositories.LedgerRepository) error {
		total, err := tx.TotalSupply()
		if err != nil {
			return err
		}
		if total != 0 {
			return nil
		}
		if err := tx.Credit(params.Deployer, InitialSupply); err != nil {
			return err
		}
		return tx.RecordMovement(&models.Movement{
			Reference: uuid.NewString(),
			Type:      models.MovementTypeMint,
			Sender:    models.ZeroAddress,
			Recipient: params.Deployer,
			Amount:    InitialSupply,
		})
	})
	if err != nil {
		return fmt.Errorf("failed to mint initial supply: %w", err)
	}

	err = s.state.ExecuteInTransaction(func(tx repositories.StateRepository) error {
		if err := tx.CreateState(&models.LedgerState{
			Name:       params.Name,
			Symbol:     params.Symbol,
			Treasury:   params.Treasury,
			FeePercent: params.FeePercent,
			Deployer:   params.Deployer,
		}); err != nil {
			return err
		}
		for _, addr := range []models.Address{models.ZeroAddress, params.Treasury, params.Deployer} {
			if err := tx.SetExemption(addr, true); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.name = params.Name
	s.symbol = params.Symbol
	s.deployer = params.Deployer
	s.policy = policy
	s.exemptions = NewExemptionRegistry()
	s.exemptions.seed(models.ZeroAddress, true)
	s.exemptions.seed(params.Treasury, true)
	s.exemptions.seed(params.Deployer, true)
	s.gate = NewTransferGate(false)
	s.ready = true

	log.Printf("ledger initialized: %s (%s), treasury=%s, fee=%d%%, supply=%d",
		params.Name, params.Symbol, params.Treasury, params.FeePercent, InitialSupply)
	return nil
}

func (s *service) BalanceOf(ctx context.Context, addr models.Address) (uint64, error) {
	if err := s.requireReady(); err != nil {
		return 0, err
	}
	return s.ledger.BalanceOf(addr)
}

func (s *service) AllowanceOf(ctx context.Context, owner, spender models.Address) (uint64, error) {
	if err := s.requireReady(); err != nil {
		return 0, err
	}
	return s.ledger.AllowanceOf(owner, spender)
}

func (s *service) IsFeeExempt(addr models.Address) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready && s.exemptions.IsExempt(addr)
}

func (s *service) IsHalted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready && s.gate.IsHalted()
}

func (s *service) Info(ctx context.Context) (*TokenInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return nil, ErrNotInitialized
	}

	supply, err := s.ledger.TotalSupply()
	if err != nil {
		return nil, fmt.Errorf("failed to get total supply: %w", err)
	}
	return &TokenInfo{
		Name:        s.name,
		Symbol:      s.symbol,
		Decimals:    Decimals,
		TotalSupply: supply,
		Treasury:    s.policy.Treasury(),
		FeePercent:  s.policy.Percent(),
		Halted:      s.gate.IsHalted(),
	}, nil
}

func (s *service) requireReady() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return ErrNotInitialized
	}
	return nil
}

// flush emits notifications gathered during a committed operation and
// records the fee volume they carry.
func (s *service) flush(events []Event) {
	for _, event := range events {
		if event.Type == EventFeeCollected {
			s.metrics.RecordFeeCollected(event.Amount)
		}
		s.events.Emit(event)
	}
}
