package token

import (
	"context"
	"strconv"
	"time"

	"tribute/internal/models"
	"tribute/internal/repositories"

	"github.com/google/uuid"
)

// SetTreasury redirects collected fees to a new account. The new treasury
// becomes fee exempt; the old treasury's exemption flag stays set.
func (s *service) SetTreasury(ctx context.Context, caller, newTreasury models.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return ErrNotInitialized
	}
	if err := s.requireAdmin(caller, "set_treasury"); err != nil {
		return err
	}
	old, err := s.policy.SetTreasury(newTreasury)
	if err != nil {
		return err
	}

	err = s.state.ExecuteInTransaction(func(tx repositories.StateRepository) error {
		st, err := tx.GetState()
		if err != nil {
			return err
		}
		st.Treasury = newTreasury
		if err := tx.UpdateState(st); err != nil {
			return err
		}
		return tx.SetExemption(newTreasury, true)
	})
	if err != nil {
		// old held the policy before, so restoring it cannot fail.
		s.policy.SetTreasury(old)
		s.metrics.RecordError("set_treasury", err.Error())
		return err
	}

	s.exemptions.seed(newTreasury, true)
	s.metrics.RecordAdminAction("set_treasury")
	s.events.Emit(Event{
		ID:   uuid.NewString(),
		Type: EventTreasuryUpdated,
		Old:  old.String(),
		New:  newTreasury.String(),
		At:   time.Now(),
	})
	return nil
}

// SetTaxFee changes the fee percent, effective for the next transfer.
func (s *service) SetTaxFee(ctx context.Context, caller models.Address, percent uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return ErrNotInitialized
	}
	if err := s.requireAdmin(caller, "set_tax_fee"); err != nil {
		return err
	}
	old, err := s.policy.SetPercent(percent)
	if err != nil {
		return err
	}

	if err := s.persistState(func(st *models.LedgerState) {
		st.FeePercent = percent
	}); err != nil {
		s.policy.SetPercent(old)
		s.metrics.RecordError("set_tax_fee", err.Error())
		return err
	}

	s.metrics.RecordAdminAction("set_tax_fee")
	s.events.Emit(Event{
		ID:   uuid.NewString(),
		Type: EventTaxFeeUpdated,
		Old:  strconv.FormatUint(old, 10),
		New:  strconv.FormatUint(percent, 10),
		At:   time.Now(),
	})
	return nil
}

// SetFeeExempt flips the exemption flag for an account.
func (s *service) SetFeeExempt(ctx context.Context, caller, account models.Address, exempt bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return ErrNotInitialized
	}
	if err := s.requireAdmin(caller, "set_fee_exempt"); err != nil {
		return err
	}
	if account.IsZero() {
		return ErrInvalidAccount
	}

	if err := s.state.SetExemption(account, exempt); err != nil {
		s.metrics.RecordError("set_fee_exempt", err.Error())
		return err
	}

	s.exemptions.Set(account, exempt)
	s.metrics.RecordAdminAction("set_fee_exempt")
	s.events.Emit(Event{
		ID:      uuid.NewString(),
		Type:    EventFeeExemptionUpdated,
		Account: account,
		New:     strconv.FormatBool(exempt),
		At:      time.Now(),
	})
	return nil
}

// Halt rejects all value-moving operations until Resume.
func (s *service) Halt(ctx context.Context, caller models.Address) error {
	return s.setHalted(caller, true, "halt", EventTransfersHalted)
}

// Resume lifts the halt.
func (s *service) Resume(ctx context.Context, caller models.Address) error {
	return s.setHalted(caller, false, "resume", EventTransfersResumed)
}

func (s *service) setHalted(caller models.Address, halted bool, action string, eventType EventType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return ErrNotInitialized
	}
	if err := s.requireAdmin(caller, action); err != nil {
		return err
	}

	old := s.gate.IsHalted()
	if err := s.persistState(func(st *models.LedgerState) {
		st.Halted = halted
	}); err != nil {
		s.metrics.RecordError(action, err.Error())
		return err
	}

	if halted {
		s.gate.Halt()
	} else {
		s.gate.Resume()
	}
	s.metrics.RecordAdminAction(action)
	s.events.Emit(Event{
		ID:   uuid.NewString(),
		Type: eventType,
		Old:  strconv.FormatBool(old),
		New:  strconv.FormatBool(halted),
		At:   time.Now(),
	})
	return nil
}

// persistState applies mutate to the stored state row.
func (s *service) persistState(mutate func(*models.LedgerState)) error {
	return s.state.ExecuteInTransaction(func(tx repositories.StateRepository) error {
		st, err := tx.GetState()
		if err != nil {
			return err
		}
		mutate(st)
		return tx.UpdateState(st)
	})
}

func (s *service) requireAdmin(caller models.Address, operation string) error {
	if !s.access.IsAdministrator(caller) {
		s.metrics.RecordError(operation, "not_authorized")
		return ErrNotAuthorized
	}
	return nil
}
