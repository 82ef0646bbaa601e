package token

import (
	"context"
	"time"

	"tribute/internal/models"
	"tribute/internal/repositories"

	"github.com/google/uuid"
)

// Transfer moves amount from the caller to the recipient, splitting off the
// fee leg unless either party is exempt or the fee is zero.
func (s *service) Transfer(ctx context.Context, caller, recipient models.Address, amount uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return ErrNotInitialized
	}

	req := transferRequest{
		sender:    caller,
		recipient: recipient,
		amount:    amount,
		reference: uuid.NewString(),
	}
	var events []Event
	err := s.ledger.ExecuteInTransaction(func(tx repositories.LedgerRepository) error {
		return s.transferWithFee(tx, req, &events)
	})
	if err != nil {
		s.metrics.RecordError("transfer", err.Error())
		return err
	}

	s.flush(events)
	s.metrics.RecordTransfer(models.MovementTypeTransfer, amount)
	return nil
}

// TransferFrom moves amount from owner to recipient on behalf of spender.
// The owner→spender allowance is checked against the full requested amount
// and decremented after the movement, matching the source ordering; the
// surrounding transaction rolls the legs back when the allowance falls short.
func (s *service) TransferFrom(ctx context.Context, spender, owner, recipient models.Address, amount uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return ErrNotInitialized
	}

	req := transferRequest{
		sender:    owner,
		recipient: recipient,
		amount:    amount,
		reference: uuid.NewString(),
	}
	var events []Event
	err := s.ledger.ExecuteInTransaction(func(tx repositories.LedgerRepository) error {
		if err := s.transferWithFee(tx, req, &events); err != nil {
			return err
		}

		allowance, err := tx.AllowanceOf(owner, spender)
		if err != nil {
			return err
		}
		if allowance < amount {
			return ErrAllowanceExceeded
		}
		return tx.SetAllowance(owner, spender, allowance-amount)
	})
	if err != nil {
		s.metrics.RecordError("transfer_from", err.Error())
		return err
	}

	s.flush(events)
	s.metrics.RecordTransfer(models.MovementTypeTransfer, amount)
	return nil
}

// Approve sets the owner→spender allowance outright.
func (s *service) Approve(ctx context.Context, owner, spender models.Address, amount uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return ErrNotInitialized
	}
	if owner.IsZero() || spender.IsZero() {
		return ErrInvalidAccount
	}

	if err := s.ledger.SetAllowance(owner, spender, amount); err != nil {
		s.metrics.RecordError("approve", err.Error())
		return err
	}

	s.events.Emit(Event{
		ID:      uuid.NewString(),
		Type:    EventApproval,
		Sender:  owner,
		Spender: spender,
		Amount:  amount,
		At:      time.Now(),
	})
	return nil
}

// transferWithFee is the single orchestration step behind every transfer
// path. It validates the parties, runs the pre-movement hook, resolves
// exemption and issues one or two ledger legs. The combined debit of a taxed
// transfer equals the requested amount exactly.
func (s *service) transferWithFee(tx repositories.LedgerRepository, req transferRequest, events *[]Event) error {
	if req.sender.IsZero() {
		return ErrZeroAddressSender
	}
	if req.recipient.IsZero() {
		return ErrZeroAddressRecipient
	}
	if err := s.beforeMovement(); err != nil {
		return err
	}

	exempt := s.exemptions.IsExempt(req.sender) || s.exemptions.IsExempt(req.recipient)
	if s.policy.Percent() == 0 || exempt {
		return s.moveFull(tx, req)
	}

	fee := s.policy.ComputeFee(req.amount)
	if fee == 0 {
		// Rounded to zero for small amounts; deliver the full amount.
		return s.moveFull(tx, req)
	}

	treasury := s.policy.Treasury()
	if err := s.move(tx, req.sender, treasury, fee, models.MovementTypeFee, req.reference); err != nil {
		return err
	}
	*events = append(*events, Event{
		ID:       uuid.NewString(),
		Type:     EventFeeCollected,
		Sender:   req.sender,
		Treasury: treasury,
		Amount:   fee,
		At:       time.Now(),
	})

	return s.move(tx, req.sender, req.recipient, req.amount-fee, models.MovementTypeTransfer, req.reference)
}

// beforeMovement is the shared pre-movement hook; every code path that moves
// value goes through it.
func (s *service) beforeMovement() error {
	if s.gate.IsHalted() {
		return ErrTransfersHalted
	}
	return nil
}

func (s *service) moveFull(tx repositories.LedgerRepository, req transferRequest) error {
	return s.move(tx, req.sender, req.recipient, req.amount, models.MovementTypeTransfer, req.reference)
}

// move performs one ledger leg and journals it. Ledger failures propagate
// unmodified so the caller can roll back the whole operation.
func (s *service) move(tx repositories.LedgerRepository, from, to models.Address, amount uint64, movementType, reference string) error {
	if err := tx.Debit(from, amount); err != nil {
		return err
	}
	if err := tx.Credit(to, amount); err != nil {
		return err
	}
	return tx.RecordMovement(&models.Movement{
		Reference: reference,
		Type:      movementType,
		Sender:    from,
		Recipient: to,
		Amount:    amount,
	})
}
