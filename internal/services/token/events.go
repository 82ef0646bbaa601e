package token

import (
	"log"
	"time"

	"tribute/internal/models"
)

// EventType identifies a change notification.
type EventType string

const (
	EventTreasuryUpdated     EventType = "treasury_updated"
	EventTaxFeeUpdated       EventType = "tax_fee_updated"
	EventFeeExemptionUpdated EventType = "fee_exemption_updated"
	EventFeeCollected        EventType = "fee_collected"
	EventTransfersHalted     EventType = "transfers_halted"
	EventTransfersResumed    EventType = "transfers_resumed"
	EventApproval            EventType = "approval"
)

// Event is an observable change notification. Old/New carry the previous and
// current value for configuration changes, rendered as strings.
type Event struct {
	ID        string         `json:"id"`
	Type      EventType      `json:"type"`
	Account   models.Address `json:"account,omitempty"`
	Sender    models.Address `json:"sender,omitempty"`
	Treasury  models.Address `json:"treasury,omitempty"`
	Spender   models.Address `json:"spender,omitempty"`
	Amount    uint64         `json:"amount,omitempty"`
	Old       string         `json:"old,omitempty"`
	New       string         `json:"new,omitempty"`
	At        time.Time      `json:"at"`
}

// EventSink receives change notifications. Notifications are emitted only
// after the operation that produced them has committed.
type EventSink interface {
	Emit(event Event)
}

// LogSink writes notifications to the application log.
type LogSink struct{}

func (LogSink) Emit(event Event) {
	switch event.Type {
	case EventFeeCollected:
		log.Printf("event %s: sender=%s treasury=%s amount=%d", event.Type, event.Sender, event.Treasury, event.Amount)
	case EventFeeExemptionUpdated:
		log.Printf("event %s: account=%s exempt=%s", event.Type, event.Account, event.New)
	case EventApproval:
		log.Printf("event %s: owner=%s spender=%s amount=%d", event.Type, event.Sender, event.Spender, event.Amount)
	default:
		log.Printf("event %s: old=%s new=%s", event.Type, event.Old, event.New)
	}
}

// noopSink drops notifications; used when no sink is configured.
type noopSink struct{}

func (noopSink) Emit(Event) {}
