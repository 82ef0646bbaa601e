package models

import "time"

// Movement types
const (
	MovementTypeTransfer = "transfer"
	MovementTypeFee      = "fee"
	MovementTypeMint     = "mint"
)

// Movement journals one ledger leg. A taxed transfer produces two rows (fee
// leg and net leg) sharing a Reference; an untaxed transfer produces one.
type Movement struct {
	ID        uint    `gorm:"primarykey"`
	Reference string  `gorm:"type:varchar(36);index;not null"` // uuid shared by the legs of one operation
	Type      string  `gorm:"not null"`
	Sender    Address `gorm:"type:varchar(42);index;not null"`
	Recipient Address `gorm:"type:varchar(42);index;not null"`
	Amount    uint64  `gorm:"not null"`
	CreatedAt time.Time
}
