package models

import "time"

// Allowance is the amount a spender may move on behalf of an owner.
type Allowance struct {
	ID        uint    `gorm:"primarykey"`
	Owner     Address `gorm:"type:varchar(42);uniqueIndex:idx_owner_spender;not null"`
	Spender   Address `gorm:"type:varchar(42);uniqueIndex:idx_owner_spender;not null"`
	Amount    uint64  `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
