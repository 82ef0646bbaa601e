package models

import "time"

// Balance is one account's holding. Amounts are integer base units
// (1 token = 10^8 units).
type Balance struct {
	ID        uint    `gorm:"primarykey"`
	Address   Address `gorm:"type:varchar(42);uniqueIndex;not null"`
	Amount    uint64  `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
