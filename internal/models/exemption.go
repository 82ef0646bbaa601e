package models

import "time"

// Exemption marks an account whose transfers bypass the fee. Rows are only
// ever flipped, never deleted.
type Exemption struct {
	ID        uint    `gorm:"primarykey"`
	Address   Address `gorm:"type:varchar(42);uniqueIndex;not null"`
	Exempt    bool    `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
