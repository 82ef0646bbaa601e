package models

import "time"

// LedgerState is the single-row configuration table backing the fee policy
// and the transfer gate: treasury, fee percent and the halted flag, plus the
// display metadata fixed at deployment.
type LedgerState struct {
	ID         uint    `gorm:"primarykey"`
	Name       string  `gorm:"not null"`
	Symbol     string  `gorm:"not null"`
	Treasury   Address `gorm:"type:varchar(42);not null"`
	FeePercent uint64  `gorm:"not null;default:0"`
	Halted     bool    `gorm:"not null;default:false"`
	Deployer   Address `gorm:"type:varchar(42);not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
