package repositories

import (
	"errors"
	"fmt"

	"tribute/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ledgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) BalanceOf(addr models.Address) (uint64, error) {
	var balance models.Balance
	if err := r.db.Where("address = ?", addr).First(&balance).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}
	return balance.Amount, nil
}

func (r *ledgerRepository) Credit(addr models.Address, amount uint64) error {
	var balance models.Balance
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("address = ?", addr).First(&balance).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		balance = models.Balance{Address: addr, Amount: amount}
		if err := r.db.Create(&balance).Error; err != nil {
			return fmt.Errorf("failed to create balance: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get balance: %w", err)
	}

	balance.Amount += amount
	if err := r.db.Save(&balance).Error; err != nil {
		return fmt.Errorf("failed to credit balance: %w", err)
	}
	return nil
}

func (r *ledgerRepository) Debit(addr models.Address, amount uint64) error {
	var balance models.Balance
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("address = ?", addr).First(&balance).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrInsufficientBalance
	}
	if err != nil {
		return fmt.Errorf("failed to get balance: %w", err)
	}

	if balance.Amount < amount {
		return ErrInsufficientBalance
	}
	balance.Amount -= amount
	if err := r.db.Save(&balance).Error; err != nil {
		return fmt.Errorf("failed to debit balance: %w", err)
	}
	return nil
}

func (r *ledgerRepository) AllowanceOf(owner, spender models.Address) (uint64, error) {
	var allowance models.Allowance
	err := r.db.Where("owner = ? AND spender = ?", owner, spender).First(&allowance).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get allowance: %w", err)
	}
	return allowance.Amount, nil
}

func (r *ledgerRepository) SetAllowance(owner, spender models.Address, amount uint64) error {
	var allowance models.Allowance
	err := r.db.Where("owner = ? AND spender = ?", owner, spender).First(&allowance).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		allowance = models.Allowance{Owner: owner, Spender: spender, Amount: amount}
		if err := r.db.Create(&allowance).Error; err != nil {
			return fmt.Errorf("failed to create allowance: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get allowance: %w", err)
	}

	allowance.Amount = amount
	if err := r.db.Save(&allowance).Error; err != nil {
		return fmt.Errorf("failed to set allowance: %w", err)
	}
	return nil
}

func (r *ledgerRepository) RecordMovement(m *models.Movement) error {
	if err := r.db.Create(m).Error; err != nil {
		return fmt.Errorf("failed to record movement: %w", err)
	}
	return nil
}

func (r *ledgerRepository) TotalSupply() (uint64, error) {
	var total *uint64
	err := r.db.Model(&models.Balance{}).Select("SUM(amount)").Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum balances: %w", err)
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

func (r *ledgerRepository) ExecuteInTransaction(fn func(LedgerRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&ledgerRepository{db: tx})
	})
}
