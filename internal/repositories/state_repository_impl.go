package repositories

import (
	"errors"
	"fmt"

	"tribute/internal/models"

	"gorm.io/gorm"
)

type stateRepository struct {
	db *gorm.DB
}

func NewStateRepository(db *gorm.DB) StateRepository {
	return &stateRepository{db: db}
}

func (r *stateRepository) GetState() (*models.LedgerState, error) {
	var state models.LedgerState
	if err := r.db.First(&state).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStateNotFound
		}
		return nil, fmt.Errorf("failed to get ledger state: %w", err)
	}
	return &state, nil
}

func (r *stateRepository) CreateState(state *models.LedgerState) error {
	if err := r.db.Create(state).Error; err != nil {
		return fmt.Errorf("failed to create ledger state: %w", err)
	}
	return nil
}

func (r *stateRepository) UpdateState(state *models.LedgerState) error {
	if err := r.db.Save(state).Error; err != nil {
		return fmt.Errorf("failed to update ledger state: %w", err)
	}
	return nil
}

func (r *stateRepository) SetExemption(addr models.Address, exempt bool) error {
	var row models.Exemption
	err := r.db.Where("address = ?", addr).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row = models.Exemption{Address: addr, Exempt: exempt}
		if err := r.db.Create(&row).Error; err != nil {
			return fmt.Errorf("failed to create exemption: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get exemption: %w", err)
	}

	row.Exempt = exempt
	if err := r.db.Save(&row).Error; err != nil {
		return fmt.Errorf("failed to set exemption: %w", err)
	}
	return nil
}

func (r *stateRepository) GetExemptions() (map[models.Address]bool, error) {
	var rows []models.Exemption
	if err := r.db.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list exemptions: %w", err)
	}
	flags := make(map[models.Address]bool, len(rows))
	for _, row := range rows {
		flags[row.Address] = row.Exempt
	}
	return flags, nil
}

func (r *stateRepository) ExecuteInTransaction(fn func(StateRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&stateRepository{db: tx})
	})
}
