package token

import "tribute/internal/models"

// InitParams are the construction parameters of the ledger. Applied once;
// subsequent boots load the persisted state instead.
type InitParams struct {
	Name       string
	Symbol     string
	Treasury   models.Address
	FeePercent uint64
	Deployer   models.Address
}

// TokenInfo is the public read surface of the ledger configuration.
type TokenInfo struct {
	Name        string         `json:"name"`
	Symbol      string         `json:"symbol"`
	Decimals    uint8          `json:"decimals"`
	TotalSupply uint64         `json:"total_supply"`
	Treasury    models.Address `json:"treasury"`
	FeePercent  uint64         `json:"fee_percent"`
	Halted      bool           `json:"halted"`
}

// transferRequest is one orchestration step. Created per call, never stored.
type transferRequest struct {
	sender    models.Address
	recipient models.Address
	amount    uint64
	reference string
}
