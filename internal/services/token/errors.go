package token

import "errors"

// Service errors
var (
	// Configuration errors
	ErrInvalidTreasury    = errors.New("invalid treasury: null account")
	ErrInvalidFeePercent  = errors.New("invalid fee percent: must be at most 100")
	ErrInvalidAccount     = errors.New("invalid account: null account")
	ErrNotInitialized     = errors.New("ledger not initialized")
	ErrAlreadyInitialized = errors.New("ledger already initialized")

	// Transfer errors
	ErrZeroAddressSender    = errors.New("sender is the null account")
	ErrZeroAddressRecipient = errors.New("recipient is the null account")
	ErrTransfersHalted      = errors.New("transfers are halted")
	ErrAllowanceExceeded    = errors.New("allowance exceeded")

	// Authorization errors
	ErrNotAuthorized = errors.New("caller is not the administrator")
)
