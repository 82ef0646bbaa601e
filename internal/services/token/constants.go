package token

// Display precision of amounts. All amounts are integer base units.
const Decimals = 8

// InitialSupply is minted to the deployer when the ledger is first
// initialized: 1,000,000 tokens scaled by Decimals.
const InitialSupply uint64 = 1_000_000 * 1e8

// MaxFeePercent bounds the fee policy.
const MaxFeePercent uint64 = 100
