/*
Package token implements a fungible-asset ledger with a configurable
transfer tax.

Every transfer either moves the full amount or splits it into a net leg to
the recipient and a fee leg routed to the treasury account. The fee is
floor(amount * percent / 100); transfers where the sender or the recipient is
fee exempt, where the fee percent is zero, or where the fee rounds down to
zero move the full amount in a single leg. A privileged administrator can
redirect the treasury, change the fee percent, toggle per-account exemption
and halt or resume all transfers.

Usage:

	svc := token.NewService(ledgerRepo, stateRepo, gate, token.LogSink{}, nil)

	// First boot
	err := svc.Initialize(ctx, token.InitParams{
	    Name:       "Tribute",
	    Symbol:     "TRB",
	    Treasury:   treasury,
	    FeePercent: 10,
	    Deployer:   deployer,
	})

	// Subsequent boots
	err = svc.Load(ctx)

	// Move value
	err = svc.Transfer(ctx, sender, recipient, amount)

Error Handling:

The service returns specific errors for different scenarios:
- ErrInvalidTreasury, ErrInvalidFeePercent, ErrInvalidAccount: configuration misuse
- ErrZeroAddressSender, ErrZeroAddressRecipient: null-account transfer parties
- ErrTransfersHalted: the gate is down
- ErrAllowanceExceeded: TransferFrom beyond the approved amount
- ErrNotAuthorized: admin operation from a non-administrator

Ledger failures (e.g. repositories.ErrInsufficientBalance) propagate
unmodified. Any failure aborts the entire operation with no partial state
mutation: both legs of a taxed transfer run inside one ledger transaction.

Concurrency:

A single service mutex serializes transfers and admin mutations, so a
configuration change is atomic with respect to any in-flight transfer.
*/
package token
