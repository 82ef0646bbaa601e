package token

// TransferGate is the global halt flag. While halted, every value-moving
// operation is rejected. Not safe for concurrent use on its own; the service
// serializes access.
type TransferGate struct {
	halted bool
}

func NewTransferGate(halted bool) *TransferGate {
	return &TransferGate{halted: halted}
}

func (g *TransferGate) IsHalted() bool {
	return g.halted
}

func (g *TransferGate) Halt() {
	g.halted = true
}

func (g *TransferGate) Resume() {
	g.halted = false
}
