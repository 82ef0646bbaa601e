package token

// MetricsCollector defines the interface for collecting ledger metrics
type MetricsCollector interface {
	// Transfer metrics
	RecordTransfer(txType string, amount uint64)
	RecordFeeCollected(amount uint64)

	// Error metrics
	RecordError(operation, errType string)

	// Admin metrics
	RecordAdminAction(action string)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector
type NoopMetricsCollector struct{}

func (n *NoopMetricsCollector) RecordTransfer(string, uint64) {}
func (n *NoopMetricsCollector) RecordFeeCollected(uint64)     {}
func (n *NoopMetricsCollector) RecordError(string, string)    {}
func (n *NoopMetricsCollector) RecordAdminAction(string)      {}
