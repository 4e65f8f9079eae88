// Package metrics defines what the ledger services report about themselves.
// Backends live under infra/metrics.
package metrics

import "time"

// Recorder receives ledger events worth counting.
type Recorder interface {
	// Trades
	RecordTradeCreated(currency string)
	RecordTradeSettled(result string, manual bool, duration time.Duration)
	RecordSettleConflict()
	RecordTradeFailed(reason string)
	RecordSweep(failed int, duration time.Duration)

	// Review workflow
	RecordReviewRequested(kind string)
	RecordReviewResolved(kind, decision string)

	// Pricing
	RecordOracleFallback(from, to string)
	RecordCircuitState(name, state string)
}

// NoOp is a no-op implementation of Recorder.
// It's used as the default when metrics are disabled.
type NoOp struct{}

func (NoOp) RecordTradeCreated(string) {}
func (NoOp) RecordTradeSettled(string, bool, time.Duration) {}
func (NoOp) RecordSettleConflict() {}
func (NoOp) RecordTradeFailed(string) {}
func (NoOp) RecordSweep(int, time.Duration) {}
func (NoOp) RecordReviewRequested(string) {}
func (NoOp) RecordReviewResolved(string, string) {}
func (NoOp) RecordOracleFallback(string, string) {}
func (NoOp) RecordCircuitState(string, string) {}

var _ Recorder = NoOp{}
