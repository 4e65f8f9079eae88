package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusCollector(t *testing.T) {
	pc := NewPrometheusCollector("test")
	reg := prometheus.NewRegistry()
	require.NoError(t, pc.Register(reg))

	pc.RecordTradeCreated("USDT")
	pc.RecordTradeCreated("USDT")
	pc.RecordTradeSettled("win", false, 10*time.Millisecond)
	pc.RecordTradeSettled("lose", true, 5*time.Millisecond)
	pc.RecordSettleConflict()
	pc.RecordTradeFailed("sweep")
	pc.RecordSweep(3, time.Second)
	pc.RecordReviewRequested("DEPOSIT")
	pc.RecordReviewResolved("DEPOSIT", "approve")
	pc.RecordOracleFallback("BTC", "USD")
	pc.RecordCircuitState("cryptocompare", "open")

	assert.Equal(t, 2.0, testutil.ToFloat64(pc.tradesCreated.WithLabelValues("USDT")))
	assert.Equal(t, 1.0, testutil.ToFloat64(pc.tradesSettled.WithLabelValues("lose", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(pc.settleConflicts))
	assert.Equal(t, 3.0, testutil.ToFloat64(pc.sweepFailed))
	assert.Equal(t, 1.0, testutil.ToFloat64(pc.reviewsResolved.WithLabelValues("DEPOSIT", "approve")))
	assert.Equal(t, 1.0, testutil.ToFloat64(pc.oracleFallbacks.WithLabelValues("BTC", "USD")))
	assert.Equal(t, 1.0, testutil.ToFloat64(pc.circuitState.WithLabelValues("cryptocompare")))
	assert.Equal(t, 2, testutil.CollectAndCount(pc.tradesSettled))

	pc.RecordCircuitState("cryptocompare", "closed")
	assert.Equal(t, 0.0, testutil.ToFloat64(pc.circuitState.WithLabelValues("cryptocompare")))

	assert.Error(t, pc.Register(reg), "double registration is rejected")
}
