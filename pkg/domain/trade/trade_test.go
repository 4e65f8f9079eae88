package trade_test

import (
	"math/rand/v2"
	"testing"

	"github.com/amirasaad/brokerage/pkg/domain"
	"github.com/amirasaad/brokerage/pkg/domain/trade"
	"github.com/amirasaad/brokerage/pkg/money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedSource replays the given draws in order and then repeats the last one.
type fixedSource struct {
	draws []float64
	i     int
}

func (s *fixedSource) Float64() float64 {
	v := s.draws[min(s.i, len(s.draws)-1)]
	s.i++
	return v
}

func TestNew(t *testing.T) {
	t.Parallel()

	tr, err := trade.New(uuid.New(), uuid.New(), money.USDT, trade.Long, 60, decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.Equal(t, trade.StatusPending, tr.Status)
	assert.Nil(t, tr.IsSuccess)
	assert.False(t, tr.ProfitApplied)
	assert.Empty(t, tr.Result())

	_, err = trade.New(uuid.New(), uuid.New(), money.USDT, "SIDEWAYS", 60, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = trade.New(uuid.New(), uuid.New(), money.USDT, trade.Short, 0, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, trade.ErrInvalidPeriod)
	_, err = trade.New(uuid.New(), uuid.New(), money.USDT, trade.Short, 30, decimal.Zero)
	assert.ErrorIs(t, err, trade.ErrInvalidQuantity)
	_, err = trade.New(uuid.New(), uuid.New(), money.USDT, trade.Short, 30, decimal.RequireFromString("1.000000001"))
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.ErrorIs(t, err, money.ErrInvalidAmount)
}

func TestParseType(t *testing.T) {
	t.Parallel()
	got, err := trade.ParseType(" long ")
	require.NoError(t, err)
	assert.Equal(t, trade.Long, got)

	_, err = trade.ParseType("up")
	assert.ErrorIs(t, err, trade.ErrInvalidTradeType)
}

func TestParseOutcome(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want trade.Outcome
		ok   bool
	}{
		{"", trade.OutcomeAuto, true},
		{"auto", trade.OutcomeAuto, true},
		{"WIN", trade.OutcomeWin, true},
		{"lose", trade.OutcomeLose, true},
		{"draw", "", false},
	}
	for _, tt := range tests {
		got, err := trade.ParseOutcome(tt.in)
		if !tt.ok {
			assert.ErrorIs(t, err, trade.ErrInvalidOutcome, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestProfit(t *testing.T) {
	t.Parallel()
	qty := decimal.NewFromInt(100)
	pct := decimal.NewFromInt(50)

	assert.Equal(t, "50", trade.Profit(qty, pct, true).String())
	assert.Equal(t, "-100", trade.Profit(qty, pct, false).String())
	assert.Equal(t, "37.5", trade.Profit(decimal.NewFromInt(75), pct, true).String())
}

func TestDefaultSetting(t *testing.T) {
	t.Parallel()
	tests := []struct {
		period int
		pct    int64
	}{
		{30, 40},
		{60, 50},
		{120, 70},
		{300, 100},
		{45, 40},
	}
	for _, tt := range tests {
		s := trade.DefaultSetting(tt.period, trade.Long)
		assert.True(t, decimal.NewFromInt(tt.pct).Equal(s.Percentage), "period %d", tt.period)
		assert.InDelta(t, 0.5, s.WinRate, 1e-9)
		assert.Equal(t, trade.Long, s.Type)
	}
}

func TestDecide_FixedDraws(t *testing.T) {
	t.Parallel()

	// both gates pass on equality
	assert.True(t, trade.Decide(&fixedSource{draws: []float64{0.5, 0.5}}, 0.5, 0.5))
	// second gate fails
	assert.False(t, trade.Decide(&fixedSource{draws: []float64{0.3, 0.6}}, 0.5, 0.5))
	// first gate fails
	assert.False(t, trade.Decide(&fixedSource{draws: []float64{0.9, 0.1}}, 0.5, 0.5))
	// a zero customer rate never wins, even on a zero draw
	assert.False(t, trade.Decide(&fixedSource{draws: []float64{0, 0}}, 0, 1))
}

func TestDecide_Frequencies(t *testing.T) {
	t.Parallel()
	const trials = 200_000
	src := rand.New(rand.NewPCG(7, 11))

	run := func(customer, setting float64) float64 {
		wins := 0
		for i := 0; i < trials; i++ {
			if trade.Decide(src, customer, setting) {
				wins++
			}
		}
		return float64(wins) / trials
	}

	assert.InDelta(t, 0.3, run(1.0, 0.3), 0.01, "customer rate 1 reduces to the setting rate")
	assert.InDelta(t, 0.25, run(0.5, 0.5), 0.01, "gates compound")
	assert.Zero(t, run(0, 0.9))
}

func TestResolve_ManualSkipsDraw(t *testing.T) {
	t.Parallel()
	src := &fixedSource{draws: []float64{0.99}}
	assert.True(t, trade.Resolve(trade.OutcomeWin, src, 0, 0))
	assert.False(t, trade.Resolve(trade.OutcomeLose, src, 1, 1))
	assert.Equal(t, 0, src.i)
	assert.False(t, trade.Resolve(trade.OutcomeAuto, src, 0.5, 0.5))
	assert.Equal(t, 2, src.i)
}

func TestSequence(t *testing.T) {
	t.Parallel()
	src := rand.New(rand.NewPCG(1, 2))

	count := func(seq []int) int {
		n := 0
		for _, v := range seq {
			n += v
		}
		return n
	}

	seq := trade.Sequence(src, 60, 0.5)
	assert.Len(t, seq, 60)
	assert.Equal(t, 30, count(seq))

	// round half away from zero
	assert.Equal(t, 3, count(trade.Sequence(src, 5, 0.5)))
	assert.Equal(t, 0, count(trade.Sequence(src, 30, 0)))
	assert.Equal(t, 30, count(trade.Sequence(src, 30, 1)))
	assert.Empty(t, trade.Sequence(src, 0, 0.5))
}
