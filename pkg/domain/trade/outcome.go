package trade

import (
	"math"
	"math/rand/v2"
	"strings"
)

// Outcome is the requested result of a settlement. The zero value asks the
// engine to decide.
type Outcome string

const (
	OutcomeAuto Outcome = ""
	OutcomeWin  Outcome = "win"
	OutcomeLose Outcome = "lose"
)

// ParseOutcome accepts win, lose, auto or an empty string.
func ParseOutcome(s string) (Outcome, error) {
	switch o := Outcome(strings.ToLower(strings.TrimSpace(s))); o {
	case OutcomeAuto, OutcomeWin, OutcomeLose:
		return o, nil
	case "auto":
		return OutcomeAuto, nil
	default:
		return "", ErrInvalidOutcome
	}
}

// IsManual reports whether the caller supplied the result.
func (o Outcome) IsManual() bool {
	return o == OutcomeWin || o == OutcomeLose
}

// Source yields uniform floats in [0, 1).
type Source interface {
	Float64() float64
}

type defaultSource struct{}

func (defaultSource) Float64() float64 { return rand.Float64() }

// DefaultSource draws from the process-wide generator.
var DefaultSource Source = defaultSource{}

// Decide runs the two-stage Bernoulli gate. Both draws happen on every call
// so a fixed source yields a reproducible sequence of decisions.
func Decide(src Source, customerWinRate, settingWinRate float64) bool {
	if src == nil {
		src = DefaultSource
	}
	customerGate := src.Float64()
	settingGate := src.Float64()
	if customerWinRate <= 0 {
		return false
	}
	return customerGate <= customerWinRate && settingGate <= settingWinRate
}

// Resolve turns a requested outcome into a result, drawing when it is automatic.
func Resolve(o Outcome, src Source, customerWinRate, settingWinRate float64) bool {
	switch o {
	case OutcomeWin:
		return true
	case OutcomeLose:
		return false
	default:
		return Decide(src, customerWinRate, settingWinRate)
	}
}

// Sequence builds the display-only win/lose strip returned when a trade is
// opened: period entries, round(period × winRate) of them ones, shuffled
// with Fisher–Yates. It has no influence on settlement.
func Sequence(src Source, period int, winRate float64) []int {
	if period <= 0 {
		return []int{}
	}
	if src == nil {
		src = DefaultSource
	}
	ones := int(math.Round(float64(period) * winRate))
	ones = max(0, min(ones, period))
	seq := make([]int, period)
	for i := 0; i < ones; i++ {
		seq[i] = 1
	}
	for i := period - 1; i > 0; i-- {
		j := int(src.Float64() * float64(i+1))
		if j > i {
			j = i
		}
		seq[i], seq[j] = seq[j], seq[i]
	}
	return seq
}
