// Package setting holds the global name/value flags that steer trading.
package setting

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/amirasaad/brokerage/pkg/domain"
)

// Known flag names as stored in general_settings.
const (
	OpenToTrade       = "open_to_trade"
	AutoDecideWinLose = "auto_decide_win_lose"
)

// ErrUnknownFlag is returned when writing a flag nobody reads.
var ErrUnknownFlag = fmt.Errorf("unknown setting: %w", domain.ErrValidation)

// Flags is a typed snapshot of the general settings, read once per operation
// and passed explicitly to the code that branches on it.
type Flags struct {
	OpenToTrade       bool
	AutoDecideWinLose bool
}

// Apply overlays stored name/value rows onto the snapshot. Unparseable values
// keep the current value.
func (f Flags) Apply(values map[string]string) Flags {
	if v, ok := parseBool(values[OpenToTrade]); ok {
		f.OpenToTrade = v
	}
	if v, ok := parseBool(values[AutoDecideWinLose]); ok {
		f.AutoDecideWinLose = v
	}
	return f
}

// Validate checks a flag write.
func Validate(name, value string) (string, error) {
	switch name {
	case OpenToTrade, AutoDecideWinLose:
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFlag, name)
	}
	v, ok := parseBool(value)
	if !ok {
		return "", domain.Validationf("setting %s expects true or false, got %q", name, value)
	}
	return strconv.FormatBool(v), nil
}

func parseBool(s string) (bool, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return false, false
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, false
	}
	return v, true
}
