package instruments

import (
	"fmt"
	"strings"
)

// Instrument is static reference data for a simulated symbol: the anchor
// price the random walk reverts to, the quoted spread, and the currency
// codes that tie the symbol to trading sessions. Not mutated at runtime.
type Instrument struct {
	Symbol     string   `json:"symbol"`
	Name       string   `json:"name"`
	BasePrice  float64  `json:"base_price"`
	Spread     float64  `json:"spread"`
	Currencies []string `json:"currencies"`
	Digits     int      `json:"digits"`
}

// DefaultSpread is used when an instrument carries no configured spread.
const DefaultSpread = 0.0002

func (i Instrument) Validate() error {
	if strings.TrimSpace(i.Symbol) == "" {
		return fmt.Errorf("instrument symbol is empty")
	}
	if i.BasePrice <= 0 {
		return fmt.Errorf("instrument %s: base price must be positive", i.Symbol)
	}
	if i.Spread < 0 {
		return fmt.Errorf("instrument %s: spread must not be negative", i.Symbol)
	}
	return nil
}

// SpreadOrDefault returns the configured spread, falling back to DefaultSpread.
func (i Instrument) SpreadOrDefault() float64 {
	if i.Spread > 0 {
		return i.Spread
	}
	return DefaultSpread
}
