package marketdata

import (
	"math"
	"time"
)

// Tick is a single simulated price/volume sample. Ticks are ephemeral:
// they feed the aggregator and a short rolling buffer for price lookups
// and are not retained beyond that.
type Tick struct {
	Symbol    string    `json:"symbol"`
	Price     float64   `json:"price"`
	Volume    float64   `json:"volume"`
	Timestamp time.Time `json:"timestamp"`
}

// Valid reports whether the tick is safe to aggregate.
func (t Tick) Valid() bool {
	if math.IsNaN(t.Price) || math.IsInf(t.Price, 0) || t.Price <= 0 {
		return false
	}
	return t.Volume >= 0 && !math.IsNaN(t.Volume) && !math.IsInf(t.Volume, 0)
}
