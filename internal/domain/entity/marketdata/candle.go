package marketdata

import (
	"math"
	"time"
)

// Candle represents one OHLCV bar for a fixed time bucket of a symbol/timeframe pair.
type Candle struct {
	Symbol      string    `json:"symbol"`
	Timeframe   Timeframe `json:"timeframe"`
	PeriodStart time.Time `json:"period_start"`
	Open        float64   `json:"open"`
	High        float64   `json:"high"`
	Low         float64   `json:"low"`
	Close       float64   `json:"close"`
	Volume      float64   `json:"volume"`
}

// NewCandle opens a candle from the first tick landing in a bucket.
func NewCandle(symbol string, tf Timeframe, periodStart time.Time, price, volume float64) Candle {
	return Candle{
		Symbol:      symbol,
		Timeframe:   tf,
		PeriodStart: periodStart,
		Open:        price,
		High:        price,
		Low:         price,
		Close:       price,
		Volume:      volume,
	}
}

// Apply folds a same-bucket tick into the candle.
func (c *Candle) Apply(price, volume float64) {
	if price > c.High {
		c.High = price
	}
	if price < c.Low {
		c.Low = price
	}
	c.Close = price
	c.Volume += volume
}

// Valid reports whether the OHLCV fields are internally consistent.
func (c Candle) Valid() bool {
	for _, v := range []float64{c.Open, c.High, c.Low, c.Close, c.Volume} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return c.Low <= c.Open && c.Open <= c.High &&
		c.Low <= c.Close && c.Close <= c.High &&
		c.Volume >= 0
}
