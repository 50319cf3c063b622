package marketdata

import (
	"math"
	"time"

	marketdata "main/internal/domain/entity/marketdata"
)

// intra-bucket samples drawn per synthesized candle
const backfillSamples = 4

// GenerateBackfill synthesizes count contiguous bucket-aligned candles
// for the key, oldest first, ending at the bucket containing now. The
// walk is anchored to the instrument's base price; each candle's OHLC is
// built from several intra-bucket samples, so low <= open,close <= high
// always holds. A non-positive count or unknown symbol yields an empty
// result rather than an error: this is a synthetic generator with no
// real failure mode.
func (s *Service) GenerateBackfill(symbol string, tf marketdata.Timeframe, count int) []marketdata.Candle {
	inst, err := s.catalog.Get(symbol)
	if err != nil || count <= 0 || !tf.IsValid() {
		return nil
	}

	end := tf.BucketStart(s.now())
	start := end.Add(-time.Duration(count-1) * tf.Duration())

	s.rngMu.Lock()
	defer s.rngMu.Unlock()

	candles := make([]marketdata.Candle, 0, count)
	price := inst.BasePrice
	step := inst.BasePrice * 0.0008

	for i := 0; i < count; i++ {
		periodStart := start.Add(time.Duration(i) * tf.Duration())

		open := price
		high := open
		low := open
		last := open
		for j := 0; j < backfillSamples; j++ {
			last += (s.rng.Float64()*2 - 1) * step
			// drift back toward the anchor so long runs stay bounded
			last += (inst.BasePrice - last) * 0.01
			last = math.Max(last, inst.BasePrice*0.1)
			high = math.Max(high, last)
			low = math.Min(low, last)
		}

		volume := math.Round((50 + s.rng.Float64()*450) * 100)
		candle := marketdata.Candle{
			Symbol:      symbol,
			Timeframe:   tf,
			PeriodStart: periodStart,
			Open:        open,
			High:        high,
			Low:         low,
			Close:       last,
			Volume:      volume,
		}
		candles = append(candles, candle)
		price = last
	}
	return candles
}

// Backfill generates synthetic history and seeds the series with it in
// one step, so consumers have data before the first live tick arrives.
func (s *Service) Backfill(symbol string, tf marketdata.Timeframe, count int) error {
	candles := s.GenerateBackfill(symbol, tf, count)
	if len(candles) == 0 {
		if _, err := s.catalog.Get(symbol); err != nil {
			return ErrUnknownSymbol
		}
		if !tf.IsValid() {
			return ErrInvalidTimeframe
		}
		return nil
	}
	return s.SeedHistory(symbol, tf, candles)
}
