package marketdata

import (
	"time"

	marketdata "main/internal/domain/entity/marketdata"
)

// seriesKey is the aggregation key. A composite struct rather than a
// concatenated string so keys cannot collide and lookups stay typed.
type seriesKey struct {
	Symbol    string
	Timeframe marketdata.Timeframe
}

// series holds the aggregation state for one (symbol, timeframe) pair:
// the closed history (oldest first, bounded FIFO) and the single mutable
// open candle. Owned exclusively by the Service; all access goes through
// the service mutex.
type series struct {
	symbol    string
	timeframe marketdata.Timeframe
	retention int

	history []marketdata.Candle
	open    *marketdata.Candle
}

func newSeries(symbol string, tf marketdata.Timeframe, retention int) *series {
	return &series{
		symbol:    symbol,
		timeframe: tf,
		retention: retention,
	}
}

// ingest applies one tick and returns the candle updates to publish:
// the closed candle when the bucket rolled over, always followed by the
// current open candle. Ticks for buckets older than the open one are
// dropped; late data never rewrites closed history.
func (s *series) ingest(price, volume float64, ts time.Time) []marketdata.Candle {
	bucketStart := s.timeframe.BucketStart(ts)

	if s.open != nil {
		switch {
		case bucketStart.Before(s.open.PeriodStart):
			return nil
		case bucketStart.Equal(s.open.PeriodStart):
			s.open.Apply(price, volume)
			return []marketdata.Candle{*s.open}
		}
	}

	var updates []marketdata.Candle
	if s.open != nil {
		closed := *s.open
		s.appendHistory(closed)
		updates = append(updates, closed)
	}

	opened := marketdata.NewCandle(s.symbol, s.timeframe, bucketStart, price, volume)
	s.open = &opened
	return append(updates, opened)
}

// seed replaces the series state with the given closed candles. The
// newest candle becomes the open one so live ticks landing in its bucket
// keep updating it instead of duplicating the bucket. Reseeding with the
// same candles is idempotent.
func (s *series) seed(candles []marketdata.Candle) {
	s.history = s.history[:0]
	s.open = nil
	if len(candles) == 0 {
		return
	}
	for _, c := range candles[:len(candles)-1] {
		s.appendHistory(c)
	}
	last := candles[len(candles)-1]
	s.open = &last
}

// snapshot returns a copy of the closed history with the open candle
// appended, oldest first.
func (s *series) snapshot() []marketdata.Candle {
	out := make([]marketdata.Candle, 0, len(s.history)+1)
	out = append(out, s.history...)
	if s.open != nil {
		out = append(out, *s.open)
	}
	return out
}

// latest returns the freshest candle, open or closed.
func (s *series) latest() (marketdata.Candle, bool) {
	if s.open != nil {
		return *s.open, true
	}
	if n := len(s.history); n > 0 {
		return s.history[n-1], true
	}
	return marketdata.Candle{}, false
}

func (s *series) appendHistory(c marketdata.Candle) {
	s.history = append(s.history, c)
	if s.retention > 0 && len(s.history) > s.retention {
		overflow := len(s.history) - s.retention
		s.history = append(s.history[:0], s.history[overflow:]...)
	}
}
