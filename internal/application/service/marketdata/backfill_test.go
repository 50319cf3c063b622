package marketdata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	marketdata "main/internal/domain/entity/marketdata"
)

func TestGenerateBackfill(t *testing.T) {
	s := testService(t, Config{Timeframes: []marketdata.Timeframe{marketdata.Timeframe15m}})
	now := time.Date(2024, 3, 5, 10, 7, 13, 0, time.UTC)
	s.now = func() time.Time { return now }

	candles := s.GenerateBackfill("EURUSD", marketdata.Timeframe15m, 50)
	require.Len(t, candles, 50)

	t.Run("buckets are contiguous and end at now", func(t *testing.T) {
		end := marketdata.Timeframe15m.BucketStart(now)
		for i, c := range candles {
			expected := end.Add(-time.Duration(len(candles)-1-i) * 15 * time.Minute)
			assert.Equal(t, expected, c.PeriodStart)
		}
	})

	t.Run("every bar is internally consistent", func(t *testing.T) {
		for _, c := range candles {
			assert.True(t, c.Valid(), "bar at %s", c.PeriodStart)
			assert.Greater(t, c.Low, 0.0)
		}
	})

	t.Run("bars chain through the walk", func(t *testing.T) {
		for i := 1; i < len(candles); i++ {
			assert.Equal(t, candles[i-1].Close, candles[i].Open)
		}
	})
}

func TestGenerateBackfillEdgeCases(t *testing.T) {
	s := testService(t, Config{})

	assert.Empty(t, s.GenerateBackfill("EURUSD", marketdata.Timeframe1m, 0))
	assert.Empty(t, s.GenerateBackfill("EURUSD", marketdata.Timeframe1m, -5))
	assert.Empty(t, s.GenerateBackfill("XXXYYY", marketdata.Timeframe1m, 10))
	assert.Empty(t, s.GenerateBackfill("EURUSD", "7m", 10))
}

func TestBackfillSeedsSeries(t *testing.T) {
	s := testService(t, Config{Timeframes: []marketdata.Timeframe{marketdata.Timeframe1m}})

	require.NoError(t, s.Backfill("EURUSD", marketdata.Timeframe1m, 30))

	series, err := s.GetSeries("EURUSD", marketdata.Timeframe1m)
	require.NoError(t, err)
	require.Len(t, series, 30)
	for i := 1; i < len(series); i++ {
		assert.True(t, series[i].PeriodStart.After(series[i-1].PeriodStart))
	}
}

func TestBackfillErrors(t *testing.T) {
	s := testService(t, Config{})

	assert.ErrorIs(t, s.Backfill("XXXYYY", marketdata.Timeframe1m, 10), ErrUnknownSymbol)
	assert.ErrorIs(t, s.Backfill("EURUSD", "7m", 10), ErrInvalidTimeframe)
	// non-positive count is a no-op, not an error
	assert.NoError(t, s.Backfill("EURUSD", marketdata.Timeframe1m, 0))
}
