package marketdata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	marketdata "main/internal/domain/entity/marketdata"
)

func TestSubscribeDeliversUpdates(t *testing.T) {
	start := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	s := testService(t, Config{Timeframes: []marketdata.Timeframe{marketdata.Timeframe1m}})

	var got []marketdata.Candle
	unsubscribe, err := s.Subscribe("EURUSD", marketdata.Timeframe1m, func(c marketdata.Candle) {
		got = append(got, c)
	})
	require.NoError(t, err)
	defer unsubscribe()

	// empty series: nothing delivered on subscribe
	assert.Empty(t, got)

	mustIngest(t, s, "EURUSD", 1.1000, 1, start)
	require.Len(t, got, 1)
	assert.Equal(t, 1.1000, got[0].Close)

	mustIngest(t, s, "EURUSD", 1.1010, 1, start.Add(10*time.Second))
	require.Len(t, got, 2)
	assert.Equal(t, 1.1010, got[1].Close)

	// rollover delivers the closed candle and the new open one
	mustIngest(t, s, "EURUSD", 1.1020, 1, start.Add(time.Minute))
	require.Len(t, got, 4)
	assert.Equal(t, start, got[2].PeriodStart)
	assert.Equal(t, start.Add(time.Minute), got[3].PeriodStart)
}

func TestSubscribeDeliversSnapshotImmediately(t *testing.T) {
	start := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	s := testService(t, Config{Timeframes: []marketdata.Timeframe{marketdata.Timeframe1m}})
	mustIngest(t, s, "EURUSD", 1.0990, 1, start)

	var got []marketdata.Candle
	unsubscribe, err := s.Subscribe("EURUSD", marketdata.Timeframe1m, func(c marketdata.Candle) {
		got = append(got, c)
	})
	require.NoError(t, err)
	defer unsubscribe()

	require.Len(t, got, 1)
	assert.Equal(t, 1.0990, got[0].Close)
}

func TestSubscribersNotifiedInRegistrationOrder(t *testing.T) {
	s := testService(t, Config{Timeframes: []marketdata.Timeframe{marketdata.Timeframe1m}})

	var order []string
	for _, name := range []string{"first", "second", "third"} {
		name := name
		unsubscribe, err := s.Subscribe("EURUSD", marketdata.Timeframe1m, func(marketdata.Candle) {
			order = append(order, name)
		})
		require.NoError(t, err)
		defer unsubscribe()
	}

	mustIngest(t, s, "EURUSD", 1.1, 1, time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC))
	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestPanickingSubscriberIsIsolated(t *testing.T) {
	s := testService(t, Config{Timeframes: []marketdata.Timeframe{marketdata.Timeframe1m}})

	unsubscribeBad, err := s.Subscribe("EURUSD", marketdata.Timeframe1m, func(marketdata.Candle) {
		panic("listener blew up")
	})
	require.NoError(t, err)
	defer unsubscribeBad()

	var delivered int
	unsubscribeGood, err := s.Subscribe("EURUSD", marketdata.Timeframe1m, func(marketdata.Candle) {
		delivered++
	})
	require.NoError(t, err)
	defer unsubscribeGood()

	start := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	mustIngest(t, s, "EURUSD", 1.1, 1, start)
	mustIngest(t, s, "EURUSD", 1.2, 1, start.Add(10*time.Second))

	assert.Equal(t, 2, delivered)
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	s := testService(t, Config{Timeframes: []marketdata.Timeframe{marketdata.Timeframe1m}})

	var first, second int
	unsubscribeFirst, err := s.Subscribe("EURUSD", marketdata.Timeframe1m, func(marketdata.Candle) { first++ })
	require.NoError(t, err)
	unsubscribeSecond, err := s.Subscribe("EURUSD", marketdata.Timeframe1m, func(marketdata.Candle) { second++ })
	require.NoError(t, err)
	defer unsubscribeSecond()

	unsubscribeFirst()
	unsubscribeFirst() // no-op, must not remove the other subscriber

	mustIngest(t, s, "EURUSD", 1.1, 1, time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC))
	assert.Equal(t, 0, first)
	assert.Equal(t, 1, second)
}

func TestSubscribeValidation(t *testing.T) {
	s := testService(t, Config{})

	_, err := s.Subscribe("EURUSD", marketdata.Timeframe1m, nil)
	assert.ErrorIs(t, err, ErrNilHandler)

	_, err = s.Subscribe("EURUSD", "7m", func(marketdata.Candle) {})
	assert.ErrorIs(t, err, ErrInvalidTimeframe)

	_, err = s.Subscribe("XXXYYY", marketdata.Timeframe1m, func(marketdata.Candle) {})
	assert.ErrorIs(t, err, ErrUnknownSymbol)
}

func TestSubscriberOnlySeesItsKey(t *testing.T) {
	s := testService(t, Config{Timeframes: []marketdata.Timeframe{marketdata.Timeframe1m, marketdata.Timeframe5m}})

	var got []marketdata.Candle
	unsubscribe, err := s.Subscribe("USDJPY", marketdata.Timeframe5m, func(c marketdata.Candle) {
		got = append(got, c)
	})
	require.NoError(t, err)
	defer unsubscribe()

	start := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	mustIngest(t, s, "EURUSD", 1.1, 1, start)
	mustIngest(t, s, "USDJPY", 149.6, 1, start)

	require.Len(t, got, 1)
	assert.Equal(t, "USDJPY", got[0].Symbol)
	assert.Equal(t, marketdata.Timeframe5m, got[0].Timeframe)
}
