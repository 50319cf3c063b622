package interfaces

import (
	marketdata "main/internal/domain/entity/marketdata"
)

// CandleHandler receives every update of a subscribed series: the open
// candle after each tick and the final form of a candle when its bucket
// closes.
type CandleHandler func(candle marketdata.Candle)

// CandleStream is the push side of the engine: live per-key candle
// subscriptions. The returned function unregisters exactly one
// subscription and is safe to call more than once.
type CandleStream interface {
	Subscribe(symbol string, tf marketdata.Timeframe, fn CandleHandler) (unsubscribe func(), err error)
}

// MarketDataProvider is the pull side of the engine consumed by the HTTP
// layer and other read-only collaborators.
type MarketDataProvider interface {
	GetSeries(symbol string, tf marketdata.Timeframe) ([]marketdata.Candle, error)
	CurrentPrice(symbol string) (float64, error)
	Quote(symbol string) (marketdata.Quote, error)
}
