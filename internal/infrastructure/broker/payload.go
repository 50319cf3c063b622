package broker

import (
	marketdata "main/internal/domain/entity/marketdata"
)

// CandleMessage is the wire form of a candle update: period start as
// unix milliseconds, ascending and duplicate-free per series.
type CandleMessage struct {
	Symbol      string  `json:"symbol"`
	Timeframe   string  `json:"timeframe"`
	PeriodStart int64   `json:"period_start"`
	Open        float64 `json:"open"`
	High        float64 `json:"high"`
	Low         float64 `json:"low"`
	Close       float64 `json:"close"`
	Volume      float64 `json:"volume"`
}

func newCandleMessage(c marketdata.Candle) CandleMessage {
	return CandleMessage{
		Symbol:      c.Symbol,
		Timeframe:   c.Timeframe.String(),
		PeriodStart: c.PeriodStart.UnixMilli(),
		Open:        c.Open,
		High:        c.High,
		Low:         c.Low,
		Close:       c.Close,
		Volume:      c.Volume,
	}
}
