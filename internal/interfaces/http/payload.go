package http

import (
	instruments "main/internal/domain/entity/instruments"
	marketdata "main/internal/domain/entity/marketdata"
)

// candlePayload serializes a candle with the period start as unix
// milliseconds. Series responses are ascending with no duplicate buckets.
type candlePayload struct {
	Symbol      string  `json:"symbol"`
	Timeframe   string  `json:"timeframe"`
	PeriodStart int64   `json:"period_start"`
	Open        float64 `json:"open"`
	High        float64 `json:"high"`
	Low         float64 `json:"low"`
	Close       float64 `json:"close"`
	Volume      float64 `json:"volume"`
}

func toCandlePayload(c marketdata.Candle) candlePayload {
	return candlePayload{
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

func toCandlePayloads(candles []marketdata.Candle) []candlePayload {
	out := make([]candlePayload, 0, len(candles))
	for _, c := range candles {
		out = append(out, toCandlePayload(c))
	}
	return out
}

type quotePayload struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
	Bid    float64 `json:"bid"`
	Ask    float64 `json:"ask"`
	Spread float64 `json:"spread"`
	Time   int64   `json:"time"`
}

func toQuotePayload(q marketdata.Quote) quotePayload {
	return quotePayload{
		Symbol: q.Symbol,
		Price:  q.Price,
		Bid:    q.Bid,
		Ask:    q.Ask,
		Spread: q.Spread,
		Time:   q.Time.UnixMilli(),
	}
}

type pricePayload struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
}

type instrumentPayload struct {
	Symbol     string   `json:"symbol"`
	Name       string   `json:"name"`
	BasePrice  float64  `json:"base_price"`
	Spread     float64  `json:"spread"`
	Currencies []string `json:"currencies"`
	Digits     int      `json:"digits"`
}

func toInstrumentPayload(inst instruments.Instrument) instrumentPayload {
	return instrumentPayload{
		Symbol:     inst.Symbol,
		Name:       inst.Name,
		BasePrice:  inst.BasePrice,
		Spread:     inst.SpreadOrDefault(),
		Currencies: inst.Currencies,
		Digits:     inst.Digits,
	}
}

// timeframeFromString defers validation to the engine, which rejects
// unknown values with ErrInvalidTimeframe.
func timeframeFromString(raw string) marketdata.Timeframe {
	return marketdata.Timeframe(raw)
}

type backfillRequest struct {
	Symbol    string `json:"symbol" binding:"required"`
	Timeframe string `json:"timeframe" binding:"required"`
	Count     int    `json:"count"`
}
