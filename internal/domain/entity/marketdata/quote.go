package marketdata

import "time"

// Quote carries a tradable bid/ask pair derived from the latest price
// plus the instrument's configured spread.
type Quote struct {
	Symbol string    `json:"symbol"`
	Price  float64   `json:"price"`
	Bid    float64   `json:"bid"`
	Ask    float64   `json:"ask"`
	Spread float64   `json:"spread"`
	Time   time.Time `json:"time"`
}

// NewQuote centers the spread around price.
func NewQuote(symbol string, price, spread float64, at time.Time) Quote {
	return Quote{
		Symbol: symbol,
		Price:  price,
		Bid:    price - spread/2,
		Ask:    price + spread/2,
		Spread: spread,
		Time:   at,
	}
}
