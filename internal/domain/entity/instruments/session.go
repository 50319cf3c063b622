package instruments

// Session is a fixed UTC trading window tied to a set of currencies.
// While a session is open, instruments quoted in its currencies move
// with amplified volatility.
type Session struct {
	Name       string
	OpenHour   int // inclusive, UTC
	CloseHour  int // exclusive, UTC; window may wrap midnight
	Multiplier float64
	Currencies []string
}

// Sessions is the fixed session table used by the feed. Hours follow the
// conventional forex session map.
var Sessions = []Session{
	{Name: "Sydney", OpenHour: 21, CloseHour: 6, Multiplier: 1.2, Currencies: []string{"AUD", "NZD"}},
	{Name: "Tokyo", OpenHour: 0, CloseHour: 9, Multiplier: 1.4, Currencies: []string{"JPY", "AUD", "NZD"}},
	{Name: "London", OpenHour: 7, CloseHour: 16, Multiplier: 1.8, Currencies: []string{"GBP", "EUR", "CHF"}},
	{Name: "NewYork", OpenHour: 12, CloseHour: 21, Multiplier: 1.7, Currencies: []string{"USD", "CAD"}},
}

// quietMultiplier dampens movement when none of the instrument's
// sessions are open.
const quietMultiplier = 0.4

// Open reports whether the session window contains the given UTC hour.
func (s Session) Open(hourUTC int) bool {
	if s.OpenHour <= s.CloseHour {
		return hourUTC >= s.OpenHour && hourUTC < s.CloseHour
	}
	return hourUTC >= s.OpenHour || hourUTC < s.CloseHour
}

func (s Session) covers(currencies []string) bool {
	for _, want := range currencies {
		for _, have := range s.Currencies {
			if want == have {
				return true
			}
		}
	}
	return false
}

// ActiveMultiplier combines the multipliers of every open session that
// trades one of the given currencies. With no open session the quiet
// multiplier applies.
func ActiveMultiplier(currencies []string, hourUTC int) float64 {
	mult := 1.0
	active := false
	for _, s := range Sessions {
		if s.Open(hourUTC) && s.covers(currencies) {
			mult *= s.Multiplier
			active = true
		}
	}
	if !active {
		return quietMultiplier
	}
	return mult
}
