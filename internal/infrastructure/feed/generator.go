package feed

import (
	"math"
	"math/rand"
	"time"

	instruments "main/internal/domain/entity/instruments"
)

const (
	// base volatility as a fraction of the instrument's base price,
	// before session scaling
	baseVolatilityFrac = 0.0005

	// pull strength toward the base price per tick
	meanReversionFactor = 0.02

	// chance per tick of re-drawing the short-term trend
	trendRedrawChance = 0.02
)

// Generator produces the next synthetic price/volume sample for an
// instrument. Volatility scales with the trading sessions active for the
// instrument's currencies at the given time; the price follows a random
// walk with a slowly re-drawn trend and gentle mean reversion toward the
// instrument's base price. Not safe for concurrent use: the scheduler
// drives it from a single goroutine.
type Generator struct {
	rng    *rand.Rand
	trends map[string]float64
}

func NewGenerator(seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{
		rng:    rand.New(rand.NewSource(seed)),
		trends: make(map[string]float64),
	}
}

// Next evolves lastPrice by one step and returns the new price and a
// tick volume. The output is always finite and positive.
func (g *Generator) Next(inst instruments.Instrument, lastPrice float64, now time.Time) (price, volume float64) {
	if math.IsNaN(lastPrice) || math.IsInf(lastPrice, 0) || lastPrice <= 0 {
		lastPrice = inst.BasePrice
	}

	mult := instruments.ActiveMultiplier(inst.Currencies, now.UTC().Hour())
	vol := inst.BasePrice * baseVolatilityFrac * mult

	trend, ok := g.trends[inst.Symbol]
	if !ok || g.rng.Float64() < trendRedrawChance {
		trend = (g.rng.Float64()*2 - 1) * vol * 0.25
		g.trends[inst.Symbol] = trend
	}

	random := (g.rng.Float64()*2 - 1) * vol
	meanReversion := (inst.BasePrice - lastPrice) * meanReversionFactor

	price = lastPrice + random + trend + meanReversion
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		price = inst.BasePrice
	}

	volume = math.Round((10 + g.rng.Float64()*90) * mult)
	return price, volume
}
