package marketdata

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	marketdata "main/internal/domain/entity/marketdata"
)

func TestTickBuffer(t *testing.T) {
	now := time.Now()

	t.Run("latest per symbol", func(t *testing.T) {
		b := newTickBuffer(10)
		b.push(marketdata.Tick{Symbol: "EURUSD", Price: 1.10, Timestamp: now})
		b.push(marketdata.Tick{Symbol: "USDJPY", Price: 149.5, Timestamp: now})
		b.push(marketdata.Tick{Symbol: "EURUSD", Price: 1.11, Timestamp: now})

		tick, ok := b.latest("EURUSD")
		assert.True(t, ok)
		assert.Equal(t, 1.11, tick.Price)

		tick, ok = b.latest("USDJPY")
		assert.True(t, ok)
		assert.Equal(t, 149.5, tick.Price)

		_, ok = b.latest("GBPUSD")
		assert.False(t, ok)
	})

	t.Run("old entries are overwritten", func(t *testing.T) {
		b := newTickBuffer(5)
		b.push(marketdata.Tick{Symbol: "GBPUSD", Price: 1.26, Timestamp: now})
		for i := 0; i < 5; i++ {
			b.push(marketdata.Tick{Symbol: fmt.Sprintf("SYM%d", i), Price: float64(i), Timestamp: now})
		}

		// GBPUSD rolled out of the ring
		_, ok := b.latest("GBPUSD")
		assert.False(t, ok)

		tick, ok := b.latest("SYM4")
		assert.True(t, ok)
		assert.Equal(t, 4.0, tick.Price)
	})
}
