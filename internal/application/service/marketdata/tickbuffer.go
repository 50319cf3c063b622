package marketdata

import (
	marketdata "main/internal/domain/entity/marketdata"
)

// tickBuffer is a bounded ring of the most recent ticks across all
// symbols, kept only for current-price lookups.
type tickBuffer struct {
	ticks []marketdata.Tick
	next  int
	full  bool
}

func newTickBuffer(capacity int) *tickBuffer {
	if capacity <= 0 {
		capacity = 1
	}
	return &tickBuffer{ticks: make([]marketdata.Tick, capacity)}
}

func (b *tickBuffer) push(tick marketdata.Tick) {
	b.ticks[b.next] = tick
	b.next++
	if b.next == len(b.ticks) {
		b.next = 0
		b.full = true
	}
}

// latest scans backwards from the newest entry for the given symbol.
func (b *tickBuffer) latest(symbol string) (marketdata.Tick, bool) {
	size := b.next
	if b.full {
		size = len(b.ticks)
	}
	for i := 0; i < size; i++ {
		idx := b.next - 1 - i
		if idx < 0 {
			idx += len(b.ticks)
		}
		if b.ticks[idx].Symbol == symbol {
			return b.ticks[idx], true
		}
	}
	return marketdata.Tick{}, false
}
