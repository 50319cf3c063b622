package marketdata

import (
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	marketdata "main/internal/domain/entity/marketdata"
	interfaces "main/internal/domain/interfaces"
)

type subscription struct {
	id uuid.UUID
	fn interfaces.CandleHandler
}

// registry tracks live subscribers per series key and fans candle
// updates out to them in registration order. A panicking handler is
// isolated and logged; the remaining handlers still run.
type registry struct {
	logger *logrus.Entry

	mu   sync.Mutex
	subs map[seriesKey][]*subscription
}

func newRegistry(logger *logrus.Entry) *registry {
	return &registry{
		logger: logger,
		subs:   make(map[seriesKey][]*subscription),
	}
}

// add registers a handler and returns its unsubscribe function. The
// returned function removes exactly one registration; calling it again
// is a no-op.
func (r *registry) add(key seriesKey, fn interfaces.CandleHandler) func() {
	sub := &subscription{id: uuid.New(), fn: fn}

	r.mu.Lock()
	r.subs[key] = append(r.subs[key], sub)
	r.mu.Unlock()

	return func() {
		r.remove(key, sub.id)
	}
}

func (r *registry) remove(key seriesKey, id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	subs := r.subs[key]
	for i, sub := range subs {
		if sub.id == id {
			r.subs[key] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
	if len(r.subs[key]) == 0 {
		delete(r.subs, key)
	}
}

// notify delivers a candle to every subscriber of its key, in
// registration order. Delivery runs on the caller's goroutine; handlers
// are expected to be cheap.
func (r *registry) notify(key seriesKey, candle marketdata.Candle) {
	r.mu.Lock()
	subs := make([]*subscription, len(r.subs[key]))
	copy(subs, r.subs[key])
	r.mu.Unlock()

	for _, sub := range subs {
		r.deliver(sub, candle)
	}
}

func (r *registry) deliver(sub *subscription, candle marketdata.Candle) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.WithFields(logrus.Fields{
				"subscription": sub.id,
				"symbol":       candle.Symbol,
				"timeframe":    candle.Timeframe,
				"panic":        rec,
			}).Error("subscriber callback panicked")
		}
	}()
	sub.fn(candle)
}
