package marketdata

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	instruments "main/internal/domain/entity/instruments"
	marketdata "main/internal/domain/entity/marketdata"
	interfaces "main/internal/domain/interfaces"
)

var (
	ErrUnknownSymbol    = errors.New("unknown symbol")
	ErrInvalidTimeframe = errors.New("invalid timeframe")
	ErrInvalidTick      = errors.New("tick is invalid")
	ErrNilHandler       = errors.New("handler is nil")
)

const (
	defaultRetention      = 100
	defaultTickBufferSize = 1000
)

// Config controls aggregation behavior. Zero values fall back to the
// defaults above.
type Config struct {
	Timeframes     []marketdata.Timeframe
	Retention      int
	TickBufferSize int
	BackfillSeed   int64
}

// Service is the market data engine: it aggregates ticks into OHLCV
// candles across every configured timeframe, serves series reads and
// quotes, seeds synthetic history, and fans live updates out to
// subscribers. One instance owns all series state; construct it once and
// hand it to consumers.
type Service struct {
	catalog    interfaces.InstrumentCatalog
	timeframes []marketdata.Timeframe
	retention  int
	logger     *logrus.Entry

	mu     sync.RWMutex
	series map[seriesKey]*series
	ticks  *tickBuffer

	registry *registry

	rngMu sync.Mutex
	rng   *rand.Rand
	now   func() time.Time
}

var (
	_ interfaces.CandleStream       = (*Service)(nil)
	_ interfaces.MarketDataProvider = (*Service)(nil)
)

// NewService builds an engine for the instruments in the catalog.
func NewService(catalog interfaces.InstrumentCatalog, cfg Config, logger *logrus.Logger) *Service {
	timeframes := cfg.Timeframes
	if len(timeframes) == 0 {
		timeframes = []marketdata.Timeframe{
			marketdata.Timeframe1m, marketdata.Timeframe5m, marketdata.Timeframe15m,
			marketdata.Timeframe30m, marketdata.Timeframe1h, marketdata.Timeframe4h,
			marketdata.Timeframe1d,
		}
	}
	retention := cfg.Retention
	if retention <= 0 {
		retention = defaultRetention
	}
	bufferSize := cfg.TickBufferSize
	if bufferSize <= 0 {
		bufferSize = defaultTickBufferSize
	}
	seed := cfg.BackfillSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	componentLogger := logger.WithField("component", "marketdata_engine")

	return &Service{
		catalog:    catalog,
		timeframes: timeframes,
		retention:  retention,
		logger:     componentLogger,
		series:     make(map[seriesKey]*series),
		ticks:      newTickBuffer(bufferSize),
		registry:   newRegistry(componentLogger),
		rng:        rand.New(rand.NewSource(seed)),
		now:        time.Now,
	}
}

// Timeframes returns the timeframe set every tick fans out to.
func (s *Service) Timeframes() []marketdata.Timeframe {
	out := make([]marketdata.Timeframe, len(s.timeframes))
	copy(out, s.timeframes)
	return out
}

// IngestTick folds one tick into every tracked timeframe of its symbol
// and returns the resulting candle updates. Invalid ticks are rejected
// without touching any series. Subscribers are notified after the engine
// lock is released so a handler may safely read back.
func (s *Service) IngestTick(tick marketdata.Tick) ([]marketdata.Candle, error) {
	if !tick.Valid() {
		return nil, ErrInvalidTick
	}
	if _, err := s.catalog.Get(tick.Symbol); err != nil {
		return nil, ErrUnknownSymbol
	}

	s.mu.Lock()
	s.ticks.push(tick)
	var updates []marketdata.Candle
	for _, tf := range s.timeframes {
		sr := s.seriesLocked(tick.Symbol, tf)
		updates = append(updates, sr.ingest(tick.Price, tick.Volume, tick.Timestamp)...)
	}
	s.mu.Unlock()

	for _, candle := range updates {
		s.registry.notify(seriesKey{Symbol: candle.Symbol, Timeframe: candle.Timeframe}, candle)
	}
	return updates, nil
}

// GetSeries returns the closed history plus the open candle, oldest
// first. The result is a copy; mutating it does not affect the engine.
func (s *Service) GetSeries(symbol string, tf marketdata.Timeframe) ([]marketdata.Candle, error) {
	if !tf.IsValid() {
		return nil, ErrInvalidTimeframe
	}
	if _, err := s.catalog.Get(symbol); err != nil {
		return nil, ErrUnknownSymbol
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	sr, ok := s.series[seriesKey{Symbol: symbol, Timeframe: tf}]
	if !ok {
		return nil, nil
	}
	return sr.snapshot(), nil
}

// SeedHistory replaces the series state for the key with the given
// candles. Reseeding with the same sequence is idempotent.
func (s *Service) SeedHistory(symbol string, tf marketdata.Timeframe, candles []marketdata.Candle) error {
	if !tf.IsValid() {
		return ErrInvalidTimeframe
	}
	if _, err := s.catalog.Get(symbol); err != nil {
		return ErrUnknownSymbol
	}

	s.mu.Lock()
	s.seriesLocked(symbol, tf).seed(candles)
	s.mu.Unlock()
	return nil
}

// CurrentPrice returns the latest tick price for the symbol, or the
// instrument's static base price before any tick arrived.
func (s *Service) CurrentPrice(symbol string) (float64, error) {
	inst, err := s.catalog.Get(symbol)
	if err != nil {
		return 0, ErrUnknownSymbol
	}

	s.mu.RLock()
	tick, ok := s.ticks.latest(symbol)
	s.mu.RUnlock()
	if ok {
		return tick.Price, nil
	}
	return inst.BasePrice, nil
}

// Spread returns the configured spread for the symbol, or the default
// spread when the symbol is unknown or carries none.
func (s *Service) Spread(symbol string) float64 {
	inst, err := s.catalog.Get(symbol)
	if err != nil {
		return instruments.DefaultSpread
	}
	return inst.SpreadOrDefault()
}

// Quote derives bid/ask around the current price.
func (s *Service) Quote(symbol string) (marketdata.Quote, error) {
	price, err := s.CurrentPrice(symbol)
	if err != nil {
		return marketdata.Quote{}, err
	}
	return marketdata.NewQuote(symbol, price, s.Spread(symbol), s.now()), nil
}

// Subscribe registers a handler for live updates of one series. If the
// series already holds data the latest candle is delivered synchronously
// before Subscribe returns, so the caller is never without data until
// the next tick. Handlers run on the ingestion goroutine and must be
// cheap; slow consumers belong behind the broker publisher.
func (s *Service) Subscribe(symbol string, tf marketdata.Timeframe, fn interfaces.CandleHandler) (func(), error) {
	if fn == nil {
		return nil, ErrNilHandler
	}
	if !tf.IsValid() {
		return nil, ErrInvalidTimeframe
	}
	if _, err := s.catalog.Get(symbol); err != nil {
		return nil, ErrUnknownSymbol
	}

	key := seriesKey{Symbol: symbol, Timeframe: tf}
	unsubscribe := s.registry.add(key, fn)

	s.mu.RLock()
	var snapshot *marketdata.Candle
	if sr, ok := s.series[key]; ok {
		if latest, found := sr.latest(); found {
			snapshot = &latest
		}
	}
	s.mu.RUnlock()

	if snapshot != nil {
		fn(*snapshot)
	}
	return unsubscribe, nil
}

// seriesLocked returns the series for the key, creating it on first use.
// Callers must hold s.mu.
func (s *Service) seriesLocked(symbol string, tf marketdata.Timeframe) *series {
	key := seriesKey{Symbol: symbol, Timeframe: tf}
	sr, ok := s.series[key]
	if !ok {
		sr = newSeries(symbol, tf, s.retention)
		s.series[key] = sr
	}
	return sr
}
