package feed

import (
	"context"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	appmarketdata "main/internal/application/service/marketdata"
	instruments "main/internal/domain/entity/instruments"
	marketdata "main/internal/domain/entity/marketdata"
	interfaces "main/internal/domain/interfaces"
)

const (
	defaultMinInterval = time.Second
	defaultMaxInterval = 5 * time.Second
)

// SchedulerConfig bounds the jittered delay between tick rounds.
type SchedulerConfig struct {
	MinInterval time.Duration
	MaxInterval time.Duration
}

// Scheduler is the background loop that drives the simulation: every
// round it generates one tick per instrument and feeds it through the
// engine synchronously before sleeping a jittered interval. A failure
// in one instrument's round is isolated so the others keep updating.
type Scheduler struct {
	engine  *appmarketdata.Service
	catalog interfaces.InstrumentCatalog
	gen     *Generator
	cfg     SchedulerConfig
	logger  *logrus.Entry

	rng *rand.Rand
	now func() time.Time
}

func NewScheduler(engine *appmarketdata.Service, catalog interfaces.InstrumentCatalog, gen *Generator, cfg SchedulerConfig, logger *logrus.Logger) *Scheduler {
	if cfg.MinInterval <= 0 {
		cfg.MinInterval = defaultMinInterval
	}
	if cfg.MaxInterval < cfg.MinInterval {
		cfg.MaxInterval = cfg.MinInterval
	}
	return &Scheduler{
		engine:  engine,
		catalog: catalog,
		gen:     gen,
		cfg:     cfg,
		logger:  logger.WithField("component", "feed_scheduler"),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		now:     time.Now,
	}
}

// Run loops until the context is cancelled. The first round fires
// immediately so subscribers see data without waiting a full interval.
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.WithFields(logrus.Fields{
		"instruments":     len(s.catalog.List()),
		"min_interval_ms": s.cfg.MinInterval.Milliseconds(),
		"max_interval_ms": s.cfg.MaxInterval.Milliseconds(),
	}).Info("feed scheduler started")

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("feed scheduler stopped")
			return ctx.Err()
		case <-timer.C:
			s.step()
			timer.Reset(s.interval())
		}
	}
}

// step runs one tick round across all instruments.
func (s *Scheduler) step() {
	now := s.now()
	for _, inst := range s.catalog.List() {
		s.tickInstrument(inst, now)
	}
}

func (s *Scheduler) tickInstrument(inst instruments.Instrument, now time.Time) {
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.WithFields(logrus.Fields{
				"symbol": inst.Symbol,
				"panic":  rec,
			}).Error("tick round panicked")
		}
	}()

	lastPrice, err := s.engine.CurrentPrice(inst.Symbol)
	if err != nil {
		s.logger.WithError(err).WithField("symbol", inst.Symbol).Warn("skip instrument")
		return
	}

	price, volume := s.gen.Next(inst, lastPrice, now)
	tick := marketdata.Tick{
		Symbol:    inst.Symbol,
		Price:     price,
		Volume:    volume,
		Timestamp: now,
	}
	if _, err := s.engine.IngestTick(tick); err != nil {
		s.logger.WithError(err).WithField("symbol", inst.Symbol).Warn("tick rejected")
	}
}

func (s *Scheduler) interval() time.Duration {
	span := s.cfg.MaxInterval - s.cfg.MinInterval
	if span <= 0 {
		return s.cfg.MinInterval
	}
	return s.cfg.MinInterval + time.Duration(s.rng.Int63n(int64(span)))
}
