// @title           Market Data Simulator API
// @version         1.0
// @description     API serving simulated OHLCV candles, quotes and instruments

// @host      localhost:8080
// @BasePath  /api/v1

package http

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	appmarketdata "main/internal/application/service/marketdata"
	interfaces "main/internal/domain/interfaces"
)

const (
	instrumentsBasePath = "/api/v1/instruments"
	marketdataBasePath  = "/api/v1/marketdata"
)

var (
	errMissingSymbol    = errors.New("symbol query param required")
	errMissingTimeframe = errors.New("timeframe query param required")
)

type Handler struct {
	router   *gin.Engine
	engine   *appmarketdata.Service
	catalog  interfaces.InstrumentCatalog
	cache    *redis.Client
	cacheTTL time.Duration
}

func NewHandler(engine *appmarketdata.Service, catalog interfaces.InstrumentCatalog, cache *redis.Client, cacheTTL time.Duration) *Handler {
	router := gin.New()
	router.Use(gin.Recovery())

	h := &Handler{
		router:   router,
		engine:   engine,
		catalog:  catalog,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
	h.registerRoutes()
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) registerRoutes() {
	h.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	h.router.GET("/healthz", h.health)

	inst := h.router.Group(instrumentsBasePath)
	if h.cache != nil {
		inst.Use(h.cacheMiddleware())
	}
	{
		inst.GET("/", h.listInstruments)
		inst.GET("/:symbol", h.getInstrument)
	}

	md := h.router.Group(marketdataBasePath)
	{
		md.GET("/candles", h.getCandles)
		md.GET("/quote", h.getQuote)
		md.GET("/price", h.getPrice)
		md.POST("/backfill", h.postBackfill)
	}
}

// health reports service liveness
// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /healthz [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// listInstruments returns the instrument catalog
// @Summary      List instruments
// @Tags         instruments
// @Produce      json
// @Success      200  {array}  instrumentPayload
// @Router       /instruments [get]
func (h *Handler) listInstruments(c *gin.Context) {
	list := h.catalog.List()
	out := make([]instrumentPayload, 0, len(list))
	for _, inst := range list {
		out = append(out, toInstrumentPayload(inst))
	}
	c.JSON(http.StatusOK, out)
}

// getInstrument returns one instrument by symbol
// @Summary      Get instrument
// @Tags         instruments
// @Produce      json
// @Param        symbol  path      string  true  "Instrument symbol"
// @Success      200     {object}  instrumentPayload
// @Failure      404     {object}  map[string]string
// @Router       /instruments/{symbol} [get]
func (h *Handler) getInstrument(c *gin.Context) {
	inst, err := h.catalog.Get(c.Param("symbol"))
	if err != nil {
		writeError(c, http.StatusNotFound, err)
		return
	}
	c.JSON(http.StatusOK, toInstrumentPayload(inst))
}

// getCandles returns the candle series for a symbol/timeframe pair
// @Summary      Get candles
// @Description  Closed history plus the in-progress candle, ascending by period start
// @Tags         marketdata
// @Produce      json
// @Param        symbol     query     string  true   "Instrument symbol"
// @Param        timeframe  query     string  true   "Timeframe, e.g. 1m or 1h"
// @Param        limit      query     int     false  "Return only the last N candles"
// @Success      200        {array}   candlePayload
// @Failure      400        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Router       /marketdata/candles [get]
func (h *Handler) getCandles(c *gin.Context) {
	symbol := c.Query("symbol")
	if symbol == "" {
		writeError(c, http.StatusBadRequest, errMissingSymbol)
		return
	}
	rawTimeframe := c.Query("timeframe")
	if rawTimeframe == "" {
		writeError(c, http.StatusBadRequest, errMissingTimeframe)
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(c, http.StatusBadRequest, fmt.Errorf("invalid limit: %s", raw))
			return
		}
		limit = parsed
	}

	candles, err := h.engine.GetSeries(symbol, timeframeFromString(rawTimeframe))
	if err != nil {
		writeEngineError(c, err)
		return
	}
	if limit > 0 && len(candles) > limit {
		candles = candles[len(candles)-limit:]
	}
	c.JSON(http.StatusOK, toCandlePayloads(candles))
}

// getQuote returns the derived bid/ask quote for a symbol
// @Summary      Get quote
// @Tags         marketdata
// @Produce      json
// @Param        symbol  query     string  true  "Instrument symbol"
// @Success      200     {object}  quotePayload
// @Failure      400     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Router       /marketdata/quote [get]
func (h *Handler) getQuote(c *gin.Context) {
	symbol := c.Query("symbol")
	if symbol == "" {
		writeError(c, http.StatusBadRequest, errMissingSymbol)
		return
	}
	quote, err := h.engine.Quote(symbol)
	if err != nil {
		writeEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, toQuotePayload(quote))
}

// getPrice returns the current price for a symbol
// @Summary      Get current price
// @Tags         marketdata
// @Produce      json
// @Param        symbol  query     string  true  "Instrument symbol"
// @Success      200     {object}  pricePayload
// @Failure      400     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Router       /marketdata/price [get]
func (h *Handler) getPrice(c *gin.Context) {
	symbol := c.Query("symbol")
	if symbol == "" {
		writeError(c, http.StatusBadRequest, errMissingSymbol)
		return
	}
	price, err := h.engine.CurrentPrice(symbol)
	if err != nil {
		writeEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, pricePayload{Symbol: symbol, Price: price})
}

// postBackfill reseeds a series with synthetic history
// @Summary      Backfill series
// @Tags         marketdata
// @Accept       json
// @Produce      json
// @Param        request  body      backfillRequest  true  "Backfill parameters"
// @Success      204      "No Content"
// @Failure      400      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Router       /marketdata/backfill [post]
func (h *Handler) postBackfill(c *gin.Context) {
	var req backfillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, err)
		return
	}
	if err := h.engine.Backfill(req.Symbol, timeframeFromString(req.Timeframe), req.Count); err != nil {
		writeEngineError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func writeEngineError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, appmarketdata.ErrUnknownSymbol):
		writeError(c, http.StatusNotFound, err)
	case errors.Is(err, appmarketdata.ErrInvalidTimeframe):
		writeError(c, http.StatusBadRequest, err)
	default:
		writeError(c, http.StatusInternalServerError, err)
	}
}

func writeError(c *gin.Context, status int, err error) {
	c.JSON(status, gin.H{"error": err.Error()})
}

func (h *Handler) cacheMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.cache == nil || c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := h.cacheKey(c)
		ctx := c.Request.Context()

		if cached, err := h.cache.Get(ctx, key).Result(); err == nil {
			c.Data(http.StatusOK, "application/json", []byte(cached))
			c.Abort()
			return
		}

		recorder := &responseRecorder{
			ResponseWriter: c.Writer,
			status:         http.StatusOK,
			body:           &bytes.Buffer{},
		}
		c.Writer = recorder

		c.Next()

		if recorder.status >= 200 && recorder.status < 300 && recorder.body.Len() > 0 {
			_ = h.cache.Set(ctx, key, recorder.body.Bytes(), h.cacheTTL).Err()
		}
	}
}

type responseRecorder struct {
	gin.ResponseWriter
	body   *bytes.Buffer
	status int
}

func (r *responseRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *responseRecorder) Write(data []byte) (int, error) {
	if len(data) > 0 {
		r.body.Write(data)
	}
	return r.ResponseWriter.Write(data)
}

func (h *Handler) cacheKey(c *gin.Context) string {
	return fmt.Sprintf("cache:%s:%s?%s", c.Request.Method, c.FullPath(), c.Request.URL.RawQuery)
}
