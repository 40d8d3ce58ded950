package repository

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"strconv"
	"sync"
	"time"
	"trading-journal/config"
	"trading-journal/internal/dto"
	"trading-journal/pkg/httpclient"
	"trading-journal/pkg/logger"

	"golang.org/x/time/rate"
)

// BarRepository supplies minute bars spanning windowHours before and after
// the center timestamp.
type BarRepository interface {
	Fetch(ctx context.Context, symbol string, center time.Time, windowHours int) ([]dto.Bar, error)
}

type barHTTPRepository struct {
	httpClient     httpclient.HTTPClient
	cfg            *config.Config
	log            *logger.Logger
	requestLimiter *rate.Limiter

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewBarRepository builds the HTTP bar-data client with rate limiting and
// bounded retry.
func NewBarRepository(cfg *config.Config, log *logger.Logger) BarRepository {
	perRequest := time.Minute / time.Duration(cfg.Bars.MaxRequestPerMin)
	return &barHTTPRepository{
		httpClient:     httpclient.New(cfg.Bars.BaseURL, cfg.Bars.Timeout, cfg.Bars.APIToken),
		cfg:            cfg,
		log:            log,
		requestLimiter: rate.NewLimiter(rate.Every(perRequest), 1),
		rnd:            rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Fetch retries transient provider failures a fixed number of times with a
// fixed-plus-jitter delay. The request is idempotent, so a retry after an
// ambiguous failure is safe.
func (r *barHTTPRepository) Fetch(ctx context.Context, symbol string, center time.Time, windowHours int) ([]dto.Bar, error) {
	window := time.Duration(windowHours) * time.Hour
	param := dto.GetBarsParam{
		Symbol: symbol,
		Start:  center.Add(-window),
		End:    center.Add(window),
	}

	var lastErr error
	for attempt := 0; attempt <= r.cfg.Bars.RetryCount; attempt++ {
		if attempt > 0 {
			delay := r.cfg.Bars.RetryDelay + r.jitter()
			r.log.WarnContext(ctx, "Retrying bar fetch",
				logger.StringField("symbol", symbol),
				logger.IntField("attempt", attempt),
				logger.DurationField("delay", delay),
				logger.ErrorField(lastErr))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		bars, err := r.getBars(ctx, param)
		if err == nil {
			return bars, nil
		}
		lastErr = err
	}

	return nil, fmt.Errorf("failed to fetch bars for %s: %w", symbol, lastErr)
}

func (r *barHTTPRepository) jitter() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return time.Duration(r.rnd.Int63n(int64(r.cfg.Bars.RetryDelay) + 1))
}

type barPayload struct {
	Bars []struct {
		Timestamp int64   `json:"t"`
		Open      float64 `json:"o"`
		High      float64 `json:"h"`
		Low       float64 `json:"l"`
		Close     float64 `json:"c"`
		Volume    float64 `json:"v"`
	} `json:"bars"`
}

func (r *barHTTPRepository) getBars(ctx context.Context, param dto.GetBarsParam) ([]dto.Bar, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := "/v1/bars"
	queryParams := map[string]string{
		"symbol":   param.Symbol,
		"interval": "1m",
		"start":    strconv.FormatInt(param.Start.Unix(), 10),
		"end":      strconv.FormatInt(param.End.Unix(), 10),
	}

	var payload barPayload
	resp, err := r.httpClient.Get(ctx, endpoint, queryParams, nil, &payload)
	if err != nil {
		return nil, fmt.Errorf("bar provider request failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		r.log.ErrorContext(ctx, "Bar provider returned non-OK status",
			logger.IntField("status_code", resp.StatusCode),
			logger.StringField("symbol", param.Symbol),
			logger.StringField("body", string(resp.Body)))
		return nil, fmt.Errorf("bar provider returned status: %d", resp.StatusCode)
	}

	bars := make([]dto.Bar, 0, len(payload.Bars))
	for _, b := range payload.Bars {
		bars = append(bars, dto.Bar{
			Time:   time.UnixMilli(b.Timestamp).UTC(),
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: b.Volume,
		})
	}

	return bars, nil
}
