package yahoo

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/wonny/momentum-screener/internal/contracts"
	"github.com/wonny/momentum-screener/pkg/redis"
)

var _ contracts.PriceProvider = (*Client)(nil)

// FetchSeries fetches the adjusted daily close series for a ticker
// ⭐ SSOT: Yahoo 가격 API 호출은 이 함수에서만
func (c *Client) FetchSeries(ctx context.Context, ticker string, from, to time.Time) (*contracts.PriceSeries, error) {
	cacheKey := redis.SeriesKey(ticker, from.UTC().Format("2006-01-02")+"_"+to.UTC().Format("2006-01-02"))

	var cached contracts.PriceSeries
	if hit, err := c.cache.Get(ctx, cacheKey, &cached); err != nil {
		c.logger.WithError(err).WithField("ticker", ticker).Warn("Series cache read failed")
	} else if hit {
		c.logger.WithField("ticker", ticker).Debug("Series cache hit")
		return &cached, nil
	}

	params := url.Values{}
	params.Set("period1", strconv.FormatInt(from.Unix(), 10))
	params.Set("period2", strconv.FormatInt(to.Unix(), 10))
	params.Set("interval", "1d")
	params.Set("events", "div,split")
	params.Set("includeAdjustedClose", "true")

	chart, err := c.fetchChart(ctx, ticker, params)
	if err != nil {
		return nil, err
	}

	series, err := parseSeries(ticker, chart)
	if err != nil {
		return nil, fmt.Errorf("parse response failed: %w", err)
	}

	if err := c.cache.Set(ctx, cacheKey, series, redis.TTLSeries); err != nil {
		c.logger.WithError(err).WithField("ticker", ticker).Warn("Series cache write failed")
	}

	c.logger.WithFields(map[string]interface{}{
		"ticker": ticker,
		"count":  series.Len(),
	}).Debug("Fetched prices")
	return series, nil
}

// parseSeries extracts adjusted closes (raw close fallback), dropping nulls
func parseSeries(ticker string, chart *chartResponse) (*contracts.PriceSeries, error) {
	if len(chart.Chart.Result) == 0 {
		return nil, fmt.Errorf("no chart result for %s", ticker)
	}
	result := chart.Chart.Result[0]

	var closes []*float64
	if len(result.Indicators.AdjClose) > 0 && len(result.Indicators.AdjClose[0].AdjClose) > 0 {
		closes = result.Indicators.AdjClose[0].AdjClose
	} else if len(result.Indicators.Quote) > 0 {
		closes = result.Indicators.Quote[0].Close
	}

	if len(closes) != len(result.Timestamp) {
		return nil, fmt.Errorf("timestamp/close length mismatch: %d vs %d", len(result.Timestamp), len(closes))
	}

	points := make([]contracts.PricePoint, 0, len(closes))
	for i, ts := range result.Timestamp {
		if closes[i] == nil {
			continue
		}
		points = append(points, contracts.PricePoint{
			Date:  sessionDate(ts),
			Close: *closes[i],
		})
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})

	// 같은 날짜 중복 시 마지막 값 유지
	deduped := points[:0]
	for _, p := range points {
		if n := len(deduped); n > 0 && deduped[n-1].Date.Equal(p.Date) {
			deduped[n-1] = p
			continue
		}
		deduped = append(deduped, p)
	}

	return &contracts.PriceSeries{Ticker: ticker, Points: deduped}, nil
}

// sessionDate truncates a unix timestamp to its UTC calendar day
func sessionDate(ts int64) time.Time {
	t := time.Unix(ts, 0).UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
