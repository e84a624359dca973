package s1_universe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/wonny/momentum-screener/internal/contracts"
	"github.com/wonny/momentum-screener/pkg/httputil"
	"github.com/wonny/momentum-screener/pkg/logger"
)

// IndexSource scrapes index constituent tables from HTML pages
type IndexSource struct {
	httpClient *httputil.Client
	urls       []string
	suffix     string
	logger     *logger.Logger
}

// NewIndexSource creates a scraping universe source
// suffix is appended to bare symbols (e.g. "SAP" → "SAP.DE")
func NewIndexSource(httpClient *httputil.Client, urls []string, suffix string, log *logger.Logger) *IndexSource {
	return &IndexSource{
		httpClient: httpClient,
		urls:       urls,
		suffix:     suffix,
		logger:     log,
	}
}

// Load implements contracts.UniverseSource
func (s *IndexSource) Load(ctx context.Context) ([]contracts.Instrument, error) {
	out := make([]contracts.Instrument, 0)
	for _, u := range s.urls {
		html, err := s.fetchHTML(ctx, u)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", u, err)
		}

		instruments, err := ParseConstituents(html, s.suffix)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", u, err)
		}

		s.logger.WithFields(map[string]interface{}{
			"url":   u,
			"count": len(instruments),
		}).Info("Fetched index constituents")

		out = append(out, instruments...)
	}
	return out, nil
}

func (s *IndexSource) fetchHTML(ctx context.Context, url string) (string, error) {
	resp, err := s.httpClient.Get(ctx, url)
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	return string(body), nil
}

// ParseConstituents finds the first table whose header names a company
// column and a symbol column, and reads one instrument per row
func ParseConstituents(html string, suffix string) ([]contracts.Instrument, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	var out []contracts.Instrument
	found := false

	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		nameCol, symbolCol := headerColumns(table)
		if nameCol < 0 || symbolCol < 0 {
			return true
		}
		found = true

		table.Find("tr").Each(func(_ int, row *goquery.Selection) {
			cells := row.Find("td")
			if cells.Length() <= nameCol || cells.Length() <= symbolCol {
				return
			}

			name := cleanText(cells.Eq(nameCol).Text())
			symbol := cleanText(cells.Eq(symbolCol).Text())
			if symbol == "" {
				return
			}

			out = append(out, contracts.Instrument{
				Name:   name,
				Ticker: toYahooTicker(symbol, suffix),
			})
		})
		return false
	})

	if !found {
		return nil, fmt.Errorf("no constituent table found")
	}
	return out, nil
}

// headerColumns locates the name and symbol columns by header text
func headerColumns(table *goquery.Selection) (int, int) {
	nameCol, symbolCol := -1, -1
	table.Find("tr").First().Find("th").Each(func(i int, th *goquery.Selection) {
		h := strings.ToLower(cleanText(th.Text()))
		switch {
		case symbolCol < 0 && (strings.Contains(h, "ticker") || strings.Contains(h, "symbol")):
			symbolCol = i
		case nameCol < 0 && (strings.Contains(h, "company") || strings.Contains(h, "name") || strings.Contains(h, "unternehmen")):
			nameCol = i
		}
	})
	return nameCol, symbolCol
}

func toYahooTicker(symbol, suffix string) string {
	symbol = strings.ToUpper(symbol)
	if suffix == "" || strings.Contains(symbol, ".") {
		return symbol
	}
	return symbol + suffix
}

func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
