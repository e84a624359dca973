package contracts

import (
	"fmt"
	"time"
)

// PricePoint is one daily close
type PricePoint struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// PriceSeries is an adjusted daily close series for one instrument,
// chronologically ascending
// ⭐ SSOT: Price Provider → S2 가격 데이터 전달
type PriceSeries struct {
	Ticker string       `json:"ticker"`
	Points []PricePoint `json:"points"`
}

// Len returns the number of sessions in the series
func (s *PriceSeries) Len() int {
	return len(s.Points)
}

// Closes returns the close prices in chronological order
func (s *PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Points))
	for i, p := range s.Points {
		closes[i] = p.Close
	}
	return closes
}

// Latest returns the most recent point
func (s *PriceSeries) Latest() (PricePoint, bool) {
	if len(s.Points) == 0 {
		return PricePoint{}, false
	}
	return s.Points[len(s.Points)-1], true
}

// Validate checks that dates are strictly increasing
func (s *PriceSeries) Validate() error {
	for i := 1; i < len(s.Points); i++ {
		if !s.Points[i].Date.After(s.Points[i-1].Date) {
			return fmt.Errorf("%s: dates not strictly increasing at index %d (%s after %s)",
				s.Ticker, i,
				s.Points[i].Date.Format("2006-01-02"),
				s.Points[i-1].Date.Format("2006-01-02"))
		}
	}
	return nil
}
