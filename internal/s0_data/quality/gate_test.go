package quality

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wonny/momentum-screener/internal/contracts"
)

func seriesOf(n int) *contracts.PriceSeries {
	s := &contracts.PriceSeries{Ticker: "X.DE"}
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		s.Points = append(s.Points, contracts.PricePoint{Date: base.AddDate(0, 0, i), Close: 1})
	}
	return s
}

func TestGate_Check(t *testing.T) {
	g := NewGate(Config{MinSessions: 60})

	assert.Equal(t, ReasonInsufficientData, g.Check(nil))
	assert.Equal(t, ReasonInsufficientData, g.Check(seriesOf(0)))
	assert.Equal(t, ReasonInsufficientData, g.Check(seriesOf(59)))
	assert.Equal(t, "", g.Check(seriesOf(60)))
}

func TestGate_Check_DateOrder(t *testing.T) {
	g := NewGate(Config{MinSessions: 3})

	reversed := seriesOf(5)
	for i, j := 0, len(reversed.Points)-1; i < j; i, j = i+1, j-1 {
		reversed.Points[i], reversed.Points[j] = reversed.Points[j], reversed.Points[i]
	}
	assert.Equal(t, ReasonUnorderedData, g.Check(reversed))

	dup := seriesOf(5)
	dup.Points[3].Date = dup.Points[2].Date
	assert.Equal(t, ReasonUnorderedData, g.Check(dup))

	// 길이 부족이 우선
	assert.Equal(t, ReasonInsufficientData, NewGate(Config{MinSessions: 60}).Check(reversed))
}

func TestReport_Coverage(t *testing.T) {
	assert.Equal(t, 0.0, Report{}.Coverage())
	assert.InDelta(t, 0.75, Report{Attempted: 4, Fetched: 4, Valid: 3}.Coverage(), 1e-12)
}
