package contracts

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func TestPriceSeries_Validate(t *testing.T) {
	ok := PriceSeries{Ticker: "SAP.DE", Points: []PricePoint{
		{Date: day("2024-01-02"), Close: 100},
		{Date: day("2024-01-03"), Close: 101},
	}}
	assert.NoError(t, ok.Validate())
	assert.Equal(t, []float64{100, 101}, ok.Closes())

	latest, found := ok.Latest()
	require.True(t, found)
	assert.Equal(t, 101.0, latest.Close)

	dup := PriceSeries{Ticker: "SAP.DE", Points: []PricePoint{
		{Date: day("2024-01-03"), Close: 100},
		{Date: day("2024-01-03"), Close: 101},
	}}
	assert.Error(t, dup.Validate())

	var empty PriceSeries
	_, found = empty.Latest()
	assert.False(t, found)
}

func TestRankedStock_PrevRankJSON(t *testing.T) {
	fresh := RankedStock{StockMetrics: StockMetrics{Ticker: "A"}, Rank: 1}
	data, err := json.Marshal(fresh)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"prev_rank":null`)
	assert.Contains(t, string(data), `"mom_12m":0`)
	assert.True(t, fresh.IsNewEntrant())

	prev := 5
	moved := RankedStock{StockMetrics: StockMetrics{Ticker: "B"}, Rank: 2, PrevRank: &prev}
	data, err = json.Marshal(moved)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"prev_rank":5`)

	delta, ok := moved.RankChange()
	require.True(t, ok)
	assert.Equal(t, 3, delta)
}

func TestPriorRankIndex_Lookup(t *testing.T) {
	idx := PriorRankIndex{"SAP.DE": 3}
	r := idx.Lookup("SAP.DE")
	require.NotNil(t, r)
	assert.Equal(t, 3, *r)
	assert.Nil(t, idx.Lookup("BMW.DE"))

	var nilIdx PriorRankIndex
	assert.Nil(t, nilIdx.Lookup("SAP.DE"))
}

func TestSnapshot_ToHistoryEntry(t *testing.T) {
	snap := Snapshot{
		Date: "2024-06-01",
		Top: []RankedStock{
			{StockMetrics: StockMetrics{Name: "SAP", Ticker: "SAP.DE", Price: 180.5, RSL: 1.1, Mom12M: 40}, Composite: 91.2, Rank: 1},
			{StockMetrics: StockMetrics{Name: "Siemens", Ticker: "SIE.DE", Price: 170}, Composite: 80, Rank: 2},
		},
	}

	entry := snap.ToHistoryEntry()
	assert.Equal(t, "2024-06-01", entry.Date)
	require.Len(t, entry.Stocks, 2)

	got, ok := entry.Find("SAP.DE")
	require.True(t, ok)
	assert.Equal(t, 1, got.Rank)
	assert.Equal(t, 91.2, got.Composite)
	assert.Equal(t, 180.5, got.Price)

	_, ok = entry.Find("BMW.DE")
	assert.False(t, ok)
}

func TestSnapshot_JSONKeys(t *testing.T) {
	snap := Snapshot{Top: []RankedStock{}, Skipped: []SkippedStock{{Name: "X", Ticker: "X.DE", Reason: "Insufficient data", Days: 12}}}
	data, err := json.Marshal(snap)
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{"updated", "date", "universe", "total_screened", "total_attempted", "skipped_count", "top20", "skipped"} {
		assert.Contains(t, raw, key)
	}
}

func TestStage(t *testing.T) {
	assert.Equal(t, "S4", StageRanker.ShortName())
	assert.Equal(t, "S6_HISTORY", StageHistory.String())
	assert.Equal(t, "UNKNOWN", Stage("X").ShortName())
}
