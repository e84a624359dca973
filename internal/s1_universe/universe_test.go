package s1_universe

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/momentum-screener/internal/contracts"
	"github.com/wonny/momentum-screener/pkg/config"
	"github.com/wonny/momentum-screener/pkg/httputil"
	"github.com/wonny/momentum-screener/pkg/logger"
)

type staticSource struct {
	instruments []contracts.Instrument
	err         error
}

func (s staticSource) Load(ctx context.Context) ([]contracts.Instrument, error) {
	return s.instruments, s.err
}

func TestDedupe(t *testing.T) {
	in := []contracts.Instrument{
		{Name: "SAP", Ticker: "SAP.DE"},
		{Name: "Siemens", Ticker: "SIE.DE"},
		{Name: "SAP duplicate", Ticker: "SAP.DE"},
		{Name: "Blank", Ticker: ""},
		{Name: "", Ticker: "X.DE"},
	}

	out, dups := Dedupe(in)
	assert.Equal(t, 1, dups)
	require.Len(t, out, 3)
	assert.Equal(t, "SAP", out[0].Name)
	assert.Equal(t, "SIE.DE", out[1].Ticker)
	assert.Equal(t, "Unknown", out[2].Name)
}

func TestBuilder_Build(t *testing.T) {
	b := NewBuilder(staticSource{instruments: []contracts.Instrument{
		{Name: "A", Ticker: "A.DE"}, {Name: "B", Ticker: "B.DE"}, {Name: "A2", Ticker: "A.DE"},
	}}, "TEST", logger.Nop())

	u, err := b.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "TEST", u.Label)
	assert.Equal(t, 2, u.Size())
	assert.Equal(t, 1, u.Duplicates)
}

func TestBuilder_Errors(t *testing.T) {
	_, err := NewBuilder(staticSource{err: errors.New("boom")}, "", logger.Nop()).Build(context.Background())
	assert.Error(t, err)

	_, err = NewBuilder(staticSource{}, "", logger.Nop()).Build(context.Background())
	assert.Error(t, err)
}

func TestSelectTicker(t *testing.T) {
	tests := []struct {
		name    string
		symbols []SymbolEntry
		want    string
	}{
		{"eur german first", []SymbolEntry{{"DLAKY", "USD"}, {"LHA.F", "EUR"}, {"LHA.DE", "EUR"}}, "LHA.F"},
		{"german without currency", []SymbolEntry{{"DLAKY", "USD"}, {"LHA.DE", ""}}, "LHA.DE"},
		{"eur fallback", []SymbolEntry{{"DLAKY", "USD"}, {"LHA.VI", "EUR"}}, "LHA.VI"},
		{"none", []SymbolEntry{{"DLAKY", "USD"}}, ""},
		{"empty", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SelectTicker(tt.symbols))
		})
	}
}

func TestParseUniverseYAML(t *testing.T) {
	data := []byte(`
indices:
  - name: DAX
    instruments:
      - {name: SAP, ticker: SAP.DE}
      - name: Allianz
        symbols:
          - {yahoo: ALIZY, currency: USD}
          - {yahoo: ALV.DE, currency: EUR}
      - name: OTC only
        symbols:
          - {yahoo: XXXXY, currency: USD}
  - name: MDAX
    instruments:
      - {name: Puma, ticker: PUM.DE}
`)

	got, err := ParseUniverseYAML(data)
	require.NoError(t, err)
	assert.Equal(t, []contracts.Instrument{
		{Name: "SAP", Ticker: "SAP.DE"},
		{Name: "Allianz", Ticker: "ALV.DE"},
		{Name: "Puma", Ticker: "PUM.DE"},
	}, got)

	_, err = ParseUniverseYAML([]byte("indices:\n  - name: DAX\n    stocks: []\n"))
	assert.Error(t, err)
}

func TestFileSource_GermanyUniverse(t *testing.T) {
	path := "../../config/universe/germany.yaml"
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Skip("universe file not found")
	}

	got, err := NewFileSource(path).Load(context.Background())
	require.NoError(t, err)

	deduped, _ := Dedupe(got)
	assert.GreaterOrEqual(t, len(deduped), MinExpectedSize)
	for _, inst := range deduped {
		assert.NotEmpty(t, inst.Ticker)
	}
}

func TestFileSource_Missing(t *testing.T) {
	_, err := NewFileSource(filepath.Join(t.TempDir(), "none.yaml")).Load(context.Background())
	assert.Error(t, err)
}

const constituentsHTML = `<html><body>
<table class="nav"><tr><th>Menu</th></tr><tr><td>x</td></tr></table>
<table class="wikitable">
  <tr><th>Logo</th><th>Company</th><th>Prime Standard Sector</th><th>Ticker symbol</th></tr>
  <tr><td></td><td>Adidas</td><td>Clothing</td><td>ADS</td></tr>
  <tr><td></td><td> Airbus
  </td><td>Aerospace</td><td>AIR</td></tr>
  <tr><td></td><td>Qiagen</td><td>Biotech</td><td>QIA.DE</td></tr>
  <tr><td></td><td>Broken row</td></tr>
</table>
</body></html>`

func TestParseConstituents(t *testing.T) {
	got, err := ParseConstituents(constituentsHTML, ".DE")
	require.NoError(t, err)
	assert.Equal(t, []contracts.Instrument{
		{Name: "Adidas", Ticker: "ADS.DE"},
		{Name: "Airbus", Ticker: "AIR.DE"},
		{Name: "Qiagen", Ticker: "QIA.DE"},
	}, got)

	_, err = ParseConstituents("<table><tr><th>Foo</th></tr></table>", ".DE")
	assert.Error(t, err)
}

func TestIndexSource_Load(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(constituentsHTML))
	}))
	defer srv.Close()

	cfg := &config.Config{Yahoo: config.YahooConfig{Timeout: 5 * time.Second}}
	hc := httputil.New(cfg, logger.Nop()).DisableRetry()

	src := NewIndexSource(hc, []string{srv.URL + "/dax", srv.URL + "/mdax"}, ".DE", logger.Nop())
	got, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 6)

	deduped, dups := Dedupe(got)
	assert.Len(t, deduped, 3)
	assert.Equal(t, 3, dups)

	bad := NewIndexSource(hc, []string{srv.URL + "/missing"}, ".DE", logger.Nop())
	_, err = bad.Load(context.Background())
	assert.Error(t, err)
}
