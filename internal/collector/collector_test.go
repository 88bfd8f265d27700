package collector

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kavish/registry-harvester/internal/config"
	"github.com/kavish/registry-harvester/internal/db"
)

const resultsPage = `
<table id="resultsGrid">
  <thead>
    <tr><th>Name</th><th>File No</th><th>Category</th><th>Incorporated</th><th>Nature</th><th>Status</th></tr>
  </thead>
  <tbody>
    <tr>
      <td> ACME TRADING LTD </td><td>C12345</td><td>DOMESTIC</td>
      <td>02/07/2026</td><td>PRIVATE</td><td>Live</td>
    </tr>
    <tr>
      <td>BETA HOLDINGS LTD</td><td>C67890</td><td>GLOBAL BUSINESS COMPANY</td>
      <td>03/07/2026</td><td></td><td>Live</td>
    </tr>
    <tr><td colspan="6">No further records</td></tr>
  </tbody>
</table>`

func TestParseResultRows(t *testing.T) {
	rows, err := parseResultRows(resultsPage)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, db.CompanySummary{
		Name:         "ACME TRADING LTD",
		FileNumber:   "C12345",
		Category:     "DOMESTIC",
		Incorporated: "02/07/2026",
		Nature:       "PRIVATE",
		Status:       "Live",
	}, rows[0])
	assert.Equal(t, "BETA HOLDINGS LTD", rows[1].Name)
	assert.Empty(t, rows[1].Nature)
}

func TestParseResultCount(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    int
		wantErr bool
	}{
		{name: "plain", text: "152 records found", want: 152},
		{name: "thousands separator", text: "1,204 records found", want: 1204},
		{name: "zero", text: "0 records found", want: 0},
		{name: "no digits", text: "no records", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseResultCount(tt.text)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAppendNewDedupsByName(t *testing.T) {
	accumulated := []db.CompanySummary{
		{Name: "ACME TRADING LTD"},
		{Name: "BETA HOLDINGS LTD"},
	}

	// A row whose name already appears never grows the set, regardless of
	// spacing or case.
	merged := appendNew(accumulated, []db.CompanySummary{
		{Name: "ACME TRADING LTD"},
		{Name: "  beta holdings ltd "},
	})
	assert.Len(t, merged, 2)

	merged = appendNew(merged, []db.CompanySummary{
		{Name: "GAMMA SERVICES LTD"},
		{Name: "GAMMA SERVICES LTD"},
		{Name: ""},
	})
	require.Len(t, merged, 3)
	assert.Equal(t, "GAMMA SERVICES LTD", merged[2].Name)
}

func TestDelayForJitterBounds(t *testing.T) {
	s := &Session{
		cfg: config.Config{DelayBaseMs: 100, JitterSpan: 0.5},
		rng: rand.New(rand.NewSource(1)),
	}

	text := "01/07/2026"
	min := time.Duration(float64(100*time.Millisecond) * float64(len(text)) * 0.5)
	max := time.Duration(float64(100*time.Millisecond) * float64(len(text)) * 1.5)
	for i := 0; i < 200; i++ {
		d := s.delayFor(text)
		assert.GreaterOrEqual(t, d, min)
		assert.LessOrEqual(t, d, max)
	}
}
