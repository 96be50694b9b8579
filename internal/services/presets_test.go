package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const presetHeader = "name,trade_volume,tariff_rate,alternative_markets,diversification_score,origin,target,disruption_probability,horizon\n"

func writePresets(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "presets.csv")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadPresetsFromCSV(t *testing.T) {
	path := writePresets(t, presetHeader+
		"Steel exports,2500000,25,Brazil;India; ,3,Germany,United States,0.4,3\n"+
		"\n"+
		"Coffee to EU,400000,7.5,,8,Colombia,Spain,0.1,2\n")

	a := NewAdvisor(testLogger(), 2)
	require.NoError(t, a.LoadPresetsFromCSV(context.Background(), path))

	presets := a.Presets()
	require.Len(t, presets, 2)

	steel := presets[0]
	assert.Equal(t, "Steel exports", steel.Name)
	assert.Equal(t, 2_500_000.0, steel.TradeVolume)
	assert.Equal(t, 25.0, steel.TariffRate)
	assert.Equal(t, []string{"Brazil", "India"}, steel.AlternativeMarkets)
	assert.Equal(t, "United States", steel.Target)
	assert.Equal(t, 0.4, steel.DisruptionProbability)
	assert.Equal(t, 3, steel.Horizon)

	assert.Empty(t, presets[1].AlternativeMarkets)
	assert.Equal(t, path, a.Stats()["presets_file"])
}

func TestLoadPresetsFromCSV_SkipsBadRows(t *testing.T) {
	path := writePresets(t, presetHeader+
		"too,few,columns\n"+
		"Bad volume,abc,10,,5,A,B,0.1,1\n"+
		"Zero volume,0,10,,5,A,B,0.1,1\n"+
		"Bad probability,100,10,,5,A,B,1.5,1\n"+
		",100,10,,5,A,B,0.1,1\n"+
		"Good,100,10,,5,A,B,0.1,1\n")

	a := NewAdvisor(testLogger(), 2)
	require.NoError(t, a.LoadPresetsFromCSV(context.Background(), path))

	presets := a.Presets()
	require.Len(t, presets, 1)
	assert.Equal(t, "Good", presets[0].Name)
}

func TestLoadPresetsFromCSV_Errors(t *testing.T) {
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		wantErr string
	}{
		{
			name:    "missing file",
			path:    func(t *testing.T) string { return filepath.Join(t.TempDir(), "missing.csv") },
			wantErr: "open file",
		},
		{
			name:    "empty file",
			path:    func(t *testing.T) string { return writePresets(t, "") },
			wantErr: "empty file",
		},
		{
			name:    "header only",
			path:    func(t *testing.T) string { return writePresets(t, presetHeader) },
			wantErr: "no valid presets found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAdvisor(testLogger(), 2)
			err := a.LoadPresetsFromCSV(context.Background(), tt.path(t))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Empty(t, a.Presets())
		})
	}
}

func TestLoadPresetsFromCSV_ManyRowsKeepOrder(t *testing.T) {
	var b strings.Builder
	b.WriteString(presetHeader)
	const rows = batchSize + 250
	for i := range rows {
		fmt.Fprintf(&b, "preset-%04d,%d,5,,5,A,B,0.1,1\n", i, 1000+i)
	}
	path := writePresets(t, b.String())

	a := NewAdvisor(testLogger(), 8)
	require.NoError(t, a.LoadPresetsFromCSV(context.Background(), path))

	presets := a.Presets()
	require.Len(t, presets, rows)
	for i, p := range presets {
		require.Equal(t, fmt.Sprintf("preset-%04d", i), p.Name)
	}
}

func TestLoadPresetsFromCSV_Cancelled(t *testing.T) {
	path := writePresets(t, presetHeader+"Good,100,10,,5,A,B,0.1,1\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := NewAdvisor(testLogger(), 2)
	err := a.LoadPresetsFromCSV(ctx, path)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseScenario(t *testing.T) {
	s, err := parseScenario(strings.Split(" Lumber , 800000 , 12 ,Japan;Korea, 5 , Canada , United States , 0.25 , 4 ", ","))
	require.NoError(t, err)
	assert.Equal(t, "Lumber", s.Name)
	assert.Equal(t, 800_000.0, s.TradeVolume)
	assert.Equal(t, []string{"Japan", "Korea"}, s.AlternativeMarkets)
	assert.Equal(t, "Canada", s.Origin)
	assert.Equal(t, 4, s.Horizon)

	_, err = parseScenario(strings.Split("x,1,1,,1,a,b,0.1,1.5", ","))
	assert.Error(t, err, "horizon must be an integer")
}
