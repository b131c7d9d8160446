package directory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/raykavin/fluid/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestSymbolOf(t *testing.T) {
	tests := map[string]string{
		"AAPL (Apple Inc.)":           "AAPL",
		"  msft (Microsoft) ":         "MSFT",
		"brk-b (Berkshire (Class B))": "BRK-B",
		"tsla":                        "TSLA",
		"":                            "",
		"^GSPC (S&P 500)":             "^GSPC",
	}
	for label, want := range tests {
		assert.Equal(t, want, SymbolOf(label), label)
	}
}

func TestDirectory(t *testing.T) {
	d := New("AAPL (Apple Inc.)", "", "MSFT (Microsoft)", "AAPL (Apple Inc.)", "  ", "nvda")

	assert.Equal(t, 3, d.Len())
	assert.Equal(t, []string{"AAPL (Apple Inc.)", "MSFT (Microsoft)", "nvda"}, d.Labels())

	symbol, ok := d.Symbol("MSFT (Microsoft)")
	require.True(t, ok)
	assert.Equal(t, "MSFT", symbol)

	symbol, ok = d.Symbol("aapl")
	require.True(t, ok)
	assert.Equal(t, "AAPL", symbol)

	symbol, ok = d.Symbol("NVDA")
	require.True(t, ok)
	assert.Equal(t, "NVDA", symbol)

	_, ok = d.Symbol("GOOG")
	assert.False(t, ok)

	_, err := d.Resolve("GOOG (Alphabet)")
	assert.ErrorIs(t, err, core.ErrUnknownTicker)

	label, ok := d.Label("aapl")
	require.True(t, ok)
	assert.Equal(t, "AAPL (Apple Inc.)", label)
}

func TestDirectory_LabelsIsCopy(t *testing.T) {
	d := New("AAPL (Apple Inc.)")
	labels := d.Labels()
	labels[0] = "changed"
	assert.Equal(t, "AAPL (Apple Inc.)", d.Labels()[0])
}

func TestLoad_Workbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "info.xlsx")

	book := excelize.NewFile()
	_, err := book.NewSheet(DefaultSheet)
	require.NoError(t, err)
	require.NoError(t, book.SetSheetRow(DefaultSheet, "A1", &[]any{"Id", "List"}))
	require.NoError(t, book.SetSheetRow(DefaultSheet, "A2", &[]any{1, "AAPL (Apple Inc.)"}))
	require.NoError(t, book.SetSheetRow(DefaultSheet, "A3", &[]any{2, "MSFT (Microsoft)"}))
	require.NoError(t, book.SetSheetRow(DefaultSheet, "A4", &[]any{3, "AAPL (Apple Inc.)"}))
	require.NoError(t, book.SaveAs(path))
	require.NoError(t, book.Close())

	d, err := Load(path, "", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL (Apple Inc.)", "MSFT (Microsoft)"}, d.Labels())

	_, err = Load(path, "missing", "")
	assert.Error(t, err)

	_, err = Load(path, DefaultSheet, "Tickers")
	assert.ErrorIs(t, err, ErrColumnNotFound)
}

func TestLoad_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tickers.csv")
	content := "List,Sector\n\"AAPL (Apple Inc.)\",Tech\n\"XOM (Exxon Mobil)\",Energy\n,\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	d, err := Load(path, "", "list")
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL (Apple Inc.)", "XOM (Exxon Mobil)"}, d.Labels())
}

func TestLoad_Unsupported(t *testing.T) {
	_, err := Load("tickers.json", "", "")
	assert.Error(t, err)
}
