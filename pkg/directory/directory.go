// Package directory loads the list of selectable tickers.
//
// Each entry is a display label such as "AAPL (Apple Inc.)"; the symbol is the
// text before the first " (", trimmed and upper-cased. A bare "msft" is a valid
// label whose symbol is "MSFT".
package directory

import (
	"errors"
	"fmt"
	"strings"

	"github.com/StudioSol/set"
	"github.com/raykavin/fluid/pkg/core"
)

const (
	DefaultFile   = "info.xlsx"
	DefaultSheet  = "tickers_list"
	DefaultColumn = "List"
)

var ErrColumnNotFound = errors.New("ticker column not found")

// Directory is an ordered, read-only list of ticker labels.
type Directory struct {
	labels   []string
	bySymbol map[string]string
	byLabel  map[string]string
}

// New builds a directory from raw labels. Blank entries are skipped and only
// the first occurrence of a label is kept.
func New(labels ...string) *Directory {
	unique := set.NewLinkedHashSetString()
	for _, label := range labels {
		label = strings.TrimSpace(label)
		if label == "" || SymbolOf(label) == "" || unique.InArray(label) {
			continue
		}
		unique.Add(label)
	}

	d := &Directory{
		bySymbol: make(map[string]string, unique.Length()),
		byLabel:  make(map[string]string, unique.Length()),
	}
	for label := range unique.Iter() {
		symbol := SymbolOf(label)
		d.labels = append(d.labels, label)
		d.byLabel[label] = symbol
		if _, taken := d.bySymbol[symbol]; !taken {
			d.bySymbol[symbol] = label
		}
	}
	return d
}

// SymbolOf extracts the ticker symbol from a display label.
func SymbolOf(label string) string {
	symbol, _, _ := strings.Cut(label, " (")
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// Labels returns the labels in file order.
func (d *Directory) Labels() []string {
	out := make([]string, len(d.labels))
	copy(out, d.labels)
	return out
}

func (d *Directory) Len() int { return len(d.labels) }

// Symbol resolves a label, or a bare symbol in any case, to a listed ticker symbol.
func (d *Directory) Symbol(labelOrSymbol string) (string, bool) {
	key := strings.TrimSpace(labelOrSymbol)
	if symbol, ok := d.byLabel[key]; ok {
		return symbol, true
	}

	symbol := SymbolOf(key)
	if _, ok := d.bySymbol[symbol]; ok {
		return symbol, true
	}
	return "", false
}

// Label returns the display label of a listed symbol.
func (d *Directory) Label(symbol string) (string, bool) {
	label, ok := d.bySymbol[strings.ToUpper(strings.TrimSpace(symbol))]
	return label, ok
}

// Resolve is Symbol with an error for unlisted tickers.
func (d *Directory) Resolve(labelOrSymbol string) (string, error) {
	symbol, ok := d.Symbol(labelOrSymbol)
	if !ok {
		return "", fmt.Errorf("%w: %q", core.ErrUnknownTicker, labelOrSymbol)
	}
	return symbol, nil
}
