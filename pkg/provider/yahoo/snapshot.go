package yahoo

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/raykavin/fluid/pkg/core"
	"github.com/tidwall/gjson"
)

// SnapshotModules are the quoteSummary modules merged into a snapshot, in priority order.
var SnapshotModules = []string{"summaryDetail", "defaultKeyStatistics", "price"}

// Snapshot returns the current scalar facts for symbol (previousClose, volume,
// marketCap, pegRatio, ...). Fields Yahoo leaves empty are absent from the record.
func (c *Client) Snapshot(ctx context.Context, symbol string) (core.Record, error) {
	query := url.Values{}
	query.Set("modules", strings.Join(SnapshotModules, ","))

	body, err := c.getWithCrumb(ctx, "/v10/finance/quoteSummary/"+url.PathEscape(symbol), query)
	if err != nil {
		return nil, core.Unavailable(sourceName, symbol, err)
	}

	record, err := parseSummary(body)
	if err != nil {
		return nil, core.Unavailable(sourceName, symbol, err)
	}
	return record, nil
}

func parseSummary(body []byte) (core.Record, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.New("malformed quote summary response")
	}

	doc := gjson.ParseBytes(body)
	if desc := doc.Get("quoteSummary.error.description"); desc.Exists() {
		return nil, fmt.Errorf("api error: %s", desc.String())
	}

	result := doc.Get("quoteSummary.result.0")
	if !result.Exists() {
		return nil, errNoData
	}

	record := core.Record{}
	for _, module := range SnapshotModules {
		result.Get(module).ForEach(func(key, value gjson.Result) bool {
			name := key.String()
			if _, taken := record[name]; taken {
				return true
			}
			if v, ok := scalar(value); ok {
				record[name] = v
			}
			return true
		})
	}
	return record, nil
}

// scalar reduces a quoteSummary value to a plain Go value. Formatted numbers
// come as {"raw": 1.5, "fmt": "1.50"}; empty objects and nulls mean absent.
func scalar(value gjson.Result) (any, bool) {
	switch {
	case value.IsObject():
		raw := value.Get("raw")
		if !raw.Exists() {
			return nil, false
		}
		return scalar(raw)
	case value.IsArray():
		return nil, false
	case value.Type == gjson.Null:
		return nil, false
	case value.Type == gjson.Number && !core.Finite(value.Float()):
		return nil, false
	default:
		return value.Value(), true
	}
}
