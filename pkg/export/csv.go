package export

import (
	"encoding/csv"
	"io"

	"github.com/raykavin/fluid/pkg/core"
)

// Precision is the number of decimals written for prices.
const Precision = 4

// WriteCSV writes bars with a header row.
func WriteCSV(w io.Writer, bars core.Bars) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(core.BarHeader); err != nil {
		return err
	}
	if err := writeBars(writer, bars); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}

// writeBars writes a batch of bars to the CSV writer
func writeBars(writer *csv.Writer, bars core.Bars) error {
	for _, bar := range bars {
		if err := writer.Write(bar.ToSlice(Precision)); err != nil {
			return err
		}
	}
	return nil
}
