package directory

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Load reads the ticker labels from column of an .xlsx sheet or a .csv file.
// The first row is the header. Empty sheet and column fall back to the defaults.
func Load(path, sheet, column string) (*Directory, error) {
	if column == "" {
		column = DefaultColumn
	}

	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		rows, err = readWorkbook(path, sheet)
	case ".csv":
		rows, err = readCSV(path)
	default:
		return nil, fmt.Errorf("unsupported ticker list format: %s", path)
	}
	if err != nil {
		return nil, err
	}

	labels, err := columnValues(rows, column)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return New(labels...), nil
}

func readWorkbook(path, sheet string) ([][]string, error) {
	if sheet == "" {
		sheet = DefaultSheet
	}

	book, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer book.Close()

	rows, err := book.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func columnValues(rows [][]string, column string) ([]string, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %q (empty file)", ErrColumnNotFound, column)
	}

	index := -1
	for i, name := range rows[0] {
		if strings.EqualFold(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")), column) {
			index = i
			break
		}
	}
	if index < 0 {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, column)
	}

	values := make([]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if index < len(row) {
			values = append(values, row[index])
		}
	}
	return values, nil
}
