package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReadCSV parses CSV input into typed columns. The first record is the
// header. Cell values are parsed as bool, int64, or float64 when every
// non-empty cell of the column agrees; otherwise the column stays string.
// Empty cells become nil.
func ReadCSV(r io.Reader) ([]Column, error) {
	reader := csv.NewReader(r)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New("read csv: empty input")
	}

	header := records[0]
	cols := make([]Column, len(header))
	for i, name := range header {
		cols[i] = Column{
			Name:   strings.TrimSpace(name),
			Values: make([]any, 0, len(records)-1),
		}
	}

	for _, record := range records[1:] {
		for i := range cols {
			cell := ""
			if i < len(record) {
				cell = record[i]
			}
			if cell == "" {
				cols[i].Values = append(cols[i].Values, nil)
				continue
			}
			cols[i].Values = append(cols[i].Values, cell)
		}
	}

	for i := range cols {
		cols[i].Values = typeColumn(cols[i].Values)
	}
	return cols, nil
}

// typeColumn promotes an all-string column to the narrowest agreeing type.
func typeColumn(values []any) []any {
	isInt, isFloat, isBool := true, true, true
	sawValue := false
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			continue
		}
		sawValue = true
		if _, err := strconv.ParseInt(s, 10, 64); err != nil {
			isInt = false
		}
		if _, err := strconv.ParseFloat(s, 64); err != nil {
			isFloat = false
		}
		if _, err := strconv.ParseBool(s); err != nil {
			isBool = false
		}
	}
	if !sawValue {
		return values
	}

	typed := make([]any, len(values))
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			typed[i] = nil
			continue
		}
		switch {
		case isBool:
			typed[i], _ = strconv.ParseBool(s)
		case isInt:
			typed[i], _ = strconv.ParseInt(s, 10, 64)
		case isFloat:
			typed[i], _ = strconv.ParseFloat(s, 64)
		default:
			typed[i] = s
		}
	}
	return typed
}
