package utils

import (
	"encoding/csv"
	"errors"
	"io"
)

// ParseCSV reads every record. Rows may have differing field counts, the
// grid attendance layout leaves trailing cells out. Blank lines come back as
// empty rows so that rows[i] is the record starting on line i+1.
func ParseCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var records [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		line, _ := reader.FieldPos(0)
		for len(records) < line-1 {
			records = append(records, []string{})
		}
		records = append(records, record)
	}
	return records, nil
}
