package report

import (
	"encoding/csv"
	"io"
)

func writeCSV(w io.Writer, r Report) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(Columns); err != nil {
		return err
	}

	for _, row := range r.Rows {
		if err := writer.Write(row.values()); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
