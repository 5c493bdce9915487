package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"motorbench/pkg/analysis"
)

// WriteCSV dumps the result grid one row per operating point, fields in
// analysis.FieldNames order.
func WriteCSV(w io.Writer, r *analysis.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(analysis.FieldNames); err != nil {
		return err
	}

	fields := r.Fields()
	record := make([]string, len(analysis.FieldNames))
	for i := range r.Current.Data {
		for j, name := range analysis.FieldNames {
			record[j] = strconv.FormatFloat(fields[name].Data[i], 'g', -1, 64)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveCSV writes the CSV dump to path.
func SaveCSV(path string, r *analysis.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	if err := WriteCSV(f, r); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
