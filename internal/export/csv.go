package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/robert-malhotra/go-las/points"
)

// CSVWriter writes one header row followed by one row per point.
type CSVWriter struct {
	w       *csv.Writer
	layout  *points.Layout
	started bool
}

// NewCSV creates a CSV writer.
func NewCSV(w io.Writer, layout *points.Layout) *CSVWriter {
	return &CSVWriter{w: csv.NewWriter(w), layout: layout}
}

func (cw *CSVWriter) header() []string {
	var cols []string
	for _, m := range cw.layout.Members() {
		if m.DataType.Components() == 3 {
			for _, a := range axes {
				cols = append(cols, m.Name+"."+a)
			}
			continue
		}
		cols = append(cols, m.Name)
	}
	return cols
}

func (cw *CSVWriter) Write(buf *points.Interleaved) error {
	if err := checkLayout(cw.layout, buf); err != nil {
		return err
	}
	if !cw.started {
		if err := cw.w.Write(cw.header()); err != nil {
			return fmt.Errorf("writing CSV header: %w", err)
		}
		cw.started = true
	}

	members := cw.layout.Members()
	row := make([]string, 0, len(cw.header()))
	for i := 0; i < buf.Len(); i++ {
		row = row[:0]
		for _, m := range members {
			v, err := buf.Value(i, m.Name)
			if err != nil {
				return err
			}
			if elems, ok := components(v); ok {
				for _, e := range elems {
					row = append(row, formatScalar(e))
				}
				continue
			}
			row = append(row, formatScalar(v))
		}
		if err := cw.w.Write(row); err != nil {
			return fmt.Errorf("writing CSV row %d: %w", i, err)
		}
	}
	return nil
}

func (cw *CSVWriter) Close() error {
	if !cw.started {
		if err := cw.w.Write(cw.header()); err != nil {
			return fmt.Errorf("writing CSV header: %w", err)
		}
		cw.started = true
	}
	cw.w.Flush()
	return cw.w.Error()
}

func formatScalar(v any) string {
	switch x := v.(type) {
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case bool:
		if x {
			return "1"
		}
		return "0"
	default:
		return fmt.Sprint(x)
	}
}
