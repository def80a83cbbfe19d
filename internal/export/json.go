package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/robert-malhotra/go-las/points"
)

// JSONWriter writes one JSON object per point and line. Keys follow the
// layout's attribute order.
type JSONWriter struct {
	w      *bufio.Writer
	layout *points.Layout
}

// NewJSON creates a JSON lines writer.
func NewJSON(w io.Writer, layout *points.Layout) *JSONWriter {
	return &JSONWriter{w: bufio.NewWriter(w), layout: layout}
}

func (jw *JSONWriter) Write(buf *points.Interleaved) error {
	if err := checkLayout(jw.layout, buf); err != nil {
		return err
	}

	members := jw.layout.Members()
	for i := 0; i < buf.Len(); i++ {
		jw.w.WriteByte('{')
		for k, m := range members {
			v, err := buf.Value(i, m.Name)
			if err != nil {
				return err
			}
			if k > 0 {
				jw.w.WriteByte(',')
			}
			key, _ := json.Marshal(m.Name)
			val, err := json.Marshal(v)
			if err != nil {
				return fmt.Errorf("encoding %s of point %d: %w", m.Name, i, err)
			}
			jw.w.Write(key)
			jw.w.WriteByte(':')
			jw.w.Write(val)
		}
		if _, err := jw.w.WriteString("}\n"); err != nil {
			return fmt.Errorf("writing point %d: %w", i, err)
		}
	}
	return nil
}

func (jw *JSONWriter) Close() error {
	return jw.w.Flush()
}
