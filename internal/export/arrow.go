package export

import (
	"fmt"
	"io"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/robert-malhotra/go-las/points"
)

// ArrowWriter writes an Arrow IPC file with one record batch per buffer.
type ArrowWriter struct {
	layout  *points.Layout
	schema  *arrow.Schema
	pool    memory.Allocator
	builder *array.RecordBuilder
	fw      *ipc.FileWriter
	rows    int64
}

// NewArrow creates an Arrow IPC file writer.
func NewArrow(w io.Writer, layout *points.Layout) (*ArrowWriter, error) {
	schema, err := ArrowSchema(layout)
	if err != nil {
		return nil, err
	}

	pool := memory.NewGoAllocator()
	fw, err := ipc.NewFileWriter(w, ipc.WithSchema(schema), ipc.WithAllocator(pool))
	if err != nil {
		return nil, fmt.Errorf("failed to create Arrow writer: %w", err)
	}
	return &ArrowWriter{
		layout:  layout,
		schema:  schema,
		pool:    pool,
		builder: array.NewRecordBuilder(pool, schema),
		fw:      fw,
	}, nil
}

// ArrowSchema maps a layout to an Arrow schema.
func ArrowSchema(layout *points.Layout) (*arrow.Schema, error) {
	members := layout.Members()
	fields := make([]arrow.Field, len(members))
	for i, m := range members {
		t, err := arrowType(m.DataType)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", m.Name, err)
		}
		fields[i] = arrow.Field{Name: m.Name, Type: t}
	}
	return arrow.NewSchema(fields, nil), nil
}

func arrowType(t points.DataType) (arrow.DataType, error) {
	if t.Components() == 3 {
		elem, err := arrowType(t.Element())
		if err != nil {
			return nil, err
		}
		return arrow.FixedSizeListOf(3, elem), nil
	}
	switch t {
	case points.U8:
		return arrow.PrimitiveTypes.Uint8, nil
	case points.I8:
		return arrow.PrimitiveTypes.Int8, nil
	case points.U16:
		return arrow.PrimitiveTypes.Uint16, nil
	case points.I16:
		return arrow.PrimitiveTypes.Int16, nil
	case points.U32:
		return arrow.PrimitiveTypes.Uint32, nil
	case points.I32:
		return arrow.PrimitiveTypes.Int32, nil
	case points.U64:
		return arrow.PrimitiveTypes.Uint64, nil
	case points.I64:
		return arrow.PrimitiveTypes.Int64, nil
	case points.F32:
		return arrow.PrimitiveTypes.Float32, nil
	case points.F64:
		return arrow.PrimitiveTypes.Float64, nil
	case points.Bool:
		return arrow.FixedWidthTypes.Boolean, nil
	}
	return nil, fmt.Errorf("no Arrow type for %s", t)
}

func (aw *ArrowWriter) Write(buf *points.Interleaved) error {
	if err := checkLayout(aw.layout, buf); err != nil {
		return err
	}
	if buf.Len() == 0 {
		return nil
	}

	members := aw.layout.Members()
	for i := 0; i < buf.Len(); i++ {
		for col, m := range members {
			v, err := buf.Value(i, m.Name)
			if err != nil {
				return err
			}
			if err := appendArrowValue(aw.builder.Field(col), v); err != nil {
				return fmt.Errorf("appending %s of point %d: %w", m.Name, i, err)
			}
		}
	}

	record := aw.builder.NewRecord()
	defer record.Release()

	if err := aw.fw.Write(record); err != nil {
		return fmt.Errorf("failed to write record batch: %w", err)
	}
	aw.rows += record.NumRows()
	return nil
}

// Rows returns the number of rows written so far.
func (aw *ArrowWriter) Rows() int64 {
	return aw.rows
}

func (aw *ArrowWriter) Close() error {
	aw.builder.Release()
	if err := aw.fw.Close(); err != nil {
		return fmt.Errorf("failed to close Arrow writer: %w", err)
	}
	return nil
}

func appendArrowValue(builder array.Builder, value any) error {
	switch b := builder.(type) {
	case *array.FixedSizeListBuilder:
		elems, ok := components(value)
		if !ok {
			return fmt.Errorf("expected vector, got %T", value)
		}
		b.Append(true)
		for _, e := range elems {
			if err := appendArrowValue(b.ValueBuilder(), e); err != nil {
				return err
			}
		}
	case *array.Uint8Builder:
		b.Append(value.(uint8))
	case *array.Int8Builder:
		b.Append(value.(int8))
	case *array.Uint16Builder:
		b.Append(value.(uint16))
	case *array.Int16Builder:
		b.Append(value.(int16))
	case *array.Uint32Builder:
		b.Append(value.(uint32))
	case *array.Int32Builder:
		b.Append(value.(int32))
	case *array.Uint64Builder:
		b.Append(value.(uint64))
	case *array.Int64Builder:
		b.Append(value.(int64))
	case *array.Float32Builder:
		b.Append(value.(float32))
	case *array.Float64Builder:
		b.Append(value.(float64))
	case *array.BooleanBuilder:
		b.Append(value.(bool))
	default:
		return fmt.Errorf("unsupported builder %T", builder)
	}
	return nil
}
