package filter

import (
	"fmt"
)

// Pipeline is the ordered list of stages applied to a chunk when encoding.
// Decoding applies them in reverse.
type Pipeline struct {
	filters []Filter
}

// NewPipeline builds the pipeline for a coder id. When shuffle is set, records
// of recordLength bytes are shuffled before coding.
func NewPipeline(coder uint16, shuffle bool, recordLength int) (*Pipeline, error) {
	codec, err := New(coder)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{filters: make([]Filter, 0, 2)}
	if shuffle {
		p.filters = append(p.filters, NewShuffle(recordLength))
	}
	p.filters = append(p.filters, codec)
	return p, nil
}

// Decode applies the pipeline to encoded data.
// Filters are applied in reverse order (last filter first).
func (p *Pipeline) Decode(input []byte) ([]byte, error) {
	data := input

	for i := len(p.filters) - 1; i >= 0; i-- {
		var err error
		data, err = p.filters[i].Decode(data)
		if err != nil {
			return nil, fmt.Errorf("filter %d decode: %w", p.filters[i].ID(), err)
		}
	}

	return data, nil
}

// Encode applies the pipeline in declaration order.
func (p *Pipeline) Encode(input []byte) ([]byte, error) {
	data := input

	for _, f := range p.filters {
		var err error
		data, err = f.Encode(data)
		if err != nil {
			return nil, fmt.Errorf("filter %d encode: %w", f.ID(), err)
		}
	}

	return data, nil
}

// Len returns the number of filters in the pipeline.
func (p *Pipeline) Len() int {
	return len(p.filters)
}
