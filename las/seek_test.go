package las

import (
	"io"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-las/internal/filter"
	"github.com/robert-malhotra/go-las/internal/lastest"
)

func seekFixtures() map[string]lastest.File {
	variable := compressed(1, 10, filter.CoderS2)
	variable.ChunkSizes = []uint64{3, 1, 6}
	return map[string]lastest.File{
		"uncompressed": lastest.Simple(1, 10),
		"fixed chunks": compressed(1, 10, filter.CoderDeflate),
		"variable":     variable,
	}
}

func TestSeekCurrentThenRead(t *testing.T) {
	for name, f := range seekFixtures() {
		t.Run(name, func(t *testing.T) {
			data := lastest.Build(t, f)
			full, err := openBytes(t, data).Read(10)
			require.NoError(t, err)

			r := openBytes(t, data, WithChunkSize(2))
			idx, err := r.Seek(5, io.SeekCurrent)
			require.NoError(t, err)
			assert.Equal(t, uint64(5), idx)

			buf, err := r.Read(5)
			require.NoError(t, err)
			require.Equal(t, 5, buf.Len())
			size := full.Layout().Size()
			assert.Equal(t, full.Bytes()[5*size:], buf.Bytes())
		})
	}
}

func TestSeekBackwards(t *testing.T) {
	for name, f := range seekFixtures() {
		t.Run(name, func(t *testing.T) {
			r := openBytes(t, lastest.Build(t, f), WithChunkSize(4))
			first, err := r.Read(10)
			require.NoError(t, err)

			idx, err := r.Seek(-7, io.SeekEnd)
			require.NoError(t, err)
			assert.Equal(t, uint64(3), idx)
			tail, err := r.Read(10)
			require.NoError(t, err)
			size := first.Layout().Size()
			assert.Equal(t, first.Bytes()[3*size:], tail.Bytes())

			_, err = r.Seek(0, io.SeekStart)
			require.NoError(t, err)
			again, err := r.Read(10)
			require.NoError(t, err)
			assert.Equal(t, first.Bytes(), again.Bytes())
		})
	}
}

func TestSeekClampsToPointCount(t *testing.T) {
	r := openBytes(t, lastest.Build(t, lastest.Simple(0, 10)))

	idx, err := r.Seek(100, io.SeekStart)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), idx)

	buf, err := r.Read(5)
	require.NoError(t, err)
	assert.Zero(t, buf.Len())

	idx, err = r.Seek(-3, io.SeekEnd)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), idx)

	idx, err = r.Seek(50, io.SeekCurrent)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), idx)
	assert.Zero(t, r.RemainingPoints())
}

func TestSeekSaturates(t *testing.T) {
	r := openBytes(t, lastest.Build(t, lastest.Simple(0, 10)))
	_, err := r.Seek(5, io.SeekStart)
	require.NoError(t, err)

	for _, whence := range []int{io.SeekStart, io.SeekCurrent, io.SeekEnd} {
		idx, err := r.Seek(math.MaxInt64, whence)
		require.NoError(t, err)
		assert.Equal(t, uint64(10), idx)
	}

	idx, err := r.Seek(math.MinInt64, io.SeekEnd)
	assert.ErrorIs(t, err, ErrNegativeSeek)
	assert.Equal(t, uint64(10), idx)
}

func TestSeekNegative(t *testing.T) {
	r := openBytes(t, lastest.Build(t, lastest.Simple(0, 10)))
	_, err := r.Seek(2, io.SeekStart)
	require.NoError(t, err)

	tests := []struct {
		offset int64
		whence int
	}{
		{-1, io.SeekStart},
		{-3, io.SeekCurrent},
		{-11, io.SeekEnd},
	}
	for _, tt := range tests {
		idx, err := r.Seek(tt.offset, tt.whence)
		assert.ErrorIs(t, err, ErrNegativeSeek)
		assert.Equal(t, uint64(2), idx)
		assert.Equal(t, uint64(2), r.PointIndex())
	}
}

func TestSeekInvalidWhence(t *testing.T) {
	r := openBytes(t, lastest.Build(t, lastest.Simple(0, 10)))
	_, err := r.Seek(1, 7)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNegativeSeek)
	assert.Zero(t, r.PointIndex())
}

func TestSeekUnchangedIndexIsNoop(t *testing.T) {
	f := compressed(0, 10, filter.CoderZstd)
	raw := lastest.Records(f.Descriptor(), f.Points, f.Descriptor().RecordLength())
	dec := &recordsDecompressor{raw: raw, recordLength: f.Descriptor().RecordLength()}

	r := openBytes(t, lastest.Build(t, f), WithDecompressor(dec.factory))
	_, err := r.Seek(0, io.SeekStart)
	require.NoError(t, err)
	_, err = r.Seek(0, io.SeekCurrent)
	require.NoError(t, err)
	assert.Zero(t, dec.seeks)

	_, err = r.Seek(4, io.SeekStart)
	require.NoError(t, err)
	_, err = r.Seek(4, io.SeekStart)
	require.NoError(t, err)
	assert.Equal(t, 1, dec.seeks)
	assert.Equal(t, 4, dec.pos)
}
