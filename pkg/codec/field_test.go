package codec

import (
	"bytes"
	"math"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/sarmeta/pkg/endian"
)

type failingWriter struct {
	accept int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	if len(p) <= w.accept {
		w.accept -= len(p)
		return len(p), nil
	}
	n := w.accept
	w.accept = 0
	return n, nil
}

func TestFixedText(t *testing.T) {
	testCases := []struct {
		name  string
		value string
		width int
		want  []byte
	}{
		{name: "padded", value: "ASAR", width: 8, want: []byte("ASAR    ")},
		{name: "exact", value: "ENVISAT", width: 7, want: []byte("ENVISAT")},
		{name: "truncated", value: "RADARSAT-2", width: 5, want: []byte("RADAR")},
		{name: "empty", value: "", width: 3, want: []byte("   ")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteFixedText(&buf, tc.value, tc.width))
			assert.Equal(t, tc.want, buf.Bytes())

			got, err := ReadFixedText(&buf, tc.width)
			require.NoError(t, err)
			assert.Equal(t, string(tc.want), got)
		})
	}
}

func TestReadFixedText_StopsAtNUL(t *testing.T) {
	r := bytes.NewReader([]byte{'A', 'B', 0, 'Z', 'Z', 'N'})

	got, err := ReadFixedText(r, 5)
	require.NoError(t, err)
	assert.Equal(t, "AB", got)

	// the whole width is consumed
	rest, err := ReadFixedText(r, 1)
	require.NoError(t, err)
	assert.Equal(t, "N", rest)
}

func TestReadFixedText_Truncated(t *testing.T) {
	_, err := ReadFixedText(bytes.NewReader([]byte("abc")), 4)
	assert.True(t, errors.Is(err, ErrTruncatedStream))
}

func TestWriteFixedTextStrict(t *testing.T) {
	var buf bytes.Buffer
	err := WriteFixedTextStrict(&buf, "TOO LONG", 3)
	assert.True(t, errors.Is(err, ErrFieldOverflow))
	assert.Zero(t, buf.Len())

	require.NoError(t, WriteFixedTextStrict(&buf, "OK", 3))
	assert.Equal(t, "OK ", buf.String())
}

func TestBinary_ByteOrder(t *testing.T) {
	t.Run("float32 big endian", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteBinary(&buf, float32(12345.0), endian.BigEndian))
		assert.Equal(t, []byte{0x46, 0x40, 0xE4, 0x00}, buf.Bytes())

		v, err := ReadBinary[float32](&buf, endian.BigEndian)
		require.NoError(t, err)
		assert.Equal(t, float32(12345.0), v)
	})

	t.Run("float32 little endian", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteBinary(&buf, float32(12345.0), endian.LittleEndian))
		assert.Equal(t, []byte{0x00, 0xE4, 0x40, 0x46}, buf.Bytes())
	})

	t.Run("int16", func(t *testing.T) {
		v, err := ReadBinary[int16](bytes.NewReader([]byte{0xFF, 0xFE}), endian.BigEndian)
		require.NoError(t, err)
		assert.Equal(t, int16(-2), v)

		v, err = ReadBinary[int16](bytes.NewReader([]byte{0xFE, 0xFF}), endian.LittleEndian)
		require.NoError(t, err)
		assert.Equal(t, int16(-2), v)
	})

	t.Run("uint32", func(t *testing.T) {
		v, err := ReadBinary[uint32](bytes.NewReader([]byte{0x01, 0x02, 0x03, 0x04}), endian.BigEndian)
		require.NoError(t, err)
		assert.Equal(t, uint32(0x01020304), v)
	})

	t.Run("float64 round trip", func(t *testing.T) {
		for _, order := range []endian.Order{endian.BigEndian, endian.LittleEndian} {
			var buf bytes.Buffer
			require.NoError(t, WriteBinary(&buf, math.Pi, order))
			assert.Equal(t, 8, buf.Len())

			v, err := ReadBinary[float64](&buf, order)
			require.NoError(t, err)
			assert.Equal(t, math.Float64bits(math.Pi), math.Float64bits(v))
		}
	})

	t.Run("uint8 ignores order", func(t *testing.T) {
		for _, order := range []endian.Order{endian.BigEndian, endian.LittleEndian} {
			v, err := ReadBinary[uint8](bytes.NewReader([]byte{0x7F}), order)
			require.NoError(t, err)
			assert.Equal(t, uint8(0x7F), v)
		}
	})
}

func TestReadBinary_Truncated(t *testing.T) {
	_, err := ReadBinary[float64](bytes.NewReader([]byte{1, 2, 3}), endian.BigEndian)
	assert.True(t, errors.Is(err, ErrTruncatedStream))

	_, err = ReadBinary[int32](bytes.NewReader(nil), endian.LittleEndian)
	assert.True(t, errors.Is(err, ErrTruncatedStream))
}

func TestWriteBinary_ShortWrite(t *testing.T) {
	err := WriteBinary(&failingWriter{accept: 2}, int32(7), endian.BigEndian)
	assert.True(t, errors.Is(err, ErrStreamWrite))
}

func TestNumericText(t *testing.T) {
	t.Run("integers", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteNumericInt(&buf, 15, 4))
		assert.Equal(t, "  15", buf.String())

		v, err := ReadNumericInt(&buf, 4)
		require.NoError(t, err)
		assert.Equal(t, int64(15), v)
	})

	t.Run("negative integer", func(t *testing.T) {
		s, fits := FormatNumericInt(-2024, 6)
		assert.True(t, fits)
		assert.Equal(t, " -2024", s)
	})

	t.Run("integer overflow", func(t *testing.T) {
		s, fits := FormatNumericInt(123456, 4)
		assert.False(t, fits)
		assert.Len(t, s, 4)
	})

	t.Run("float shortest form", func(t *testing.T) {
		s, fits := FormatNumericFloat(43200.125, 22)
		assert.True(t, fits)
		assert.Equal(t, "             43200.125", s)
	})

	t.Run("float narrowed to width", func(t *testing.T) {
		s, fits := FormatNumericFloat(math.Pi, 8)
		assert.True(t, fits)
		assert.Len(t, s, 8)

		v, err := ReadNumericFloat(bytes.NewReader([]byte(s)), 8)
		require.NoError(t, err)
		assert.InDelta(t, math.Pi, v, 1e-2)
	})

	t.Run("float round trip", func(t *testing.T) {
		for _, want := range []float64{0, -1.5, 7.123456789012345e6, 1e-300} {
			var buf bytes.Buffer
			require.NoError(t, WriteNumericFloat(&buf, want, 22))
			assert.Equal(t, 22, buf.Len())

			got, err := ReadNumericFloat(&buf, 22)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	})

	t.Run("fortran exponent", func(t *testing.T) {
		v, err := ReadNumericFloat(bytes.NewReader([]byte("  1.5D+03")), 9)
		require.NoError(t, err)
		assert.Equal(t, 1500.0, v)
	})

	t.Run("blank reads as zero", func(t *testing.T) {
		i, err := ReadNumericInt(bytes.NewReader([]byte("    ")), 4)
		require.NoError(t, err)
		assert.Zero(t, i)

		f, err := ReadNumericFloat(bytes.NewReader([]byte("      ")), 6)
		require.NoError(t, err)
		assert.Zero(t, f)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := ReadNumericInt(bytes.NewReader([]byte(" 1x3")), 4)
		assert.True(t, errors.Is(err, ErrMalformedField))

		_, err = ReadNumericFloat(bytes.NewReader([]byte("abc")), 3)
		assert.True(t, errors.Is(err, ErrMalformedField))
	})
}
