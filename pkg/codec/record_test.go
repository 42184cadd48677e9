package codec

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/sarmeta/pkg/endian"
	"github.com/ssargent/sarmeta/pkg/kwl"
	"github.com/ssargent/sarmeta/pkg/metrics"
)

type point struct {
	X     float64
	Y     float64
	Label string
}

func (p *point) RecordName() string { return "point" }

func (p *point) Layout(f Fields) {
	f.Float64("x", &p.X)
	f.Float64("y", &p.Y)
	f.Text("label", 8, &p.Label)
}

// sample exercises every field kind. Its binary form is 100 bytes plus 24
// per point.
type sample struct {
	Name    string
	Flag    uint8
	Short   int16
	Day     int32
	Count   uint32
	Big     int64
	Ratio   float32
	Scale   float64
	Ndata   int64
	GmtSec  float64
	Spare   [3]byte
	Origin  point
	NPoints uint32
	Points  []point
}

func (s *sample) RecordName() string { return "sample" }

func (s *sample) Layout(f Fields) {
	f.Text("name", 12, &s.Name)
	f.Uint8("flag", &s.Flag)
	f.Int16("short", &s.Short)
	f.Int32("day", &s.Day)
	f.Uint32("count", &s.Count)
	f.Int64("big", &s.Big)
	f.Float32("ratio", &s.Ratio)
	f.Float64("scale", &s.Scale)
	f.NumericInt("ndata", 4, &s.Ndata)
	f.NumericFloat("gmt_sec", 22, &s.GmtSec)
	f.Reserved("spare", s.Spare[:])
	f.Record("origin", &s.Origin)
	f.Uint32("npoints", &s.NPoints)
	f.Table("points", int(s.NPoints), TableOf(&s.Points))
}

func newSample() *sample {
	return &sample{
		Name:    "ENVISAT ASAR",
		Flag:    1,
		Short:   -300,
		Day:     -1234,
		Count:   4000000000,
		Big:     -9000000000000,
		Ratio:   0.5,
		Scale:   1.0 / 3.0,
		Ndata:   15,
		GmtSec:  43200.125,
		Spare:   [3]byte{0xDE, 0xAD, 0x00},
		Origin:  point{X: 1.25, Y: -2.5, Label: "center"},
		NPoints: 2,
		Points: []point{
			{X: 10, Y: 20, Label: "ul"},
			{X: 30, Y: 40, Label: "lr"},
		},
	}
}

func TestRecordCodec_RoundTrip(t *testing.T) {
	codec := NewRecordCodec()

	for _, order := range []endian.Order{endian.BigEndian, endian.LittleEndian} {
		t.Run(order.String(), func(t *testing.T) {
			in := newSample()

			encoded, err := codec.Encode(in, order)
			require.NoError(t, err)
			assert.Len(t, encoded, 148)
			assert.Equal(t, Size(in), len(encoded))

			var out sample
			require.NoError(t, codec.Decode(encoded, order, &out))

			assert.Equal(t, in.Name, out.Name)
			assert.Equal(t, in.Flag, out.Flag)
			assert.Equal(t, in.Short, out.Short)
			assert.Equal(t, in.Day, out.Day)
			assert.Equal(t, in.Count, out.Count)
			assert.Equal(t, in.Big, out.Big)
			assert.Equal(t, in.Ratio, out.Ratio)
			assert.Equal(t, in.Scale, out.Scale)
			assert.Equal(t, in.Ndata, out.Ndata)
			assert.Equal(t, in.GmtSec, out.GmtSec)
			assert.Equal(t, in.Spare, out.Spare)
			assert.Equal(t, in.Origin.X, out.Origin.X)
			assert.Equal(t, "center  ", out.Origin.Label)
			require.Len(t, out.Points, 2)
			assert.Equal(t, 30.0, out.Points[1].X)
			assert.Equal(t, "lr", strings.TrimRight(out.Points[1].Label, " "))

			again, err := codec.Encode(&out, order)
			require.NoError(t, err)
			assert.Equal(t, encoded, again)
		})
	}
}

func TestRecordCodec_OrdersDiffer(t *testing.T) {
	codec := NewRecordCodec()

	big, err := codec.Encode(newSample(), endian.BigEndian)
	require.NoError(t, err)
	little, err := codec.Encode(newSample(), endian.LittleEndian)
	require.NoError(t, err)

	assert.Equal(t, len(big), len(little))
	assert.NotEqual(t, big, little)
	// text and numeric text do not depend on byte order
	assert.Equal(t, big[:12], little[:12])
	assert.Equal(t, big[12], little[12])
	assert.Equal(t, big[43:69], little[43:69])
}

func TestRecordCodec_ParseTruncated(t *testing.T) {
	codec := NewRecordCodec()
	encoded, err := codec.Encode(newSample(), endian.BigEndian)
	require.NoError(t, err)

	testCases := []struct {
		name   string
		length int
		field  string
		offset int64
	}{
		{name: "empty", length: 0, field: "name", offset: 0},
		{name: "inside text", length: 5, field: "name", offset: 0},
		{name: "inside int32", length: 17, field: "day", offset: 15},
		{name: "inside nested record", length: 80, field: "origin.y", offset: 80},
		{name: "inside table", length: 136, field: "points[1].y", offset: 132},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var out sample
			err := codec.Decode(encoded[:tc.length], endian.BigEndian, &out)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrTruncatedStream))

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, "sample", perr.Record)
			assert.Equal(t, tc.field, perr.Field)
			assert.Equal(t, tc.offset, perr.Offset)
		})
	}
}

func TestRecordCodec_ParseMalformedNumeric(t *testing.T) {
	codec := NewRecordCodec()
	encoded, err := codec.Encode(newSample(), endian.BigEndian)
	require.NoError(t, err)

	copy(encoded[43:47], "1?3 ")

	var out sample
	err = codec.Decode(encoded, endian.BigEndian, &out)
	assert.True(t, errors.Is(err, ErrMalformedField))

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "ndata", perr.Field)
}

func TestRecordCodec_TableLimit(t *testing.T) {
	codec := NewRecordCodec(WithMaxTableEntries(1))

	encoded, err := NewRecordCodec().Encode(newSample(), endian.BigEndian)
	require.NoError(t, err)

	var out sample
	err = codec.Decode(encoded, endian.BigEndian, &out)
	assert.True(t, errors.Is(err, ErrTableTooLarge))
	assert.Empty(t, out.Points)
}

func TestRecordCodec_WriteCountMismatch(t *testing.T) {
	codec := NewRecordCodec()
	in := newSample()
	in.NPoints = 3

	var buf bytes.Buffer
	err := codec.WriteStream(&buf, endian.BigEndian, in)
	assert.True(t, errors.Is(err, ErrCountMismatch))

	var werr *WriteError
	require.True(t, errors.As(err, &werr))
	assert.Equal(t, "points", werr.Field)
	assert.Equal(t, int64(100), werr.Offset)
}

func TestRecordCodec_WriteFailure(t *testing.T) {
	codec := NewRecordCodec()

	err := codec.WriteStream(&failingWriter{accept: 14}, endian.BigEndian, newSample())
	assert.True(t, errors.Is(err, ErrStreamWrite))

	var werr *WriteError
	require.True(t, errors.As(err, &werr))
	assert.Equal(t, "short", werr.Field)
}

func TestRecordCodec_StrictText(t *testing.T) {
	in := newSample()
	in.Name = "ENVISAT ASAR IMAGE MODE"

	lenient, err := NewRecordCodec().Encode(in, endian.BigEndian)
	require.NoError(t, err)
	assert.Equal(t, "ENVISAT ASAR", string(lenient[:12]))

	strict := NewRecordCodec(WithStrictText(true))
	assert.True(t, strict.Strict())
	_, err = strict.Encode(in, endian.BigEndian)
	assert.True(t, errors.Is(err, ErrFieldOverflow))

	in = newSample()
	in.Ndata = 123456
	_, err = strict.Encode(in, endian.BigEndian)
	assert.True(t, errors.Is(err, ErrFieldOverflow))
}

func TestRecordCodec_Metrics(t *testing.T) {
	m := metrics.NewMetrics()
	codec := NewRecordCodec(WithMetrics(m))

	encoded, err := codec.Encode(newSample(), endian.BigEndian)
	require.NoError(t, err)
	var out sample
	require.NoError(t, codec.Decode(encoded, endian.BigEndian, &out))
	require.Error(t, codec.Decode(encoded[:10], endian.BigEndian, &out))

	snap, err := m.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, 1.0, snap[`sarmeta_record_operations_total{operation="write",record="sample",status="success"}`])
	assert.Equal(t, 1.0, snap[`sarmeta_record_operations_total{operation="parse",record="sample",status="success"}`])
	assert.Equal(t, 1.0, snap[`sarmeta_record_operations_total{operation="parse",record="sample",status="error"}`])
	assert.Equal(t, 148.0, snap[`sarmeta_record_bytes_total{direction="out"}`])
	assert.Equal(t, 158.0, snap[`sarmeta_record_bytes_total{direction="in"}`])
}

func TestDescribe(t *testing.T) {
	fields := Describe(newSample())

	byName := make(map[string]Field, len(fields))
	for _, f := range fields {
		byName[f.Name] = f
	}

	assert.Len(t, fields, 11+3+1+6)
	assert.Equal(t, Field{Name: "name", Kind: KindFixedText, Width: 12, Offset: 0, Value: "ENVISAT ASAR"}, fields[0])
	assert.Equal(t, Field{Name: "day", Kind: KindInt32, Width: 4, Offset: 15, Value: "-1234"}, byName["day"])
	assert.Equal(t, KindNumericFloat, byName["gmt_sec"].Kind)
	assert.Equal(t, "43200.125", byName["gmt_sec"].Value)
	assert.Equal(t, "dead00", byName["spare"].Value)
	assert.Equal(t, 72, byName["origin.x"].Offset)
	assert.Equal(t, 124, byName["points[1].x"].Offset)
	assert.Equal(t, "lr", byName["points[1].label"].Value)
}

// counters covers the integer widths sample does not use.
type counters struct {
	Offset int8
	Looks  uint16
	Total  uint64
}

func (c *counters) RecordName() string { return "counters" }

func (c *counters) Layout(f Fields) {
	f.Int8("offset", &c.Offset)
	f.Uint16("looks", &c.Looks)
	f.Uint64("total", &c.Total)
}

func TestRecordCodec_NarrowAndWideIntegers(t *testing.T) {
	codec := NewRecordCodec()
	in := &counters{Offset: -2, Looks: 0x0102, Total: 0x0102030405060708}

	big, err := codec.Encode(in, endian.BigEndian)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xFE, 0x01, 0x02, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}, big)

	little, err := codec.Encode(in, endian.LittleEndian)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xFE, 0x02, 0x01, 0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01}, little)

	var out counters
	require.NoError(t, codec.Decode(little, endian.LittleEndian, &out))
	assert.Equal(t, *in, out)

	var perr *ParseError
	err = codec.Decode(big[:5], endian.BigEndian, &out)
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "total", perr.Field)
	assert.Equal(t, int64(3), perr.Offset)

	k := kwl.New()
	codec.SaveState(k, "c", in)
	assert.Equal(t, "c.looks: 258\nc.offset: -2\nc.total: 72623859790382856\n", k.String())

	var loaded counters
	require.True(t, codec.LoadState(k, "c", &loaded))
	assert.Equal(t, *in, loaded)

	fields := Describe(in)
	require.Len(t, fields, 3)
	assert.Equal(t, Field{Name: "looks", Kind: KindUint16, Width: 2, Offset: 1, Value: "258"}, fields[1])
	assert.Equal(t, KindInt8, fields[0].Kind)
	assert.Equal(t, 3, fields[2].Offset)
	assert.Equal(t, 11, Size(in))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "text", KindFixedText.String())
	assert.Equal(t, "numeric-int", KindNumericInt.String())
	assert.Equal(t, "uint16", KindUint16.String())
	assert.Equal(t, "unknown", Kind(42).String())
}
