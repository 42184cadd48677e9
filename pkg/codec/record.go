package codec

import (
	"bytes"
	"io"

	"github.com/ssargent/sarmeta/pkg/endian"
	"github.com/ssargent/sarmeta/pkg/logger"
	"github.com/ssargent/sarmeta/pkg/metrics"
)

// DefaultMaxTableEntries bounds the count of a sub-record table.
const DefaultMaxTableEntries = 1 << 16

// Record is a fixed-layout metadata structure from one section of a
// satellite leader or header file.
type Record interface {
	// RecordName identifies the record type in logs, errors and metrics.
	RecordName() string
	// Layout declares every field, in on-disk order, to f.
	Layout(f Fields)
}

// Fields is the set of operations a record layout is written in. Each call
// names a field and points at the struct member that holds its value.
type Fields interface {
	Text(name string, width int, v *string)
	Int8(name string, v *int8)
	Uint8(name string, v *uint8)
	Int16(name string, v *int16)
	Uint16(name string, v *uint16)
	Int32(name string, v *int32)
	Uint32(name string, v *uint32)
	Int64(name string, v *int64)
	Uint64(name string, v *uint64)
	Float32(name string, v *float32)
	Float64(name string, v *float64)
	// NumericInt and NumericFloat are decimal numbers stored as
	// right-justified text of a fixed width.
	NumericInt(name string, width int, v *int64)
	NumericFloat(name string, width int, v *float64)
	// Reserved is spare space carried through the binary form only.
	Reserved(name string, v []byte)
	// Record nests a fixed sub-record under name.
	Record(name string, r Record)
	// Table holds count sub-records, keyed name[0], name[1], ...
	Table(name string, count int, t Table)
}

// Table is a resizable sequence of sub-records.
type Table interface {
	Len() int
	// Reset replaces the contents with n empty entries.
	Reset(n int)
	// Truncate keeps the first n entries.
	Truncate(n int)
	At(i int) Record
}

// TableOf adapts a slice of record values to Table.
func TableOf[T any, P interface {
	*T
	Record
}](items *[]T) Table {
	return &sliceTable[T, P]{items: items}
}

type sliceTable[T any, P interface {
	*T
	Record
}] struct {
	items *[]T
}

func (s *sliceTable[T, P]) Len() int {
	return len(*s.items)
}

func (s *sliceTable[T, P]) Reset(n int) {
	*s.items = make([]T, n)
}

func (s *sliceTable[T, P]) Truncate(n int) {
	if n < len(*s.items) {
		*s.items = (*s.items)[:n]
	}
}

func (s *sliceTable[T, P]) At(i int) Record {
	return P(&(*s.items)[i])
}

// RecordCodec runs the binary and keyword-list operations over records.
type RecordCodec struct {
	logger          logger.ILogger
	metrics         *metrics.Metrics
	strict          bool
	maxTableEntries int
}

// Option configures a RecordCodec.
type Option func(*RecordCodec)

// WithLogger sets the logger used for warnings and failures.
func WithLogger(l logger.ILogger) Option {
	return func(c *RecordCodec) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics enables operation counters.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *RecordCodec) {
		c.metrics = m
	}
}

// WithStrictText makes WriteStream fail with ErrFieldOverflow instead of
// truncating values that do not fit their field.
func WithStrictText(strict bool) Option {
	return func(c *RecordCodec) {
		c.strict = strict
	}
}

// WithMaxTableEntries sets the largest table count ParseStream accepts.
func WithMaxTableEntries(n int) Option {
	return func(c *RecordCodec) {
		if n > 0 {
			c.maxTableEntries = n
		}
	}
}

// NewRecordCodec creates a new record codec instance
func NewRecordCodec(opts ...Option) *RecordCodec {
	c := &RecordCodec{
		logger:          &logger.NullLogger{},
		maxTableEntries: DefaultMaxTableEntries,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Strict reports whether overflowing values are rejected on write.
func (c *RecordCodec) Strict() bool {
	return c.strict
}

// ParseStream populates rec from r, whose fields are stored in order. On
// failure the returned *ParseError names the failing field and rec must be
// discarded.
func (c *RecordCodec) ParseStream(r io.Reader, order endian.Order, rec Record) error {
	p := &binaryParser{
		r:      &countingReader{r: r},
		order:  order,
		record: rec.RecordName(),
		limit:  c.maxTableEntries,
	}
	rec.Layout(p)

	c.metrics.RecordBytes(metrics.DirectionIn, int(p.r.n))
	c.metrics.RecordOperation(metrics.OpParse, rec.RecordName(), p.err)
	if p.err != nil {
		c.logger.Errorf("%v", p.err)
		return p.err
	}

	c.logger.Debugf("parsed %s: %d bytes, %s endian", rec.RecordName(), p.r.n, order)
	return nil
}

// WriteStream writes rec to w with binary fields in the given order.
func (c *RecordCodec) WriteStream(w io.Writer, order endian.Order, rec Record) error {
	bw := &binaryWriter{
		w:      &countingWriter{w: w},
		order:  order,
		record: rec.RecordName(),
		strict: c.strict,
	}
	rec.Layout(bw)

	c.metrics.RecordBytes(metrics.DirectionOut, int(bw.w.n))
	c.metrics.RecordOperation(metrics.OpWrite, rec.RecordName(), bw.err)
	if bw.err != nil {
		c.logger.Errorf("%v", bw.err)
		return bw.err
	}

	c.logger.Debugf("wrote %s: %d bytes, %s endian", rec.RecordName(), bw.w.n, order)
	return nil
}

// Encode returns the binary form of rec.
func (c *RecordCodec) Encode(rec Record, order endian.Order) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(Size(rec))
	if err := c.WriteStream(&buf, order, rec); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode populates rec from data. Bytes after the record are ignored.
func (c *RecordCodec) Decode(data []byte, order endian.Order, rec Record) error {
	return c.ParseStream(bytes.NewReader(data), order, rec)
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
