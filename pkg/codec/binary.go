package codec

import (
	"github.com/cockroachdb/errors"
	"github.com/ssargent/sarmeta/pkg/endian"
	"github.com/ssargent/sarmeta/pkg/kwl"
)

// binaryParser reads fields in declaration order. The first failure is
// kept in err and every later field becomes a no-op.
type binaryParser struct {
	r      *countingReader
	order  endian.Order
	record string
	prefix string
	limit  int
	err    error
}

func (p *binaryParser) fail(name string, offset int64, err error) {
	p.err = &ParseError{
		Record: p.record,
		Field:  kwl.BuildKey(p.prefix, name),
		Offset: offset,
		Err:    err,
	}
}

func readField[T endian.Scalar](p *binaryParser, name string, v *T) {
	if p.err != nil {
		return
	}
	start := p.r.n
	x, err := ReadBinary[T](p.r, p.order)
	if err != nil {
		p.fail(name, start, err)
		return
	}
	*v = x
}

func (p *binaryParser) Text(name string, width int, v *string) {
	if p.err != nil {
		return
	}
	start := p.r.n
	s, err := ReadFixedText(p.r, width)
	if err != nil {
		p.fail(name, start, err)
		return
	}
	*v = s
}

func (p *binaryParser) Int8(name string, v *int8)       { readField(p, name, v) }
func (p *binaryParser) Uint8(name string, v *uint8)     { readField(p, name, v) }
func (p *binaryParser) Int16(name string, v *int16)     { readField(p, name, v) }
func (p *binaryParser) Uint16(name string, v *uint16)   { readField(p, name, v) }
func (p *binaryParser) Int32(name string, v *int32)     { readField(p, name, v) }
func (p *binaryParser) Uint32(name string, v *uint32)   { readField(p, name, v) }
func (p *binaryParser) Int64(name string, v *int64)     { readField(p, name, v) }
func (p *binaryParser) Uint64(name string, v *uint64)   { readField(p, name, v) }
func (p *binaryParser) Float32(name string, v *float32) { readField(p, name, v) }
func (p *binaryParser) Float64(name string, v *float64) { readField(p, name, v) }

func (p *binaryParser) NumericInt(name string, width int, v *int64) {
	if p.err != nil {
		return
	}
	start := p.r.n
	x, err := ReadNumericInt(p.r, width)
	if err != nil {
		p.fail(name, start, err)
		return
	}
	*v = x
}

func (p *binaryParser) NumericFloat(name string, width int, v *float64) {
	if p.err != nil {
		return
	}
	start := p.r.n
	x, err := ReadNumericFloat(p.r, width)
	if err != nil {
		p.fail(name, start, err)
		return
	}
	*v = x
}

func (p *binaryParser) Reserved(name string, v []byte) {
	if p.err != nil {
		return
	}
	start := p.r.n
	if err := readFull(p.r, v); err != nil {
		p.fail(name, start, err)
	}
}

func (p *binaryParser) Record(name string, r Record) {
	if p.err != nil {
		return
	}
	saved := p.prefix
	p.prefix = kwl.BuildKey(saved, name)
	r.Layout(p)
	p.prefix = saved
}

func (p *binaryParser) Table(name string, count int, t Table) {
	if p.err != nil {
		return
	}
	if count < 0 || count > p.limit {
		p.fail(name, p.r.n, errors.Wrapf(ErrTableTooLarge, "%d entries, limit %d", count, p.limit))
		return
	}

	t.Reset(count)
	saved := p.prefix
	for i := 0; i < count && p.err == nil; i++ {
		p.prefix = kwl.BuildIndexedKey(saved, name, i)
		t.At(i).Layout(p)
	}
	p.prefix = saved
}

// binaryWriter is the mirror image of binaryParser.
type binaryWriter struct {
	w      *countingWriter
	order  endian.Order
	record string
	prefix string
	strict bool
	err    error
}

func (bw *binaryWriter) fail(name string, offset int64, err error) {
	bw.err = &WriteError{
		Record: bw.record,
		Field:  kwl.BuildKey(bw.prefix, name),
		Offset: offset,
		Err:    err,
	}
}

func writeField[T endian.Scalar](bw *binaryWriter, name string, v *T) {
	if bw.err != nil {
		return
	}
	start := bw.w.n
	if err := WriteBinary(bw.w, *v, bw.order); err != nil {
		bw.fail(name, start, err)
	}
}

func (bw *binaryWriter) Text(name string, width int, v *string) {
	if bw.err != nil {
		return
	}
	start := bw.w.n
	write := WriteFixedText
	if bw.strict {
		write = WriteFixedTextStrict
	}
	if err := write(bw.w, *v, width); err != nil {
		bw.fail(name, start, err)
	}
}

func (bw *binaryWriter) Int8(name string, v *int8)       { writeField(bw, name, v) }
func (bw *binaryWriter) Uint8(name string, v *uint8)     { writeField(bw, name, v) }
func (bw *binaryWriter) Int16(name string, v *int16)     { writeField(bw, name, v) }
func (bw *binaryWriter) Uint16(name string, v *uint16)   { writeField(bw, name, v) }
func (bw *binaryWriter) Int32(name string, v *int32)     { writeField(bw, name, v) }
func (bw *binaryWriter) Uint32(name string, v *uint32)   { writeField(bw, name, v) }
func (bw *binaryWriter) Int64(name string, v *int64)     { writeField(bw, name, v) }
func (bw *binaryWriter) Uint64(name string, v *uint64)   { writeField(bw, name, v) }
func (bw *binaryWriter) Float32(name string, v *float32) { writeField(bw, name, v) }
func (bw *binaryWriter) Float64(name string, v *float64) { writeField(bw, name, v) }

func (bw *binaryWriter) numeric(name string, s string, fits bool) {
	start := bw.w.n
	if !fits && bw.strict {
		bw.fail(name, start, errors.Wrapf(ErrFieldOverflow, "%q", s))
		return
	}
	if err := writeAll(bw.w, []byte(s)); err != nil {
		bw.fail(name, start, err)
	}
}

func (bw *binaryWriter) NumericInt(name string, width int, v *int64) {
	if bw.err != nil {
		return
	}
	s, fits := FormatNumericInt(*v, width)
	bw.numeric(name, s, fits)
}

func (bw *binaryWriter) NumericFloat(name string, width int, v *float64) {
	if bw.err != nil {
		return
	}
	s, fits := FormatNumericFloat(*v, width)
	bw.numeric(name, s, fits)
}

func (bw *binaryWriter) Reserved(name string, v []byte) {
	if bw.err != nil {
		return
	}
	start := bw.w.n
	if err := writeAll(bw.w, v); err != nil {
		bw.fail(name, start, err)
	}
}

func (bw *binaryWriter) Record(name string, r Record) {
	if bw.err != nil {
		return
	}
	saved := bw.prefix
	bw.prefix = kwl.BuildKey(saved, name)
	r.Layout(bw)
	bw.prefix = saved
}

func (bw *binaryWriter) Table(name string, count int, t Table) {
	if bw.err != nil {
		return
	}
	if t.Len() != count {
		bw.fail(name, bw.w.n, errors.Wrapf(ErrCountMismatch, "count %d, %d entries", count, t.Len()))
		return
	}

	saved := bw.prefix
	for i := 0; i < count && bw.err == nil; i++ {
		bw.prefix = kwl.BuildIndexedKey(saved, name, i)
		t.At(i).Layout(bw)
	}
	bw.prefix = saved
}
