package codec

import (
	"encoding/hex"
	"strconv"

	"github.com/ssargent/sarmeta/pkg/kwl"
)

// Kind is the storage form of a field.
type Kind int

const (
	KindFixedText Kind = iota
	KindInt8
	KindUint8
	KindInt16
	KindUint16
	KindInt32
	KindUint32
	KindInt64
	KindUint64
	KindFloat32
	KindFloat64
	KindNumericInt
	KindNumericFloat
	KindReserved
)

var kindNames = [...]string{
	KindFixedText:    "text",
	KindInt8:         "int8",
	KindUint8:        "uint8",
	KindInt16:        "int16",
	KindUint16:       "uint16",
	KindInt32:        "int32",
	KindUint32:       "uint32",
	KindInt64:        "int64",
	KindUint64:       "uint64",
	KindFloat32:      "float32",
	KindFloat64:      "float64",
	KindNumericInt:   "numeric-int",
	KindNumericFloat: "numeric-float",
	KindReserved:     "reserved",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Field describes one leaf field of a record: its fully qualified name, its
// position in the binary form and its current value rendered as text.
type Field struct {
	Name   string
	Kind   Kind
	Width  int
	Offset int
	Value  string
}

// Describe lists the leaf fields of rec in on-disk order. Tables contribute
// the entries they currently hold.
func Describe(rec Record) []Field {
	d := &describer{}
	rec.Layout(d)
	return d.fields
}

// Size returns the length in bytes of the binary form of rec.
func Size(rec Record) int {
	d := &describer{sizeOnly: true}
	rec.Layout(d)
	return d.offset
}

type describer struct {
	prefix   string
	offset   int
	sizeOnly bool
	fields   []Field
}

func (d *describer) add(name string, kind Kind, width int, value func() string) {
	if !d.sizeOnly {
		d.fields = append(d.fields, Field{
			Name:   kwl.BuildKey(d.prefix, name),
			Kind:   kind,
			Width:  width,
			Offset: d.offset,
			Value:  value(),
		})
	}
	d.offset += width
}

func (d *describer) Text(name string, width int, v *string) {
	d.add(name, KindFixedText, width, func() string { return *v })
}

func (d *describer) Int8(name string, v *int8) {
	d.add(name, KindInt8, 1, func() string { return strconv.FormatInt(int64(*v), 10) })
}

func (d *describer) Uint8(name string, v *uint8) {
	d.add(name, KindUint8, 1, func() string { return strconv.FormatUint(uint64(*v), 10) })
}

func (d *describer) Int16(name string, v *int16) {
	d.add(name, KindInt16, 2, func() string { return strconv.FormatInt(int64(*v), 10) })
}

func (d *describer) Uint16(name string, v *uint16) {
	d.add(name, KindUint16, 2, func() string { return strconv.FormatUint(uint64(*v), 10) })
}

func (d *describer) Int32(name string, v *int32) {
	d.add(name, KindInt32, 4, func() string { return strconv.FormatInt(int64(*v), 10) })
}

func (d *describer) Uint32(name string, v *uint32) {
	d.add(name, KindUint32, 4, func() string { return strconv.FormatUint(uint64(*v), 10) })
}

func (d *describer) Int64(name string, v *int64) {
	d.add(name, KindInt64, 8, func() string { return strconv.FormatInt(*v, 10) })
}

func (d *describer) Uint64(name string, v *uint64) {
	d.add(name, KindUint64, 8, func() string { return strconv.FormatUint(*v, 10) })
}

func (d *describer) Float32(name string, v *float32) {
	d.add(name, KindFloat32, 4, func() string { return strconv.FormatFloat(float64(*v), 'g', -1, 32) })
}

func (d *describer) Float64(name string, v *float64) {
	d.add(name, KindFloat64, 8, func() string { return strconv.FormatFloat(*v, 'g', -1, 64) })
}

func (d *describer) NumericInt(name string, width int, v *int64) {
	d.add(name, KindNumericInt, width, func() string { return strconv.FormatInt(*v, 10) })
}

func (d *describer) NumericFloat(name string, width int, v *float64) {
	d.add(name, KindNumericFloat, width, func() string { return strconv.FormatFloat(*v, 'g', -1, 64) })
}

func (d *describer) Reserved(name string, v []byte) {
	d.add(name, KindReserved, len(v), func() string { return hex.EncodeToString(v) })
}

func (d *describer) Record(name string, r Record) {
	saved := d.prefix
	d.prefix = kwl.BuildKey(saved, name)
	r.Layout(d)
	d.prefix = saved
}

func (d *describer) Table(name string, _ int, t Table) {
	saved := d.prefix
	for i := 0; i < t.Len(); i++ {
		d.prefix = kwl.BuildIndexedKey(saved, name, i)
		t.At(i).Layout(d)
	}
	d.prefix = saved
}
