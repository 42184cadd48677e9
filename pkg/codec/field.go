package codec

import (
	"bytes"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/ssargent/sarmeta/pkg/endian"
)

// ReadFixedText reads exactly width bytes. The value stops at the first NUL
// byte; space padding is returned as is.
func ReadFixedText(r io.Reader, width int) (string, error) {
	buf := make([]byte, width)
	if err := readFull(r, buf); err != nil {
		return "", err
	}
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		buf = buf[:i]
	}
	return string(buf), nil
}

// WriteFixedText writes s in exactly width bytes, right-padding with spaces.
// A longer s is silently truncated to its first width bytes; use
// WriteFixedTextStrict to reject it instead.
func WriteFixedText(w io.Writer, s string, width int) error {
	buf := bytes.Repeat([]byte{' '}, width)
	copy(buf, s)
	return writeAll(w, buf)
}

// WriteFixedTextStrict is WriteFixedText but fails with ErrFieldOverflow
// when s does not fit.
func WriteFixedTextStrict(w io.Writer, s string, width int) error {
	if len(s) > width {
		return errors.Wrapf(ErrFieldOverflow, "%d bytes into %d", len(s), width)
	}
	return WriteFixedText(w, s, width)
}

// ReadBinary reads one fixed-size scalar stored in the given source order.
func ReadBinary[T endian.Scalar](r io.Reader, source endian.Order) (T, error) {
	var buf [8]byte
	b := buf[:endian.SizeOf[T]()]
	if err := readFull(r, b); err != nil {
		var zero T
		return zero, err
	}
	return endian.ToNative(decodeNative[T](b), source), nil
}

// WriteBinary writes one fixed-size scalar in the given target order.
func WriteBinary[T endian.Scalar](w io.Writer, v T, target endian.Order) error {
	var buf [8]byte
	b := buf[:endian.SizeOf[T]()]
	encodeNative(b, endian.FromNative(v, target))
	return writeAll(w, b)
}

// ReadNumericInt reads a width-byte decimal integer stored as text, as in
// CEOS "I" fields. A blank field reads as zero.
func ReadNumericInt(r io.Reader, width int) (int64, error) {
	s, err := ReadFixedText(r, width)
	if err != nil {
		return 0, err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrMalformedField, "%q", s)
	}
	return v, nil
}

var fortranExponent = strings.NewReplacer("D", "E", "d", "e")

// ReadNumericFloat reads a width-byte decimal number stored as text, as in
// CEOS "F" and "E" fields. A blank field reads as zero.
func ReadNumericFloat(r io.Reader, width int) (float64, error) {
	s, err := ReadFixedText(r, width)
	if err != nil {
		return 0, err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(fortranExponent.Replace(s), 64)
	if err != nil {
		return 0, errors.Wrapf(ErrMalformedField, "%q", s)
	}
	return v, nil
}

// FormatNumericInt renders v right-justified in width bytes. The boolean is
// false when the digits did not fit and were truncated.
func FormatNumericInt(v int64, width int) (string, bool) {
	return justify(strconv.FormatInt(v, 10), width)
}

// FormatNumericFloat renders v right-justified in width bytes using the
// shortest representation that round-trips, falling back to fewer
// significant digits when the width demands it. The boolean is false when
// even that did not fit.
func FormatNumericFloat(v float64, width int) (string, bool) {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if len(s) <= width {
		return justify(s, width)
	}
	for prec := 16; prec >= 0; prec-- {
		s = strconv.FormatFloat(v, 'E', prec, 64)
		if len(s) <= width {
			return justify(s, width)
		}
	}
	return justify(s, width)
}

// WriteNumericInt writes v as right-justified text, truncating on overflow.
func WriteNumericInt(w io.Writer, v int64, width int) error {
	s, _ := FormatNumericInt(v, width)
	return writeAll(w, []byte(s))
}

// WriteNumericFloat writes v as right-justified text, truncating on overflow.
func WriteNumericFloat(w io.Writer, v float64, width int) error {
	s, _ := FormatNumericFloat(v, width)
	return writeAll(w, []byte(s))
}

func justify(s string, width int) (string, bool) {
	if len(s) > width {
		return s[:width], false
	}
	return strings.Repeat(" ", width-len(s)) + s, true
}

func readFull(r io.Reader, buf []byte) error {
	n, err := io.ReadFull(r, buf)
	if err == nil {
		return nil
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return errors.Wrapf(ErrTruncatedStream, "need %d bytes, got %d", len(buf), n)
	}
	return errors.Wrapf(err, "read %d bytes", len(buf))
}

func writeAll(w io.Writer, buf []byte) error {
	n, err := w.Write(buf)
	if err == nil && n < len(buf) {
		err = io.ErrShortWrite
	}
	if err != nil {
		return errors.Mark(errors.Wrapf(err, "write %d bytes", len(buf)), ErrStreamWrite)
	}
	return nil
}

func decodeNative[T endian.Scalar](b []byte) T {
	bo := endian.NativeOrder().ByteOrder()
	var v any
	var zero T
	switch any(zero).(type) {
	case int8:
		v = int8(b[0])
	case uint8:
		v = b[0]
	case int16:
		v = int16(bo.Uint16(b))
	case uint16:
		v = bo.Uint16(b)
	case int32:
		v = int32(bo.Uint32(b))
	case uint32:
		v = bo.Uint32(b)
	case int64:
		v = int64(bo.Uint64(b))
	case uint64:
		v = bo.Uint64(b)
	case float32:
		v = math.Float32frombits(bo.Uint32(b))
	case float64:
		v = math.Float64frombits(bo.Uint64(b))
	}
	return v.(T)
}

func encodeNative[T endian.Scalar](b []byte, value T) {
	bo := endian.NativeOrder().ByteOrder()
	switch x := any(value).(type) {
	case int8:
		b[0] = byte(x)
	case uint8:
		b[0] = x
	case int16:
		bo.PutUint16(b, uint16(x))
	case uint16:
		bo.PutUint16(b, x)
	case int32:
		bo.PutUint32(b, uint32(x))
	case uint32:
		bo.PutUint32(b, x)
	case int64:
		bo.PutUint64(b, uint64(x))
	case uint64:
		bo.PutUint64(b, x)
	case float32:
		bo.PutUint32(b, math.Float32bits(x))
	case float64:
		bo.PutUint64(b, math.Float64bits(x))
	}
}
