// Package endian detects the host byte order and swaps multi-byte scalars.
//
// Satellite leader files are written in a fixed byte order (ENVISAT and
// RadarSat products are big-endian). Values are read into host memory as
// native scalars and swapped only when the on-disk order differs from
// NativeOrder.
package endian

import (
	"encoding/binary"
	"strings"
	"sync"
	"unsafe"

	"github.com/cockroachdb/errors"
)

// Order is the byte significance ordering of a multi-byte value.
type Order int

const (
	// BigEndian stores the most significant byte first (network order).
	BigEndian Order = iota
	// LittleEndian stores the least significant byte first.
	LittleEndian
)

// ErrUnknownOrder is returned by ParseOrder for unrecognized names.
var ErrUnknownOrder = errors.New("unknown byte order")

var nativeOrder = sync.OnceValue(func() Order {
	pattern := uint16(0x0102)
	if *(*byte)(unsafe.Pointer(&pattern)) == 0x01 {
		return BigEndian
	}
	return LittleEndian
})

// NativeOrder returns the byte order of the running process. It is
// computed once and never changes.
func NativeOrder() Order {
	return nativeOrder()
}

// IsNative reports whether o matches the host byte order.
func (o Order) IsNative() bool {
	return o == NativeOrder()
}

// ByteOrder returns the encoding/binary equivalent of o.
func (o Order) ByteOrder() binary.ByteOrder {
	if o == LittleEndian {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

func (o Order) String() string {
	switch o {
	case BigEndian:
		return "big"
	case LittleEndian:
		return "little"
	default:
		return "unknown"
	}
}

// ParseOrder converts a configuration or flag value to an Order. It
// accepts "big", "little", "network" and "native" in any case.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "big", "bigendian", "big-endian", "network":
		return BigEndian, nil
	case "little", "littleendian", "little-endian":
		return LittleEndian, nil
	case "native":
		return NativeOrder(), nil
	default:
		return BigEndian, errors.Wrapf(ErrUnknownOrder, "%q", s)
	}
}
