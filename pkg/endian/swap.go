package endian

import (
	"math"
	"math/bits"
	"unsafe"
)

// Scalar is the set of fixed-size values a record field can hold.
type Scalar interface {
	int8 | uint8 | int16 | uint16 | int32 | uint32 | int64 | uint64 | float32 | float64
}

// SizeOf returns the encoded width of T in bytes.
func SizeOf[T Scalar]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// Swap returns v with its bytes reversed. Floats are swapped on their
// IEEE-754 bit pattern. Single-byte values are returned unchanged.
func Swap[T Scalar](v T) T {
	switch x := any(v).(type) {
	case int8, uint8:
		return v
	case int16:
		return any(int16(bits.ReverseBytes16(uint16(x)))).(T)
	case uint16:
		return any(bits.ReverseBytes16(x)).(T)
	case int32:
		return any(int32(bits.ReverseBytes32(uint32(x)))).(T)
	case uint32:
		return any(bits.ReverseBytes32(x)).(T)
	case int64:
		return any(int64(bits.ReverseBytes64(uint64(x)))).(T)
	case uint64:
		return any(bits.ReverseBytes64(x)).(T)
	case float32:
		return any(SwapFloat32(x)).(T)
	case float64:
		return any(SwapFloat64(x)).(T)
	}
	return v
}

// SwapFloat32 reverses the byte order of a float32 bit pattern.
func SwapFloat32(v float32) float32 {
	return math.Float32frombits(bits.ReverseBytes32(math.Float32bits(v)))
}

// SwapFloat64 reverses the byte order of a float64 bit pattern.
func SwapFloat64(v float64) float64 {
	return math.Float64frombits(bits.ReverseBytes64(math.Float64bits(v)))
}

// ToNative converts a value read with the given source order into host
// order.
func ToNative[T Scalar](v T, source Order) T {
	if source.IsNative() {
		return v
	}
	return Swap(v)
}

// FromNative converts a host-order value into the given target order.
func FromNative[T Scalar](v T, target Order) T {
	if target.IsNative() {
		return v
	}
	return Swap(v)
}
