package kwl

import (
	"strconv"
	"strings"
)

// FindString returns the raw value for key.
func FindString(k *Keywordlist, key string) (string, bool) {
	return k.Find(key)
}

// FindFloat64 parses the value for key as a float64. A value that does not
// convert is reported exactly like an absent key.
func FindFloat64(k *Keywordlist, key string) (float64, bool) {
	s, ok := k.Find(key)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// FindFloat32 parses the value for key as a float32.
func FindFloat32(k *Keywordlist, key string) (float32, bool) {
	s, ok := k.Find(key)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
	if err != nil {
		return 0, false
	}
	return float32(v), true
}

func findInt(k *Keywordlist, key string, bitSize int) (int64, bool) {
	s, ok := k.Find(key)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, bitSize)
	if err != nil {
		return 0, false
	}
	return v, true
}

func findUint(k *Keywordlist, key string, bitSize int) (uint64, bool) {
	s, ok := k.Find(key)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, bitSize)
	if err != nil {
		return 0, false
	}
	return v, true
}

// FindInt64 parses the value for key as an int64.
func FindInt64(k *Keywordlist, key string) (int64, bool) {
	return findInt(k, key, 64)
}

// FindInt32 parses the value for key as an int32.
func FindInt32(k *Keywordlist, key string) (int32, bool) {
	v, ok := findInt(k, key, 32)
	return int32(v), ok
}

// FindInt8 parses the value for key as an int8.
func FindInt8(k *Keywordlist, key string) (int8, bool) {
	v, ok := findInt(k, key, 8)
	return int8(v), ok
}

// FindInt16 parses the value for key as an int16.
func FindInt16(k *Keywordlist, key string) (int16, bool) {
	v, ok := findInt(k, key, 16)
	return int16(v), ok
}

// FindUint64 parses the value for key as a uint64.
func FindUint64(k *Keywordlist, key string) (uint64, bool) {
	return findUint(k, key, 64)
}

// FindUint16 parses the value for key as a uint16.
func FindUint16(k *Keywordlist, key string) (uint16, bool) {
	v, ok := findUint(k, key, 16)
	return uint16(v), ok
}

// FindUint32 parses the value for key as a uint32.
func FindUint32(k *Keywordlist, key string) (uint32, bool) {
	v, ok := findUint(k, key, 32)
	return uint32(v), ok
}

// FindUint8 parses the value for key as a uint8.
func FindUint8(k *Keywordlist, key string) (uint8, bool) {
	v, ok := findUint(k, key, 8)
	return uint8(v), ok
}
