package storage

import (
	"encoding/binary"
	"hash/crc32"
	"time"

	"github.com/cockroachdb/errors"
)

// ErrCorruption means a stored entry failed its integrity check.
var ErrCorruption = errors.New("archive entry corrupted")

const entryHeaderSize = 20

// Entry is one archived keyword list together with the type of the record
// it was saved from.
type Entry struct {
	CRC32     uint32 // CRC32 checksum for integrity
	TypeSize  uint32 // Size of the record type name in bytes
	BodySize  uint32 // Size of the keyword list text in bytes
	Timestamp uint64 // Unix timestamp in nanoseconds
	Type      []byte
	Body      []byte
}

// NewEntry creates an entry stamped with the current time.
func NewEntry(recordType string, body []byte) *Entry {
	e := &Entry{
		TypeSize:  uint32(len(recordType)),
		BodySize:  uint32(len(body)),
		Timestamp: uint64(time.Now().UnixNano()),
		Type:      []byte(recordType),
		Body:      body,
	}
	e.CRC32 = e.calculateCRC32()
	return e
}

// Encode serializes the entry.
// Format: [CRC32(4)][TypeSize(4)][BodySize(4)][Timestamp(8)][Type][Body]
func (e *Entry) Encode() []byte {
	buf := make([]byte, e.Size())

	binary.LittleEndian.PutUint32(buf[0:], e.CRC32)
	binary.LittleEndian.PutUint32(buf[4:], e.TypeSize)
	binary.LittleEndian.PutUint32(buf[8:], e.BodySize)
	binary.LittleEndian.PutUint64(buf[12:], e.Timestamp)
	copy(buf[entryHeaderSize:], e.Type)
	copy(buf[entryHeaderSize+len(e.Type):], e.Body)

	return buf
}

// DecodeEntry parses and validates an encoded entry. The returned entry
// shares memory with data.
func DecodeEntry(data []byte) (*Entry, error) {
	if len(data) < entryHeaderSize {
		return nil, errors.Wrapf(ErrCorruption, "%d bytes, header needs %d", len(data), entryHeaderSize)
	}

	e := &Entry{}
	e.CRC32 = binary.LittleEndian.Uint32(data[0:4])
	e.TypeSize = binary.LittleEndian.Uint32(data[4:8])
	e.BodySize = binary.LittleEndian.Uint32(data[8:12])
	e.Timestamp = binary.LittleEndian.Uint64(data[12:20])

	need := uint64(entryHeaderSize) + uint64(e.TypeSize) + uint64(e.BodySize)
	if uint64(len(data)) != need {
		return nil, errors.Wrapf(ErrCorruption, "%d bytes, sizes declare %d", len(data), need)
	}

	typeEnd := entryHeaderSize + int(e.TypeSize)
	e.Type = data[entryHeaderSize:typeEnd]
	e.Body = data[typeEnd:]

	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// Validate checks the integrity of an entry using CRC32
func (e *Entry) Validate() error {
	if sum := e.calculateCRC32(); e.CRC32 != sum {
		return errors.Wrapf(ErrCorruption, "CRC32 mismatch: %d != %d", e.CRC32, sum)
	}
	return nil
}

// Size returns the total size of the entry when encoded
func (e *Entry) Size() int {
	return entryHeaderSize + len(e.Type) + len(e.Body)
}

// Time returns the moment the entry was created.
func (e *Entry) Time() time.Time {
	return time.Unix(0, int64(e.Timestamp))
}

// calculateCRC32 covers everything after the CRC field.
func (e *Entry) calculateCRC32() uint32 {
	var header [entryHeaderSize - 4]byte
	binary.LittleEndian.PutUint32(header[0:], e.TypeSize)
	binary.LittleEndian.PutUint32(header[4:], e.BodySize)
	binary.LittleEndian.PutUint64(header[8:], e.Timestamp)

	crc := crc32.NewIEEE()
	_, _ = crc.Write(header[:])
	_, _ = crc.Write(e.Type)
	_, _ = crc.Write(e.Body)
	return crc.Sum32()
}
