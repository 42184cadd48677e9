//go:build fuzz
// +build fuzz

package codec

import (
	"bytes"
	"testing"

	"github.com/ssargent/sarmeta/pkg/endian"
)

// FuzzRecordCodec_Parse feeds arbitrary bytes to the binary parser. Parsing
// may fail but must not panic, and whatever parses must re-encode to the
// bytes it was read from.
func FuzzRecordCodec_Parse(f *testing.F) {
	codec := NewRecordCodec(WithMaxTableEntries(64))

	seed, err := codec.Encode(newSample(), endian.BigEndian)
	if err != nil {
		f.Fatal(err)
	}
	f.Add(seed, true)
	f.Add(seed[:57], false)
	f.Add([]byte{}, true)
	f.Add(bytes.Repeat([]byte{0xFF}, 200), false)

	f.Fuzz(func(t *testing.T, data []byte, bigEndian bool) {
		order := endian.LittleEndian
		if bigEndian {
			order = endian.BigEndian
		}

		var rec sample
		if err := codec.Decode(data, order, &rec); err != nil {
			return
		}

		encoded, err := codec.Encode(&rec, order)
		if err != nil {
			// numeric text such as "+1" or "1e3" parses but is not
			// written back in the same form
			return
		}
		if len(encoded) > len(data) {
			t.Fatalf("re-encoded %d bytes from %d input bytes", len(encoded), len(data))
		}

		var again sample
		if err := codec.Decode(encoded, order, &again); err != nil {
			t.Fatalf("re-encoded record does not parse: %v", err)
		}
		if again.NPoints != rec.NPoints || len(again.Points) != len(rec.Points) {
			t.Errorf("table mismatch: got %d/%d, want %d/%d",
				again.NPoints, len(again.Points), rec.NPoints, len(rec.Points))
		}
	})
}
