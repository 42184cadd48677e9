package codec_test

import (
	"fmt"
	"log"
	"os"

	"github.com/ssargent/sarmeta/pkg/codec"
	"github.com/ssargent/sarmeta/pkg/endian"
	"github.com/ssargent/sarmeta/pkg/kwl"
)

type stateVector struct {
	Time  float64
	Pos   [3]float64
	Label string
}

func (s *stateVector) RecordName() string { return "state_vector" }

func (s *stateVector) Layout(f codec.Fields) {
	f.NumericFloat("time", 12, &s.Time)
	f.Float64("pos[0]", &s.Pos[0])
	f.Float64("pos[1]", &s.Pos[1])
	f.Float64("pos[2]", &s.Pos[2])
	f.Text("label", 4, &s.Label)
}

// ExampleRecordCodec_Encode demonstrates a binary round trip
func ExampleRecordCodec_Encode() {
	c := codec.NewRecordCodec()

	in := &stateVector{Time: 120.5, Pos: [3]float64{7000e3, -12.5, 0}, Label: "ASC"}
	encoded, err := c.Encode(in, endian.BigEndian)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Encoded %d bytes\n", len(encoded))

	var out stateVector
	if err := c.Decode(encoded, endian.BigEndian, &out); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Time: %g\n", out.Time)
	fmt.Printf("Pos: %g\n", out.Pos)
	fmt.Printf("Label: %q\n", out.Label)

	// Output:
	// Encoded 40 bytes
	// Time: 120.5
	// Pos: [7e+06 -12.5 0]
	// Label: "ASC "
}

// ExampleRecordCodec_SaveState demonstrates writing a record as a keyword list
func ExampleRecordCodec_SaveState() {
	c := codec.NewRecordCodec()

	k := kwl.New()
	c.SaveState(k, "orbit", &stateVector{Time: 120.5, Pos: [3]float64{1, 2, 3}, Label: "ASC"})

	if _, err := k.WriteTo(os.Stdout); err != nil {
		log.Fatal(err)
	}

	// Output:
	// orbit.label: ASC
	// orbit.pos[0]: 1
	// orbit.pos[1]: 2
	// orbit.pos[2]: 3
	// orbit.time: 120.5
}

// ExampleDescribe lists the fields of a record with their offsets
func ExampleDescribe() {
	for _, f := range codec.Describe(&stateVector{Label: "DSC"}) {
		fmt.Printf("%-7s %-13s %2d %2d %s\n", f.Name, f.Kind, f.Offset, f.Width, f.Value)
	}

	// Output:
	// time    numeric-float  0 12 0
	// pos[0]  float64       12  8 0
	// pos[1]  float64       20  8 0
	// pos[2]  float64       28  8 0
	// label   text          36  4 DSC
}
