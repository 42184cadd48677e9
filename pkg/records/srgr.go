package records

import "github.com/ssargent/sarmeta/pkg/codec"

// SRGRConversionParameters is one ENVISAT ASAR slant range to ground range
// conversion ADSR. It is stored big-endian and is 55 bytes long.
type SRGRConversionParameters struct {
	FirstZeroDopplerTimeDay      int32
	FirstZeroDopplerTimeSec      uint32
	FirstZeroDopplerTimeMicroSec uint32
	AttachFlag                   uint8
	SlantRangeTime               float32
	GroundRangeOrigin            float32
	SRGRCoef                     [5]float32
	Spare                        [14]byte
}

func (p *SRGRConversionParameters) RecordName() string {
	return "srgr_conversion_parameters"
}

func (p *SRGRConversionParameters) Layout(f codec.Fields) {
	f.Int32("first_zero_doppler_time_day", &p.FirstZeroDopplerTimeDay)
	f.Uint32("first_zero_doppler_time_sec", &p.FirstZeroDopplerTimeSec)
	f.Uint32("first_zero_doppler_time_micro_sec", &p.FirstZeroDopplerTimeMicroSec)
	f.Uint8("attach_flag", &p.AttachFlag)
	f.Float32("slant_range_time", &p.SlantRangeTime)
	f.Float32("ground_range_origin", &p.GroundRangeOrigin)
	for i := range p.SRGRCoef {
		f.Float32(indexed("srgr_coef", i), &p.SRGRCoef[i])
	}
	f.Reserved("spare", p.Spare[:])
}
