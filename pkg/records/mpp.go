package records

import "github.com/ssargent/sarmeta/pkg/codec"

// MJD is an ENVISAT modified Julian date: days since 2000-01-01, seconds in
// the day and microseconds in the second.
type MJD struct {
	Day      int32
	Sec      uint32
	MicroSec uint32
}

func (t *MJD) RecordName() string { return "mjd" }

func (t *MJD) Layout(f codec.Fields) {
	f.Int32("day", &t.Day)
	f.Uint32("sec", &t.Sec)
	f.Uint32("micro_sec", &t.MicroSec)
}

// MainProcessingParameters is the leading part of the ENVISAT ASAR main
// processing parameters ADSR: timing, image geometry, processing flags and
// the range and azimuth processing blocks, up to the Doppler ambiguity
// coefficient. Structured binary blocks the metadata model does not
// interpret are carried as reserved bytes.
type MainProcessingParameters struct {
	FirstZeroDopplerTime  MJD
	AttachFlag            uint8
	LastZeroDopplerTime   MJD
	WorkOrderID           string
	TimeDiff              float32
	SwathNum              string
	RangeSpacing          float32
	AzimutSpacing         float32
	LineTimeInterval      float32
	NumOutputLines        uint32
	NumSamplesPerLine     uint32
	DataType              string
	NumRangeLinesPerBurst uint32
	TimeDiffZeroDoppler   float32
	Spare1                [43]byte
	Flags                 ProcessingFlags
	Spare2                [6]byte
	RawDataAnalysis       [184]byte
	Spare3                [32]byte
	StartTimeMDS1         [20]byte
	StartTimeMDS2         [20]byte
	ParameterCode         string
	Spare4                [60]byte
	ErrorsCounters        [40]byte
	Spare5                [26]byte
	ImageParameters1      [60]byte
	PRFValues             [5]float32
	ImageParameters2      [190]byte
	Spare6                [62]byte
	FirstProcRangeSamp    uint32
	RangeRef              float32
	RangeSampRate         float32
	RadarFreq             float32
	NumLooksRange         uint16
	FilterRange           string
	FilterCoefRange       float32
	Bandwidth             [40]byte
	NominalChirp          [160]byte
	Spare7                [60]byte
	NumLinesProc          uint32
	NumLookAz             uint16
	LookBwAz              float32
	ToBwAz                float32
	FilterAz              string
	FilterCoefAz          float32
	AzFmRate              [3]float32
	AxFmOrigin            float32
	DopAmbCoef            float32
}

// ProcessingFlags are the one-byte processing switches of the main
// processing parameters, in on-disk order.
type ProcessingFlags struct {
	DataAnalysis       uint8
	AntElevCoor        uint8
	ChirpExtract       uint8
	SRGR               uint8
	DopCen             uint8
	DopAmb             uint8
	RangeSpreadComp    uint8
	Detected           uint8
	LookSum            uint8
	RMSEqual           uint8
	AntScal            uint8
	VGAComEcho         uint8
	VGAComCal          uint8
	VGAComNomTime      uint8
	GmRngCompInvFilter uint8
}

func (p *ProcessingFlags) RecordName() string { return "processing_flags" }

func (p *ProcessingFlags) Layout(f codec.Fields) {
	f.Uint8("data_analysis_flag", &p.DataAnalysis)
	f.Uint8("ant_elev_coor_flag", &p.AntElevCoor)
	f.Uint8("chirp_extract_flag", &p.ChirpExtract)
	f.Uint8("srgr_flag", &p.SRGR)
	f.Uint8("dop_cen_flag", &p.DopCen)
	f.Uint8("dop_amb_flag", &p.DopAmb)
	f.Uint8("range_spread_comp_flag", &p.RangeSpreadComp)
	f.Uint8("detected_flag", &p.Detected)
	f.Uint8("look_sum_flag", &p.LookSum)
	f.Uint8("rms_equal_flag", &p.RMSEqual)
	f.Uint8("ant_scal_flag", &p.AntScal)
	f.Uint8("vga_com_echo_flag", &p.VGAComEcho)
	f.Uint8("vga_com_cal_flag", &p.VGAComCal)
	f.Uint8("vga_com_nom_time_flag", &p.VGAComNomTime)
	f.Uint8("gm_rng_comp_inv_filter_flag", &p.GmRngCompInvFilter)
}

func (p *MainProcessingParameters) RecordName() string {
	return "main_processing_parameters"
}

func (p *MainProcessingParameters) Layout(f codec.Fields) {
	f.Record("first_zero_doppler_time", &p.FirstZeroDopplerTime)
	f.Uint8("attach_flag", &p.AttachFlag)
	f.Record("last_zero_doppler_time", &p.LastZeroDopplerTime)
	f.Text("work_order_id", 12, &p.WorkOrderID)
	f.Float32("time_diff", &p.TimeDiff)
	f.Text("swath_num", 3, &p.SwathNum)
	f.Float32("range_spacing", &p.RangeSpacing)
	f.Float32("azimut_spacing", &p.AzimutSpacing)
	f.Float32("line_time_interval", &p.LineTimeInterval)
	f.Uint32("num_output_lines", &p.NumOutputLines)
	f.Uint32("num_samples_per_line", &p.NumSamplesPerLine)
	f.Text("data_type", 5, &p.DataType)
	f.Uint32("num_range_lines_per_burst", &p.NumRangeLinesPerBurst)
	f.Float32("time_diff_zero_doppler", &p.TimeDiffZeroDoppler)
	f.Reserved("spare_1", p.Spare1[:])
	f.Record("flags", &p.Flags)
	f.Reserved("spare_2", p.Spare2[:])
	f.Reserved("raw_data_analysis", p.RawDataAnalysis[:])
	f.Reserved("spare_3", p.Spare3[:])
	f.Reserved("start_time_mds1", p.StartTimeMDS1[:])
	f.Reserved("start_time_mds2", p.StartTimeMDS2[:])
	f.Text("parameter_code", 120, &p.ParameterCode)
	f.Reserved("spare_4", p.Spare4[:])
	f.Reserved("errors_counters", p.ErrorsCounters[:])
	f.Reserved("spare_5", p.Spare5[:])
	f.Reserved("image_parameters1", p.ImageParameters1[:])
	for i := range p.PRFValues {
		f.Float32(indexed("prf_values", i), &p.PRFValues[i])
	}
	f.Reserved("image_parameters2", p.ImageParameters2[:])
	f.Reserved("spare_6", p.Spare6[:])

	// range processing
	f.Uint32("first_proc_range_samp", &p.FirstProcRangeSamp)
	f.Float32("range_ref", &p.RangeRef)
	f.Float32("range_samp_rate", &p.RangeSampRate)
	f.Float32("radar_freq", &p.RadarFreq)
	f.Uint16("num_looks_range", &p.NumLooksRange)
	f.Text("filter_range", 7, &p.FilterRange)
	f.Float32("filter_coef_range", &p.FilterCoefRange)
	f.Reserved("bandwidth", p.Bandwidth[:])
	f.Reserved("nominal_chirp", p.NominalChirp[:])
	f.Reserved("spare_7", p.Spare7[:])

	// azimuth processing
	f.Uint32("num_lines_proc", &p.NumLinesProc)
	f.Uint16("num_look_az", &p.NumLookAz)
	f.Float32("look_bw_az", &p.LookBwAz)
	f.Float32("to_bw_az", &p.ToBwAz)
	f.Text("filter_az", 7, &p.FilterAz)
	f.Float32("filter_coef_az", &p.FilterCoefAz)
	for i := range p.AzFmRate {
		f.Float32(indexed("az_fm_rate", i), &p.AzFmRate[i])
	}
	f.Float32("ax_fm_origin", &p.AxFmOrigin)
	f.Float32("dop_amb_coef", &p.DopAmbCoef)
}
