package records

import "github.com/ssargent/sarmeta/pkg/codec"

// PositionVector is one ephemeris sample of a platform position data
// record, in metres and metres per second.
type PositionVector struct {
	Pos [3]float64
	Vel [3]float64
}

func (v *PositionVector) RecordName() string { return "position_vector" }

func (v *PositionVector) Layout(f codec.Fields) {
	for i := range v.Pos {
		f.NumericFloat(indexed("pos", i), 22, &v.Pos[i])
	}
	for i := range v.Vel {
		f.NumericFloat(indexed("vel", i), 22, &v.Vel[i])
	}
}

// PlatformPositionData is the RadarSat CEOS leader record carrying the
// orbit state vectors. All values are numeric text so the record reads
// the same in either byte order.
type PlatformPositionData struct {
	OrbitElemDesc string
	OrbitElem     [6]float64
	Ndata         int64
	Year          int64
	Month         int64
	Day           int64
	GmtDay        int64
	GmtSec        float64
	DataInt       float64
	RefCoord      string
	HrAngle       float64
	AltPoserr     float64
	CrtPoserr     float64
	RadPoserr     float64
	AltVelerr     float64
	CrtVelerr     float64
	RadVelerr     float64
	PosVect       []PositionVector
}

func (p *PlatformPositionData) RecordName() string { return "platform_position_data" }

func (p *PlatformPositionData) Layout(f codec.Fields) {
	f.Text("orbit_elem_desc", 32, &p.OrbitElemDesc)
	for i := range p.OrbitElem {
		f.NumericFloat(indexed("orbit_elem", i), 16, &p.OrbitElem[i])
	}
	f.NumericInt("ndata", 4, &p.Ndata)
	f.NumericInt("year", 4, &p.Year)
	f.NumericInt("month", 4, &p.Month)
	f.NumericInt("day", 4, &p.Day)
	f.NumericInt("gmt_day", 4, &p.GmtDay)
	f.NumericFloat("gmt_sec", 22, &p.GmtSec)
	f.NumericFloat("data_int", 22, &p.DataInt)
	f.Text("ref_coord", 64, &p.RefCoord)
	f.NumericFloat("hr_angle", 22, &p.HrAngle)
	f.NumericFloat("alt_poserr", 16, &p.AltPoserr)
	f.NumericFloat("crt_poserr", 16, &p.CrtPoserr)
	f.NumericFloat("rad_poserr", 16, &p.RadPoserr)
	f.NumericFloat("alt_velerr", 16, &p.AltVelerr)
	f.NumericFloat("crt_velerr", 16, &p.CrtVelerr)
	f.NumericFloat("rad_velerr", 16, &p.RadVelerr)
	f.Table("pos_vect", int(p.Ndata), codec.TableOf(&p.PosVect))
}
