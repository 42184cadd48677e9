package records

import "github.com/ssargent/sarmeta/pkg/codec"

// InfoSceneCoord is a TerraSAR-X scene coordinate: an image position, its
// geographic location and the acquisition geometry at that point.
type InfoSceneCoord struct {
	RefRow         uint32
	RefColumn      uint32
	Lat            float64
	Lon            float64
	AzimuthTimeUTC string
	RangeTime      float64
	IncidenceAngle float64
}

func (c *InfoSceneCoord) RecordName() string { return "infoSceneCoord" }

func (c *InfoSceneCoord) Layout(f codec.Fields) {
	f.Uint32("refRow", &c.RefRow)
	f.Uint32("refColumn", &c.RefColumn)
	f.Float64("lat", &c.Lat)
	f.Float64("lon", &c.Lon)
	// ISO 8601 with microseconds, e.g. 2008-03-10T16:47:48.123456Z
	f.Text("azimuthTimeUTC", 27, &c.AzimuthTimeUTC)
	f.Float64("rangeTime", &c.RangeTime)
	f.Float64("incidenceAngle", &c.IncidenceAngle)
}

// SceneCoord holds the scene centre and a variable number of corners.
type SceneCoord struct {
	NumberOfSceneCornerCoord uint32
	SceneCenterCoord         InfoSceneCoord
	SceneCornerCoord         []InfoSceneCoord
}

func (c *SceneCoord) RecordName() string { return "sceneCoord" }

func (c *SceneCoord) Layout(f codec.Fields) {
	f.Uint32("numberOfSceneCornerCoord", &c.NumberOfSceneCornerCoord)
	f.Record("sceneCenterCoord", &c.SceneCenterCoord)
	f.Table("sceneCornerCoord", int(c.NumberOfSceneCornerCoord), codec.TableOf(&c.SceneCornerCoord))
}

// AddCorner appends a corner and keeps the count in step.
func (c *SceneCoord) AddCorner(corner InfoSceneCoord) {
	c.SceneCornerCoord = append(c.SceneCornerCoord, corner)
	c.NumberOfSceneCornerCoord = uint32(len(c.SceneCornerCoord))
}
