package records

import (
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/ssargent/sarmeta/pkg/codec"
	"github.com/ssargent/sarmeta/pkg/kwl"
)

// ErrUnknownRecord is returned for a record name with no registered type.
var ErrUnknownRecord = errors.New("unknown record type")

type entry struct {
	description string
	factory     func() codec.Record
}

var registry = map[string]entry{
	"srgr_conversion_parameters": {
		description: "ENVISAT ASAR slant to ground range conversion ADSR",
		factory:     func() codec.Record { return &SRGRConversionParameters{} },
	},
	"main_processing_parameters": {
		description: "ENVISAT ASAR main processing parameters ADSR",
		factory:     func() codec.Record { return &MainProcessingParameters{} },
	},
	"infoSceneCoord": {
		description: "TerraSAR-X scene coordinate",
		factory:     func() codec.Record { return &InfoSceneCoord{} },
	},
	"sceneCoord": {
		description: "TerraSAR-X scene centre and corner coordinates",
		factory:     func() codec.Record { return &SceneCoord{} },
	},
	"platform_position_data": {
		description: "RadarSat CEOS platform position data",
		factory:     func() codec.Record { return &PlatformPositionData{} },
	},
	"position_vector": {
		description: "RadarSat CEOS orbit state vector",
		factory:     func() codec.Record { return &PositionVector{} },
	},
}

// New returns an empty record of the named type.
func New(name string) (codec.Record, error) {
	e, ok := registry[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownRecord, "%q", name)
	}
	return e.factory(), nil
}

// Names lists the registered record types, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Describe returns a one-line description of the named type.
func Describe(name string) (string, error) {
	e, ok := registry[name]
	if !ok {
		return "", errors.Wrapf(ErrUnknownRecord, "%q", name)
	}
	return e.description, nil
}

// Size returns the encoded size of an empty record of the named type. For
// records with tables this is the size of the fixed part.
func Size(name string) (int, error) {
	rec, err := New(name)
	if err != nil {
		return 0, err
	}
	return codec.Size(rec), nil
}

func indexed(field string, i int) string {
	return kwl.IndexedName(field, i)
}
