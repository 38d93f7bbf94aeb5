// Package runways holds the static airport geometry: the airport reference
// point, the six runway definitions and the two landing configurations.
// Everything here is a compiled-in constant table; nothing is mutated at
// runtime.
package runways

import "fmt"

// Coordinate is a WGS84 lat/lon pair in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// AirportReference is the fixed reference point all distance calculations
// use.
type AirportReference struct {
	ICAO       string     `json:"icao"`
	Name       string     `json:"name"`
	Position   Coordinate `json:"position"`
	ElevationM float64    `json:"elevation_m"`
}

// Airport is the Frankfurt/Main reference point.
var Airport = AirportReference{
	ICAO:       "EDDF",
	Name:       "Frankfurt am Main",
	Position:   Coordinate{Lat: 50.0333, Lon: 8.5706},
	ElevationM: 111,
}

// Configuration identifies which set of parallel runways is in use for
// landing, driven by the prevailing wind direction.
type Configuration string

const (
	// Westerly means landings on the 25s, heading ~249. The majority case
	// at Frankfurt.
	Westerly Configuration = "westerly"
	// Easterly means landings on the 07s, heading ~69.
	Easterly Configuration = "easterly"
)

// Definition describes one landing direction of a physical runway. Threshold
// is the landing end; Opposite is the far end. HeadingDeg is the nominal
// landing heading.
type Definition struct {
	ID            string        `json:"id"`
	Threshold     Coordinate    `json:"threshold"`
	Opposite      Coordinate    `json:"opposite"`
	HeadingDeg    float64       `json:"heading_deg"`
	Configuration Configuration `json:"configuration"`
}

// Physical runway end coordinates. West ends are the 07 thresholds, east
// ends the 25 thresholds.
var (
	northwestWestEnd = Coordinate{Lat: 50.0402, Lon: 8.5102}
	northwestEastEnd = Coordinate{Lat: 50.0488, Lon: 8.5468}
	centerWestEnd    = Coordinate{Lat: 50.0329, Lon: 8.5343}
	centerEastEnd    = Coordinate{Lat: 50.0451, Lon: 8.5867}
	southWestEnd     = Coordinate{Lat: 50.0211, Lon: 8.5410}
	southEastEnd     = Coordinate{Lat: 50.0333, Lon: 8.5934}
)

// definitions lists the six landing directions. Order within each
// configuration is the fixed landing preference order used by the scorer's
// tie-break.
var definitions = []Definition{
	{ID: "25R", Threshold: northwestEastEnd, Opposite: northwestWestEnd, HeadingDeg: 249, Configuration: Westerly},
	{ID: "25C", Threshold: centerEastEnd, Opposite: centerWestEnd, HeadingDeg: 249, Configuration: Westerly},
	{ID: "25L", Threshold: southEastEnd, Opposite: southWestEnd, HeadingDeg: 249, Configuration: Westerly},
	{ID: "07L", Threshold: northwestWestEnd, Opposite: northwestEastEnd, HeadingDeg: 69, Configuration: Easterly},
	{ID: "07C", Threshold: centerWestEnd, Opposite: centerEastEnd, HeadingDeg: 69, Configuration: Easterly},
	{ID: "07R", Threshold: southWestEnd, Opposite: southEastEnd, HeadingDeg: 69, Configuration: Easterly},
}

// All returns every runway definition.
func All() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}

// ByID looks up a runway definition by its designator.
func ByID(id string) (Definition, error) {
	for _, d := range definitions {
		if d.ID == id {
			return d, nil
		}
	}
	return Definition{}, fmt.Errorf("unknown runway: %s", id)
}

// Landing returns the three runways used for landing under the given
// configuration, in the configuration's fixed order.
func Landing(config Configuration) []Definition {
	out := make([]Definition, 0, 3)
	for _, d := range definitions {
		if d.Configuration == config {
			out = append(out, d)
		}
	}
	return out
}
