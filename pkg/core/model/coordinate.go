package model

// Coordinate represents a geographical location with a latitude and
// longitude. Each LocationRecord carries one as a named field, while
// the postgres adapter embeds it in its table mapping structs in order
// to map the lat and lon columns as one pair.
type Coordinate struct {
	Lat, Lon float64 // latitude and longitude of the geo-location
}
