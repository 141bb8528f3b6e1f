package geocode

import "github.com/ukfit/eventscrape/internal/model"

// BoundingBox is the geographic validity fence for resolved
// coordinates. Provider results outside the box are treated as
// provider failure, never returned to the caller.
type BoundingBox struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// UKBounds covers Great Britain and Northern Ireland, including the
// Shetlands and the west coast of Ireland-facing islands.
func UKBounds() BoundingBox {
	return BoundingBox{MinLat: 49.8, MaxLat: 60.9, MinLon: -8.65, MaxLon: 1.80}
}

// Contains reports whether the point lies inside the fence.
func (b BoundingBox) Contains(c model.Coordinates) bool {
	return c.Lat >= b.MinLat && c.Lat <= b.MaxLat &&
		c.Lon >= b.MinLon && c.Lon <= b.MaxLon
}
