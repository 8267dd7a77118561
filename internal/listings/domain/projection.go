package domain

// Bounds is a lat/lng box the map image covers.
type Bounds struct {
	MinLat float64 `json:"minLat"`
	MaxLat float64 `json:"maxLat"`
	MinLng float64 `json:"minLng"`
	MaxLng float64 `json:"maxLng"`
}

// IndiaBounds is the box behind the static India map.
var IndiaBounds = Bounds{MinLat: 8, MaxLat: 37, MinLng: 68, MaxLng: 97}

// MapPoint is a position on the map image in percent from the top-left corner.
// Values outside [0,100] mean the point is off the image; they are not clamped.
type MapPoint struct {
	Top  float64 `json:"top"`
	Left float64 `json:"left"`
}

// Project places p on the India map with a linear equirectangular mapping.
func Project(p Position) MapPoint {
	return IndiaBounds.Project(p)
}

// Project places p within b.
func (b Bounds) Project(p Position) MapPoint {
	return MapPoint{
		Top:  100 - (p.Lat-b.MinLat)/(b.MaxLat-b.MinLat)*100,
		Left: (p.Lng - b.MinLng) / (b.MaxLng - b.MinLng) * 100,
	}
}
