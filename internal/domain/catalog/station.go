package catalog

// Station is a preparation area a menu item is routed to for fulfillment
type Station string

const (
	StationKitchen Station = "kitchen"
	StationBar     Station = "bar"
)

// IsValid checks if the station is a known value
func (s Station) IsValid() bool {
	return s == StationKitchen || s == StationBar
}

// String returns the string representation of Station
func (s Station) String() string {
	return string(s)
}

// Stations lists every preparation station in routing order
func Stations() []Station {
	return []Station{StationKitchen, StationBar}
}

// StationResolver resolves the preparation station for a menu item.
// Precedence: explicit item override, then the category mapping,
// then kitchen as the default.
type StationResolver interface {
	Resolve(item *MenuItem) Station
}

// CategoryStationResolver resolves stations from a category mapping
type CategoryStationResolver struct {
	byCategory map[string]Station
}

// NewCategoryStationResolver creates a resolver over a category name mapping
func NewCategoryStationResolver(byCategory map[string]Station) *CategoryStationResolver {
	m := make(map[string]Station, len(byCategory))
	for k, v := range byCategory {
		m[k] = v
	}
	return &CategoryStationResolver{byCategory: m}
}

// Resolve returns the station for the given menu item
func (r *CategoryStationResolver) Resolve(item *MenuItem) Station {
	if item == nil {
		return StationKitchen
	}
	if item.StationOverride != nil && item.StationOverride.IsValid() {
		return *item.StationOverride
	}
	if station, ok := r.byCategory[item.CategoryName]; ok && station.IsValid() {
		return station
	}
	return StationKitchen
}
