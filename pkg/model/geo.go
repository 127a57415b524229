package model

import "encoding/json"

// LatLng is a [latitude, longitude] pair.
type LatLng [2]float64

// GeoLevel identifies a tier of the location tree.
type GeoLevel int

const (
	LevelCountry GeoLevel = iota
	LevelProvince
	LevelDistrict
	LevelSubdistrict
)

func (l GeoLevel) String() string {
	switch l {
	case LevelCountry:
		return "country"
	case LevelProvince:
		return "province"
	case LevelDistrict:
		return "district"
	case LevelSubdistrict:
		return "subdistrict"
	}
	return "unknown"
}

// GeoNode is a node of the country → province → district → subdistrict tree.
//
// Non-leaf nodes carry Center (nil when no leaf below them had valid
// coordinates). Subdistrict leaves carry Latitude/Longitude instead, nil when
// the upstream coordinate was not numeric.
type GeoNode struct {
	Name      string
	Level     GeoLevel
	Center    *LatLng
	Latitude  *float64
	Longitude *float64
	Count     int64
	Children  []GeoNode
}

type geoLeafJSON struct {
	Name      string   `json:"name"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Count     int64    `json:"count"`
}

type geoBranchJSON struct {
	Name     string    `json:"name"`
	Center   *LatLng   `json:"center"`
	Children []GeoNode `json:"children"`
	Count    int64     `json:"count"`
}

func (n GeoNode) MarshalJSON() ([]byte, error) {
	if n.Level == LevelSubdistrict {
		return json.Marshal(geoLeafJSON{
			Name:      n.Name,
			Latitude:  n.Latitude,
			Longitude: n.Longitude,
			Count:     n.Count,
		})
	}
	children := n.Children
	if children == nil {
		children = []GeoNode{}
	}
	return json.Marshal(geoBranchJSON{
		Name:     n.Name,
		Center:   n.Center,
		Children: children,
		Count:    n.Count,
	})
}

func (n GeoNode) NodeName() string        { return n.Name }
func (n GeoNode) NodeChildren() []GeoNode { return n.Children }
func (n GeoNode) NodeCount() int64        { return n.Count }
