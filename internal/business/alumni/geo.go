package alumni

import "github.com/psu-oas/alumni-dashboard/apps/api/pkg/model"

// CountryName labels the root of every location tree.
const CountryName = "Thailand"

// DefaultCountryCenter is the fixed map center of the country node.
var DefaultCountryCenter = model.LatLng{13.736717, 100.523186}

// centroid accumulates a flat mean of leaf coordinates.
type centroid struct {
	latSum float64
	lonSum float64
	n      int
}

func (c *centroid) add(lat, lon float64) {
	c.latSum += lat
	c.lonSum += lon
	c.n++
}

func (c *centroid) merge(other centroid) {
	c.latSum += other.latSum
	c.lonSum += other.lonSum
	c.n += other.n
}

func (c centroid) center() *model.LatLng {
	if c.n == 0 {
		return nil
	}
	return &model.LatLng{c.latSum / float64(c.n), c.lonSum / float64(c.n)}
}

// BuildLocationTree reshapes the upstream location payload into a
// country → province → district → subdistrict tree.
//
// Every count contributes to its ancestors; only numeric coordinates
// contribute to centers. Province centers average the raw subdistrict
// coordinates, not the district centers. Nothing is pruned or reordered.
func BuildLocationTree(payload model.LocationPayload) model.GeoNode {
	center := DefaultCountryCenter
	root := model.GeoNode{
		Name:     CountryName,
		Level:    model.LevelCountry,
		Center:   &center,
		Children: make([]model.GeoNode, 0, len(payload.LocationCounts)),
	}

	for _, p := range payload.LocationCounts {
		province := model.GeoNode{
			Name:     string(p.ProvinceName),
			Level:    model.LevelProvince,
			Children: make([]model.GeoNode, 0, len(p.Districts)),
		}
		var provinceCentroid centroid

		for _, d := range p.Districts {
			district, districtCentroid := buildDistrict(d)
			provinceCentroid.merge(districtCentroid)
			province.Count += district.Count
			province.Children = append(province.Children, district)
		}

		province.Center = provinceCentroid.center()
		root.Count += province.Count
		root.Children = append(root.Children, province)
	}
	return root
}

func buildDistrict(d model.DistrictCounts) (model.GeoNode, centroid) {
	district := model.GeoNode{
		Name:     string(d.DistrictName),
		Level:    model.LevelDistrict,
		Children: make([]model.GeoNode, 0, len(d.Tambons)),
	}
	var acc centroid
	for _, t := range d.Tambons {
		leaf := model.GeoNode{
			Name:  string(t.TambonName),
			Level: model.LevelSubdistrict,
			Count: int64(t.Count),
		}
		if t.Latitude.Valid && t.Longitude.Valid {
			lat, lon := t.Latitude.Value, t.Longitude.Value
			leaf.Latitude = &lat
			leaf.Longitude = &lon
			acc.add(lat, lon)
		}
		district.Count += leaf.Count
		district.Children = append(district.Children, leaf)
	}
	district.Center = acc.center()
	return district, acc
}

// CountGeoNodes returns the number of nodes in the tree rooted at n.
func CountGeoNodes(n model.GeoNode) int {
	total := 1
	for _, c := range n.Children {
		total += CountGeoNodes(c)
	}
	return total
}
