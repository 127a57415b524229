package alumni

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"testing"

	"github.com/psu-oas/alumni-dashboard/apps/api/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLocation(t *testing.T, body string) model.LocationPayload {
	t.Helper()
	payload, err := DecodeLocationPayload([]byte(body))
	require.NoError(t, err)
	return payload
}

func TestBuildLocationTreeCentroid(t *testing.T) {
	payload := decodeLocation(t, `{"location_counts":[{"province_name_th":"P","districts":[
		{"district_name_th":"D","tambons":[
			{"tambon_name_th":"a","latitude":10,"longitude":100,"count":5},
			{"tambon_name_th":"b","latitude":12,"longitude":102,"count":3}
		]}]}]}`)

	tree := BuildLocationTree(payload)
	district := tree.Children[0].Children[0]
	require.NotNil(t, district.Center)
	assert.Equal(t, model.LatLng{11, 101}, *district.Center, "centroid ignores counts")
	assert.Equal(t, int64(8), district.Count)
}

func TestBuildLocationTreeInvalidCoordinateStillCounts(t *testing.T) {
	payload := decodeLocation(t, `{"location_counts":[{"province_name_th":"P","districts":[
		{"district_name_th":"D","tambons":[
			{"tambon_name_th":"a","latitude":10,"longitude":100,"count":5},
			{"tambon_name_th":"b","latitude":null,"longitude":102,"count":3}
		]}]}]}`)

	tree := BuildLocationTree(payload)
	district := tree.Children[0].Children[0]
	require.NotNil(t, district.Center)
	assert.Equal(t, model.LatLng{10, 100}, *district.Center)
	assert.Equal(t, int64(8), district.Count)
	require.Len(t, district.Children, 2, "leaf with bad coordinates is kept")
	assert.Nil(t, district.Children[1].Latitude)
	assert.Nil(t, district.Children[1].Longitude)
	assert.Equal(t, int64(3), district.Children[1].Count)
}

func TestBuildLocationTreeProvinceUsesFlatMean(t *testing.T) {
	// District X has three leaves around lat 0, district Y one leaf at lat 8.
	// Mean of district centers would be 4; the flat mean is 2.
	payload := decodeLocation(t, `{"location_counts":[{"province_name_th":"P","districts":[
		{"district_name_th":"X","tambons":[
			{"latitude":0,"longitude":0,"count":1},
			{"latitude":0,"longitude":0,"count":1},
			{"latitude":0,"longitude":0,"count":1}
		]},
		{"district_name_th":"Y","tambons":[{"latitude":8,"longitude":8,"count":1}]}
	]}]}`)

	province := BuildLocationTree(payload).Children[0]
	require.NotNil(t, province.Center)
	assert.Equal(t, model.LatLng{2, 2}, *province.Center)
}

func TestBuildLocationTreeNullCenters(t *testing.T) {
	payload := decodeLocation(t, `{"location_counts":[{"province_name_th":"P","districts":[
		{"district_name_th":"D","tambons":[{"tambon_name_th":"a","latitude":"7","longitude":"100","count":"4"}]},
		{"district_name_th":"E"}
	]}]}`)

	tree := BuildLocationTree(payload)
	province := tree.Children[0]
	assert.Nil(t, province.Center)
	assert.Nil(t, province.Children[0].Center)
	assert.Nil(t, province.Children[1].Center)
	assert.Empty(t, province.Children[1].Children)
	assert.Equal(t, int64(4), tree.Count)
}

func TestBuildLocationTreeEmptyPayload(t *testing.T) {
	tree := BuildLocationTree(decodeLocation(t, `{}`))

	out, err := json.Marshal(tree)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Thailand","center":[13.736717,100.523186],"count":0,"children":[]}`, string(out))
}

func TestBuildLocationTreeKeepsZeroCounts(t *testing.T) {
	payload := decodeLocation(t, `{"location_counts":[
		{"province_name_th":"Z","districts":[{"district_name_th":"D","tambons":[{"tambon_name_th":"t","count":0}]}]},
		{"province_name_th":"Empty"}
	]}`)

	tree := BuildLocationTree(payload)
	require.Len(t, tree.Children, 2)
	assert.Equal(t, "Z", tree.Children[0].Name)
	assert.Equal(t, "Empty", tree.Children[1].Name)
	require.Len(t, tree.Children[0].Children[0].Children, 1)
	assert.Equal(t, int64(0), tree.Count)
}

func TestBuildLocationTreeFixture(t *testing.T) {
	body, err := os.ReadFile("testdata/location_counts.json")
	require.NoError(t, err)

	tree := BuildLocationTree(decodeLocation(t, string(body)))
	require.Len(t, tree.Children, 2)
	songkhla := tree.Children[0]
	assert.Equal(t, "สงขลา", songkhla.Name)
	assert.Equal(t, int64(42), songkhla.Count)
	assert.Equal(t, int64(49), tree.Count)
	assert.Equal(t, 1+2+3+4, CountGeoNodes(tree))
	assertGeoSums(t, tree)
}

func TestBuildLocationTreeSumInvariantRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		payload := randomLocationPayload(rng)
		assertGeoSums(t, BuildLocationTree(payload))
	}
}

func assertGeoSums(t *testing.T, n model.GeoNode) {
	t.Helper()
	if n.Level == model.LevelSubdistrict {
		assert.Empty(t, n.Children)
		return
	}
	var sum int64
	for _, c := range n.Children {
		sum += c.Count
		assertGeoSums(t, c)
	}
	assert.Equal(t, sum, n.Count, "node %q (%s)", n.Name, n.Level)
}

func randomLocationPayload(rng *rand.Rand) model.LocationPayload {
	var p model.LocationPayload
	provinces := rng.Intn(4)
	for pi := 0; pi < provinces; pi++ {
		prov := model.ProvinceCounts{ProvinceName: model.Text(fmt.Sprintf("p%d", pi))}
		districts := rng.Intn(4)
		for di := 0; di < districts; di++ {
			dist := model.DistrictCounts{DistrictName: model.Text(fmt.Sprintf("d%d", di))}
			tambons := rng.Intn(5)
			for ti := 0; ti < tambons; ti++ {
				dist.Tambons = append(dist.Tambons, model.TambonCounts{
					TambonName: model.Text(fmt.Sprintf("t%d", ti)),
					Latitude:   model.Coordinate{Value: rng.Float64() * 20, Valid: rng.Intn(4) > 0},
					Longitude:  model.Coordinate{Value: 95 + rng.Float64()*10, Valid: true},
					Count:      model.Count(rng.Intn(30)),
				})
			}
			prov.Districts = append(prov.Districts, dist)
		}
		p.LocationCounts = append(p.LocationCounts, prov)
	}
	return p
}
