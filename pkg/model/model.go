package model

import "time"

// MajorCount is one major's alumni tally inside a faculty record.
type MajorCount struct {
	MajorName Text  `json:"major_name"`
	UserCount Count `json:"user_count"`
}

// FacultyRecord mirrors one entry of the upstream `faculty_major_counts` array.
type FacultyRecord struct {
	CampusName  Text             `json:"campus_name"`
	FacultyName Text             `json:"faculty_name"`
	Majors      List[MajorCount] `json:"majors"`
}

// LocationPayload is the body returned by the upstream location endpoint.
type LocationPayload struct {
	LocationCounts List[ProvinceCounts] `json:"location_counts"`
}

// ProvinceCounts groups district tallies for one province.
type ProvinceCounts struct {
	ProvinceName Text                 `json:"province_name_th"`
	Districts    List[DistrictCounts] `json:"districts"`
}

// DistrictCounts groups subdistrict (tambon) tallies for one district.
type DistrictCounts struct {
	DistrictName Text               `json:"district_name_th"`
	Tambons      List[TambonCounts] `json:"tambons"`
}

// TambonCounts is a leaf of the upstream location payload.
type TambonCounts struct {
	TambonName Text       `json:"tambon_name_th"`
	Latitude   Coordinate `json:"latitude"`
	Longitude  Coordinate `json:"longitude"`
	Count      Count      `json:"count"`
}

// OrgNode is a campus, faculty or major in the organisation tree.
// Majors carry no children.
type OrgNode struct {
	Name     string    `json:"name"`
	Value    int64     `json:"value"`
	Children []OrgNode `json:"children,omitempty"`
}

func (n OrgNode) NodeName() string        { return n.Name }
func (n OrgNode) NodeChildren() []OrgNode { return n.Children }
func (n OrgNode) NodeCount() int64        { return n.Value }

// UpstreamSnapshot is a mirrored copy of an upstream response body kept in Firestore.
type UpstreamSnapshot struct {
	Body      string    `json:"body" firestore:"body"`
	FetchedAt time.Time `json:"fetchedAt,omitempty" firestore:"fetchedAt,omitempty"`
}
