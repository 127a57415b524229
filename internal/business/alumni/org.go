package alumni

import (
	"sort"

	"github.com/psu-oas/alumni-dashboard/apps/api/pkg/model"
)

const (
	placeholderCampus  = "N/A Campus"
	placeholderFaculty = "N/A Faculty"
	placeholderMajor   = "N/A Major"
)

type campusGroup struct {
	name      string
	faculties []*facultyGroup
	byName    map[string]*facultyGroup
}

type facultyGroup struct {
	name   string
	majors []model.OrgNode
}

// BuildOrgTree groups faculty records into a campus → faculty → major tree.
//
// Records without a faculty name, or whose campus and faculty names match,
// are dropped. Majors without a name, named like their faculty, or with a
// zero count are dropped. Nodes whose total is not positive or that end up
// childless are pruned, and every level is stably sorted by descending value.
func BuildOrgTree(records []model.FacultyRecord) []model.OrgNode {
	var campuses []*campusGroup
	byName := make(map[string]*campusGroup)

	for _, rec := range records {
		campus := orDefault(rec.CampusName.Trimmed(), placeholderCampus)
		faculty := orDefault(rec.FacultyName.Trimmed(), placeholderFaculty)
		if rec.FacultyName == "" || campus == faculty {
			continue
		}

		cg, ok := byName[campus]
		if !ok {
			cg = &campusGroup{name: campus, byName: make(map[string]*facultyGroup)}
			byName[campus] = cg
			campuses = append(campuses, cg)
		}
		fg, ok := cg.byName[faculty]
		if !ok {
			fg = &facultyGroup{name: faculty}
			cg.byName[faculty] = fg
			cg.faculties = append(cg.faculties, fg)
		}

		for _, m := range rec.Majors {
			major := orDefault(m.MajorName.Trimmed(), placeholderMajor)
			count := int64(m.UserCount)
			if m.MajorName == "" || major == faculty || count == 0 {
				continue
			}
			fg.majors = append(fg.majors, model.OrgNode{Name: major, Value: count})
		}
	}

	out := make([]model.OrgNode, 0, len(campuses))
	for _, cg := range campuses {
		node := model.OrgNode{Name: cg.name}
		for _, fg := range cg.faculties {
			faculty := finalizeFaculty(fg)
			if faculty.Value <= 0 || len(faculty.Children) == 0 {
				continue
			}
			node.Children = append(node.Children, faculty)
			node.Value += faculty.Value
		}
		if node.Value <= 0 || len(node.Children) == 0 {
			continue
		}
		sortByValueDesc(node.Children)
		out = append(out, node)
	}
	sortByValueDesc(out)
	return out
}

// finalizeFaculty keeps positive majors and totals them, so a faculty's value
// is always the sum of the majors it reports.
func finalizeFaculty(fg *facultyGroup) model.OrgNode {
	node := model.OrgNode{Name: fg.name}
	for _, m := range fg.majors {
		if m.Value <= 0 {
			continue
		}
		node.Children = append(node.Children, m)
		node.Value += m.Value
	}
	sortByValueDesc(node.Children)
	return node
}

func sortByValueDesc(nodes []model.OrgNode) {
	sort.SliceStable(nodes, func(i, j int) bool { return nodes[i].Value > nodes[j].Value })
}

// OrgTotal sums the values of the top-level nodes.
func OrgTotal(nodes []model.OrgNode) int64 {
	var total int64
	for _, n := range nodes {
		total += n.Value
	}
	return total
}

// CountOrgNodes returns the number of nodes across the forest.
func CountOrgNodes(nodes []model.OrgNode) int {
	total := 0
	for _, n := range nodes {
		total += 1 + CountOrgNodes(n.Children)
	}
	return total
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
