package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/psu-oas/alumni-dashboard/apps/api/internal/business/alumni"
	"github.com/psu-oas/alumni-dashboard/apps/api/internal/platform/config"
	"github.com/psu-oas/alumni-dashboard/apps/api/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const orgBody = `{"faculty_major_counts":[
	{"campus_name":"Hat Yai","faculty_name":"Engineering","majors":[{"major_name":"Civil","user_count":120},{"major_name":"Electrical","user_count":300}]},
	{"campus_name":"Pattani","faculty_name":"Education","majors":[{"major_name":"Math Education","user_count":200}]}
]}`

const locationBody = `{"location_counts":[{"province_name_th":"Songkhla","districts":[{"district_name_th":"Hat Yai","tambons":[
	{"tambon_name_th":"Kho Hong","latitude":7,"longitude":100.5,"count":3}
]}]}]}`

type stubSource struct {
	org, location string
	err           error
}

func (s stubSource) OrgCounts(ctx context.Context) ([]byte, error) { return []byte(s.org), s.err }

func (s stubSource) LocationCounts(ctx context.Context) ([]byte, error) {
	return []byte(s.location), s.err
}

func run(t *testing.T, src stubSource, stdin string, args ...string) (string, error) {
	t.Helper()
	closed := false
	a := &app{
		cfg:    config.Config{StatsSource: config.SourceHTTP},
		logger: zap.NewNop(),
		ready:  true,
		open: func(ctx context.Context, cfg config.Config, logger *zap.Logger) (alumni.Source, func() error, error) {
			return src, func() error { closed = true; return nil }, nil
		},
	}
	root := newRootCommand(a)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	if err == nil {
		assert.True(t, closed, "source is released")
	}
	return out.String(), err
}

func TestTreeOrg(t *testing.T) {
	out, err := run(t, stubSource{org: orgBody}, "", "tree", "org")
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"name":"Hat Yai","value":420,"children":[{"name":"Engineering","value":420,"children":[
			{"name":"Electrical","value":300},{"name":"Civil","value":120}]}]},
		{"name":"Pattani","value":200,"children":[{"name":"Education","value":200,"children":[
			{"name":"Math Education","value":200}]}]}
	]`, out)
}

func TestTreeGeo(t *testing.T) {
	out, err := run(t, stubSource{location: locationBody}, "", "tree", "geo")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "Thailand"`)
	assert.Contains(t, out, `"name": "Kho Hong"`)
}

func TestTreeRejectsUnknownKind(t *testing.T) {
	_, err := run(t, stubSource{}, "", "tree", "mars")
	assert.Error(t, err)
}

func TestTreeSourceError(t *testing.T) {
	_, err := run(t, stubSource{err: errors.New("unreachable")}, "", "tree", "org")
	assert.ErrorContains(t, err, "unreachable")
}

func TestExploreOrg(t *testing.T) {
	stdin := strings.Join([]string{
		"select Hat Yai",
		"select Engineering",
		"select Civil",
		"state",
		"select Nowhere",
		"back",
		"quit",
		"select Pattani",
	}, "\n")
	out, err := run(t, stubSource{org: orgBody}, stdin, "explore", "org")
	require.NoError(t, err)

	assert.Contains(t, out, "== Alumni by campus ==\n  Hat Yai (420)\n  Pattani (200)\n")
	assert.Contains(t, out, "== Hat Yai / Engineering ==\n  Electrical (300)\n* Civil (120)\n")
	assert.Contains(t, out, `"highlighted": "Civil"`)
	assert.Contains(t, out, "error: select \"Nowhere\"")
	assert.True(t, strings.HasSuffix(out, "== Hat Yai ==\n  Engineering (420)\n"), "quit stops reading")
}

func TestExploreGeoStartsAtProvinces(t *testing.T) {
	out, err := run(t, stubSource{location: locationBody}, "ls\nselect Songkhla\nreset\n", "explore", "geo")
	require.NoError(t, err)
	assert.Contains(t, out, "== Thailand ==\n  Songkhla (3)\n")
	assert.Contains(t, out, "== Songkhla ==\n  Hat Yai (3)\n")
}

func TestRunExploreUnknownCommand(t *testing.T) {
	var out bytes.Buffer
	roots := []model.OrgNode{{Name: "Hat Yai", Value: 1}}
	require.NoError(t, runExplore(strings.NewReader("jump\nselect\n"), &out, roots, "Root"))
	assert.Contains(t, out.String(), `unknown command "jump"`)
	assert.Contains(t, out.String(), "usage: select <name>")
}

func TestCheckSource(t *testing.T) {
	out, err := run(t, stubSource{org: orgBody, location: locationBody}, "", "check-source")
	require.NoError(t, err)
	assert.Contains(t, out, "source: http\n")
	assert.Contains(t, out, "2 faculty records")
	assert.Contains(t, out, "1 provinces")
	assert.True(t, strings.HasSuffix(out, "ok\n"))
}

func TestCheckSourceInvalidFormat(t *testing.T) {
	_, err := run(t, stubSource{org: `{}`, location: locationBody}, "", "check-source")
	assert.ErrorIs(t, err, alumni.ErrInvalidFormat)
}
