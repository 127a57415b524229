package alumni

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/psu-oas/alumni-dashboard/apps/api/internal/platform/metrics"
	"github.com/psu-oas/alumni-dashboard/apps/api/pkg/model"
	"go.uber.org/zap"
)

// Source returns raw upstream bodies. Each call is one best-effort fetch.
type Source interface {
	OrgCounts(ctx context.Context) ([]byte, error)
	LocationCounts(ctx context.Context) ([]byte, error)
}

// Service fetches upstream statistics and reshapes them into trees.
type Service struct {
	source Source
	logger *zap.Logger
}

func NewService(source Source, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{source: source, logger: logger}
}

// OrgCounts returns the upstream org body unchanged once it is known to carry
// a `faculty_major_counts` array.
func (s *Service) OrgCounts(ctx context.Context) (json.RawMessage, error) {
	body, err := s.source.OrgCounts(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := DecodeOrgPayload(body); err != nil {
		s.logFormatError(err)
		return nil, err
	}
	return body, nil
}

// OrgTree fetches the org counts and builds the campus → faculty → major tree.
func (s *Service) OrgTree(ctx context.Context) ([]model.OrgNode, error) {
	body, err := s.source.OrgCounts(ctx)
	if err != nil {
		return nil, err
	}
	records, err := DecodeOrgPayload(body)
	if err != nil {
		s.logFormatError(err)
		return []model.OrgNode{}, err
	}
	tree := BuildOrgTree(records)
	metrics.TreeNodes.WithLabelValues("org").Set(float64(CountOrgNodes(tree)))
	s.logger.Debug("org tree built", zap.Int("records", len(records)), zap.Int("campuses", len(tree)))
	return tree, nil
}

// LocationTree fetches the location counts and builds the geo tree.
func (s *Service) LocationTree(ctx context.Context) (model.GeoNode, error) {
	body, err := s.source.LocationCounts(ctx)
	if err != nil {
		return model.GeoNode{}, err
	}
	payload, err := DecodeLocationPayload(body)
	if err != nil {
		return model.GeoNode{}, err
	}
	tree := BuildLocationTree(payload)
	metrics.TreeNodes.WithLabelValues("geo").Set(float64(CountGeoNodes(tree)))
	s.logger.Debug("location tree built", zap.Int("provinces", len(tree.Children)), zap.Int64("count", tree.Count))
	return tree, nil
}

func (s *Service) logFormatError(err error) {
	if errors.Is(err, ErrInvalidFormat) {
		s.logger.Warn("upstream response does not contain expected 'faculty_major_counts' array")
		return
	}
	s.logger.Warn("upstream org response could not be decoded", zap.Error(err))
}
