// Package source picks where alumni statistics bodies come from.
package source

import (
	"context"
	"fmt"

	"github.com/psu-oas/alumni-dashboard/apps/api/internal/business/alumni"
	"github.com/psu-oas/alumni-dashboard/apps/api/internal/platform/config"
	firestoreclient "github.com/psu-oas/alumni-dashboard/apps/api/internal/platform/firestore"
	"github.com/psu-oas/alumni-dashboard/apps/api/internal/platform/upstream"
	"github.com/psu-oas/alumni-dashboard/apps/api/internal/repository"
	"go.uber.org/zap"
)

// Open returns the configured Source and a func releasing its resources.
func Open(ctx context.Context, cfg config.Config, logger *zap.Logger) (alumni.Source, func() error, error) {
	switch cfg.StatsSource {
	case config.SourceHTTP:
		client := upstream.New(nil, upstream.Config{
			OrgURL:      cfg.OrgStatsURL,
			LocationURL: cfg.LocationStatsURL,
			Timeout:     cfg.UpstreamTimeout,
		}, logger.Named("upstream"))
		return client, func() error { return nil }, nil

	case config.SourceFirestore:
		client, err := firestoreclient.New(ctx, cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		if err := firestoreclient.Ping(ctx, client, cfg.UpstreamTimeout); err != nil {
			client.Close()
			return nil, nil, err
		}
		return repository.NewSnapshotRepository(client, cfg.FirestoreCollection), client.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown stats source %q", cfg.StatsSource)
	}
}
