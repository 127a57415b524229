package repository

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/psu-oas/alumni-dashboard/apps/api/pkg/model"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Document IDs mirror the last path segment of the upstream endpoints.
const (
	OrgSnapshotID      = "count-alumni-major"
	LocationSnapshotID = "count-alumni-location"
)

// ErrSnapshotNotFound is returned when a mirrored document does not exist.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotRepository reads mirrored upstream response bodies. It never writes.
type SnapshotRepository struct {
	client     *firestore.Client
	collection string
}

func NewSnapshotRepository(client *firestore.Client, collection string) *SnapshotRepository {
	return &SnapshotRepository{client: client, collection: collection}
}

// Get loads one snapshot document.
func (r *SnapshotRepository) Get(ctx context.Context, id string) (model.UpstreamSnapshot, error) {
	snap, err := r.client.Collection(r.collection).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return model.UpstreamSnapshot{}, fmt.Errorf("%s/%s: %w", r.collection, id, ErrSnapshotNotFound)
	}
	if err != nil {
		return model.UpstreamSnapshot{}, fmt.Errorf("get snapshot %s: %w", id, err)
	}
	var out model.UpstreamSnapshot
	if err := snap.DataTo(&out); err != nil {
		return model.UpstreamSnapshot{}, fmt.Errorf("decode snapshot %s: %w", id, err)
	}
	return out, nil
}

// OrgCounts returns the mirrored faculty/major counts body.
func (r *SnapshotRepository) OrgCounts(ctx context.Context) ([]byte, error) {
	return r.body(ctx, OrgSnapshotID)
}

// LocationCounts returns the mirrored location counts body.
func (r *SnapshotRepository) LocationCounts(ctx context.Context) ([]byte, error) {
	return r.body(ctx, LocationSnapshotID)
}

func (r *SnapshotRepository) body(ctx context.Context, id string) ([]byte, error) {
	snap, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return []byte(snap.Body), nil
}
