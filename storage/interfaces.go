package storage

import (
	"context"

	"github.com/poiesic/scholarmatch/core"
)

// EventType identifies a change to the scholarship set.
type EventType int

const (
	// EventPut is a create, update or status change.
	EventPut EventType = iota + 1
	// EventDelete is a removal.
	EventDelete
)

// Event notifies subscribers of a change to the scholarship set, so the
// embedding index can be kept current without rebuilding from scratch.
type Event struct {
	Type EventType
	Id   string
	// Scholarship is the stored record after a put; nil for deletes.
	Scholarship *core.Scholarship
}

// Subscriber receives change events. Callbacks run synchronously after the
// write commits and must not block; offload slow work to a goroutine or pool.
type Subscriber func(Event)

// ScholarshipStore provides read/write access to the scholarship set.
// Implementations must be thread-safe and support concurrent access.
type ScholarshipStore interface {
	// Put creates or replaces a scholarship. The record is validated and
	// timestamps are populated. Subscribers are notified after commit.
	Put(ctx context.Context, s *core.Scholarship) (*core.Scholarship, error)

	// Delete removes a scholarship by id.
	// Returns ErrNotFound if it doesn't exist.
	Delete(ctx context.Context, id string) error

	// Get retrieves a single scholarship by id.
	// Returns ErrNotFound if it doesn't exist.
	Get(ctx context.Context, id string) (*core.Scholarship, error)

	// List retrieves all scholarships regardless of status.
	List(ctx context.Context) ([]*core.Scholarship, error)

	// ListApproved retrieves only the scholarships visible to the matcher.
	ListApproved(ctx context.Context) ([]*core.Scholarship, error)

	// Subscribe registers a change subscriber for the store's lifetime.
	Subscribe(sub Subscriber)

	// Close closes the storage backend and releases resources.
	Close() error
}

// VectorCache persists scholarship embedding vectors keyed by id, together
// with the fingerprint of the text they were computed from. It lets the
// engine rebuild the in-memory index after a restart without re-embedding
// unchanged scholarships.
type VectorCache interface {
	// PutVector stores a vector and its source-text fingerprint.
	PutVector(ctx context.Context, id string, fingerprint core.Fingerprint, vector []float32) error

	// GetVector retrieves a cached vector and fingerprint.
	// Returns ErrNotFound if no vector is cached for the id.
	GetVector(ctx context.Context, id string) ([]float32, core.Fingerprint, error)

	// DeleteVector removes a cached vector. Absent ids are a no-op.
	DeleteVector(ctx context.Context, id string) error
}
