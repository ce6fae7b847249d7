package index

import (
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/poiesic/scholarmatch/core"
)

// Entry is one scholarship's vector in the index.
type Entry struct {
	Id          string
	Vector      []float32 // unit length
	Fingerprint core.Fingerprint
}

// Neighbor is one result of a similarity scan.
type Neighbor struct {
	Id         string
	Similarity float32 // cosine similarity in [-1,1]
}

// Index is an in-memory vector index over approved scholarships.
//
// It uses a copy-on-write discipline: writers take the mutex, copy the
// snapshot map, and atomically publish the new snapshot; readers load the
// current snapshot without locking. A long similarity scan therefore never
// blocks a concurrent single-scholarship upsert, and vice versa.
//
// The index is owned by the matching service and passed by handle to
// callers; there is no ambient singleton.
type Index struct {
	mu       sync.Mutex // serializes writers
	snapshot atomic.Pointer[map[string]Entry]
	logger   *slog.Logger
}

// Option configures an Index.
type Option func(*Index)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(ix *Index) {
		if logger == nil {
			logger = slog.Default()
		}
		ix.logger = logger
	}
}

// New creates an empty Index.
func New(opts ...Option) *Index {
	ix := &Index{
		logger: slog.Default().With("component", "vector-index"),
	}
	empty := map[string]Entry{}
	ix.snapshot.Store(&empty)
	for _, opt := range opts {
		opt(ix)
	}
	return ix
}

// Len returns the number of indexed scholarships.
func (ix *Index) Len() int {
	return len(*ix.snapshot.Load())
}

// Ids returns the ids of all indexed scholarships, in no particular order.
func (ix *Index) Ids() []string {
	snap := *ix.snapshot.Load()
	ids := make([]string, 0, len(snap))
	for id := range snap {
		ids = append(ids, id)
	}
	return ids
}

// Fingerprint returns the stored fingerprint for a scholarship, and whether
// the scholarship is indexed. The indexer uses this to skip re-embedding
// when the embedding text has not changed.
func (ix *Index) Fingerprint(id string) (core.Fingerprint, bool) {
	snap := *ix.snapshot.Load()
	entry, ok := snap[id]
	return entry.Fingerprint, ok
}

// Upsert adds or replaces a scholarship's vector.
// The vector is normalized to unit length on the way in.
func (ix *Index) Upsert(id string, vector []float32, fingerprint core.Fingerprint) {
	normalized := Normalize(vector)

	ix.mu.Lock()
	defer ix.mu.Unlock()

	old := *ix.snapshot.Load()
	next := make(map[string]Entry, len(old)+1)
	for k, v := range old {
		next[k] = v
	}
	next[id] = Entry{Id: id, Vector: normalized, Fingerprint: fingerprint}
	ix.snapshot.Store(&next)

	ix.logger.Debug("indexed scholarship vector", "id", id, "dim", len(normalized))
}

// Remove drops a scholarship from the index. Removing an absent id is a no-op.
func (ix *Index) Remove(id string) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	old := *ix.snapshot.Load()
	if _, ok := old[id]; !ok {
		return
	}
	next := make(map[string]Entry, len(old))
	for k, v := range old {
		if k != id {
			next[k] = v
		}
	}
	ix.snapshot.Store(&next)

	ix.logger.Debug("removed scholarship vector", "id", id)
}

// Scan computes the cosine similarity between the query vector and every
// indexed scholarship. The query is normalized before scanning.
func (ix *Index) Scan(vector []float32) map[string]float32 {
	query := Normalize(vector)
	snap := *ix.snapshot.Load()

	similarities := make(map[string]float32, len(snap))
	for id, entry := range snap {
		similarities[id] = Dot(query, entry.Vector)
	}
	return similarities
}

// Search returns the limit nearest scholarships to the query vector,
// ordered by similarity descending, ties broken by id for determinism.
func (ix *Index) Search(vector []float32, limit int) []Neighbor {
	similarities := ix.Scan(vector)

	neighbors := make([]Neighbor, 0, len(similarities))
	for id, similarity := range similarities {
		neighbors = append(neighbors, Neighbor{Id: id, Similarity: similarity})
	}
	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].Similarity != neighbors[j].Similarity {
			return neighbors[i].Similarity > neighbors[j].Similarity
		}
		return neighbors[i].Id < neighbors[j].Id
	})
	if limit > 0 && len(neighbors) > limit {
		neighbors = neighbors[:limit]
	}
	return neighbors
}
