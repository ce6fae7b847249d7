package indexer

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/scholarmatch/core"
	"github.com/poiesic/scholarmatch/embedding"
	"github.com/poiesic/scholarmatch/index"
	"github.com/poiesic/scholarmatch/storage"
)

const (
	defaultBatchSize  = 32
	defaultMaxRetries = 3
	defaultRetryDelay = 1 * time.Second
)

// Indexer keeps the vector index current with the scholarship store.
//
// It consumes store change events: approvals and edits are embedded and
// upserted asynchronously on a worker pool, deletions and withdrawals are
// removed. Embedding is skipped when the scholarship's canonical text is
// unchanged (fingerprint match), so repeated saves of the same content
// cost nothing.
type Indexer struct {
	store    storage.ScholarshipStore
	cache    storage.VectorCache // optional; nil disables persistence
	embedder embedding.Embedder
	idx      *index.Index

	pool       *ants.Pool
	batchSize  int
	maxRetries int
	retryDelay time.Duration
	logger     *slog.Logger
}

// Option configures an Indexer.
type Option func(*Indexer) error

// WithPoolSize sets the worker pool size for concurrent embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(in *Indexer) error {
		if size < 1 {
			size = 1
		}
		if in.pool != nil {
			in.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		in.pool = pool
		return nil
	}
}

// WithVectorCache persists vectors so a restart can warm the index
// without re-embedding unchanged scholarships.
func WithVectorCache(cache storage.VectorCache) Option {
	return func(in *Indexer) error {
		in.cache = cache
		return nil
	}
}

// WithBatchSize sets how many scholarships are embedded per provider call
// during a full reindex. Default 32.
func WithBatchSize(size int) Option {
	return func(in *Indexer) error {
		if size > 0 {
			in.batchSize = size
		}
		return nil
	}
}

// WithRetry sets the retry policy for provider calls.
// Defaults: 3 attempts, 1s base delay with exponential backoff.
func WithRetry(maxRetries int, baseDelay time.Duration) Option {
	return func(in *Indexer) error {
		if maxRetries <= 0 {
			return ErrInvalidMaxAttempts
		}
		in.maxRetries = maxRetries
		in.retryDelay = baseDelay
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(in *Indexer) error {
		if logger == nil {
			logger = slog.Default()
		}
		in.logger = logger
		return nil
	}
}

// NewIndexer creates an indexer and subscribes it to the store's change
// events. Call Release when done to stop the worker pool.
func NewIndexer(store storage.ScholarshipStore, embedder embedding.Embedder, idx *index.Index, opts ...Option) (*Indexer, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if idx == nil {
		return nil, ErrIndexRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	in := &Indexer{
		store:      store,
		embedder:   embedder,
		idx:        idx,
		pool:       pool,
		batchSize:  defaultBatchSize,
		maxRetries: defaultMaxRetries,
		retryDelay: defaultRetryDelay,
		logger:     slog.Default().With("component", "indexer"),
	}
	for _, opt := range opts {
		if optErr := opt(in); optErr != nil {
			in.Release()
			return nil, optErr
		}
	}

	store.Subscribe(in.handleEvent)
	return in, nil
}

// handleEvent reacts to one store change. It must not block: the embed
// work is submitted to the pool and errors are logged, never surfaced to
// the writer that triggered the event.
func (in *Indexer) handleEvent(event storage.Event) {
	switch event.Type {
	case storage.EventPut:
		sch := event.Scholarship
		if sch == nil {
			return
		}
		if sch.Status != core.StatusApproved {
			// Withdrawn from visibility; drop the vector.
			in.remove(sch.Id)
			return
		}
		snapshot := *sch
		if err := in.pool.Submit(func() {
			if err := in.indexScholarship(context.Background(), &snapshot); err != nil {
				in.logger.Error("error indexing scholarship", "id", snapshot.Id, "err", err)
			}
		}); err != nil {
			in.logger.Error("error submitting index task", "id", sch.Id, "err", err)
		}
	case storage.EventDelete:
		in.remove(event.Id)
	}
}

func (in *Indexer) remove(id string) {
	in.idx.Remove(id)
	if in.cache != nil {
		if err := in.cache.DeleteVector(context.Background(), id); err != nil {
			in.logger.Warn("error deleting cached vector", "id", id, "err", err)
		}
	}
}

// indexScholarship embeds one scholarship and upserts its vector,
// skipping the provider call when the canonical text is unchanged.
func (in *Indexer) indexScholarship(ctx context.Context, sch *core.Scholarship) error {
	fingerprint := sch.Fingerprint()
	if current, ok := in.idx.Fingerprint(sch.Id); ok && current == fingerprint {
		in.logger.Debug("embedding text unchanged, skipping", "id", sch.Id)
		return nil
	}

	// Try the persistent cache before calling the provider.
	if in.cache != nil {
		if vector, cachedFp, err := in.cache.GetVector(ctx, sch.Id); err == nil && cachedFp == fingerprint {
			in.idx.Upsert(sch.Id, vector, fingerprint)
			return nil
		}
	}

	var vector []float32
	err := retryWithBackoff(ctx, func() error {
		var embedErr error
		vector, embedErr = in.embedder.EmbedText(ctx, sch.CanonicalText())
		return embedErr
	}, in.maxRetries, in.retryDelay)
	if err != nil {
		return err
	}

	in.idx.Upsert(sch.Id, vector, fingerprint)
	if in.cache != nil {
		if err := in.cache.PutVector(ctx, sch.Id, fingerprint, index.Normalize(vector)); err != nil {
			in.logger.Warn("error caching vector", "id", sch.Id, "err", err)
		}
	}
	return nil
}

// Reindex rebuilds the index for every approved scholarship in bounded
// batches, reusing cached vectors where fingerprints still match, and
// drops index entries for scholarships that are no longer approved.
// It blocks until the rebuild completes.
func (in *Indexer) Reindex(ctx context.Context) error {
	batchId := uuid.NewString()
	logger := in.logger.With("batchId", batchId)

	approved, err := in.store.ListApproved(ctx)
	if err != nil {
		return err
	}
	logger.Info("reindex started", "approved", len(approved))

	approvedIds := make(map[string]bool, len(approved))
	var stale []*core.Scholarship
	for _, sch := range approved {
		approvedIds[sch.Id] = true

		fingerprint := sch.Fingerprint()
		if current, ok := in.idx.Fingerprint(sch.Id); ok && current == fingerprint {
			continue
		}
		if in.cache != nil {
			if vector, cachedFp, cacheErr := in.cache.GetVector(ctx, sch.Id); cacheErr == nil && cachedFp == fingerprint {
				in.idx.Upsert(sch.Id, vector, fingerprint)
				continue
			}
		}
		stale = append(stale, sch)
	}

	for start := 0; start < len(stale); start += in.batchSize {
		end := start + in.batchSize
		if end > len(stale) {
			end = len(stale)
		}
		if err := in.embedBatch(ctx, stale[start:end]); err != nil {
			return err
		}
	}

	// Drop entries for scholarships that left the approved set while the
	// indexer wasn't watching (e.g. writes from a previous run).
	for _, id := range in.idx.Ids() {
		if !approvedIds[id] {
			in.remove(id)
		}
	}

	logger.Info("reindex finished", "embedded", len(stale), "indexed", in.idx.Len())
	return nil
}

func (in *Indexer) embedBatch(ctx context.Context, batch []*core.Scholarship) error {
	texts := make([]string, len(batch))
	for i, sch := range batch {
		texts[i] = sch.CanonicalText()
	}

	var vectors [][]float32
	err := retryWithBackoff(ctx, func() error {
		var embedErr error
		vectors, embedErr = in.embedder.EmbedTexts(ctx, texts)
		return embedErr
	}, in.maxRetries, in.retryDelay)
	if err != nil {
		return err
	}
	if len(vectors) != len(batch) {
		return errors.New("embedding count mismatch")
	}

	for i, sch := range batch {
		fingerprint := sch.Fingerprint()
		in.idx.Upsert(sch.Id, vectors[i], fingerprint)
		if in.cache != nil {
			if err := in.cache.PutVector(ctx, sch.Id, fingerprint, index.Normalize(vectors[i])); err != nil {
				in.logger.Warn("error caching vector", "id", sch.Id, "err", err)
			}
		}
	}
	return nil
}

// Warm loads cached vectors for approved scholarships into the index
// without any provider calls. Scholarships without a fresh cached vector
// are left unindexed for Reindex or the event path to pick up.
func (in *Indexer) Warm(ctx context.Context) error {
	if in.cache == nil {
		return nil
	}
	approved, err := in.store.ListApproved(ctx)
	if err != nil {
		return err
	}

	warmed := 0
	for _, sch := range approved {
		fingerprint := sch.Fingerprint()
		vector, cachedFp, cacheErr := in.cache.GetVector(ctx, sch.Id)
		if cacheErr != nil || cachedFp != fingerprint {
			continue
		}
		in.idx.Upsert(sch.Id, vector, fingerprint)
		warmed++
	}
	in.logger.Info("index warmed from vector cache", "warmed", warmed, "approved", len(approved))
	return nil
}

// Release stops the worker pool. The indexer should not be used afterwards.
func (in *Indexer) Release() {
	if in.pool != nil {
		in.pool.Release()
	}
}
