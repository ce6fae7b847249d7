// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package scholarmatch

import (
	"context"
	"log/slog"

	"github.com/poiesic/scholarmatch/core"
	"github.com/poiesic/scholarmatch/embedding"
	"github.com/poiesic/scholarmatch/embedding/openai"
	"github.com/poiesic/scholarmatch/flow"
	"github.com/poiesic/scholarmatch/index"
	"github.com/poiesic/scholarmatch/indexer"
	"github.com/poiesic/scholarmatch/match"
	"github.com/poiesic/scholarmatch/storage"
	"github.com/poiesic/scholarmatch/storage/badger"
)

// Engine wires the matching pipeline together: scholarship store, vector
// index, embedding provider, hybrid matcher, guided flow and index
// maintenance. It is the one object a host application holds.
type Engine struct {
	store   *badger.Store
	idx     *index.Index
	matcher *match.Matcher
	runner  *flow.Runner
	indexer *indexer.Indexer
	logger  *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	embeddingConfig *embedding.Config
	embedder        embedding.Embedder
	matcherConfig   *match.Config
	inMemory        bool
}

// WithEmbeddingConfig sets the embedding provider configuration.
// Default is embedding.DefaultConfig().
func WithEmbeddingConfig(config *embedding.Config) EngineOption {
	return func(o *engineOptions) {
		o.embeddingConfig = config
	}
}

// WithEmbedder injects a custom embedder, bypassing the OpenAI-compatible
// provider entirely. Used by tests and offline deployments.
func WithEmbedder(embedder embedding.Embedder) EngineOption {
	return func(o *engineOptions) {
		o.embedder = embedder
	}
}

// WithMatcherConfig overrides the hybrid ranker parameters.
func WithMatcherConfig(config match.Config) EngineOption {
	return func(o *engineOptions) {
		o.matcherConfig = &config
	}
}

// WithInMemoryStore keeps all storage in memory. Used by tests.
func WithInMemoryStore() EngineOption {
	return func(o *engineOptions) {
		o.inMemory = true
	}
}

// NewEngine opens the store at filePath and assembles the pipeline.
func NewEngine(filePath string, opts ...EngineOption) (*Engine, error) {
	options := &engineOptions{
		embeddingConfig: embedding.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}
	store := badger.NewStore(backend)

	embedder := options.embedder
	if embedder == nil {
		embedder, err = openai.NewEmbedder(options.embeddingConfig)
		if err != nil {
			store.Close()
			return nil, err
		}
	}

	idx := index.New()

	matcherOpts := []match.Option{match.WithEmbedder(embedder)}
	if options.matcherConfig != nil {
		matcherOpts = append(matcherOpts, match.WithConfig(*options.matcherConfig))
	}
	matcher, err := match.NewMatcher(store, idx, matcherOpts...)
	if err != nil {
		store.Close()
		return nil, err
	}

	runner, err := flow.NewRunner(matcher)
	if err != nil {
		store.Close()
		return nil, err
	}

	ixr, err := indexer.NewIndexer(store, embedder, idx, indexer.WithVectorCache(store))
	if err != nil {
		store.Close()
		return nil, err
	}

	return &Engine{
		store:   store,
		idx:     idx,
		matcher: matcher,
		runner:  runner,
		indexer: ixr,
		logger:  slog.Default(),
	}, nil
}

// Close releases the worker pool and closes the store.
func (e *Engine) Close() error {
	e.indexer.Release()
	if err := e.store.Close(); err != nil {
		e.logger.Error("error closing scholarship store", "err", err)
		return err
	}
	return nil
}

// Store returns the scholarship store.
func (e *Engine) Store() storage.ScholarshipStore {
	return e.store
}

// Index returns the vector index.
func (e *Engine) Index() *index.Index {
	return e.idx
}

// Matcher returns the hybrid matcher.
func (e *Engine) Matcher() *match.Matcher {
	return e.matcher
}

// Flow returns the guided flow runner.
func (e *Engine) Flow() *flow.Runner {
	return e.runner
}

// Indexer returns the index maintainer.
func (e *Engine) Indexer() *indexer.Indexer {
	return e.indexer
}

// Warm loads cached vectors into the index without provider calls.
// Call once at startup before serving traffic.
func (e *Engine) Warm(ctx context.Context) error {
	return e.indexer.Warm(ctx)
}

// Match runs the matching pipeline for a profile.
func (e *Engine) Match(ctx context.Context, profile *core.Profile, useSemantic bool) (*core.MatchResponse, error) {
	return e.matcher.Match(ctx, profile, useSemantic)
}
