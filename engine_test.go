package scholarmatch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/scholarmatch/core"
	"github.com/poiesic/scholarmatch/embedding/mock"
	"github.com/poiesic/scholarmatch/match"
)

func newTestEngine(t *testing.T, opts ...EngineOption) *Engine {
	t.Helper()
	opts = append([]EngineOption{
		WithInMemoryStore(),
		WithEmbedder(mock.NewEmbedder()),
	}, opts...)
	engine, err := NewEngine("", opts...)
	require.NoError(t, err)
	t.Cleanup(func() { engine.Close() })
	return engine
}

func TestNewEngine(t *testing.T) {
	engine := newTestEngine(t)
	assert.NotNil(t, engine.Store())
	assert.NotNil(t, engine.Index())
	assert.NotNil(t, engine.Matcher())
	assert.NotNil(t, engine.Flow())
	assert.NotNil(t, engine.Indexer())
}

func TestNewEngine_InvalidMatcherConfig(t *testing.T) {
	_, err := NewEngine("",
		WithInMemoryStore(),
		WithEmbedder(mock.NewEmbedder()),
		WithMatcherConfig(match.Config{RuleWeight: 0.9, SemanticWeight: 0.3}),
	)
	assert.Error(t, err)
}

func TestEngineMatchPipeline(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	_, err := engine.Store().Put(ctx, &core.Scholarship{
		Id:          "sch-1",
		Name:        "General Merit Scholarship",
		Type:        core.TypePublic,
		Status:      core.StatusApproved,
		Eligibility: core.OpenRule(),
	})
	require.NoError(t, err)

	response, err := engine.Match(ctx, &core.Profile{Category: core.CategorySC}, false)
	require.NoError(t, err)
	require.Len(t, response.Recommendations, 1)
	assert.Equal(t, "sch-1", response.Recommendations[0].ScholarshipId)
}

func TestEngineWarm(t *testing.T) {
	engine := newTestEngine(t)
	assert.NoError(t, engine.Warm(context.Background()))
}
