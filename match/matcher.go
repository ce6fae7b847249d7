package match

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/poiesic/scholarmatch/core"
	"github.com/poiesic/scholarmatch/deadline"
	"github.com/poiesic/scholarmatch/eligibility"
	"github.com/poiesic/scholarmatch/embedding"
	"github.com/poiesic/scholarmatch/index"
	"github.com/poiesic/scholarmatch/storage"
)

// Config holds the tunable parameters of the hybrid ranker.
type Config struct {
	// RuleWeight and SemanticWeight blend the eligibility and semantic
	// scores in hybrid mode. They must sum to 1. Defaults: 0.7 / 0.3.
	RuleWeight     float64
	SemanticWeight float64

	// SuggestionLimit caps the "you might also like" bucket. Default 5.
	SuggestionLimit int

	// SuggestionFloor is the minimum semantic score (0-100) for a
	// rule-ineligible scholarship to be suggested at all. Default 50.
	SuggestionFloor float64

	// EmbedTimeout bounds the wait for the profile embedding. The
	// rule-based path always completes even if the provider hangs.
	// Default embedding.DefaultTimeout.
	EmbedTimeout time.Duration
}

// DefaultConfig returns the default ranker parameters.
func DefaultConfig() Config {
	return Config{
		RuleWeight:      0.7,
		SemanticWeight:  0.3,
		SuggestionLimit: 5,
		SuggestionFloor: 50,
		EmbedTimeout:    embedding.DefaultTimeout,
	}
}

// Matcher ranks scholarships for an applicant profile by combining the
// rule-based eligibility score with semantic similarity from the embedding
// index. It holds no per-request state and is safe for concurrent use.
type Matcher struct {
	store    storage.ScholarshipStore
	idx      *index.Index
	embedder embedding.Embedder // nil disables semantic matching
	scorer   *eligibility.Scorer
	config   Config
	logger   *slog.Logger
}

// Option configures a Matcher.
type Option func(*Matcher) error

// WithEmbedder sets the embedding provider. Without one the matcher always
// answers with the rule-based strategy.
func WithEmbedder(embedder embedding.Embedder) Option {
	return func(m *Matcher) error {
		m.embedder = embedder
		return nil
	}
}

// WithScorer sets a custom rule-based scorer.
// Default is eligibility.NewScorer(eligibility.DefaultScorerConfig()).
func WithScorer(scorer *eligibility.Scorer) Option {
	return func(m *Matcher) error {
		if scorer != nil {
			m.scorer = scorer
		}
		return nil
	}
}

// WithConfig overrides the ranker parameters. Zero values keep defaults.
func WithConfig(config Config) Option {
	return func(m *Matcher) error {
		def := DefaultConfig()
		if config.RuleWeight == 0 && config.SemanticWeight == 0 {
			config.RuleWeight = def.RuleWeight
			config.SemanticWeight = def.SemanticWeight
		}
		if math.Abs(config.RuleWeight+config.SemanticWeight-1) > 1e-9 {
			return ErrInvalidWeights
		}
		if config.SuggestionLimit == 0 {
			config.SuggestionLimit = def.SuggestionLimit
		}
		if config.SuggestionFloor == 0 {
			config.SuggestionFloor = def.SuggestionFloor
		}
		if config.EmbedTimeout == 0 {
			config.EmbedTimeout = def.EmbedTimeout
		}
		m.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *Matcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		m.logger = logger
		return nil
	}
}

// NewMatcher creates a new matcher over the given store and index.
func NewMatcher(store storage.ScholarshipStore, idx *index.Index, opts ...Option) (*Matcher, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if idx == nil {
		return nil, ErrIndexRequired
	}

	m := &Matcher{
		store:  store,
		idx:    idx,
		scorer: eligibility.NewScorer(eligibility.DefaultScorerConfig()),
		config: DefaultConfig(),
		logger: slog.Default().With("component", "matcher"),
	}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Match evaluates the profile against every approved scholarship and returns
// ranked recommendations, optionally augmented with semantic suggestions.
func (m *Matcher) Match(ctx context.Context, profile *core.Profile, useSemantic bool) (*core.MatchResponse, error) {
	return m.MatchWithMonitor(ctx, profile, useSemantic, nil)
}

// candidate pairs a scholarship with its evaluation during ranking.
type candidate struct {
	scholarship *core.Scholarship
	evaluation  eligibility.Evaluation
	result      *core.MatchResult
	daysLeft    int
}

// MatchWithMonitor is Match with observation callbacks at each stage.
func (m *Matcher) MatchWithMonitor(ctx context.Context, profile *core.Profile, useSemantic bool, monitor Monitor) (*core.MatchResponse, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	monitor.Start(profile, useSemantic)

	scholarships, err := m.store.ListApproved(ctx)
	if err != nil {
		m.logger.Error("error loading approved scholarships", "err", err)
		return nil, err
	}

	now := time.Now()
	var eligible, ineligible []*candidate
	for _, sch := range scholarships {
		c := &candidate{
			scholarship: sch,
			evaluation:  eligibility.Evaluate(profile, &sch.Eligibility),
			daysLeft:    deadline.DaysUntilAt(sch.Deadline, now),
		}
		if c.evaluation.Eligible {
			c.result = &core.MatchResult{
				ScholarshipId:    sch.Id,
				EligibilityScore: m.scorer.Score(&c.evaluation),
				MatchReasons:     m.scorer.Reasons(&c.evaluation),
			}
			eligible = append(eligible, c)
		} else {
			ineligible = append(ineligible, c)
		}
	}
	monitor.AfterEvaluation(len(eligible), len(ineligible))

	strategy := core.StrategyRuleBased
	var suggestions []*core.MatchResult

	if useSemantic && m.embedder != nil && m.idx.Len() > 0 {
		similarities, semErr := m.profileSimilarities(ctx, profile, monitor)
		if semErr != nil {
			// Degrade to rule-based rather than failing the request.
			m.logger.Warn("semantic matching unavailable, degrading to rule-based", "err", semErr)
			monitor.SemanticDegraded(semErr)
		} else {
			strategy = core.StrategyHybrid
			m.blendScores(eligible, similarities)
			suggestions = m.buildSuggestions(ineligible, similarities, monitor)
		}
	}

	if strategy == core.StrategyRuleBased {
		for _, c := range eligible {
			c.result.FinalScore = c.result.EligibilityScore
		}
	}

	sortCandidates(eligible)
	recommendations := make([]*core.MatchResult, len(eligible))
	for i, c := range eligible {
		recommendations[i] = c.result
	}

	response := &core.MatchResponse{
		Recommendations:     recommendations,
		SemanticSuggestions: suggestions,
		TotalMatches:        len(recommendations),
		MatchingStrategy:    strategy,
	}
	monitor.Finish(response)
	return response, nil
}

// profileSimilarities embeds the profile sentence with a bounded wait and
// scans the index, returning a semantic score (0-100) per scholarship id.
func (m *Matcher) profileSimilarities(ctx context.Context, profile *core.Profile, monitor Monitor) (map[string]float64, error) {
	ctx, cancel := context.WithTimeout(ctx, m.config.EmbedTimeout)
	defer cancel()

	vector, err := m.embedder.EmbedText(ctx, profile.Describe())
	if err != nil {
		return nil, err
	}
	if len(vector) == 0 {
		return nil, context.DeadlineExceeded
	}
	monitor.AfterProfileEmbedding(len(vector))

	raw := m.idx.Scan(vector)
	monitor.AfterSemanticScan(len(raw))

	scores := make(map[string]float64, len(raw))
	for id, similarity := range raw {
		scores[id] = rescale(similarity)
	}
	return scores, nil
}

// rescale maps cosine similarity [-1,1] linearly onto [0,100].
func rescale(similarity float32) float64 {
	score := (float64(similarity) + 1) * 50
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// blendScores fills in final scores for eligible candidates. Scholarships
// not yet indexed (no vector) keep their eligibility score unblended.
func (m *Matcher) blendScores(eligible []*candidate, similarities map[string]float64) {
	for _, c := range eligible {
		semantic, ok := similarities[c.scholarship.Id]
		if !ok {
			c.result.FinalScore = c.result.EligibilityScore
			continue
		}
		s := semantic
		c.result.SemanticScore = &s
		c.result.FinalScore = m.config.RuleWeight*c.result.EligibilityScore +
			m.config.SemanticWeight*semantic
	}
}

// buildSuggestions picks the top-K rule-ineligible scholarships by semantic
// score, each annotated with warnings from its violated criteria.
func (m *Matcher) buildSuggestions(ineligible []*candidate, similarities map[string]float64, monitor Monitor) []*core.MatchResult {
	var pool []*candidate
	for _, c := range ineligible {
		semantic, ok := similarities[c.scholarship.Id]
		if !ok || semantic < m.config.SuggestionFloor {
			continue
		}
		s := semantic
		c.result = &core.MatchResult{
			ScholarshipId:        c.scholarship.Id,
			SemanticScore:        &s,
			FinalScore:           semantic,
			MatchReasons:         []string{},
			EligibilityWarnings:  m.scorer.Warnings(&c.evaluation),
			IsSemanticSuggestion: true,
		}
		pool = append(pool, c)
	}

	sortCandidates(pool)
	if len(pool) > m.config.SuggestionLimit {
		pool = pool[:m.config.SuggestionLimit]
	}

	suggestions := make([]*core.MatchResult, len(pool))
	for i, c := range pool {
		suggestions[i] = c.result
		monitor.SuggestionHit(c.result)
	}
	return suggestions
}

// sortCandidates orders by final score descending, then soonest deadline,
// then id, so identical inputs always produce identical orderings.
func sortCandidates(candidates []*candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.result.FinalScore != b.result.FinalScore {
			return a.result.FinalScore > b.result.FinalScore
		}
		if a.daysLeft != b.daysLeft {
			return a.daysLeft < b.daysLeft
		}
		return a.scholarship.Id < b.scholarship.Id
	})
}
