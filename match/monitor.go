package match

import "github.com/poiesic/scholarmatch/core"

// Monitor provides hooks to observe the matching process.
// Implement this interface to track intermediate steps during a match.
type Monitor interface {
	Start(profile *core.Profile, useSemantic bool)
	AfterEvaluation(eligible, ineligible int)
	AfterProfileEmbedding(dim int)
	SemanticDegraded(err error)
	AfterSemanticScan(scanned int)
	SuggestionHit(result *core.MatchResult)
	Finish(response *core.MatchResponse)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ *core.Profile, _ bool)       {}
func (n *noopMonitor) AfterEvaluation(_, _ int)            {}
func (n *noopMonitor) AfterProfileEmbedding(_ int)         {}
func (n *noopMonitor) SemanticDegraded(_ error)            {}
func (n *noopMonitor) AfterSemanticScan(_ int)             {}
func (n *noopMonitor) SuggestionHit(_ *core.MatchResult)   {}
func (n *noopMonitor) Finish(_ *core.MatchResponse)        {}
