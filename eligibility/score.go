package eligibility

import "sort"

// ScorerConfig holds the tunable parameters of the rule-based scorer.
// The values are product defaults, not contract; callers may override them.
type ScorerConfig struct {
	// BaseScore is the score every fully eligible scholarship starts from.
	BaseScore float64

	// SpecificityBonus is added for each rule field that imposed a real
	// restriction and still matched, rewarding scholarships narrowly
	// tailored to the applicant over generically-open ones.
	SpecificityBonus float64

	// MaxScore caps the total.
	MaxScore float64
}

// DefaultScorerConfig returns the default scorer parameters: base 70,
// +5 per specific field matched, capped at 100. With nine rule fields the
// bonus can reach the cap but never exceed it.
func DefaultScorerConfig() ScorerConfig {
	return ScorerConfig{
		BaseScore:        70,
		SpecificityBonus: 5,
		MaxScore:         100,
	}
}

// Scorer turns evaluations into 0-100 eligibility scores and human-readable
// match reasons. It is stateless and safe for concurrent use.
type Scorer struct {
	config ScorerConfig
}

// NewScorer creates a scorer with the given configuration.
// Zero-valued config fields fall back to the defaults.
func NewScorer(config ScorerConfig) *Scorer {
	def := DefaultScorerConfig()
	if config.BaseScore == 0 {
		config.BaseScore = def.BaseScore
	}
	if config.SpecificityBonus == 0 {
		config.SpecificityBonus = def.SpecificityBonus
	}
	if config.MaxScore == 0 {
		config.MaxScore = def.MaxScore
	}
	return &Scorer{config: config}
}

// Score computes the eligibility score for a fully eligible evaluation.
// The scorer is not invoked for ineligible scholarships in the primary path.
func (s *Scorer) Score(ev *Evaluation) float64 {
	score := s.config.BaseScore + float64(ev.RestrictedMatches())*s.config.SpecificityBonus
	if score > s.config.MaxScore {
		score = s.config.MaxScore
	}
	if score < 0 {
		score = 0
	}
	return score
}

// Reasons returns the match reasons for the satisfied restricted criteria,
// ordered by priority (category first). The first reason is the strongest
// signal; consumers typically surface the first one to three prominently.
func (s *Scorer) Reasons(ev *Evaluation) []string {
	restricted := make([]Criterion, 0, len(ev.Satisfied))
	for _, c := range ev.Satisfied {
		if c.Restricted {
			restricted = append(restricted, c)
		}
	}
	sort.SliceStable(restricted, func(i, j int) bool {
		return reasonPriority[restricted[i].Key] < reasonPriority[restricted[j].Key]
	})
	reasons := make([]string, len(restricted))
	for i, c := range restricted {
		reasons[i] = c.Detail
	}
	return reasons
}

// Warnings returns the eligibility warnings for an evaluation's violated
// criteria, in the same priority order as match reasons. These annotate
// semantic suggestions so the consumer can render a caveat rather than a
// false promise of eligibility.
func (s *Scorer) Warnings(ev *Evaluation) []string {
	violated := make([]Criterion, len(ev.Violated))
	copy(violated, ev.Violated)
	sort.SliceStable(violated, func(i, j int) bool {
		return reasonPriority[violated[i].Key] < reasonPriority[violated[j].Key]
	})
	warnings := make([]string, len(violated))
	for i, c := range violated {
		warnings[i] = c.Detail
	}
	return warnings
}
