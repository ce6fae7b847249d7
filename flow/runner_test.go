package flow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/scholarmatch/core"
	"github.com/poiesic/scholarmatch/index"
	"github.com/poiesic/scholarmatch/match"
	"github.com/poiesic/scholarmatch/storage/badger"
)

func newTestRunner(t *testing.T) (*Runner, *badger.Store, *match.Matcher) {
	t.Helper()
	store, err := badger.NewMemoryStore()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	matcher, err := match.NewMatcher(store, index.New())
	require.NoError(t, err)

	runner, err := NewRunner(matcher)
	require.NoError(t, err)
	return runner, store, matcher
}

func seedScholarship(t *testing.T, store *badger.Store, id string, mutate func(*core.Scholarship)) {
	t.Helper()
	sch := &core.Scholarship{
		Id:          id,
		Name:        "Scholarship " + id,
		Type:        core.TypePublic,
		Status:      core.StatusApproved,
		Eligibility: core.OpenRule(),
	}
	if mutate != nil {
		mutate(sch)
	}
	_, err := store.Put(context.Background(), sch)
	require.NoError(t, err)
}

// answersByStep is a complete set of flow answers for an SC undergraduate
// from Maharashtra.
var answersByStep = map[StepId]string{
	StepState:      "Maharashtra",
	StepCategory:   "SC",
	StepEducation:  "undergraduate",
	StepIncome:     "150000",
	StepGender:     "female",
	StepDisability: "no",
	StepReligion:   "hindu",
	StepArea:       "rural",
	StepCourse:     "engineering",
}

func completeFlow(t *testing.T, runner *Runner) *StepResult {
	t.Helper()
	result := runner.Start()
	for !result.NextState.Done() {
		step := result.Question
		require.NotNil(t, step)
		var err error
		result, err = runner.Advance(context.Background(), result.NextState, step.Id, answersByStep[step.Id])
		require.NoError(t, err)
	}
	return result
}

func TestNewRunner(t *testing.T) {
	t.Run("nil matcher", func(t *testing.T) {
		_, err := NewRunner(nil)
		assert.Equal(t, ErrMatcherRequired, err)
	})
}

func TestRunnerStart(t *testing.T) {
	runner, _, _ := newTestRunner(t)

	result := runner.Start()
	require.NotNil(t, result.Question)
	assert.Equal(t, StepState, result.Question.Id)
	assert.Zero(t, result.Progress)
	assert.False(t, result.NextState.Done())
}

func TestRunnerAdvance(t *testing.T) {
	runner, _, _ := newTestRunner(t)
	ctx := context.Background()

	t.Run("walks the questions in order", func(t *testing.T) {
		result := runner.Start()
		for i, step := range Steps {
			require.NotNil(t, result.Question)
			assert.Equal(t, step.Id, result.Question.Id)
			assert.InDelta(t, float64(i)/float64(TotalSteps), result.Progress, 1e-9)

			var err error
			result, err = runner.Advance(ctx, result.NextState, step.Id, answersByStep[step.Id])
			require.NoError(t, err)
		}
		assert.True(t, result.NextState.Done())
		assert.InDelta(t, 1.0, result.Progress, 1e-9)
		assert.Nil(t, result.Question)
	})

	t.Run("rejects a step that has not been reached", func(t *testing.T) {
		result := runner.Start()
		_, err := runner.Advance(ctx, result.NextState, StepCourse, "engineering")
		assert.ErrorIs(t, err, ErrStepNotReached)
	})

	t.Run("rejects an unknown step", func(t *testing.T) {
		result := runner.Start()
		_, err := runner.Advance(ctx, result.NextState, "favoriteColor", "blue")
		assert.ErrorIs(t, err, ErrUnknownStep)
	})

	t.Run("rejects advancing a completed flow", func(t *testing.T) {
		done := completeFlow(t, runner)
		_, err := runner.Advance(ctx, done.NextState, StepState, "Kerala")
		assert.ErrorIs(t, err, ErrFlowComplete)
	})

	t.Run("does not mutate the input state", func(t *testing.T) {
		start := runner.Start()
		before := start.NextState.Clone()

		_, err := runner.Advance(ctx, start.NextState, StepState, "Kerala")
		require.NoError(t, err)
		assert.Equal(t, before, start.NextState)
	})
}

func TestRunnerAdvance_ReAnswerEarlierStep(t *testing.T) {
	runner, _, _ := newTestRunner(t)
	ctx := context.Background()

	// Answer the first three questions.
	result := runner.Start()
	for _, id := range []StepId{StepState, StepCategory, StepEducation} {
		var err error
		result, err = runner.Advance(ctx, result.NextState, id, answersByStep[id])
		require.NoError(t, err)
	}
	require.Equal(t, 3, result.NextState.StepIndex)

	// Correct the state answer; position and later answers survive.
	revised, err := runner.Advance(ctx, result.NextState, StepState, "Kerala")
	require.NoError(t, err)

	assert.Equal(t, 3, revised.NextState.StepIndex)
	assert.Equal(t, "Kerala", revised.NextState.Answers[StepState])
	assert.Equal(t, "SC", revised.NextState.Answers[StepCategory])
	assert.Equal(t, "undergraduate", revised.NextState.Answers[StepEducation])
	require.NotNil(t, revised.Question)
	assert.Equal(t, StepIncome, revised.Question.Id)
}

func TestRunnerTerminalStepMatchesDirectSearch(t *testing.T) {
	runner, store, matcher := newTestRunner(t)

	seedScholarship(t, store, "sc-maha", func(s *core.Scholarship) {
		s.Eligibility.Categories = core.OneOf(core.CategorySC)
		s.Eligibility.States = core.OneOf("Maharashtra")
	})
	seedScholarship(t, store, "open", nil)
	seedScholarship(t, store, "st-only", func(s *core.Scholarship) {
		s.Eligibility.Categories = core.OneOf(core.CategoryST)
	})

	result := completeFlow(t, runner)
	require.NotEmpty(t, result.Results)

	// The terminal step runs the same rule-based pipeline as a direct
	// match with the equivalent profile.
	direct, err := matcher.Match(context.Background(), result.NextState.Profile(), false)
	require.NoError(t, err)

	require.Equal(t, len(direct.Recommendations), len(result.Results))
	for i := range direct.Recommendations {
		assert.Equal(t, direct.Recommendations[i].ScholarshipId, result.Results[i].ScholarshipId)
		assert.Equal(t, direct.Recommendations[i].FinalScore, result.Results[i].FinalScore)
	}

	ids := []string{result.Results[0].ScholarshipId, result.Results[1].ScholarshipId}
	assert.Equal(t, []string{"sc-maha", "open"}, ids)
}

func TestRunnerResume(t *testing.T) {
	runner, _, _ := newTestRunner(t)
	ctx := context.Background()

	result := runner.Start()
	result, err := runner.Advance(ctx, result.NextState, StepState, "Maharashtra")
	require.NoError(t, err)

	data, err := result.NextState.Marshal()
	require.NoError(t, err)

	restored, err := UnmarshalState(data)
	require.NoError(t, err)

	resumed, err := runner.Resume(restored)
	require.NoError(t, err)
	require.NotNil(t, resumed.Question)
	assert.Equal(t, StepCategory, resumed.Question.Id)
	assert.Equal(t, result.Progress, resumed.Progress)
}

func TestStateValidate(t *testing.T) {
	runner, _, _ := newTestRunner(t)

	t.Run("nil state", func(t *testing.T) {
		var s *State
		assert.ErrorIs(t, s.Validate(), ErrInvalidState)
	})

	t.Run("negative index", func(t *testing.T) {
		s := NewState()
		s.StepIndex = -1
		assert.ErrorIs(t, s.Validate(), ErrInvalidState)
	})

	t.Run("index past the terminal state", func(t *testing.T) {
		s := NewState()
		s.StepIndex = len(Steps) + 1
		assert.ErrorIs(t, s.Validate(), ErrInvalidState)
	})

	t.Run("unknown answered step", func(t *testing.T) {
		s := NewState()
		s.Answers["favoriteColor"] = "blue"
		assert.ErrorIs(t, s.Validate(), ErrInvalidState)
	})

	t.Run("invalid state is fatal for advance", func(t *testing.T) {
		s := NewState()
		s.StepIndex = 99
		_, err := runner.Advance(context.Background(), s, StepState, "Kerala")
		assert.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("unmarshal rejects corrupt payloads", func(t *testing.T) {
		_, err := UnmarshalState([]byte(`{"stepIndex": -3}`))
		assert.ErrorIs(t, err, ErrInvalidState)

		_, err = UnmarshalState([]byte(`not json`))
		assert.ErrorIs(t, err, ErrInvalidState)
	})
}

func TestStateProfile(t *testing.T) {
	t.Run("full answers map cleanly", func(t *testing.T) {
		s := NewState()
		for id, answer := range answersByStep {
			s.Answers[id] = answer
		}

		p := s.Profile()
		assert.Equal(t, "Maharashtra", p.State)
		assert.Equal(t, core.CategorySC, p.Category)
		assert.Equal(t, core.LevelUndergraduate, p.EducationLevel)
		require.NotNil(t, p.Income)
		assert.Equal(t, int64(150000), *p.Income)
		assert.Equal(t, core.GenderFemale, p.Gender)
		require.NotNil(t, p.Disability)
		assert.False(t, *p.Disability)
		assert.Equal(t, core.ReligionHindu, p.Religion)
		assert.Equal(t, core.AreaRural, p.Area)
		assert.Equal(t, core.CourseEngineering, p.Course)
	})

	t.Run("malformed income becomes unknown", func(t *testing.T) {
		s := NewState()
		s.Answers[StepIncome] = "around two lakh"
		assert.Nil(t, s.Profile().Income)
	})

	t.Run("blank answers are skipped", func(t *testing.T) {
		s := NewState()
		s.Answers[StepState] = "   "
		assert.Empty(t, s.Profile().State)
	})

	t.Run("yes variants parse as disability", func(t *testing.T) {
		for _, answer := range []string{"yes", "Y", "true", "1"} {
			s := NewState()
			s.Answers[StepDisability] = answer
			p := s.Profile()
			require.NotNil(t, p.Disability, "answer %q", answer)
			assert.True(t, *p.Disability, "answer %q", answer)
		}
	})
}
