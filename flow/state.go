package flow

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/poiesic/scholarmatch/core"
)

// State is the resumable position of one applicant in the guided flow.
// It is serializable so a client can persist it and resume later, and all
// transitions are pure: no hidden state lives outside this struct.
type State struct {
	// Answered lists step ids in the order they were answered.
	Answered []StepId `json:"answered"`

	// Answers maps step ids to the raw answers collected so far.
	Answers map[StepId]string `json:"answers"`

	// StepIndex is the current position in Steps; len(Steps) means the
	// terminal results state.
	StepIndex int `json:"stepIndex"`
}

// NewState returns a fresh state positioned at the first question.
func NewState() *State {
	return &State{
		Answered: []StepId{},
		Answers:  map[StepId]string{},
	}
}

// Validate checks that the state is internally consistent. An invalid
// state is fatal for the request: the flow cannot safely guess intent, so
// the caller must restart from the first step.
func (s *State) Validate() error {
	if s == nil {
		return fmt.Errorf("%w: state is nil", ErrInvalidState)
	}
	if s.StepIndex < 0 || s.StepIndex > len(Steps) {
		return fmt.Errorf("%w: step index %d out of range", ErrInvalidState, s.StepIndex)
	}
	for _, id := range s.Answered {
		if _, ok := stepIndexById[id]; !ok {
			return fmt.Errorf("%w: unknown answered step %q", ErrInvalidState, id)
		}
	}
	for id := range s.Answers {
		if _, ok := stepIndexById[id]; !ok {
			return fmt.Errorf("%w: answer for unknown step %q", ErrInvalidState, id)
		}
	}
	return nil
}

// Done reports whether the state has reached the terminal results state.
func (s *State) Done() bool {
	return s.StepIndex >= len(Steps)
}

// Progress returns the completed fraction of the flow in [0,1].
func (s *State) Progress() float64 {
	return float64(s.StepIndex) / float64(TotalSteps)
}

// Current returns the step the state is positioned at, or nil when done.
func (s *State) Current() *Step {
	if s.Done() {
		return nil
	}
	step := Steps[s.StepIndex]
	return &step
}

// Clone returns a deep copy, so transitions can stay pure.
func (s *State) Clone() *State {
	next := &State{
		Answered:  make([]StepId, len(s.Answered)),
		Answers:   make(map[StepId]string, len(s.Answers)),
		StepIndex: s.StepIndex,
	}
	copy(next.Answered, s.Answered)
	for k, v := range s.Answers {
		next.Answers[k] = v
	}
	return next
}

// Profile converts the accumulated answers into an applicant profile.
// Malformed answers become unknown attributes rather than errors; the
// evaluator treats unknowns conservatively.
func (s *State) Profile() *core.Profile {
	p := &core.Profile{}
	for id, raw := range s.Answers {
		answer := strings.TrimSpace(raw)
		if answer == "" {
			continue
		}
		switch id {
		case StepState:
			p.State = answer
		case StepCategory:
			p.Category = core.Category(answer)
		case StepEducation:
			p.EducationLevel = core.EducationLevel(answer)
		case StepIncome:
			if income, err := strconv.ParseInt(answer, 10, 64); err == nil && income >= 0 {
				p.Income = &income
			}
		case StepGender:
			p.Gender = core.Gender(strings.ToLower(answer))
		case StepDisability:
			disabled := parseYes(answer)
			p.Disability = &disabled
		case StepReligion:
			p.Religion = core.Religion(strings.ToLower(answer))
		case StepArea:
			p.Area = core.Area(strings.ToLower(answer))
		case StepCourse:
			p.Course = core.Course(strings.ToLower(answer))
		}
	}
	return p
}

func parseYes(answer string) bool {
	switch strings.ToLower(answer) {
	case "yes", "y", "true", "1":
		return true
	}
	return false
}

// Marshal serializes the state for the client to persist.
func (s *State) Marshal() ([]byte, error) {
	return json.Marshal(s)
}

// UnmarshalState deserializes and validates a client-provided state.
func UnmarshalState(data []byte) (*State, error) {
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidState, err)
	}
	if s.Answers == nil {
		s.Answers = map[StepId]string{}
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}
