package flow

import "github.com/poiesic/scholarmatch/core"

// StepId identifies one question in the guided flow.
type StepId string

const (
	StepState      StepId = "state"
	StepCategory   StepId = "category"
	StepEducation  StepId = "educationLevel"
	StepIncome     StepId = "income"
	StepGender     StepId = "gender"
	StepDisability StepId = "disability"
	StepReligion   StepId = "religion"
	StepArea       StepId = "area"
	StepCourse     StepId = "course"

	// StepResults is the terminal state; it has no question.
	StepResults StepId = "results"
)

// Step is one question in the fixed flow order.
type Step struct {
	Id       StepId   `json:"id"`
	Question string   `json:"question"`
	// Options enumerates the valid answers; empty for free-form entry.
	Options []string `json:"options,omitempty"`
}

// Steps is the fixed ordered question sequence. The order is part of the
// product contract: clients resume mid-flow by index.
var Steps = []Step{
	{Id: StepState, Question: "Which state are you from?", Options: core.States},
	{Id: StepCategory, Question: "Which category do you belong to?", Options: stringsOf(core.Categories)},
	{Id: StepEducation, Question: "What is your current education level?", Options: stringsOf(core.EducationLevels)},
	{Id: StepIncome, Question: "What is your annual family income in rupees?"},
	{Id: StepGender, Question: "What is your gender?", Options: stringsOf(core.Genders)},
	{Id: StepDisability, Question: "Do you have a disability?", Options: []string{"yes", "no"}},
	{Id: StepReligion, Question: "What is your religion?", Options: stringsOf(core.Religions)},
	{Id: StepArea, Question: "Do you live in an urban or rural area?", Options: stringsOf(core.Areas)},
	{Id: StepCourse, Question: "Which course are you pursuing?", Options: stringsOf(core.Courses)},
}

// TotalSteps is the number of questions before the terminal results state.
var TotalSteps = len(Steps)

// stepIndexById maps step ids to their position in Steps.
var stepIndexById = func() map[StepId]int {
	m := make(map[StepId]int, len(Steps))
	for i, s := range Steps {
		m[s.Id] = i
	}
	return m
}()

func stringsOf[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
