// Package flow implements the guided eligibility flow: a fixed ordered
// sequence of profile questions that incrementally builds an applicant
// profile and, at the terminal step, runs the matching pipeline.
//
// States are plain serializable values and every transition is a pure
// function from (state, answer) to a new state, so clients can persist a
// state and resume mid-flow. Invalid states are rejected outright rather
// than repaired.
package flow
