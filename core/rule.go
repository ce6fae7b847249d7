package core

import (
	"encoding/json"
	"fmt"
	"strings"
)

// sentinelAll is the wire representation of an unrestricted rule field.
// Inside the engine the restriction is a tagged value, never the string
// itself, so a category literally named "all" could still be represented.
const sentinelAll = "all"

// SetRule is an eligibility restriction over a set of allowed values.
// It is either unrestricted (the "all" sentinel on the wire) or a specific,
// non-empty set. An empty specific set is never valid: absence of a
// restriction must be expressed as unrestricted, so "no data" can never be
// confused with "everyone excluded".
type SetRule[T ~string] struct {
	unrestricted bool
	values       []T
}

// UnrestrictedSet returns a SetRule that imposes no restriction.
func UnrestrictedSet[T ~string]() SetRule[T] {
	return SetRule[T]{unrestricted: true}
}

// OneOf returns a SetRule restricted to the given values.
func OneOf[T ~string](values ...T) SetRule[T] {
	return SetRule[T]{values: values}
}

// Unrestricted reports whether the rule imposes no restriction.
func (r SetRule[T]) Unrestricted() bool {
	return r.unrestricted
}

// Contains reports whether v is in the allowed set.
// An unrestricted rule contains every value.
func (r SetRule[T]) Contains(v T) bool {
	if r.unrestricted {
		return true
	}
	for _, allowed := range r.values {
		if allowed == v {
			return true
		}
	}
	return false
}

// Values returns the allowed values, or nil for an unrestricted rule.
func (r SetRule[T]) Values() []T {
	return r.values
}

// String renders the rule for summaries, e.g. "SC/ST" or "all".
func (r SetRule[T]) String() string {
	if r.unrestricted {
		return sentinelAll
	}
	parts := make([]string, len(r.values))
	for i, v := range r.values {
		parts[i] = string(v)
	}
	return strings.Join(parts, "/")
}

// MarshalJSON encodes the rule as a JSON array, using ["all"] when unrestricted.
func (r SetRule[T]) MarshalJSON() ([]byte, error) {
	if r.unrestricted {
		return json.Marshal([]string{sentinelAll})
	}
	return json.Marshal(r.values)
}

// UnmarshalJSON decodes a JSON array. Any occurrence of "all" makes the
// whole rule unrestricted.
func (r *SetRule[T]) UnmarshalJSON(data []byte) error {
	var values []T
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	for _, v := range values {
		if string(v) == sentinelAll {
			*r = UnrestrictedSet[T]()
			return nil
		}
	}
	*r = SetRule[T]{values: values}
	return nil
}

// ValueRule is an eligibility restriction over a single value, for fields
// like gender and area that the wire format carries as one scalar with an
// "all" sentinel.
type ValueRule[T ~string] struct {
	unrestricted bool
	value        T
}

// UnrestrictedValue returns a ValueRule that imposes no restriction.
func UnrestrictedValue[T ~string]() ValueRule[T] {
	return ValueRule[T]{unrestricted: true}
}

// Exactly returns a ValueRule restricted to the given value.
func Exactly[T ~string](v T) ValueRule[T] {
	return ValueRule[T]{value: v}
}

// Unrestricted reports whether the rule imposes no restriction.
func (r ValueRule[T]) Unrestricted() bool {
	return r.unrestricted
}

// Contains reports whether v satisfies the rule.
func (r ValueRule[T]) Contains(v T) bool {
	return r.unrestricted || r.value == v
}

// Value returns the required value; meaningless when unrestricted.
func (r ValueRule[T]) Value() T {
	return r.value
}

// String renders the rule for summaries.
func (r ValueRule[T]) String() string {
	if r.unrestricted {
		return sentinelAll
	}
	return string(r.value)
}

// MarshalJSON encodes the rule as a JSON string, "all" when unrestricted.
func (r ValueRule[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON decodes a JSON string, treating "all" as unrestricted.
func (r *ValueRule[T]) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == sentinelAll {
		*r = UnrestrictedValue[T]()
		return nil
	}
	*r = Exactly(T(s))
	return nil
}

// EligibilityRule is the set of hard constraints an applicant must satisfy
// for one scholarship. Each field is gated independently by its own
// unrestricted marker.
type EligibilityRule struct {
	States          SetRule[string]         `json:"states"`
	Categories      SetRule[Category]       `json:"categories"`
	MaxIncome       *int64                  `json:"maxIncome"` // nil = no ceiling
	EducationLevels SetRule[EducationLevel] `json:"educationLevels"`
	Gender          ValueRule[Gender]       `json:"gender"`
	Disability      bool                    `json:"disability"` // true = disability required
	Religions       SetRule[Religion]       `json:"religion"`
	Area            ValueRule[Area]         `json:"area"`
	Courses         SetRule[Course]         `json:"courses"`
}

// OpenRule returns an EligibilityRule with every field unrestricted.
func OpenRule() EligibilityRule {
	return EligibilityRule{
		States:          UnrestrictedSet[string](),
		Categories:      UnrestrictedSet[Category](),
		EducationLevels: UnrestrictedSet[EducationLevel](),
		Gender:          UnrestrictedValue[Gender](),
		Religions:       UnrestrictedSet[Religion](),
		Area:            UnrestrictedValue[Area](),
		Courses:         UnrestrictedSet[Course](),
	}
}

// Summary flattens the rule into a short natural-language description used
// as part of the scholarship's embedding text.
func (r *EligibilityRule) Summary() string {
	var b strings.Builder
	b.WriteString("for ")
	if !r.Categories.Unrestricted() {
		b.WriteString(r.Categories.String())
		b.WriteString(" ")
	}
	if !r.Gender.Unrestricted() {
		b.WriteString(string(r.Gender.Value()))
		b.WriteString(" ")
	}
	b.WriteString("students")
	if !r.EducationLevels.Unrestricted() {
		b.WriteString(" at ")
		b.WriteString(strings.ReplaceAll(r.EducationLevels.String(), "_", " "))
		b.WriteString(" level")
	}
	if !r.States.Unrestricted() {
		b.WriteString(" in ")
		b.WriteString(r.States.String())
	}
	if !r.Courses.Unrestricted() {
		b.WriteString(" pursuing ")
		b.WriteString(r.Courses.String())
	}
	if r.MaxIncome != nil {
		fmt.Fprintf(&b, " with family income up to %d rupees", *r.MaxIncome)
	}
	if r.Disability {
		b.WriteString(" with disability")
	}
	if !r.Religions.Unrestricted() {
		b.WriteString(" of ")
		b.WriteString(r.Religions.String())
		b.WriteString(" religion")
	}
	if !r.Area.Unrestricted() {
		b.WriteString(" from ")
		b.WriteString(string(r.Area.Value()))
		b.WriteString(" areas")
	}
	return b.String()
}
