package eligibility

// CriterionKey is the machine-readable identifier of one eligibility check.
type CriterionKey string

const (
	CriterionState      CriterionKey = "state"
	CriterionCategory   CriterionKey = "category"
	CriterionEducation  CriterionKey = "education"
	CriterionIncome     CriterionKey = "income"
	CriterionGender     CriterionKey = "gender"
	CriterionDisability CriterionKey = "disability"
	CriterionReligion   CriterionKey = "religion"
	CriterionArea       CriterionKey = "area"
	CriterionCourse     CriterionKey = "course"
)

// reasonPriority orders criteria by how prominently their match reasons are
// surfaced: category > state > education > course > income > gender > area >
// religion > disability.
var reasonPriority = map[CriterionKey]int{
	CriterionCategory:   0,
	CriterionState:      1,
	CriterionEducation:  2,
	CriterionCourse:     3,
	CriterionIncome:     4,
	CriterionGender:     5,
	CriterionArea:       6,
	CriterionReligion:   7,
	CriterionDisability: 8,
}

// Criterion records the outcome of a single per-field check.
type Criterion struct {
	// Key identifies the field that was checked.
	Key CriterionKey

	// Restricted is true when the rule field actually imposed a
	// restriction (it was not the unrestricted sentinel). Only restricted
	// criteria earn specificity bonuses and match reasons.
	Restricted bool

	// Detail is a human-readable description of the outcome, used as a
	// match reason when satisfied and as an eligibility warning when
	// violated.
	Detail string
}

// Evaluation is the full result of checking one profile against one rule.
type Evaluation struct {
	// Eligible is true iff every per-field check passed.
	Eligible bool

	// Satisfied lists the checks that passed, in field order.
	Satisfied []Criterion

	// Violated lists the checks that failed, in field order.
	Violated []Criterion
}

// RestrictedMatches counts satisfied criteria whose rule field imposed a
// real restriction. This is the specificity signal for the scorer.
func (e *Evaluation) RestrictedMatches() int {
	n := 0
	for _, c := range e.Satisfied {
		if c.Restricted {
			n++
		}
	}
	return n
}
