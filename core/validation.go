package core

import "fmt"

// ValidateScholarship validates a Scholarship according to domain rules.
//
// Validation rules:
//   - Id and Name must not be empty
//   - Status must be approved, pending or rejected
//   - Type must be public or private
//   - the eligibility rule must pass ValidateRule
//
// NOT validated:
//   - Deadline (unparsable deadlines degrade to a far-future sentinel,
//     they are a data-quality issue rather than a validation failure)
func ValidateScholarship(s *Scholarship) error {
	if s == nil {
		return fmt.Errorf("%w: scholarship is nil", ErrInvalidScholarship)
	}
	if s.Id == "" {
		return fmt.Errorf("%w: %w", ErrInvalidScholarship, ErrEmptyId)
	}
	if s.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidScholarship, ErrEmptyName)
	}
	if err := ValidateStatus(s.Status); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidScholarship, err)
	}
	if s.Type != TypePublic && s.Type != TypePrivate {
		return fmt.Errorf("%w: %w: %q", ErrInvalidScholarship, ErrInvalidType, s.Type)
	}
	if err := ValidateRule(&s.Eligibility); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidScholarship, err)
	}
	return nil
}

// ValidateRule validates an EligibilityRule.
// Every set-valued field must either be unrestricted or carry at least one
// value; an income ceiling must not be negative.
func ValidateRule(r *EligibilityRule) error {
	if r == nil {
		return fmt.Errorf("%w: rule is nil", ErrInvalidRule)
	}
	if !r.States.Unrestricted() && len(r.States.Values()) == 0 {
		return fmt.Errorf("%w: states: %w", ErrInvalidRule, ErrEmptyRuleSet)
	}
	if !r.Categories.Unrestricted() && len(r.Categories.Values()) == 0 {
		return fmt.Errorf("%w: categories: %w", ErrInvalidRule, ErrEmptyRuleSet)
	}
	if !r.EducationLevels.Unrestricted() && len(r.EducationLevels.Values()) == 0 {
		return fmt.Errorf("%w: educationLevels: %w", ErrInvalidRule, ErrEmptyRuleSet)
	}
	if !r.Religions.Unrestricted() && len(r.Religions.Values()) == 0 {
		return fmt.Errorf("%w: religions: %w", ErrInvalidRule, ErrEmptyRuleSet)
	}
	if !r.Courses.Unrestricted() && len(r.Courses.Values()) == 0 {
		return fmt.Errorf("%w: courses: %w", ErrInvalidRule, ErrEmptyRuleSet)
	}
	if r.MaxIncome != nil && *r.MaxIncome < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidRule, ErrNegativeIncome)
	}
	return nil
}

// ValidateStatus validates that a Status has a valid value.
func ValidateStatus(status Status) error {
	switch status {
	case StatusApproved, StatusPending, StatusRejected:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
}
