package eligibility

import (
	"fmt"
	"strings"

	"github.com/poiesic/scholarmatch/core"
)

// Evaluate checks a profile against an eligibility rule and reports which
// criteria passed and which failed. The applicant is eligible iff every
// per-field check passes.
//
// Each field is gated independently. A restricted field with an unknown
// profile value counts as violated: an unverifiable hard restriction must
// not silently pass. A missing profile value passes only where the rule
// field is unrestricted.
//
// Evaluate never returns an error; malformed or missing profile fields are
// "unknown" by policy, not a defect.
func Evaluate(profile *core.Profile, rule *core.EligibilityRule) Evaluation {
	var ev Evaluation

	record := func(c Criterion, ok bool) {
		if ok {
			ev.Satisfied = append(ev.Satisfied, c)
		} else {
			ev.Violated = append(ev.Violated, c)
		}
	}

	record(checkState(profile, rule))
	record(checkCategory(profile, rule))
	record(checkEducation(profile, rule))
	record(checkIncome(profile, rule))
	record(checkGender(profile, rule))
	record(checkDisability(profile, rule))
	record(checkReligion(profile, rule))
	record(checkArea(profile, rule))
	record(checkCourse(profile, rule))

	ev.Eligible = len(ev.Violated) == 0
	return ev
}

func checkState(p *core.Profile, r *core.EligibilityRule) (Criterion, bool) {
	c := Criterion{Key: CriterionState, Restricted: !r.States.Unrestricted()}
	if !c.Restricted {
		return c, true
	}
	if p.State == "" {
		c.Detail = fmt.Sprintf("state not provided, but restricted to %s", r.States)
		return c, false
	}
	if !r.States.Contains(p.State) {
		c.Detail = fmt.Sprintf("restricted to states %s", r.States)
		return c, false
	}
	c.Detail = fmt.Sprintf("available in your state (%s)", p.State)
	return c, true
}

func checkCategory(p *core.Profile, r *core.EligibilityRule) (Criterion, bool) {
	c := Criterion{Key: CriterionCategory, Restricted: !r.Categories.Unrestricted()}
	if !c.Restricted {
		return c, true
	}
	if p.Category == "" {
		c.Detail = fmt.Sprintf("category not provided, but restricted to %s", r.Categories)
		return c, false
	}
	if !r.Categories.Contains(p.Category) {
		c.Detail = fmt.Sprintf("restricted to %s category", r.Categories)
		return c, false
	}
	c.Detail = fmt.Sprintf("matches your category (%s)", p.Category)
	return c, true
}

func checkEducation(p *core.Profile, r *core.EligibilityRule) (Criterion, bool) {
	c := Criterion{Key: CriterionEducation, Restricted: !r.EducationLevels.Unrestricted()}
	if !c.Restricted {
		return c, true
	}
	levels := strings.ReplaceAll(r.EducationLevels.String(), "_", " ")
	if p.EducationLevel == "" {
		c.Detail = fmt.Sprintf("education level not provided, but restricted to %s", levels)
		return c, false
	}
	if !r.EducationLevels.Contains(p.EducationLevel) {
		c.Detail = fmt.Sprintf("restricted to %s education level", levels)
		return c, false
	}
	c.Detail = fmt.Sprintf("open to your education level (%s)",
		strings.ReplaceAll(string(p.EducationLevel), "_", " "))
	return c, true
}

func checkIncome(p *core.Profile, r *core.EligibilityRule) (Criterion, bool) {
	c := Criterion{Key: CriterionIncome, Restricted: r.MaxIncome != nil}
	if !c.Restricted {
		return c, true
	}
	if p.Income == nil {
		c.Detail = fmt.Sprintf("income not provided, but an income ceiling of %d applies", *r.MaxIncome)
		return c, false
	}
	if *p.Income > *r.MaxIncome {
		c.Detail = fmt.Sprintf("income exceeds the limit of %d", *r.MaxIncome)
		return c, false
	}
	c.Detail = fmt.Sprintf("income within the limit of %d", *r.MaxIncome)
	return c, true
}

func checkGender(p *core.Profile, r *core.EligibilityRule) (Criterion, bool) {
	c := Criterion{Key: CriterionGender, Restricted: !r.Gender.Unrestricted()}
	if !c.Restricted {
		return c, true
	}
	if p.Gender == "" {
		c.Detail = fmt.Sprintf("gender not provided, but restricted to %s applicants", r.Gender)
		return c, false
	}
	if !r.Gender.Contains(p.Gender) {
		c.Detail = fmt.Sprintf("restricted to %s applicants", r.Gender)
		return c, false
	}
	c.Detail = fmt.Sprintf("matches your gender (%s)", p.Gender)
	return c, true
}

func checkDisability(p *core.Profile, r *core.EligibilityRule) (Criterion, bool) {
	c := Criterion{Key: CriterionDisability, Restricted: r.Disability}
	if !c.Restricted {
		return c, true
	}
	// Only an explicit true satisfies a required-disability rule.
	if p.Disability == nil || !*p.Disability {
		c.Detail = "only for applicants with disability"
		return c, false
	}
	c.Detail = "meets the disability requirement"
	return c, true
}

func checkReligion(p *core.Profile, r *core.EligibilityRule) (Criterion, bool) {
	c := Criterion{Key: CriterionReligion, Restricted: !r.Religions.Unrestricted()}
	if !c.Restricted {
		return c, true
	}
	if p.Religion == "" {
		c.Detail = fmt.Sprintf("religion not provided, but restricted to %s", r.Religions)
		return c, false
	}
	if !r.Religions.Contains(p.Religion) {
		c.Detail = fmt.Sprintf("restricted to %s religion", r.Religions)
		return c, false
	}
	c.Detail = fmt.Sprintf("open to your religion (%s)", p.Religion)
	return c, true
}

func checkArea(p *core.Profile, r *core.EligibilityRule) (Criterion, bool) {
	c := Criterion{Key: CriterionArea, Restricted: !r.Area.Unrestricted()}
	if !c.Restricted {
		return c, true
	}
	if p.Area == "" {
		c.Detail = fmt.Sprintf("area not provided, but restricted to %s areas", r.Area)
		return c, false
	}
	if !r.Area.Contains(p.Area) {
		c.Detail = fmt.Sprintf("restricted to %s areas", r.Area)
		return c, false
	}
	c.Detail = fmt.Sprintf("targets your area (%s)", p.Area)
	return c, true
}

func checkCourse(p *core.Profile, r *core.EligibilityRule) (Criterion, bool) {
	c := Criterion{Key: CriterionCourse, Restricted: !r.Courses.Unrestricted()}
	if !c.Restricted {
		return c, true
	}
	if p.Course == "" {
		c.Detail = fmt.Sprintf("course not provided, but restricted to %s", r.Courses)
		return c, false
	}
	if !r.Courses.Contains(p.Course) {
		c.Detail = fmt.Sprintf("restricted to %s courses", r.Courses)
		return c, false
	}
	c.Detail = fmt.Sprintf("covers your course (%s)", p.Course)
	return c, true
}
