package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validScholarship() *Scholarship {
	return &Scholarship{
		Id:          "sch-001",
		Name:        "Post Matric Scholarship",
		Description: "Financial assistance for post-matric studies",
		Type:        TypePublic,
		Status:      StatusApproved,
		Eligibility: OpenRule(),
	}
}

func TestValidateScholarship(t *testing.T) {
	t.Run("valid scholarship", func(t *testing.T) {
		assert.NoError(t, ValidateScholarship(validScholarship()))
	})

	t.Run("nil scholarship", func(t *testing.T) {
		err := ValidateScholarship(nil)
		assert.ErrorIs(t, err, ErrInvalidScholarship)
	})

	t.Run("empty id", func(t *testing.T) {
		s := validScholarship()
		s.Id = ""
		err := ValidateScholarship(s)
		assert.ErrorIs(t, err, ErrInvalidScholarship)
		assert.ErrorIs(t, err, ErrEmptyId)
	})

	t.Run("empty name", func(t *testing.T) {
		s := validScholarship()
		s.Name = ""
		err := ValidateScholarship(s)
		assert.ErrorIs(t, err, ErrEmptyName)
	})

	t.Run("invalid status", func(t *testing.T) {
		s := validScholarship()
		s.Status = "published"
		err := ValidateScholarship(s)
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("invalid type", func(t *testing.T) {
		s := validScholarship()
		s.Type = "charity"
		err := ValidateScholarship(s)
		assert.ErrorIs(t, err, ErrInvalidType)
	})

	t.Run("invalid rule propagates", func(t *testing.T) {
		s := validScholarship()
		s.Eligibility.Categories = OneOf[Category]()
		err := ValidateScholarship(s)
		assert.ErrorIs(t, err, ErrInvalidRule)
	})
}

func TestValidateRule(t *testing.T) {
	t.Run("open rule is valid", func(t *testing.T) {
		rule := OpenRule()
		assert.NoError(t, ValidateRule(&rule))
	})

	t.Run("nil rule", func(t *testing.T) {
		assert.ErrorIs(t, ValidateRule(nil), ErrInvalidRule)
	})

	t.Run("specific set with no values", func(t *testing.T) {
		rule := OpenRule()
		rule.States = OneOf[string]()
		err := ValidateRule(&rule)
		assert.ErrorIs(t, err, ErrEmptyRuleSet)
	})

	t.Run("negative income ceiling", func(t *testing.T) {
		rule := OpenRule()
		income := int64(-1)
		rule.MaxIncome = &income
		err := ValidateRule(&rule)
		assert.ErrorIs(t, err, ErrNegativeIncome)
	})

	t.Run("zero income ceiling is allowed", func(t *testing.T) {
		rule := OpenRule()
		income := int64(0)
		rule.MaxIncome = &income
		assert.NoError(t, ValidateRule(&rule))
	})
}

func TestValidateStatus(t *testing.T) {
	for _, status := range []Status{StatusApproved, StatusPending, StatusRejected} {
		assert.NoError(t, ValidateStatus(status))
	}
	assert.ErrorIs(t, ValidateStatus("draft"), ErrInvalidStatus)
	assert.ErrorIs(t, ValidateStatus(""), ErrInvalidStatus)
}

func TestFingerprint(t *testing.T) {
	t.Run("stable for identical text", func(t *testing.T) {
		assert.Equal(t, FingerprintOf("hello"), FingerprintOf("hello"))
	})

	t.Run("changes with text", func(t *testing.T) {
		assert.NotEqual(t, FingerprintOf("hello"), FingerprintOf("hello!"))
	})

	t.Run("scholarship fingerprint tracks canonical text", func(t *testing.T) {
		a := validScholarship()
		b := validScholarship()
		require.Equal(t, a.Fingerprint(), b.Fingerprint())

		b.Description = "Updated description"
		assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
	})
}

func TestDescribe(t *testing.T) {
	t.Run("empty profile still describes a student", func(t *testing.T) {
		p := &Profile{}
		assert.Equal(t, "student", p.Describe())
	})

	t.Run("full profile mentions every attribute", func(t *testing.T) {
		income := int64(150000)
		disability := true
		p := &Profile{
			State:          "Maharashtra",
			Category:       CategorySC,
			EducationLevel: LevelUndergraduate,
			Income:         &income,
			Gender:         GenderFemale,
			Disability:     &disability,
			Religion:       ReligionHindu,
			Area:           AreaRural,
			Course:         CourseEngineering,
		}

		text := p.Describe()
		assert.Contains(t, text, "SC category")
		assert.Contains(t, text, "Maharashtra")
		assert.Contains(t, text, "undergraduate")
		assert.Contains(t, text, "150000")
		assert.Contains(t, text, "female")
		assert.Contains(t, text, "disability")
		assert.Contains(t, text, "hindu")
		assert.Contains(t, text, "rural")
		assert.Contains(t, text, "engineering")
	})
}

func TestCanonicalText(t *testing.T) {
	s := validScholarship()
	s.Eligibility.Categories = OneOf(CategorySC)

	text := s.CanonicalText()
	assert.Contains(t, text, s.Name)
	assert.Contains(t, text, s.Description)
	assert.Contains(t, text, "SC")
}
