package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetRule(t *testing.T) {
	t.Run("unrestricted contains everything", func(t *testing.T) {
		r := UnrestrictedSet[Category]()
		assert.True(t, r.Unrestricted())
		assert.True(t, r.Contains(CategorySC))
		assert.True(t, r.Contains(Category("anything")))
	})

	t.Run("specific set contains only its members", func(t *testing.T) {
		r := OneOf(CategorySC, CategoryST)
		assert.False(t, r.Unrestricted())
		assert.True(t, r.Contains(CategorySC))
		assert.True(t, r.Contains(CategoryST))
		assert.False(t, r.Contains(CategoryOBC))
	})

	t.Run("values returns members in insertion order", func(t *testing.T) {
		r := OneOf(CategoryOBC, CategorySC)
		assert.Equal(t, []Category{CategoryOBC, CategorySC}, r.Values())
	})
}

func TestSetRuleJSON(t *testing.T) {
	t.Run("unrestricted marshals to all sentinel", func(t *testing.T) {
		data, err := json.Marshal(UnrestrictedSet[Category]())
		require.NoError(t, err)
		assert.JSONEq(t, `["all"]`, string(data))
	})

	t.Run("specific set marshals to value array", func(t *testing.T) {
		data, err := json.Marshal(OneOf(CategorySC, CategoryST))
		require.NoError(t, err)
		assert.JSONEq(t, `["SC","ST"]`, string(data))
	})

	t.Run("all sentinel unmarshals to unrestricted", func(t *testing.T) {
		var r SetRule[Category]
		require.NoError(t, json.Unmarshal([]byte(`["all"]`), &r))
		assert.True(t, r.Unrestricted())
	})

	t.Run("all sentinel mixed with values still unrestricted", func(t *testing.T) {
		var r SetRule[Category]
		require.NoError(t, json.Unmarshal([]byte(`["SC","all"]`), &r))
		assert.True(t, r.Unrestricted())
	})

	t.Run("value array unmarshals to specific set", func(t *testing.T) {
		var r SetRule[string]
		require.NoError(t, json.Unmarshal([]byte(`["Maharashtra","Kerala"]`), &r))
		assert.False(t, r.Unrestricted())
		assert.True(t, r.Contains("Maharashtra"))
		assert.False(t, r.Contains("Goa"))
	})

	t.Run("round trip preserves semantics", func(t *testing.T) {
		original := OneOf(CategorySC, CategoryOBC)
		data, err := json.Marshal(original)
		require.NoError(t, err)

		var decoded SetRule[Category]
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, original.Values(), decoded.Values())
	})
}

func TestValueRule(t *testing.T) {
	t.Run("unrestricted contains everything", func(t *testing.T) {
		r := UnrestrictedValue[Gender]()
		assert.True(t, r.Unrestricted())
		assert.True(t, r.Contains(GenderFemale))
	})

	t.Run("exact value matches only itself", func(t *testing.T) {
		r := Exactly(GenderFemale)
		assert.False(t, r.Unrestricted())
		assert.True(t, r.Contains(GenderFemale))
		assert.False(t, r.Contains(GenderMale))
	})

	t.Run("marshals to scalar", func(t *testing.T) {
		data, err := json.Marshal(Exactly(GenderFemale))
		require.NoError(t, err)
		assert.JSONEq(t, `"female"`, string(data))

		data, err = json.Marshal(UnrestrictedValue[Gender]())
		require.NoError(t, err)
		assert.JSONEq(t, `"all"`, string(data))
	})

	t.Run("unmarshals scalar", func(t *testing.T) {
		var r ValueRule[Gender]
		require.NoError(t, json.Unmarshal([]byte(`"female"`), &r))
		assert.Equal(t, GenderFemale, r.Value())

		require.NoError(t, json.Unmarshal([]byte(`"all"`), &r))
		assert.True(t, r.Unrestricted())
	})
}

func TestEligibilityRuleJSON(t *testing.T) {
	maxIncome := int64(250000)
	rule := EligibilityRule{
		States:          OneOf("Maharashtra", "Kerala"),
		Categories:      OneOf(CategorySC, CategoryST),
		MaxIncome:       &maxIncome,
		EducationLevels: UnrestrictedSet[EducationLevel](),
		Gender:          Exactly(GenderFemale),
		Disability:      false,
		Religions:       UnrestrictedSet[Religion](),
		Area:            UnrestrictedValue[Area](),
		Courses:         OneOf(CourseEngineering),
	}

	data, err := json.Marshal(rule)
	require.NoError(t, err)

	var decoded EligibilityRule
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, rule.States.Values(), decoded.States.Values())
	assert.Equal(t, rule.Categories.Values(), decoded.Categories.Values())
	require.NotNil(t, decoded.MaxIncome)
	assert.Equal(t, maxIncome, *decoded.MaxIncome)
	assert.True(t, decoded.EducationLevels.Unrestricted())
	assert.Equal(t, GenderFemale, decoded.Gender.Value())
	assert.False(t, decoded.Disability)
	assert.True(t, decoded.Religions.Unrestricted())
	assert.True(t, decoded.Area.Unrestricted())
	assert.Equal(t, []Course{CourseEngineering}, decoded.Courses.Values())
}

func TestOpenRule(t *testing.T) {
	rule := OpenRule()
	assert.True(t, rule.States.Unrestricted())
	assert.True(t, rule.Categories.Unrestricted())
	assert.Nil(t, rule.MaxIncome)
	assert.True(t, rule.EducationLevels.Unrestricted())
	assert.True(t, rule.Gender.Unrestricted())
	assert.False(t, rule.Disability)
	assert.True(t, rule.Religions.Unrestricted())
	assert.True(t, rule.Area.Unrestricted())
	assert.True(t, rule.Courses.Unrestricted())
}

func TestRuleSummary(t *testing.T) {
	t.Run("open rule mentions no restrictions", func(t *testing.T) {
		rule := OpenRule()
		assert.Equal(t, "for students", rule.Summary())
	})

	t.Run("restricted rule mentions each restriction", func(t *testing.T) {
		maxIncome := int64(200000)
		rule := OpenRule()
		rule.States = OneOf("Kerala")
		rule.Categories = OneOf(CategorySC)
		rule.MaxIncome = &maxIncome
		rule.Disability = true

		summary := rule.Summary()
		assert.Contains(t, summary, "Kerala")
		assert.Contains(t, summary, "SC")
		assert.Contains(t, summary, "200000")
		assert.Contains(t, summary, "disab")
	})
}
