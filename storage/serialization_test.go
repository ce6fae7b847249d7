package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/scholarmatch/core"
)

func TestScholarshipSerialization(t *testing.T) {
	maxIncome := int64(250000)
	original := &core.Scholarship{
		Id:          "sch-001",
		Name:        "Merit Scholarship",
		Description: "Merit-based support for SC students",
		Deadline:    "2026-06-30",
		Type:        core.TypePublic,
		Status:      core.StatusApproved,
		Eligibility: func() core.EligibilityRule {
			r := core.OpenRule()
			r.Categories = core.OneOf(core.CategorySC)
			r.MaxIncome = &maxIncome
			return r
		}(),
	}

	data, err := MarshalScholarship(original)
	require.NoError(t, err)

	decoded, err := UnmarshalScholarship(data)
	require.NoError(t, err)

	assert.Equal(t, original.Id, decoded.Id)
	assert.Equal(t, original.Name, decoded.Name)
	assert.Equal(t, original.Deadline, decoded.Deadline)
	assert.Equal(t, original.Status, decoded.Status)
	assert.Equal(t, []core.Category{core.CategorySC}, decoded.Eligibility.Categories.Values())
	require.NotNil(t, decoded.Eligibility.MaxIncome)
	assert.Equal(t, maxIncome, *decoded.Eligibility.MaxIncome)
	assert.True(t, decoded.Eligibility.States.Unrestricted())
}

func TestScholarshipSerialization_CorruptValue(t *testing.T) {
	_, err := UnmarshalScholarship([]byte("not json"))
	assert.ErrorIs(t, err, ErrCorruptValue)
}

func TestVectorSerialization(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		vector := []float32{0.1, -0.5, 0.82, 0}
		data := MarshalVector(core.Fingerprint(12345678901234), vector)

		fp, decoded, err := UnmarshalVector(data)
		require.NoError(t, err)
		assert.Equal(t, core.Fingerprint(12345678901234), fp)
		assert.Equal(t, vector, decoded)
	})

	t.Run("empty vector", func(t *testing.T) {
		data := MarshalVector(7, nil)

		fp, decoded, err := UnmarshalVector(data)
		require.NoError(t, err)
		assert.Equal(t, core.Fingerprint(7), fp)
		assert.Empty(t, decoded)
	})

	t.Run("truncated payload", func(t *testing.T) {
		data := MarshalVector(7, []float32{1, 2})
		_, _, err := UnmarshalVector(data[:len(data)-2])
		assert.ErrorIs(t, err, ErrCorruptValue)
	})
}
