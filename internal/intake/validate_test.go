package intake

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learning-advisor/internal/domain"
)

func TestValidateSemester(t *testing.T) {
	accepted := map[string]string{
		"5":              "5",
		"5th":            "5",
		"five":           "5",
		"FIVE":           "5",
		"semester 12":    "12",
		"I'm in the 3rd": "3",
		"seventeen":      "7",
		"  1  ":          "1",
	}
	for in, want := range accepted {
		t.Run(in, func(t *testing.T) {
			res := ValidateSemester(in)
			require.True(t, res.Accepted, "input %q", in)
			assert.Equal(t, want, res.Value)
			assert.Empty(t, res.Reprompt)
		})
	}

	for _, in := range []string{"13", "0", "abc", "", "99"} {
		t.Run("reject "+in, func(t *testing.T) {
			res := ValidateSemester(in)
			assert.False(t, res.Accepted)
			assert.Nil(t, res.Value)
			assert.Equal(t, repromptSemester, res.Reprompt)
		})
	}
}

func TestValidateSemester_NilAndNumbers(t *testing.T) {
	res := ValidateSemester(nil)
	assert.False(t, res.Accepted)
	assert.Equal(t, repromptSemesterEmpty, res.Reprompt)

	res = ValidateSemester(float64(4))
	require.True(t, res.Accepted)
	assert.Equal(t, "4", res.Value)
}

func TestValidateGPA(t *testing.T) {
	accepted := map[string]string{
		"3.5":    "3.5",
		"7.2":    "7.2",
		"10":     "10.0",
		"10.0":   "10.0",
		"0":      "0.0",
		" 3.22 ": "3.22",
	}
	for in, want := range accepted {
		res := ValidateGPA(in)
		require.True(t, res.Accepted, "input %q", in)
		assert.Equal(t, want, res.Value, "input %q", in)
	}

	for _, in := range []any{"11", "-1", "abc", "", "NaN", "10.01", nil, []string{"3"}} {
		res := ValidateGPA(in)
		assert.False(t, res.Accepted, "input %v", in)
		assert.Equal(t, repromptGPA, res.Reprompt)
	}

	res := ValidateGPA(3.0)
	require.True(t, res.Accepted)
	assert.Equal(t, "3.0", res.Value)
}

func TestValidateDegree(t *testing.T) {
	res := ValidateDegree("  computer engineering ")
	require.True(t, res.Accepted)
	assert.Equal(t, "computer engineering", res.Value)

	for _, in := range []any{"", "x", "  y  ", nil, 42} {
		res := ValidateDegree(in)
		assert.False(t, res.Accepted, "input %v", in)
		assert.Equal(t, repromptDegree, res.Reprompt)
	}
}

func TestValidateSkills(t *testing.T) {
	res := ValidateSkills("Python; SQL, , Git ")
	require.True(t, res.Accepted)
	assert.Equal(t, []string{"Python", "SQL", "Git"}, res.Value)

	res = ValidateSkills([]string{"Go", "  Rust"})
	require.True(t, res.Accepted)
	assert.Equal(t, []string{"Go", "  Rust"}, res.Value, "sequences pass through untouched")

	res = ValidateSkills([]any{"Go", "SQL"})
	require.True(t, res.Accepted)
	assert.Equal(t, []string{"Go", "SQL"}, res.Value)

	// Solo separadores: se acepta una lista vacía sin revalidar.
	res = ValidateSkills(" ; , ")
	require.True(t, res.Accepted)
	assert.Equal(t, []string{}, res.Value)

	for _, in := range []any{"", nil, []string{}} {
		res := ValidateSkills(in)
		assert.False(t, res.Accepted)
		assert.Equal(t, repromptSkills, res.Reprompt)
	}
}

func TestValidateTimeCommitment(t *testing.T) {
	res := ValidateTimeCommitment(" 1 hour ")
	require.True(t, res.Accepted)
	assert.Equal(t, " 1 hour ", res.Value)

	res = ValidateTimeCommitment("whenever I can")
	require.True(t, res.Accepted)

	for _, in := range []any{"", nil} {
		res := ValidateTimeCommitment(in)
		assert.False(t, res.Accepted)
		assert.Equal(t, repromptTimeCommitment, res.Reprompt)
	}
}

func TestValidateInterests(t *testing.T) {
	res := ValidateInterests("AI, Web Development")
	require.True(t, res.Accepted)
	assert.Equal(t, []string{"AI", "Web Development"}, res.Value)

	res = ValidateInterests("  Cybersecurity ")
	require.True(t, res.Accepted)
	assert.Equal(t, []string{"Cybersecurity"}, res.Value)

	res = ValidateInterests([]string{"AI"})
	require.True(t, res.Accepted)
	assert.Equal(t, []string{"AI"}, res.Value)

	for _, in := range []any{"", nil, []any{}, ", ,"} {
		res := ValidateInterests(in)
		assert.False(t, res.Accepted, "input %v", in)
		assert.Equal(t, repromptInterests, res.Reprompt)
	}
}

func TestValidateLearningGoal(t *testing.T) {
	res := ValidateLearningGoal("  Learn AI ")
	require.True(t, res.Accepted)
	assert.Equal(t, "Learn AI", res.Value)

	for _, in := range []any{"", "   ", nil} {
		res := ValidateLearningGoal(in)
		assert.False(t, res.Accepted)
		assert.Equal(t, repromptLearningGoal, res.Reprompt)
	}
}

func TestValidateDispatch(t *testing.T) {
	for _, slot := range domain.ProfileFormSlots {
		assert.True(t, Supports(slot), slot)
		res := Validate(slot, nil)
		assert.Equal(t, slot, res.Slot)
		assert.False(t, res.Accepted, "%s must reject nil", slot)
		assert.NotEmpty(t, res.Reprompt, "%s must reprompt", slot)
	}

	res := Validate(domain.SlotSemester, "5th")
	assert.True(t, res.Accepted)
	assert.Equal(t, domain.SlotSemester, res.Slot)

	res = Validate("favourite_color", "blue")
	assert.False(t, res.Accepted)
	assert.Equal(t, repromptUnknown, res.Reprompt)
	assert.False(t, Supports(domain.SlotTargetDomain))
}
