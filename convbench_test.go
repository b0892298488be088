package convbench_test

import (
	"testing"

	"github.com/fwojciec/convbench"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCase(id int) convbench.TestCase {
	return convbench.TestCase{
		ID:             id,
		Axis:           "RECOLLECTION",
		Turns:          []convbench.Turn{{Role: convbench.RoleUser, Content: "Remember 42."}},
		TargetQuestion: "Does it recall 42?",
		PassCriteria:   convbench.VerdictYes,
	}
}

func TestValidateTestCases(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, convbench.ValidateTestCases([]convbench.TestCase{validCase(1), validCase(2)}))
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		assert.ErrorIs(t, convbench.ValidateTestCases(nil), convbench.ErrNoTestCases)
	})

	t.Run("duplicate id", func(t *testing.T) {
		t.Parallel()

		err := convbench.ValidateTestCases([]convbench.TestCase{validCase(1), validCase(1)})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate")
	})

	t.Run("bad pass criteria", func(t *testing.T) {
		t.Parallel()

		tc := validCase(1)
		tc.PassCriteria = "yes"

		assert.ErrorIs(t, convbench.ValidateTestCases([]convbench.TestCase{tc}), convbench.ErrInvalidVerdict)
	})

	t.Run("empty conversation", func(t *testing.T) {
		t.Parallel()

		tc := validCase(1)
		tc.Turns = nil

		assert.Error(t, convbench.ValidateTestCases([]convbench.TestCase{tc}))
	})

	t.Run("unknown role", func(t *testing.T) {
		t.Parallel()

		tc := validCase(1)
		tc.Turns = []convbench.Turn{{Role: "system", Content: "x"}}

		err := convbench.ValidateTestCases([]convbench.TestCase{tc})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown role")
	})
}
