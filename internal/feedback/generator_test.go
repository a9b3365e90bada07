package feedback

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClient struct {
	generate func(instructions, input string) (string, error)
}

func (s *stubClient) Generate(_ context.Context, instructions, input string, _ bool) (string, error) {
	return s.generate(instructions, input)
}

func (s *stubClient) Embed(_ context.Context, _ string) ([]float32, error) {
	return nil, errors.New("not implemented")
}

func (s *stubClient) Close() error { return nil }

const complianceDraft = `Dear candidate,

Thank you for applying. The role requires demonstrated experience using Python
for data pipeline automation; your resume shows basic Python scripting without
pipeline or orchestration context. One concrete suggestion: expand your
scripting bullet with the datasets, schedule, and efficiency metrics involved.

Best regards`

func TestGenerate_BuildsCompliantRequest(t *testing.T) {
	var gotInstructions, gotInput string
	gen := New(&stubClient{
		generate: func(instructions, input string) (string, error) {
			gotInstructions = instructions
			gotInput = input
			return complianceDraft + "\n", nil
		},
	})

	draft, err := gen.Generate(context.Background(),
		"Requires data pipeline automation in Python",
		"[SKILLS]\nbasic Python scripting")
	require.NoError(t, err)

	assert.Contains(t, gotInstructions, "RED ZONE")
	assert.Contains(t, gotInstructions, "GREEN ZONE")
	assert.Contains(t, gotInput, "Requires data pipeline automation in Python")
	assert.Contains(t, gotInput, "basic Python scripting")
	assert.Contains(t, gotInput, "Write the rejection email.")

	assert.Equal(t, complianceDraft, draft.Body)
	assert.Empty(t, draft.Violations)
}

func TestGenerate_DraftFreeOfForbiddenTerms(t *testing.T) {
	gen := New(&stubClient{
		generate: func(_, _ string) (string, error) {
			return complianceDraft, nil
		},
	})

	draft, err := gen.Generate(context.Background(),
		"Requires data pipeline automation in Python",
		"[SKILLS]\nbasic Python scripting")
	require.NoError(t, err)

	for _, term := range []string{"personality", "culture fit", "enthusiasm", "age", "gender"} {
		assert.NotContains(t, draft.Body, term)
	}
}

func TestGenerate_FlagsRedZoneViolations(t *testing.T) {
	gen := New(&stubClient{
		generate: func(_, _ string) (string, error) {
			return "Your personality and enthusiasm did not match our culture fit.", nil
		},
	})

	draft, err := gen.Generate(context.Background(), "jd", "resume")
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"personality", "enthusiasm", "culture fit"}, draft.Violations)
}

func TestGenerate_RemoteFailure(t *testing.T) {
	cause := errors.New("model overloaded")
	gen := New(&stubClient{
		generate: func(_, _ string) (string, error) {
			return "", cause
		},
	})

	draft, err := gen.Generate(context.Background(), "jd", "resume")
	require.Nil(t, draft)

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.ErrorIs(t, err, cause)
}

func TestCheckRedZoneTerms_WordBoundaries(t *testing.T) {
	// "coverage" and "passage" contain "age" but are not violations.
	assert.Nil(t, CheckRedZoneTerms("Test coverage for the passage parser was thorough."))
	assert.Equal(t, []string{"age"}, CheckRedZoneTerms("Your age was a factor."))
	assert.Equal(t, []string{"gender"}, CheckRedZoneTerms("Gender should never appear, yet here it is."))
}

func TestCheckRedZoneTerms_CaseInsensitive(t *testing.T) {
	found := CheckRedZoneTerms("We felt your PERSONALITY and Culture Fit were off.")
	assert.ElementsMatch(t, []string{"personality", "culture fit"}, found)
}

func TestStateMachine(t *testing.T) {
	assert.True(t, CanTransition(StateRequested, StateGenerating))
	assert.True(t, CanTransition(StateGenerating, StateDraftReady))
	assert.True(t, CanTransition(StateGenerating, StateFailed))

	assert.False(t, CanTransition(StateRequested, StateDraftReady))
	assert.False(t, CanTransition(StateDraftReady, StateGenerating))
	assert.False(t, CanTransition(StateFailed, StateGenerating))

	state, err := Transition(StateRequested, StateGenerating)
	require.NoError(t, err)
	assert.Equal(t, StateGenerating, state)

	state, err = Transition(state, StateDraftReady)
	require.NoError(t, err)
	assert.Equal(t, StateDraftReady, state)
	assert.True(t, Terminal(state))

	_, err = Transition(StateDraftReady, StateFailed)
	assert.Error(t, err)
}
