package harness

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/slidedeck/internal/store"
)

func intPtr(n int) *int       { return &n }
func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestRun_ReportsExpectationFailures(t *testing.T) {
	scenario := &Scenario{
		Name:        "failing",
		Description: "every expectation is wrong",
		Steps: []Step{
			{Op: OpCreateDeck, Owner: "bob", Deck: "d", Expect: &Expect{Created: boolPtr(false)}},
			{Op: OpAppendSlide, Owner: "bob", Deck: "d", Slide: "s", Expect: &Expect{Length: intPtr(2)}},
			{Op: OpReadSlides, Owner: "bob", Deck: "d", Expect: &Expect{Output: strPtr("None")}},
			{Op: OpDeckCount, Owner: "bob", Expect: &Expect{Absent: true}},
			{Op: OpDeckSlideCount, Owner: "bob", Deck: "nope", Expect: &Expect{Count: intPtr(0)}},
			{Op: OpAppendSlide, Caller: "alice", Owner: "bob", Deck: "d", Slide: "s", Expect: &Expect{Error: OutcomeNotFound}},
			{Op: OpReadDeckNames, Owner: "nobody"},
		},
	}

	result, err := Run(context.Background(), scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 7)

	assert.Contains(t, result.Errors[0], "expected created=false")
	assert.Contains(t, result.Errors[1], "expected length 2, got 1")
	assert.Contains(t, result.Errors[2], `expected output None, got ["s"]`)
	assert.Contains(t, result.Errors[3], "expected absent, got count 1")
	assert.Contains(t, result.Errors[4], "expected count 0, got absent")
	assert.Contains(t, result.Errors[5], `expected error "not_found", got outcome "unauthorized"`)
	assert.Contains(t, result.Errors[6], `unexpected error outcome "not_found"`)
}

func TestRun_DefaultsCallerToOwner(t *testing.T) {
	scenario := &Scenario{
		Name:        "caller_default",
		Description: "mutations without caller run as the owner",
		Steps: []Step{
			{Op: OpCreateDeck, Owner: "bob", Deck: "d"},
			{Op: OpReadSlides, Owner: "bob", Deck: "d"},
		},
	}

	result, err := Run(context.Background(), scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, result.Errors)
	assert.Equal(t, "bob", result.Trace[0].Caller)
	assert.Empty(t, result.Trace[1].Caller, "reads carry no caller")
}

func TestRun_InvalidArgumentOutcome(t *testing.T) {
	scenario := &Scenario{
		Name:        "invalid",
		Description: "empty deck name",
		Steps: []Step{
			{Op: OpCreateDeck, Owner: "bob", Deck: "", Expect: &Expect{Error: OutcomeInvalidArgument}},
		},
	}

	result, err := Run(context.Background(), scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, result.Errors)
	assert.Equal(t, OutcomeInvalidArgument, result.Trace[0].Outcome)
}

func TestHarness_RunAgainstExistingStore(t *testing.T) {
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()
	_, err = st.CreateDeck(ctx, "bob", "bob", "d")
	require.NoError(t, err)
	_, err = st.AppendSlides(ctx, "bob", "bob", "d", []string{"x", "y"})
	require.NoError(t, err)

	var logs bytes.Buffer
	h := New(st, slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})))

	result, err := h.Run(ctx, &Scenario{
		Name:        "existing",
		Description: "reads pre-populated state",
		Steps: []Step{
			{Op: OpReadSlides, Owner: "bob", Deck: "d", Expect: &Expect{Output: strPtr(`["x","y"]`)}},
			{Op: OpDeckSlideCount, Owner: "bob", Deck: "d", Expect: &Expect{Count: intPtr(2)}},
		},
	})
	require.NoError(t, err)
	assert.True(t, result.Pass, result.Errors)
	assert.Contains(t, logs.String(), "scenario step")
}

func TestRun_StoreFailureAbortsScenario(t *testing.T) {
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.Close())

	_, err = New(st, nil).Run(context.Background(), &Scenario{
		Name:        "closed",
		Description: "closed store",
		Steps:       []Step{{Op: OpDeckCount, Owner: "bob"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step 1 (deck_count)")
}

func TestRun_WithLoggerRecordsDeterministicCallIDs(t *testing.T) {
	scenario := &Scenario{
		Name:        "logged",
		Description: "store and step records reach the logger",
		Steps: []Step{
			{Op: OpCreateDeck, Owner: "bob", Deck: "d"},
			{Op: OpAppendSlide, Owner: "bob", Deck: "d", Slide: "s"},
		},
	}

	runLogged := func() string {
		var logs bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{
			Level: slog.LevelDebug,
			ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey {
					return slog.Attr{}
				}
				return a
			},
		}))
		result, err := Run(context.Background(), scenario, WithLogger(logger))
		require.NoError(t, err)
		require.True(t, result.Pass, result.Errors)
		return logs.String()
	}

	first := runLogged()
	assert.Contains(t, first, "deck created")
	assert.Contains(t, first, "call_id=logged-1")
	assert.Contains(t, first, "call_id=logged-2")
	assert.Contains(t, first, "scenario step")
	assert.Equal(t, first, runLogged())
}
