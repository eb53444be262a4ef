package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/roach88/slidedeck/internal/deck"
	"github.com/roach88/slidedeck/internal/store"
	"github.com/roach88/slidedeck/internal/testutil"
)

// Harness executes scenario steps against a registry.
type Harness struct {
	registry deck.Registry
	logger   *slog.Logger
}

// New creates a harness over an existing registry.
// A nil logger discards log output.
func New(registry deck.Registry, logger *slog.Logger) *Harness {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Harness{registry: registry, logger: logger}
}

// RunOption configures a scenario run.
type RunOption func(*runConfig)

type runConfig struct {
	logger *slog.Logger
}

// WithLogger sends store mutation records and per-step records to logger.
func WithLogger(logger *slog.Logger) RunOption {
	return func(c *runConfig) {
		c.logger = logger
	}
}

// Run executes a scenario against a fresh in-memory store and returns the
// result. Call ids are "<scenario name>-<n>", so repeated runs log identically.
//
// An error is returned only when the scenario could not be executed at all
// (store failure); expectation failures are reported in Result.
func Run(ctx context.Context, scenario *Scenario, opts ...RunOption) (*Result, error) {
	cfg := runConfig{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&cfg)
	}

	st, err := store.Open(":memory:",
		store.WithLogger(cfg.logger),
		store.WithCallIDs(testutil.NewCallIDs(scenario.Name).Next),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	return New(st, cfg.logger).Run(ctx, scenario)
}

// Run executes every step of the scenario in order.
func (h *Harness) Run(ctx context.Context, scenario *Scenario) (*Result, error) {
	result := NewResult()

	for i, step := range scenario.Steps {
		event, err := h.executeStep(ctx, i+1, step)
		if err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i+1, step.Op, err)
		}
		result.Trace = append(result.Trace, event)

		for _, msg := range checkExpect(step, event) {
			result.AddError(fmt.Sprintf("step %d (%s): %s", i+1, step.Op, msg))
		}

		h.logger.Debug("scenario step",
			"scenario", scenario.Name,
			"step", i+1,
			"op", step.Op,
			"outcome", event.Outcome,
		)
	}

	return result, nil
}

// executeStep runs one step. Registry errors become the event's outcome;
// any other error aborts the scenario.
func (h *Harness) executeStep(ctx context.Context, stepNum int, step Step) (TraceEvent, error) {
	event := TraceEvent{
		Step:  stepNum,
		Op:    step.Op,
		Owner: step.Owner,
		Deck:  step.Deck,
	}

	caller := step.Caller
	if isMutation(step.Op) && caller == "" {
		caller = step.Owner
	}
	if isMutation(step.Op) {
		event.Caller = caller
	}

	var err error
	switch step.Op {
	case OpCreateDeck:
		var created bool
		created, err = h.registry.CreateDeck(ctx, caller, step.Owner, step.Deck)
		if err == nil {
			event.Created = &created
		}

	case OpAppendSlide:
		slide := step.Slide
		event.Slide = &slide
		var n int
		n, err = h.registry.AppendSlide(ctx, caller, step.Owner, step.Deck, step.Slide)
		if err == nil {
			event.Length = &n
		}

	case OpAppendSlides:
		event.Slides = step.Slides
		var n int
		n, err = h.registry.AppendSlides(ctx, caller, step.Owner, step.Deck, step.Slides)
		if err == nil {
			event.Length = &n
		}

	case OpReadSlides:
		var slides []string
		slides, err = h.registry.ReadSlides(ctx, step.Owner, step.Deck)
		if err == nil {
			event.Output, err = deck.RenderSlides(slides)
		}

	case OpReadDeckNames:
		var names []string
		names, err = h.registry.ReadDeckNames(ctx, step.Owner)
		if err == nil {
			event.Output, err = deck.RenderNames(names)
		}

	case OpDeckSlideCount:
		var n int
		var ok bool
		n, ok, err = h.registry.DeckSlideCount(ctx, step.Owner, step.Deck)
		if err == nil {
			setCount(&event, n, ok)
		}

	case OpDeckCount:
		var n int
		var ok bool
		n, ok, err = h.registry.DeckCount(ctx, step.Owner)
		if err == nil {
			setCount(&event, n, ok)
		}

	default:
		return event, fmt.Errorf("unknown op %q", step.Op)
	}

	if err != nil {
		code := deck.CodeOf(err)
		if code == "" {
			return event, err
		}
		event.Outcome = strings.ToLower(string(code))
		return event, nil
	}

	event.Outcome = OutcomeOK
	return event, nil
}

func setCount(event *TraceEvent, n int, ok bool) {
	if !ok {
		event.Absent = true
		return
	}
	event.Count = &n
}

// checkExpect compares an executed step with its expectation and returns a
// message for each mismatch.
func checkExpect(step Step, event TraceEvent) []string {
	want := step.Expect
	if want == nil {
		want = &Expect{}
	}

	var msgs []string

	if want.Error != "" {
		if event.Outcome != want.Error {
			msgs = append(msgs, fmt.Sprintf("expected error %q, got outcome %q", want.Error, event.Outcome))
		}
		return msgs
	}

	if event.Outcome != OutcomeOK {
		msgs = append(msgs, fmt.Sprintf("unexpected error outcome %q", event.Outcome))
		return msgs
	}

	if want.Output != nil && event.Output != *want.Output {
		msgs = append(msgs, fmt.Sprintf("expected output %s, got %s", *want.Output, event.Output))
	}
	if want.Absent && !event.Absent {
		msgs = append(msgs, fmt.Sprintf("expected absent, got count %d", derefInt(event.Count)))
	}
	if want.Count != nil {
		switch {
		case event.Absent:
			msgs = append(msgs, fmt.Sprintf("expected count %d, got absent", *want.Count))
		case event.Count == nil || *event.Count != *want.Count:
			msgs = append(msgs, fmt.Sprintf("expected count %d, got %d", *want.Count, derefInt(event.Count)))
		}
	}
	if want.Created != nil && (event.Created == nil || *event.Created != *want.Created) {
		msgs = append(msgs, fmt.Sprintf("expected created=%v", *want.Created))
	}
	if want.Length != nil && (event.Length == nil || *event.Length != *want.Length) {
		msgs = append(msgs, fmt.Sprintf("expected length %d, got %d", *want.Length, derefInt(event.Length)))
	}

	return msgs
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
