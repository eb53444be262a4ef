package harness

// TraceEvent records one executed step and its outcome.
type TraceEvent struct {
	Step    int      `json:"step"`
	Op      string   `json:"op"`
	Caller  string   `json:"caller,omitempty"`
	Owner   string   `json:"owner"`
	Deck    string   `json:"deck,omitempty"`
	Slide   *string  `json:"slide,omitempty"`
	Slides  []string `json:"slides,omitempty"`
	Outcome string   `json:"outcome"`

	// Set on success, depending on op.
	Created *bool  `json:"created,omitempty"`
	Length  *int   `json:"length,omitempty"`
	Output  string `json:"output,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Absent  bool   `json:"absent,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true if every expectation held.
	Pass bool `json:"pass"`

	// Trace contains one event per executed step, in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains expectation failures. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds an expectation failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
