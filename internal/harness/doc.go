// Package harness runs deck registry scenarios.
//
// A scenario is a YAML list of registry calls, each with an optional
// expectation. The harness executes the calls in order against a fresh
// in-memory store, records a trace of outcomes, and reports every expectation
// that did not hold.
//
// # Scenario Format
//
//	name: scenario_name
//	description: "What this scenario validates"
//	steps:
//	  - op: create_deck
//	    owner: bob
//	    deck: deck1
//	  - op: append_slide
//	    caller: alice        # defaults to owner
//	    owner: bob
//	    deck: deck1
//	    slide: slide 1
//	    expect:
//	      error: unauthorized
//	  - op: read_slides
//	    owner: bob
//	    deck: deck1
//	    expect:
//	      output: None
//
// # Operations
//
//   - create_deck, append_slide, append_slides: mutations, run as caller
//   - read_slides, read_deck_names: public reads, output is the rendered JSON
//   - deck_slide_count, deck_count: public counts, report count or absent
//
// # Expectations
//
//   - error: unauthorized | not_found | invalid_argument
//   - output: exact rendered read result
//   - count / absent: count result
//   - created: create_deck result
//   - length: deck length after an append
//
// A step without an error expectation must succeed.
//
// # Golden Traces
//
// RunWithGolden compares the canonical JSON trace with
// testdata/golden/<name>.golden. Regenerate with:
//
//	go test ./internal/harness -update
package harness
