package deck

import "fmt"

// NoSlides is the rendered result of reading a deck that exists but holds no
// slides. It is distinct from a NOT_FOUND error.
const NoSlides = "None"

// Absent is the rendered result of a count for an owner or deck that does not
// exist. It is never rendered as zero.
const Absent = "None"

// RenderSlides renders a deck's slides as a compact JSON array of strings,
// e.g. ["slide 1","slide 2"]. An empty deck renders as NoSlides.
func RenderSlides(slides []string) (string, error) {
	if len(slides) == 0 {
		return NoSlides, nil
	}
	data, err := MarshalCanonical(slides)
	if err != nil {
		return "", fmt.Errorf("render slides: %w", err)
	}
	return string(data), nil
}

// RenderNames renders deck names as a compact JSON array of strings.
// An owner always has at least one deck, but an empty list renders as [].
func RenderNames(names []string) (string, error) {
	if names == nil {
		names = []string{}
	}
	data, err := MarshalCanonical(names)
	if err != nil {
		return "", fmt.Errorf("render deck names: %w", err)
	}
	return string(data), nil
}
