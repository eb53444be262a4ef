package deck

import "context"

// Registry is the contract of the deck store. Mutating operations take the
// authenticated caller identity as their first argument after the context.
type Registry interface {
	// CreateDeck lazily creates the owner's bucket and the named deck.
	// Re-creating an existing deck is a no-op and reports created=false.
	CreateDeck(ctx context.Context, caller, owner, name string) (created bool, err error)

	// AppendSlide appends one slide and returns the new deck length.
	AppendSlide(ctx context.Context, caller, owner, name, slide string) (int, error)

	// AppendSlides appends all slides in order, all-or-nothing, and returns
	// the new deck length. An empty batch is a no-op.
	AppendSlides(ctx context.Context, caller, owner, name string, slides []string) (int, error)

	// ReadSlides returns the slides of a deck in insertion order.
	// An existing deck with no slides yields an empty, non-nil slice.
	ReadSlides(ctx context.Context, owner, name string) ([]string, error)

	// ReadDeckNames returns the owner's deck names in creation order.
	ReadDeckNames(ctx context.Context, owner string) ([]string, error)

	// DeckSlideCount returns the number of slides in a deck; ok is false
	// when the owner or deck does not exist.
	DeckSlideCount(ctx context.Context, owner, name string) (n int, ok bool, err error)

	// DeckCount returns the number of decks an owner has; ok is false when
	// the owner never created a deck.
	DeckCount(ctx context.Context, owner string) (n int, ok bool, err error)
}
