// Package deck holds the domain vocabulary of the slide deck registry.
//
// A registry maps an owner key to a bucket of named decks, and each deck to an
// ordered sequence of opaque slide identifiers:
//
//	owner key -> deck bucket -> deck name -> slide sequence
//
// This package imports nothing internal. It defines:
//   - Registry: the seven operations every backing store implements
//   - Error: the typed error taxonomy (UNAUTHORIZED, NOT_FOUND, INVALID_ARGUMENT)
//   - BucketKey / SequenceKey: hashed segment addresses with domain separation
//   - RenderSlides / RenderNames: the JSON text returned by read operations
//
// # Ownership
//
// Mutations are only accepted when the authenticated caller identity equals
// the owner key being mutated. The caller identity is always supplied by the
// hosting process, never taken from request fields. Reads are public.
//
// # Absence
//
// ReadSlides and ReadDeckNames fail with NOT_FOUND on an unknown owner or deck.
// DeckSlideCount and DeckCount report absence through their ok result and
// never return a fabricated zero.
package deck
