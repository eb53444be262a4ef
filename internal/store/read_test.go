package store

import (
	"context"
	"reflect"
	"testing"

	"github.com/roach88/slidedeck/internal/deck"
)

func TestReadSlides_NotFound(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	if _, err := s.ReadSlides(ctx, "bob.near", "deck 1"); !deck.IsNotFound(err) {
		t.Errorf("ReadSlides() on missing owner error = %v, want NOT_FOUND", err)
	}

	mustCreateDeck(t, s, "bob.near", "deck 1")
	if _, err := s.ReadSlides(ctx, "bob.near", "deck 2"); !deck.IsNotFound(err) {
		t.Errorf("ReadSlides() on missing deck error = %v, want NOT_FOUND", err)
	}

	// Deck names are scoped to their owner.
	if _, err := s.ReadSlides(ctx, "alice.near", "deck 1"); !deck.IsNotFound(err) {
		t.Errorf("ReadSlides() on other owner's deck name error = %v, want NOT_FOUND", err)
	}
}

func TestReadSlides_EmptyDeckIsNotNil(t *testing.T) {
	s := createTestStore(t)

	mustCreateDeck(t, s, "bob.near", "deck 1")
	slides := mustReadSlides(t, s, "bob.near", "deck 1")
	if slides == nil {
		t.Fatal("ReadSlides() on empty deck returned nil, want empty slice")
	}
	if len(slides) != 0 {
		t.Errorf("ReadSlides() = %v, want empty", slides)
	}
}

func TestReadSlides_IsPublic(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	mustCreateDeck(t, s, "bob.near", "deck 1")
	if _, err := s.AppendSlide(ctx, "bob.near", "bob.near", "deck 1", "slide 1"); err != nil {
		t.Fatalf("AppendSlide() failed: %v", err)
	}

	// Reads take no caller identity at all.
	slides, err := s.ReadSlides(ctx, "bob.near", "deck 1")
	if err != nil {
		t.Fatalf("ReadSlides() failed: %v", err)
	}
	if !reflect.DeepEqual(slides, []string{"slide 1"}) {
		t.Errorf("ReadSlides() = %v", slides)
	}
}

func TestReadDeckNames_CreationOrder(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	// Created in non-lexical order.
	for _, name := range []string{"zeta", "alpha", "mu"} {
		mustCreateDeck(t, s, "bob.near", name)
	}
	// Re-creating does not move a deck.
	mustCreateDeck(t, s, "bob.near", "zeta")

	names, err := s.ReadDeckNames(ctx, "bob.near")
	if err != nil {
		t.Fatalf("ReadDeckNames() failed: %v", err)
	}
	want := []string{"zeta", "alpha", "mu"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("ReadDeckNames() = %v, want %v", names, want)
	}
}

func TestReadDeckNames_Scenario(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	mustCreateDeck(t, s, "bob", "deck1")
	mustCreateDeck(t, s, "bob", "deck2")
	mustCreateDeck(t, s, "bob", "deck3")

	names, err := s.ReadDeckNames(ctx, "bob")
	if err != nil {
		t.Fatalf("ReadDeckNames() failed: %v", err)
	}
	rendered, err := deck.RenderNames(names)
	if err != nil {
		t.Fatalf("RenderNames() failed: %v", err)
	}
	if want := `["deck1","deck2","deck3"]`; rendered != want {
		t.Errorf("rendered = %s, want %s", rendered, want)
	}
}

func TestReadDeckNames_NotFound(t *testing.T) {
	s := createTestStore(t)

	if _, err := s.ReadDeckNames(context.Background(), "bob.near"); !deck.IsNotFound(err) {
		t.Errorf("ReadDeckNames() error = %v, want NOT_FOUND", err)
	}
}

func TestReadDeckNames_PerOwner(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	mustCreateDeck(t, s, "bob.near", "b1")
	mustCreateDeck(t, s, "alice.near", "a1")
	mustCreateDeck(t, s, "bob.near", "b2")

	bob, err := s.ReadDeckNames(ctx, "bob.near")
	if err != nil {
		t.Fatalf("ReadDeckNames(bob) failed: %v", err)
	}
	if !reflect.DeepEqual(bob, []string{"b1", "b2"}) {
		t.Errorf("bob decks = %v", bob)
	}

	alice, err := s.ReadDeckNames(ctx, "alice.near")
	if err != nil {
		t.Fatalf("ReadDeckNames(alice) failed: %v", err)
	}
	if !reflect.DeepEqual(alice, []string{"a1"}) {
		t.Errorf("alice decks = %v", alice)
	}
}

func TestDeckSlideCount(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	// Absent owner: ok=false, never a fabricated zero.
	n, ok, err := s.DeckSlideCount(ctx, "bob.near", "deck 1")
	if err != nil || ok || n != 0 {
		t.Errorf("DeckSlideCount() on missing owner = (%d, %v, %v), want (0, false, nil)", n, ok, err)
	}

	mustCreateDeck(t, s, "bob.near", "deck 1")

	// Absent deck in an existing bucket.
	n, ok, err = s.DeckSlideCount(ctx, "bob.near", "deck 2")
	if err != nil || ok {
		t.Errorf("DeckSlideCount() on missing deck = (%d, %v, %v), want absent", n, ok, err)
	}

	// Existing empty deck: a real zero.
	n, ok, err = s.DeckSlideCount(ctx, "bob.near", "deck 1")
	if err != nil || !ok || n != 0 {
		t.Errorf("DeckSlideCount() on empty deck = (%d, %v, %v), want (0, true, nil)", n, ok, err)
	}

	if _, err := s.AppendSlides(ctx, "bob.near", "bob.near", "deck 1", []string{"a", "b", "c"}); err != nil {
		t.Fatalf("AppendSlides() failed: %v", err)
	}
	n, ok, err = s.DeckSlideCount(ctx, "bob.near", "deck 1")
	if err != nil || !ok || n != 3 {
		t.Errorf("DeckSlideCount() = (%d, %v, %v), want (3, true, nil)", n, ok, err)
	}
}

func TestDeckCount(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	n, ok, err := s.DeckCount(ctx, "bob.near")
	if err != nil || ok || n != 0 {
		t.Errorf("DeckCount() on missing owner = (%d, %v, %v), want (0, false, nil)", n, ok, err)
	}

	mustCreateDeck(t, s, "bob.near", "deck 1")
	mustCreateDeck(t, s, "bob.near", "deck 2")
	mustCreateDeck(t, s, "bob.near", "deck 1")

	n, ok, err = s.DeckCount(ctx, "bob.near")
	if err != nil || !ok || n != 2 {
		t.Errorf("DeckCount() = (%d, %v, %v), want (2, true, nil)", n, ok, err)
	}
}

func TestReads_InvalidArguments(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	if _, err := s.ReadSlides(ctx, "", "deck 1"); !deck.IsInvalidArgument(err) {
		t.Errorf("ReadSlides(empty owner) error = %v", err)
	}
	if _, err := s.ReadSlides(ctx, "bob.near", ""); !deck.IsInvalidArgument(err) {
		t.Errorf("ReadSlides(empty deck) error = %v", err)
	}
	if _, err := s.ReadDeckNames(ctx, ""); !deck.IsInvalidArgument(err) {
		t.Errorf("ReadDeckNames(empty owner) error = %v", err)
	}
	if _, _, err := s.DeckSlideCount(ctx, "", "deck 1"); !deck.IsInvalidArgument(err) {
		t.Errorf("DeckSlideCount(empty owner) error = %v", err)
	}
	if _, _, err := s.DeckCount(ctx, ""); !deck.IsInvalidArgument(err) {
		t.Errorf("DeckCount(empty owner) error = %v", err)
	}
}
