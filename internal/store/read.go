package store

import (
	"context"
	"fmt"

	"github.com/roach88/slidedeck/internal/deck"
)

// ReadSlides returns a deck's slides in insertion order.
//
// Returns NOT_FOUND if the owner has no bucket or the deck does not exist.
// An existing deck without slides returns an empty slice (not nil).
func (s *Store) ReadSlides(ctx context.Context, owner, name string) ([]string, error) {
	const op = "read slides"
	if err := deck.ValidateDeck(op, owner, name); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: begin tx: %w", op, err)
	}
	defer tx.Rollback()

	sequenceKey, err := lookupSequence(ctx, tx, op, owner, name)
	if err != nil {
		return nil, err
	}

	rows, err := tx.QueryContext(ctx, `
		SELECT slide_id FROM slides
		WHERE sequence_key = ?
		ORDER BY idx ASC
	`, sequenceKey)
	if err != nil {
		return nil, fmt.Errorf("%s: query slides: %w", op, err)
	}
	defer rows.Close()

	slides := []string{}
	for rows.Next() {
		var slide string
		if err := rows.Scan(&slide); err != nil {
			return nil, fmt.Errorf("%s: scan slide: %w", op, err)
		}
		slides = append(slides, slide)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: iterate slides: %w", op, err)
	}

	return slides, nil
}

// ReadDeckNames returns the owner's deck names in creation order.
// Returns NOT_FOUND if the owner never created a deck.
func (s *Store) ReadDeckNames(ctx context.Context, owner string) ([]string, error) {
	const op = "read deck names"
	if err := deck.ValidateOwner(op, owner); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: begin tx: %w", op, err)
	}
	defer tx.Rollback()

	bucketKey, err := lookupBucket(ctx, tx, op, owner)
	if err != nil {
		return nil, err
	}

	rows, err := tx.QueryContext(ctx, `
		SELECT deck_name FROM decks
		WHERE bucket_key = ?
		ORDER BY position ASC
	`, bucketKey)
	if err != nil {
		return nil, fmt.Errorf("%s: query decks: %w", op, err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("%s: scan deck: %w", op, err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: iterate decks: %w", op, err)
	}

	return names, nil
}

// DeckSlideCount returns the number of slides in a deck.
// ok is false when the owner or the deck does not exist.
func (s *Store) DeckSlideCount(ctx context.Context, owner, name string) (n int, ok bool, err error) {
	const op = "deck slide count"
	if err := deck.ValidateDeck(op, owner, name); err != nil {
		return 0, false, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, false, fmt.Errorf("%s: begin tx: %w", op, err)
	}
	defer tx.Rollback()

	sequenceKey, err := lookupSequence(ctx, tx, op, owner, name)
	if deck.IsNotFound(err) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}

	n, err = sequenceLength(ctx, tx, sequenceKey)
	if err != nil {
		return 0, false, fmt.Errorf("%s: %w", op, err)
	}
	return n, true, nil
}

// DeckCount returns the number of decks the owner has.
// ok is false when the owner never created a deck.
func (s *Store) DeckCount(ctx context.Context, owner string) (n int, ok bool, err error) {
	const op = "deck count"
	if err := deck.ValidateOwner(op, owner); err != nil {
		return 0, false, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, false, fmt.Errorf("%s: begin tx: %w", op, err)
	}
	defer tx.Rollback()

	bucketKey, err := lookupBucket(ctx, tx, op, owner)
	if deck.IsNotFound(err) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}

	err = tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM decks WHERE bucket_key = ?
	`, bucketKey).Scan(&n)
	if err != nil {
		return 0, false, fmt.Errorf("%s: count decks: %w", op, err)
	}
	return n, true, nil
}
