package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/slidedeck/internal/deck"
)

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// CreateDeck creates the owner's bucket if needed and then the named deck.
//
// Returns created=false without touching state when the deck already exists;
// an existing slide sequence is never cleared. Fails with UNAUTHORIZED when
// caller != owner, before a transaction is opened.
func (s *Store) CreateDeck(ctx context.Context, caller, owner, name string) (created bool, err error) {
	const op = "create deck"
	callID := s.callID()

	if err := s.precheck(op, callID, caller, owner, name); err != nil {
		return false, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("%s: begin tx: %w", op, err)
	}
	defer tx.Rollback() // No-op if committed

	bucketKey := deck.BucketKey(owner)

	// Bucket: created lazily, exactly once per owner.
	result, err := tx.ExecContext(ctx, `
		INSERT INTO owners (owner_key, bucket_key)
		VALUES (?, ?)
		ON CONFLICT(owner_key) DO NOTHING
	`, owner, bucketKey)
	if err != nil {
		return false, fmt.Errorf("%s: insert bucket: %w", op, err)
	}
	bucketCreated, err := rowsInserted(result)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	var exists int
	err = tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM decks
		WHERE bucket_key = ? AND deck_name = ?
	`, bucketKey, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%s: check deck: %w", op, err)
	}
	if exists > 0 {
		s.logger.Debug("deck already exists",
			"call_id", callID,
			"owner", owner,
			"deck", name,
		)
		return false, nil
	}

	// Decks are never deleted, so the deck count is the next position.
	var position int
	err = tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM decks WHERE bucket_key = ?
	`, bucketKey).Scan(&position)
	if err != nil {
		return false, fmt.Errorf("%s: count decks: %w", op, err)
	}

	sequenceKey := deck.SequenceKey(bucketKey, name)
	_, err = tx.ExecContext(ctx, `
		INSERT INTO decks (bucket_key, deck_name, sequence_key, position)
		VALUES (?, ?, ?, ?)
	`, bucketKey, name, sequenceKey, position)
	if err != nil {
		return false, fmt.Errorf("%s: insert deck: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("%s: commit: %w", op, err)
	}

	s.logger.Info("deck created",
		"call_id", callID,
		"owner", owner,
		"deck", name,
		"bucket_created", bucketCreated,
		"position", position,
	)
	return true, nil
}

// AppendSlide appends one slide to an existing deck and returns the new
// length. Fails with NOT_FOUND when the owner or deck was never created.
func (s *Store) AppendSlide(ctx context.Context, caller, owner, name, slide string) (int, error) {
	return s.appendSlides(ctx, "append slide", caller, owner, name, []string{slide})
}

// AppendSlides appends slides to an existing deck in the given order, in one
// transaction: either every slide is appended or none is. An empty batch
// still checks its preconditions and returns the current length.
func (s *Store) AppendSlides(ctx context.Context, caller, owner, name string, slides []string) (int, error) {
	return s.appendSlides(ctx, "append slides", caller, owner, name, slides)
}

func (s *Store) appendSlides(ctx context.Context, op, caller, owner, name string, slides []string) (int, error) {
	callID := s.callID()

	if err := s.precheck(op, callID, caller, owner, name); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: begin tx: %w", op, err)
	}
	defer tx.Rollback()

	sequenceKey, err := lookupSequence(ctx, tx, op, owner, name)
	if err != nil {
		s.reject(op, callID, owner, name, err)
		return 0, err
	}

	length, err := sequenceLength(ctx, tx, sequenceKey)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if len(slides) == 0 {
		return length, nil
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO slides (sequence_key, idx, slide_id)
		VALUES (?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("%s: prepare: %w", op, err)
	}
	defer stmt.Close()

	for i, slide := range slides {
		if _, err := stmt.ExecContext(ctx, sequenceKey, length+i, slide); err != nil {
			return 0, fmt.Errorf("%s: insert slide %d: %w", op, i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: commit: %w", op, err)
	}

	newLength := length + len(slides)
	s.logger.Info("slides appended",
		"call_id", callID,
		"owner", owner,
		"deck", name,
		"appended", len(slides),
		"length", newLength,
	)
	return newLength, nil
}

// precheck validates arguments and enforces caller == owner.
// Nothing has been read or written when it fails.
func (s *Store) precheck(op, callID, caller, owner, name string) error {
	if err := deck.ValidateDeck(op, owner, name); err != nil {
		s.reject(op, callID, owner, name, err)
		return err
	}
	if err := deck.Authorize(op, caller, owner); err != nil {
		s.logger.Warn("mutation rejected",
			"call_id", callID,
			"op", op,
			"code", deck.CodeUnauthorized,
			"caller", caller,
			"owner", owner,
			"deck", name,
		)
		return err
	}
	return nil
}

func (s *Store) reject(op, callID, owner, name string, err error) {
	s.logger.Debug("mutation rejected",
		"call_id", callID,
		"op", op,
		"code", deck.CodeOf(err),
		"owner", owner,
		"deck", name,
	)
}

// lookupBucket returns the owner's bucket key, or NOT_FOUND.
func lookupBucket(ctx context.Context, q queryer, op, owner string) (string, error) {
	var bucketKey string
	err := q.QueryRowContext(ctx, `
		SELECT bucket_key FROM owners WHERE owner_key = ?
	`, owner).Scan(&bucketKey)
	if errors.Is(err, sql.ErrNoRows) {
		return "", deck.OwnerNotFound(op, owner)
	}
	if err != nil {
		return "", fmt.Errorf("%s: lookup bucket: %w", op, err)
	}
	return bucketKey, nil
}

// lookupSequence returns the sequence key of (owner, name), or NOT_FOUND
// naming whichever level is missing.
func lookupSequence(ctx context.Context, q queryer, op, owner, name string) (string, error) {
	bucketKey, err := lookupBucket(ctx, q, op, owner)
	if err != nil {
		return "", err
	}

	var sequenceKey string
	err = q.QueryRowContext(ctx, `
		SELECT sequence_key FROM decks
		WHERE bucket_key = ? AND deck_name = ?
	`, bucketKey, name).Scan(&sequenceKey)
	if errors.Is(err, sql.ErrNoRows) {
		return "", deck.DeckNotFound(op, owner, name)
	}
	if err != nil {
		return "", fmt.Errorf("%s: lookup deck: %w", op, err)
	}
	return sequenceKey, nil
}

// sequenceLength counts the slides of a sequence. Slides are never removed,
// so the count is also the next index.
func sequenceLength(ctx context.Context, q queryer, sequenceKey string) (int, error) {
	var n int
	err := q.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM slides WHERE sequence_key = ?
	`, sequenceKey).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count slides: %w", err)
	}
	return n, nil
}

func rowsInserted(result sql.Result) (bool, error) {
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}
