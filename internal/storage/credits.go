package storage

import (
	"database/sql"
	"errors"

	"github.com/mdolmen/autour-go/internal/apperr"
)

// GetCredits returns a user's current balance, creating a zero-balance row
// on first sight.
func (db *DB) GetCredits(userID string) (int, error) {
	var credits int
	err := db.Get(&credits, "SELECT credits FROM autour.credits WHERE user_id = $1", userID)
	if err == nil {
		return credits, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, apperr.Storage(err, "failed to read credits for %q", userID)
	}

	if _, err := db.Exec(
		"INSERT INTO autour.credits (user_id, credits, trial_granted) VALUES ($1, 0, FALSE) ON CONFLICT (user_id) DO NOTHING",
		userID,
	); err != nil {
		return 0, apperr.Storage(err, "failed to create credits row for %q", userID)
	}
	return 0, nil
}

// HasCredits reports whether the user has at least one credit available.
func (db *DB) HasCredits(userID string) (bool, error) {
	credits, err := db.GetCredits(userID)
	if err != nil {
		return false, err
	}
	return credits > 0, nil
}

// DecCredits atomically decrements a user's balance by one, refusing to go
// negative. Returns false (no error) if the user had no credits to spend.
func (db *DB) DecCredits(userID string) (bool, error) {
	res, err := db.Exec(
		"UPDATE autour.credits SET credits = credits - 1 WHERE user_id = $1 AND credits > 0",
		userID,
	)
	if err != nil {
		return false, apperr.Storage(err, "failed to decrement credits for %q", userID)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, apperr.Storage(err, "failed to confirm credit decrement for %q", userID)
	}
	return n == 1, nil
}

// IncCredits atomically adds n credits to a user's balance, creating the
// row if needed.
func (db *DB) IncCredits(userID string, n int) error {
	_, err := db.Exec(
		`INSERT INTO autour.credits (user_id, credits, trial_granted) VALUES ($1, $2, FALSE)
		 ON CONFLICT (user_id) DO UPDATE SET credits = autour.credits.credits + $2`,
		userID, n,
	)
	if err != nil {
		return apperr.Storage(err, "failed to add %d credits for %q", n, userID)
	}
	return nil
}

// SetTrialCredits grants the one-time trial allotment, returning false if
// the user already claimed it.
func (db *DB) SetTrialCredits(userID string, n int) (bool, error) {
	res, err := db.Exec(
		`INSERT INTO autour.credits (user_id, credits, trial_granted) VALUES ($1, $2, TRUE)
		 ON CONFLICT (user_id) DO UPDATE SET credits = autour.credits.credits + $2, trial_granted = TRUE
		 WHERE autour.credits.trial_granted = FALSE`,
		userID, n,
	)
	if err != nil {
		return false, apperr.Storage(err, "failed to grant trial credits for %q", userID)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, apperr.Storage(err, "failed to confirm trial grant for %q", userID)
	}
	return rows == 1, nil
}

// InsertPurchase records a completed purchase and credits the buyer.
func (db *DB) InsertPurchase(userID string, credits int) error {
	tx, err := db.Beginx()
	if err != nil {
		return apperr.Storage(err, "failed to start purchase transaction")
	}

	if _, err := tx.Exec("INSERT INTO autour.purchases (user_id, credits) VALUES ($1, $2)", userID, credits); err != nil {
		tx.Rollback()
		return apperr.Storage(err, "failed to record purchase for %q", userID)
	}

	if _, err := tx.Exec(
		`INSERT INTO autour.credits (user_id, credits, trial_granted) VALUES ($1, $2, FALSE)
		 ON CONFLICT (user_id) DO UPDATE SET credits = autour.credits.credits + $2`,
		userID, credits,
	); err != nil {
		tx.Rollback()
		return apperr.Storage(err, "failed to credit purchase for %q", userID)
	}

	if err := tx.Commit(); err != nil {
		return apperr.Storage(err, "failed to commit purchase for %q", userID)
	}
	return nil
}
