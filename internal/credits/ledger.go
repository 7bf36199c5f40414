// Package credits implements the per-user credit ledger: balance reads,
// trial grants, purchase-driven increments, and the decrement on a
// successful query.
package credits

import "github.com/mdolmen/autour-go/internal/storage"

// trialCredits is the fixed one-time grant for a new user.
const trialCredits = 5

// productCredits maps an iOS in-app-purchase product id to the number of
// credits it buys. Unknown product ids are rejected by the caller.
var productCredits = map[string]int{
	"com.autour.credits.20":  20,
	"com.autour.credits.50":  50,
	"com.autour.credits.200": 200,
}

// Ledger wraps the store's credit operations.
type Ledger struct {
	DB *storage.DB
}

func NewLedger(db *storage.DB) *Ledger {
	return &Ledger{DB: db}
}

// HasCredits reports whether the user can afford one more query.
func (l *Ledger) HasCredits(userID string) (bool, error) {
	return l.DB.HasCredits(userID)
}

// Get returns the user's current balance.
func (l *Ledger) Get(userID string) (int, error) {
	return l.DB.GetCredits(userID)
}

// Dec spends one credit. Failures here are logged by the caller but never
// surfaced to the end user: at worst a query goes uncharged.
func (l *Ledger) Dec(userID string) error {
	_, err := l.DB.DecCredits(userID)
	return err
}

// Inc adds credits outside of the purchase flow (unused by the HTTP surface
// today, kept for parity with the store's primitive).
func (l *Ledger) Inc(userID string, n int) error {
	return l.DB.IncCredits(userID, n)
}

// GrantTrial grants the fixed trial allotment once per user. Returns the
// balance after the call regardless of whether this call was the one that
// granted it.
func (l *Ledger) GrantTrial(userID string) (int, error) {
	if _, err := l.DB.SetTrialCredits(userID, trialCredits); err != nil {
		return 0, err
	}
	return l.DB.GetCredits(userID)
}

// CreditsForProduct resolves a product id to its credit amount. ok is false
// for an unrecognized product id.
func CreditsForProduct(productID string) (int, bool) {
	n, ok := productCredits[productID]
	return n, ok
}

// RecordPurchase appends a purchase row and credits the buyer's balance.
func (l *Ledger) RecordPurchase(userID string, credits int) error {
	return l.DB.InsertPurchase(userID, credits)
}
