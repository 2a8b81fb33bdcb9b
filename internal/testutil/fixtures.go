package testutil

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/ledger-replay/internal/domain"
)

// Account builds an account with the given decimal balances.
func Account(t *testing.T, client domain.ClientID, available, held string, locked bool) domain.Account {
	t.Helper()

	a, err := decimal.NewFromString(available)
	if err != nil {
		t.Fatalf("parse available %q: %v", available, err)
	}
	h, err := decimal.NewFromString(held)
	if err != nil {
		t.Fatalf("parse held %q: %v", held, err)
	}
	return domain.Account{Client: client, Available: a, Held: h, Locked: locked}
}

func CountSnapshots(t *testing.T, db *sql.DB, runID uuid.UUID) int {
	t.Helper()

	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM account_snapshots WHERE run_id = $1`, runID).Scan(&count)
	if err != nil {
		t.Fatalf("count snapshots for run %s: %v", runID, err)
	}
	return count
}
