package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/josh-kwaku/ledger-replay/internal/domain"
)

// ErrSnapshotExists is returned when a run id has already been exported.
var ErrSnapshotExists = errors.New("snapshot already exported for run")

const uniqueViolation = "23505"

const snapshotColumns = `run_id, client_id, available, held, total, locked, created_at`

type scanner interface {
	Scan(dest ...any) error
}

type SnapshotRepository struct {
	db *sql.DB
}

func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Save writes every account of one run inside a single transaction; either
// all rows land or none do.
func (r *SnapshotRepository) Save(ctx context.Context, runID uuid.UUID, accounts []domain.Account, at time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("Save: begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO account_snapshots (`+snapshotColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
	)
	if err != nil {
		return fmt.Errorf("Save: prepare: %w", err)
	}
	defer stmt.Close()

	for _, a := range accounts {
		_, err := stmt.ExecContext(ctx,
			runID, int32(a.Client), a.Available, a.Held, a.Total(), a.Locked, at,
		)
		if err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
				return fmt.Errorf("Save: run %s: %w", runID, ErrSnapshotExists)
			}
			return fmt.Errorf("Save: client %d: %w", a.Client, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("Save: commit: %w", err)
	}
	return nil
}

func (r *SnapshotRepository) GetByRunID(ctx context.Context, runID uuid.UUID) ([]domain.AccountSnapshot, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+snapshotColumns+` FROM account_snapshots
		WHERE run_id = $1 ORDER BY client_id`, runID,
	)
	if err != nil {
		return nil, fmt.Errorf("GetByRunID: %w", err)
	}
	defer rows.Close()

	var snaps []domain.AccountSnapshot
	for rows.Next() {
		s, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("GetByRunID: scan: %w", err)
		}
		snaps = append(snaps, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetByRunID: rows: %w", err)
	}
	return snaps, nil
}

func scanSnapshot(s scanner) (*domain.AccountSnapshot, error) {
	var (
		snap   domain.AccountSnapshot
		client int32
	)
	err := s.Scan(
		&snap.RunID, &client,
		&snap.Available, &snap.Held, &snap.Total,
		&snap.Locked, &snap.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	snap.Client = domain.ClientID(client)
	return &snap, nil
}
