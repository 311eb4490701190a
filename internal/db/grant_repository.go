package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// GrantRepository persists which abilities each owner has been granted.
// Names are returned in grant order, so a restored container iterates its
// abilities in the order they were first granted.
type GrantRepository struct {
	db *pgxpool.Pool
}

// NewGrantRepository creates a new GrantRepository.
func NewGrantRepository(db *pgxpool.Pool) *GrantRepository {
	return &GrantRepository{db: db}
}

// LoadByOwner returns the granted ability names of ownerID in grant order.
func (r *GrantRepository) LoadByOwner(ctx context.Context, ownerID uint32) ([]string, error) {
	query := `
		SELECT ability_name
		FROM ability_grants
		WHERE owner_id = $1
		ORDER BY seq
	`

	rows, err := r.db.Query(ctx, query, int64(ownerID))
	if err != nil {
		return nil, fmt.Errorf("querying grants for owner %d: %w", ownerID, err)
	}
	defer rows.Close()

	names := make([]string, 0, 8)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning grant row: %w", err)
		}
		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating grant rows: %w", err)
	}

	return names, nil
}

// Save replaces every grant of ownerID with names, in order, in one transaction.
func (r *GrantRepository) Save(ctx context.Context, ownerID uint32, names []string) error {
	return r.SaveAll(ctx, map[uint32][]string{ownerID: names})
}

// SaveAll replaces the grants of every owner in grants within a single
// transaction: either all owners are saved or none.
func (r *GrantRepository) SaveAll(ctx context.Context, grants map[uint32][]string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			slog.Error("rollback failed", "error", err)
		}
	}()

	for ownerID, names := range grants {
		if err := r.SaveTx(ctx, tx, ownerID, names); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing grants save: %w", err)
	}

	return nil
}

// SaveTx replaces the grants of ownerID inside an existing transaction.
func (r *GrantRepository) SaveTx(ctx context.Context, tx pgx.Tx, ownerID uint32, names []string) error {
	if _, err := tx.Exec(ctx, `DELETE FROM ability_grants WHERE owner_id = $1`, int64(ownerID)); err != nil {
		return fmt.Errorf("deleting existing grants for owner %d: %w", ownerID, err)
	}

	for _, name := range names {
		if _, err := tx.Exec(ctx,
			`INSERT INTO ability_grants (owner_id, ability_name) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			int64(ownerID), name,
		); err != nil {
			return fmt.Errorf("inserting grant %q for owner %d: %w", name, ownerID, err)
		}
	}

	return nil
}

// Add records one grant. Re-granting keeps the original position.
func (r *GrantRepository) Add(ctx context.Context, ownerID uint32, name string) error {
	query := `
		INSERT INTO ability_grants (owner_id, ability_name)
		VALUES ($1, $2)
		ON CONFLICT (owner_id, ability_name) DO NOTHING
	`

	if _, err := r.db.Exec(ctx, query, int64(ownerID), name); err != nil {
		return fmt.Errorf("adding grant %q for owner %d: %w", name, ownerID, err)
	}

	return nil
}

// Delete removes one grant.
func (r *GrantRepository) Delete(ctx context.Context, ownerID uint32, name string) error {
	query := `DELETE FROM ability_grants WHERE owner_id = $1 AND ability_name = $2`

	if _, err := r.db.Exec(ctx, query, int64(ownerID), name); err != nil {
		return fmt.Errorf("deleting grant %q for owner %d: %w", name, ownerID, err)
	}

	return nil
}
