// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pdiddy/canopy-engine/pkg/types"
)

// InsertMembershipRows appends membership rows as-is, with no uniqueness
// enforcement. Prefer ReplaceCanopyRun for committing a clustering run;
// this exists for the raw append contract (R4.1).
func (s *Store) InsertMembershipRows(ctx context.Context, rows []types.ClusterMembership) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("beginning membership insert", err)
	}
	defer tx.Rollback()

	if err := insertRows(ctx, tx, rows); err != nil {
		return err
	}
	return tx.Commit()
}

// ReplaceCanopyRun atomically replaces all membership rows for the given
// canopy with the rows of one clustering run (R4.2). Delete-then-insert
// in a single transaction makes re-running a canopy idempotent and lets
// the latest prediction group supersede earlier ones; a crash mid-commit
// leaves the previous run's rows intact.
func (s *Store) ReplaceCanopyRun(ctx context.Context, canopy string, rows []types.ClusterMembership) error {
	for _, r := range rows {
		if r.Canopy != canopy {
			return fmt.Errorf("membership row for canopy %q in replace of %q: %w",
				r.Canopy, canopy, types.ErrInvariantViolation)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("beginning canopy replace", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM cluster_members WHERE canopy = ?`, canopy); err != nil {
		return storageErr("deleting prior canopy rows", err)
	}
	if err := insertRows(ctx, tx, rows); err != nil {
		return err
	}
	return tx.Commit()
}

func insertRows(ctx context.Context, tx *sql.Tx, rows []types.ClusterMembership) error {
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO cluster_members (prediction_group, cluster_id, signature_id, canopy)
		 VALUES (?, ?, ?, ?)`)
	if err != nil {
		return storageErr("preparing membership insert", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		if r.ClusterID == "" || r.SignatureID == "" {
			return fmt.Errorf("membership row missing identity: %w", types.ErrSchemaViolation)
		}
		if _, err := stmt.ExecContext(ctx,
			r.PredictionGroup, r.ClusterID, r.SignatureID, r.Canopy); err != nil {
			return storageErr("inserting membership row", err)
		}
	}
	return nil
}

// MembershipByClusterID returns all membership rows for a cluster id in
// insertion order. No rows is not an error here; cluster lookup maps the
// empty result to its not-found contract.
func (s *Store) MembershipByClusterID(ctx context.Context, id string) ([]types.ClusterMembership, error) {
	return s.membershipWhere(ctx, `cluster_id = ?`, id)
}

// MembershipByCanopy returns all membership rows tagged with the canopy,
// in insertion order.
func (s *Store) MembershipByCanopy(ctx context.Context, canopy string) ([]types.ClusterMembership, error) {
	return s.membershipWhere(ctx, `canopy = ?`, canopy)
}

func (s *Store) membershipWhere(ctx context.Context, cond string, arg any) ([]types.ClusterMembership, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT prediction_group, cluster_id, signature_id, canopy
		 FROM cluster_members WHERE `+cond+` ORDER BY rowid`, arg)
	if err != nil {
		return nil, storageErr("querying membership rows", err)
	}
	defer rows.Close()

	var out []types.ClusterMembership
	for rows.Next() {
		var m types.ClusterMembership
		if err := rows.Scan(&m.PredictionGroup, &m.ClusterID, &m.SignatureID, &m.Canopy); err != nil {
			return nil, fmt.Errorf("scanning membership row: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
