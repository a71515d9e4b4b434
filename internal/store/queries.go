// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pdiddy/canopy-engine/pkg/types"
)

// signatureColumns selects the typed signature fields plus the cluster id
// of the most recent membership row, if any (R3.1). At most one live
// assignment per signature is expected; the newest row wins if the
// expectation is ever broken.
const signatureColumns = `
	s.signature_id, s.paper_id, s.fullname, s.position, s.block,
	COALESCE((SELECT m.cluster_id FROM cluster_members m
		WHERE m.signature_id = s.signature_id
		ORDER BY m.rowid DESC LIMIT 1), '')`

// SignaturesByBlock returns every signature whose block equals key, in
// storage order, each with its latest cluster assignment attached. An
// unknown block yields an empty slice, not an error: canopies are
// discovered by distinct-value scan, never declared (R3.2).
func (s *Store) SignaturesByBlock(ctx context.Context, key string) ([]types.SignatureRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+signatureColumns+` FROM signatures s WHERE s.block = ? ORDER BY s.rowid`, key)
	if err != nil {
		return nil, storageErr("querying signatures by block", err)
	}
	defer rows.Close()
	return scanSignatures(rows)
}

// SignaturesByPaperIDs returns every signature referencing any of the
// given papers, including signatures from other canopies (R3.3).
func (s *Store) SignaturesByPaperIDs(ctx context.Context, ids []string) ([]types.SignatureRecord, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + signatureColumns + ` FROM signatures s WHERE s.paper_id IN (` +
		placeholders(len(ids)) + `) ORDER BY s.rowid`

	rows, err := s.db.QueryContext(ctx, query, toArgs(ids)...)
	if err != nil {
		return nil, storageErr("querying signatures by paper ids", err)
	}
	defer rows.Close()
	return scanSignatures(rows)
}

// SignaturesByIDs returns the signatures with the given ids, in storage
// order, with latest cluster assignments attached. Unknown ids are
// silently absent from the result.
func (s *Store) SignaturesByIDs(ctx context.Context, ids []string) ([]types.SignatureRecord, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + signatureColumns + ` FROM signatures s WHERE s.signature_id IN (` +
		placeholders(len(ids)) + `) ORDER BY s.rowid`

	rows, err := s.db.QueryContext(ctx, query, toArgs(ids)...)
	if err != nil {
		return nil, storageErr("querying signatures by ids", err)
	}
	defer rows.Close()
	return scanSignatures(rows)
}

// PapersByIDs returns the papers with the given ids, each with its author
// list assembled in position order. Unknown ids are silently absent from
// the result.
func (s *Store) PapersByIDs(ctx context.Context, ids []string) ([]types.PaperRecord, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT paper_id, COALESCE(title, '') FROM papers WHERE paper_id IN (` +
		placeholders(len(ids)) + `)`
	rows, err := s.db.QueryContext(ctx, query, toArgs(ids)...)
	if err != nil {
		return nil, storageErr("querying papers", err)
	}
	defer rows.Close()

	byID := make(map[string]*types.PaperRecord)
	var order []string
	for rows.Next() {
		var p types.PaperRecord
		if err := rows.Scan(&p.PaperID, &p.Title); err != nil {
			return nil, fmt.Errorf("scanning paper row: %w", err)
		}
		if p.PaperID == "" {
			return nil, fmt.Errorf("paper row with empty id: %w", types.ErrSchemaViolation)
		}
		byID[p.PaperID] = &p
		order = append(order, p.PaperID)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("reading paper rows", err)
	}

	authQuery := `SELECT paper_id, position, author_name FROM paper_authors
		WHERE paper_id IN (` + placeholders(len(ids)) + `) ORDER BY paper_id, position`
	authRows, err := s.db.QueryContext(ctx, authQuery, toArgs(ids)...)
	if err != nil {
		return nil, storageErr("querying paper authors", err)
	}
	defer authRows.Close()

	for authRows.Next() {
		var paperID string
		var a types.AuthorRecord
		if err := authRows.Scan(&paperID, &a.Position, &a.AuthorName); err != nil {
			return nil, fmt.Errorf("scanning author row: %w", err)
		}
		p, ok := byID[paperID]
		if !ok {
			// Author row without a paper row: dangling reference.
			return nil, fmt.Errorf("author row for unknown paper %s: %w", paperID, types.ErrSchemaViolation)
		}
		p.Authors = append(p.Authors, a)
	}
	if err := authRows.Err(); err != nil {
		return nil, storageErr("reading author rows", err)
	}

	papers := make([]types.PaperRecord, 0, len(order))
	for _, id := range order {
		papers = append(papers, *byID[id])
	}
	return papers, nil
}

// DistinctBlocks returns the sorted set of block values present on any
// signature (R3.4).
func (s *Store) DistinctBlocks(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT block FROM signatures ORDER BY block`)
	if err != nil {
		return nil, storageErr("querying distinct blocks", err)
	}
	defer rows.Close()

	var blocks []string
	for rows.Next() {
		var b string
		if err := rows.Scan(&b); err != nil {
			return nil, fmt.Errorf("scanning block row: %w", err)
		}
		blocks = append(blocks, b)
	}
	return blocks, rows.Err()
}

// scanSignatures decodes rows into typed records, failing fast on rows
// that violate the record shape (prd001-storage R5.1).
func scanSignatures(rows *sql.Rows) ([]types.SignatureRecord, error) {
	var sigs []types.SignatureRecord
	for rows.Next() {
		var sig types.SignatureRecord
		if err := rows.Scan(
			&sig.SignatureID, &sig.PaperID,
			&sig.AuthorInfo.FullName, &sig.AuthorInfo.Position, &sig.AuthorInfo.Block,
			&sig.ClusterID,
		); err != nil {
			return nil, fmt.Errorf("scanning signature row: %w", err)
		}
		if sig.SignatureID == "" || sig.PaperID == "" {
			return nil, fmt.Errorf("signature row missing identity: %w", types.ErrSchemaViolation)
		}
		sigs = append(sigs, sig)
	}
	return sigs, rows.Err()
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func toArgs(ids []string) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}
