// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/canopy-engine/pkg/types"
)

// CorpusFile is the on-disk shape of one corpus YAML file: papers plus
// the signatures that reference them. Per prd001-storage R2.3.
type CorpusFile struct {
	Papers     []types.PaperRecord     `json:"papers" yaml:"papers"`
	Signatures []types.SignatureRecord `json:"signatures" yaml:"signatures"`
}

// ImportSummary holds counts from a corpus import run (R2.5).
type ImportSummary struct {
	Imported int // files imported
	Failed   int // files that failed to parse or load
	Papers   int
	Sigs     int
	Warnings int // signatures whose position matches no author
}

// Total returns the number of files processed.
func (s ImportSummary) Total() int {
	return s.Imported + s.Failed
}

// ImportCorpus reads corpus YAML files from dataDir/corpus/ and loads
// papers and signatures into the database. Each file loads in its own
// transaction; a bad file is reported and skipped, not fatal (R2.4).
// Signatures whose position matches no author on their paper are
// imported but counted as warnings: the read path skips them from
// name-variant displays rather than failing.
func (s *Store) ImportCorpus(ctx context.Context, w io.Writer) (ImportSummary, error) {
	dir := filepath.Join(s.dataDir, corpusDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("reading corpus directory %s: %w", dir, err)
	}

	var summary ImportSummary

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(w, "failed   %s: %v\n", entry.Name(), err)
			summary.Failed++
			continue
		}

		var corpus CorpusFile
		if err := yaml.Unmarshal(data, &corpus); err != nil {
			fmt.Fprintf(w, "failed   %s: parse error: %v\n", entry.Name(), err)
			summary.Failed++
			continue
		}

		warnings, err := s.loadCorpus(ctx, &corpus)
		if err != nil {
			fmt.Fprintf(w, "failed   %s: %v\n", entry.Name(), err)
			summary.Failed++
			continue
		}

		for _, warning := range warnings {
			fmt.Fprintf(w, "warning  %s: %s\n", entry.Name(), warning)
		}

		fmt.Fprintf(w, "imported %s (%d papers, %d signatures)\n",
			entry.Name(), len(corpus.Papers), len(corpus.Signatures))
		summary.Imported++
		summary.Papers += len(corpus.Papers)
		summary.Sigs += len(corpus.Signatures)
		summary.Warnings += len(warnings)
	}

	fmt.Fprintf(w, "\nimported: %d files (%d papers, %d signatures), failed: %d, warnings: %d\n",
		summary.Imported, summary.Papers, summary.Sigs, summary.Failed, summary.Warnings)

	return summary, nil
}

func (s *Store) loadCorpus(ctx context.Context, corpus *CorpusFile) ([]string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, storageErr("beginning corpus load", err)
	}
	defer tx.Rollback()

	positions := make(map[string]map[int]bool)

	for _, p := range corpus.Papers {
		if p.PaperID == "" {
			return nil, fmt.Errorf("paper without id: %w", types.ErrSchemaViolation)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO papers (paper_id, title) VALUES (?, ?)
			 ON CONFLICT(paper_id) DO UPDATE SET title=excluded.title`,
			p.PaperID, p.Title); err != nil {
			return nil, storageErr("upserting paper", err)
		}

		if _, err := tx.ExecContext(ctx,
			`DELETE FROM paper_authors WHERE paper_id = ?`, p.PaperID); err != nil {
			return nil, storageErr("clearing paper authors", err)
		}
		positions[p.PaperID] = make(map[int]bool)
		for _, a := range p.Authors {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO paper_authors (paper_id, position, author_name) VALUES (?, ?, ?)`,
				p.PaperID, a.Position, a.AuthorName); err != nil {
				return nil, storageErr("inserting paper author", err)
			}
			positions[p.PaperID][a.Position] = true
		}
	}

	var warnings []string
	for _, sig := range corpus.Signatures {
		if sig.SignatureID == "" || sig.PaperID == "" {
			return nil, fmt.Errorf("signature without identity: %w", types.ErrSchemaViolation)
		}
		if known, ok := positions[sig.PaperID]; ok && !known[sig.AuthorInfo.Position] {
			warnings = append(warnings, fmt.Sprintf(
				"signature %s: position %d matches no author on paper %s",
				sig.SignatureID, sig.AuthorInfo.Position, sig.PaperID))
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO signatures (signature_id, paper_id, fullname, position, block)
			 VALUES (?, ?, ?, ?, ?)
			 ON CONFLICT(signature_id) DO UPDATE SET
				paper_id=excluded.paper_id, fullname=excluded.fullname,
				position=excluded.position, block=excluded.block`,
			sig.SignatureID, sig.PaperID,
			sig.AuthorInfo.FullName, sig.AuthorInfo.Position, sig.AuthorInfo.Block); err != nil {
			return nil, storageErr("upserting signature", err)
		}
	}

	return warnings, tx.Commit()
}
