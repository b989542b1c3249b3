package repository

import (
	"context"
	"fmt"
	"time"
)

// Placement is one player's final position in a finished match.
type Placement struct {
	PlayerID  string
	Name      string
	Position  int
	Demoted   bool
	DemotedBy string
}

// MatchRecord is a persisted finished match.
type MatchRecord struct {
	ID         string
	Preset     string
	FinishedAt time.Time
	Placements []Placement
}

// MatchRepository persists finished matches.
//
// Schema:
//
//	CREATE TABLE matches (
//	    id          TEXT PRIMARY KEY,
//	    preset      TEXT NOT NULL,
//	    finished_at TIMESTAMPTZ NOT NULL
//	);
//	CREATE TABLE match_placements (
//	    match_id   TEXT NOT NULL REFERENCES matches(id),
//	    player_id  TEXT NOT NULL,
//	    name       TEXT NOT NULL,
//	    position   INT NOT NULL,
//	    demoted    BOOLEAN NOT NULL,
//	    demoted_by TEXT NOT NULL DEFAULT '',
//	    PRIMARY KEY (match_id, player_id)
//	);
type MatchRepository struct {
	db *DB
}

// NewMatchRepository creates a repository over the pool.
func NewMatchRepository(db *DB) *MatchRepository {
	return &MatchRepository{db: db}
}

// Save stores a finished match and its placements in one transaction.
func (r *MatchRepository) Save(ctx context.Context, rec MatchRecord) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO matches (id, preset, finished_at) VALUES ($1, $2, $3)`,
		rec.ID, rec.Preset, rec.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert match: %w", err)
	}

	for _, p := range rec.Placements {
		_, err = tx.Exec(ctx,
			`INSERT INTO match_placements (match_id, player_id, name, position, demoted, demoted_by)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			rec.ID, p.PlayerID, p.Name, p.Position, p.Demoted, p.DemotedBy,
		)
		if err != nil {
			return fmt.Errorf("failed to insert placement: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// Recent returns the most recently finished matches with their
// placements, newest first.
func (r *MatchRepository) Recent(ctx context.Context, limit int) ([]MatchRecord, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT id, preset, finished_at FROM matches ORDER BY finished_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	var records []MatchRecord
	for rows.Next() {
		var rec MatchRecord
		if err := rows.Scan(&rec.ID, &rec.Preset, &rec.FinishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read matches: %w", err)
	}

	for i := range records {
		placements, err := r.placements(ctx, records[i].ID)
		if err != nil {
			return nil, err
		}
		records[i].Placements = placements
	}
	return records, nil
}

func (r *MatchRepository) placements(ctx context.Context, matchID string) ([]Placement, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT player_id, name, position, demoted, demoted_by
		 FROM match_placements WHERE match_id = $1 ORDER BY position`,
		matchID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query placements: %w", err)
	}
	defer rows.Close()

	var out []Placement
	for rows.Next() {
		var p Placement
		if err := rows.Scan(&p.PlayerID, &p.Name, &p.Position, &p.Demoted, &p.DemotedBy); err != nil {
			return nil, fmt.Errorf("failed to scan placement: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
