package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/RegisCA/ggltcg-sub001/internal/game"
)

// SnapshotStore persists match snapshots as JSONB rows. The engine never
// touches it; callers capture a snapshot and hand it over here.
type SnapshotStore struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// SnapshotInfo is one row of a snapshot listing.
type SnapshotInfo struct {
	MatchID    string
	TurnNumber int
	WinnerID   string
	SavedAt    time.Time
}

// NewSnapshotStore connects a store to PostgreSQL and verifies the
// connection.
func NewSnapshotStore(ctx context.Context, databaseURL string, logger *zap.Logger) (*SnapshotStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &SnapshotStore{pool: pool, logger: logger}, nil
}

// Init creates the snapshot table if it does not exist.
func (s *SnapshotStore) Init(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS match_snapshots (
			match_id    TEXT PRIMARY KEY,
			turn_number INT NOT NULL,
			winner_id   TEXT NOT NULL DEFAULT '',
			state       JSONB NOT NULL,
			saved_at    TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	if err != nil {
		return fmt.Errorf("create match_snapshots: %w", err)
	}
	return nil
}

// Save upserts the snapshot for its match id.
func (s *SnapshotStore) Save(ctx context.Context, snap *game.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot %s: %w", snap.MatchID, err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO match_snapshots (match_id, turn_number, winner_id, state, saved_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (match_id) DO UPDATE
		SET turn_number = EXCLUDED.turn_number,
		    winner_id   = EXCLUDED.winner_id,
		    state       = EXCLUDED.state,
		    saved_at    = now()
	`, snap.MatchID, snap.TurnNumber, snap.WinnerID, payload)
	if err != nil {
		return fmt.Errorf("save snapshot %s: %w", snap.MatchID, err)
	}
	s.logger.Debug("snapshot saved",
		zap.String("match_id", snap.MatchID),
		zap.Int("turn", snap.TurnNumber),
	)
	return nil
}

// ErrNotFound is returned by Load when no snapshot exists for the match id.
var ErrNotFound = errors.New("snapshot not found")

// Load fetches the snapshot for a match id.
func (s *SnapshotStore) Load(ctx context.Context, matchID string) (*game.Snapshot, error) {
	var payload []byte
	err := s.pool.QueryRow(ctx,
		`SELECT state FROM match_snapshots WHERE match_id = $1`, matchID,
	).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("load snapshot %s: %w", matchID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot %s: %w", matchID, err)
	}

	var snap game.Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot %s: %w", matchID, err)
	}
	return &snap, nil
}

// List returns the most recently saved snapshots, newest first.
func (s *SnapshotStore) List(ctx context.Context, limit int) ([]SnapshotInfo, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx, `
		SELECT match_id, turn_number, winner_id, saved_at
		FROM match_snapshots
		ORDER BY saved_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var infos []SnapshotInfo
	for rows.Next() {
		var info SnapshotInfo
		if err := rows.Scan(&info.MatchID, &info.TurnNumber, &info.WinnerID, &info.SavedAt); err != nil {
			return nil, fmt.Errorf("scan snapshot row: %w", err)
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	return infos, nil
}

// Delete removes the snapshot for a match id. Deleting a missing row is not
// an error.
func (s *SnapshotStore) Delete(ctx context.Context, matchID string) error {
	_, err := s.pool.Exec(ctx,
		`DELETE FROM match_snapshots WHERE match_id = $1`, matchID)
	if err != nil {
		return fmt.Errorf("delete snapshot %s: %w", matchID, err)
	}
	return nil
}

// Close releases the connection pool.
func (s *SnapshotStore) Close() {
	s.pool.Close()
}
