package players

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"hoopsdb/lib/scrapers/bbref"
	"hoopsdb/lib/sqliteutil"
	"hoopsdb/services/players/db"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("services/players")

var ErrNotFound = fmt.Errorf("player not found")

// Record mirrors one row of the players table.
type Record struct {
	PlayerId   string
	FullName   string
	Shoots     sql.NullString
	DraftRound sql.NullInt64
	DraftPick  sql.NullInt64
	DraftTeam  sql.NullString
	DraftYear  sql.NullInt64
}

// FromProfile converts a freshly scraped profile into a storable record.
func FromProfile(p bbref.Profile) Record {
	return Record{
		PlayerId:   p.PlayerId,
		FullName:   p.Name,
		Shoots:     p.Shoots,
		DraftRound: p.DraftRound,
		DraftPick:  p.DraftPick,
		DraftTeam:  p.DraftTeam,
		DraftYear:  p.DraftYear,
	}
}

type Store struct {
	db *sql.DB
}

func NewStore(database *sql.DB) Store {
	return Store{db: database}
}

// Open opens the configured players database, applies the schema and
// wraps it in a Store. Stores are meant to live for one command
// invocation, close them when done.
func Open(config sqliteutil.Config) (Store, error) {
	database, err := config.Open(db.Schema)
	if err != nil {
		return Store{}, fmt.Errorf("open players db: %w", err)
	}
	return NewStore(database), nil
}

func (s Store) Close() error {
	return s.db.Close()
}

func (s Store) Player(ctx context.Context, playerId string) (Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT player_id, full_name, shoots, draft_round, draft_pick, draft_team, draft_year
		FROM players WHERE player_id = ?`,
		playerId,
	)

	var rec Record
	err := row.Scan(
		&rec.PlayerId,
		&rec.FullName,
		&rec.Shoots,
		&rec.DraftRound,
		&rec.DraftPick,
		&rec.DraftTeam,
		&rec.DraftYear,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}

func (s Store) Upsert(ctx context.Context, rec Record) error {
	if rec.PlayerId == "" {
		return fmt.Errorf("record has no player id")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO players (player_id, full_name, shoots, draft_round, draft_pick, draft_team, draft_year)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (player_id) DO UPDATE SET
			full_name = excluded.full_name,
			shoots = excluded.shoots,
			draft_round = excluded.draft_round,
			draft_pick = excluded.draft_pick,
			draft_team = excluded.draft_team,
			draft_year = excluded.draft_year`,
		rec.PlayerId,
		rec.FullName,
		rec.Shoots,
		rec.DraftRound,
		rec.DraftPick,
		rec.DraftTeam,
		rec.DraftYear,
	)
	return err
}
