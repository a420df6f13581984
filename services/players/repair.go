package players

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"hoopsdb/lib/nba"

	"go.opentelemetry.io/otel/codes"
)

// RoundFix records one draft round capped by Repair. The new value is
// always nba.MaxDraftRound.
type RoundFix struct {
	PlayerId string
	FullName string
	Old      int64
}

// ShootsFix records one shooting hand canonicalized by Repair.
type ShootsFix struct {
	PlayerId string
	FullName string
	Old      string
	New      string
}

// RepairResult carries every transformation Repair applied, with the
// literal before/after values for reporting.
type RepairResult struct {
	RoundFixes   []RoundFix
	RoundsCapped int64
	ShootsFixes  []ShootsFix
	ShootsFixed  int64
	// players with no draft round on record. undrafted players and
	// players whose draft was simply never ingested are
	// indistinguishable here.
	Undrafted int64
}

// Repair canonicalizes the whole players table in one transaction.
// Draft rounds above nba.MaxDraftRound are capped and malformed
// shooting hand values are collapsed onto a canonical hand with the
// same left-priority rule the scraper's normalizer applies, so both
// paths converge on identical values. One pass reaches the fixed
// point, a second run reports zero fixes.
func (s Store) Repair(ctx context.Context) (RepairResult, error) {
	ctx, span := tracer.Start(ctx, "Repair")
	defer span.End()

	fail := func(err error) (RepairResult, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repair failed")
		return RepairResult{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fail(fmt.Errorf("begin repair: %w", err))
	}
	defer tx.Rollback()

	var res RepairResult

	// step 1: cap draft rounds that exceed the modern two round draft
	res.RoundFixes, err = collectRoundFixes(ctx, tx)
	if err != nil {
		return fail(err)
	}
	for _, fix := range res.RoundFixes {
		slog.InfoContext(
			ctx, "capping draft round",
			"player", fix.PlayerId,
			"name", fix.FullName,
			"old", fix.Old,
			"new", nba.MaxDraftRound,
		)
	}
	capped, err := tx.ExecContext(ctx, `
		UPDATE players SET draft_round = ? WHERE draft_round > ?`,
		nba.MaxDraftRound, nba.MaxDraftRound,
	)
	if err != nil {
		return fail(fmt.Errorf("cap draft rounds: %w", err))
	}
	res.RoundsCapped, err = capped.RowsAffected()
	if err != nil {
		return fail(err)
	}
	slog.InfoContext(ctx, "draft rounds capped", "count", res.RoundsCapped)

	// step 2: collapse malformed shooting hands. LIKE is
	// case-insensitive for ascii in sqlite, matching the normalizer,
	// and the two updates target disjoint sets ("left" always wins)
	// so their order doesn't matter.
	res.ShootsFixes, err = collectShootsFixes(ctx, tx)
	if err != nil {
		return fail(err)
	}
	for _, fix := range res.ShootsFixes {
		slog.InfoContext(
			ctx, "normalizing shooting hand",
			"player", fix.PlayerId,
			"name", fix.FullName,
			"old", fix.Old,
			"new", fix.New,
		)
	}
	left, err := tx.ExecContext(ctx, `
		UPDATE players SET shoots = ?
		WHERE shoots LIKE '%left%' AND shoots <> ?`,
		nba.HandLeft, nba.HandLeft,
	)
	if err != nil {
		return fail(fmt.Errorf("normalize left hand: %w", err))
	}
	leftFixed, err := left.RowsAffected()
	if err != nil {
		return fail(err)
	}
	right, err := tx.ExecContext(ctx, `
		UPDATE players SET shoots = ?
		WHERE shoots LIKE '%right%' AND shoots NOT LIKE '%left%' AND shoots <> ?`,
		nba.HandRight, nba.HandRight,
	)
	if err != nil {
		return fail(fmt.Errorf("normalize right hand: %w", err))
	}
	rightFixed, err := right.RowsAffected()
	if err != nil {
		return fail(err)
	}
	res.ShootsFixed = leftFixed + rightFixed
	slog.InfoContext(ctx, "shooting hands normalized", "count", res.ShootsFixed)

	// step 3: count players with no draft round on record. nothing to
	// repair, but worth surfacing next to the fixes.
	err = tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM players WHERE draft_round IS NULL`,
	).Scan(&res.Undrafted)
	if err != nil {
		return fail(fmt.Errorf("count undrafted: %w", err))
	}
	slog.InfoContext(ctx, "players without a draft round", "count", res.Undrafted)

	err = tx.Commit()
	if err != nil {
		return fail(fmt.Errorf("commit repair: %w", err))
	}
	return res, nil
}

func collectRoundFixes(ctx context.Context, tx *sql.Tx) ([]RoundFix, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT player_id, full_name, draft_round FROM players
		WHERE draft_round > ?`,
		nba.MaxDraftRound,
	)
	if err != nil {
		return nil, fmt.Errorf("select invalid draft rounds: %w", err)
	}
	defer rows.Close()

	var fixes []RoundFix
	for rows.Next() {
		var fix RoundFix
		err := rows.Scan(&fix.PlayerId, &fix.FullName, &fix.Old)
		if err != nil {
			return nil, err
		}
		fixes = append(fixes, fix)
	}
	return fixes, rows.Err()
}

func collectShootsFixes(ctx context.Context, tx *sql.Tx) ([]ShootsFix, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT player_id, full_name, shoots FROM players
		WHERE (shoots LIKE '%left%' OR shoots LIKE '%right%')
		AND shoots NOT IN (?, ?)`,
		nba.HandLeft, nba.HandRight,
	)
	if err != nil {
		return nil, fmt.Errorf("select malformed shooting hands: %w", err)
	}
	defer rows.Close()

	var fixes []ShootsFix
	for rows.Next() {
		var fix ShootsFix
		err := rows.Scan(&fix.PlayerId, &fix.FullName, &fix.Old)
		if err != nil {
			return nil, err
		}
		fix.New = nba.NormalizeShoots(fix.Old)
		fixes = append(fixes, fix)
	}
	return fixes, rows.Err()
}
