package players

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"

	"hoopsdb/lib/scrapers/bbref"
	"hoopsdb/lib/textutil"

	"go.opentelemetry.io/otel/codes"
)

// NameSimilarityWarning is the threshold under which a scraped name no
// longer looks like the stored one, usually a sign the player id is
// pointing at the wrong page.
const NameSimilarityWarning = 0.85

type FieldComparison struct {
	Field   string
	Stored  string
	Scraped string
	Match   bool
}

type SpotCheckResult struct {
	PlayerId       string
	Stored         Record
	Scraped        Record
	NameSimilarity float64
	Fields         []FieldComparison
}

// SpotCheck scrapes playerId's live profile and compares it field by
// field against the stored row. It never writes anything back.
func (s Store) SpotCheck(ctx context.Context, client *bbref.Client, playerId string) (SpotCheckResult, error) {
	ctx, span := tracer.Start(ctx, "SpotCheck")
	defer span.End()

	fail := func(err error) (SpotCheckResult, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, "spot check failed")
		return SpotCheckResult{}, err
	}

	stored, err := s.Player(ctx, playerId)
	if err != nil {
		return fail(fmt.Errorf("load stored player: %w", err))
	}
	profile, err := client.Player(ctx, playerId)
	if err != nil {
		return fail(fmt.Errorf("scrape player: %w", err))
	}
	scraped := FromProfile(profile)

	res := SpotCheckResult{
		PlayerId:       playerId,
		Stored:         stored,
		Scraped:        scraped,
		NameSimilarity: textutil.NameSimilarity(stored.FullName, scraped.FullName),
		Fields:         compareRecords(stored, scraped),
	}

	if res.NameSimilarity < NameSimilarityWarning {
		slog.WarnContext(
			ctx, "scraped name does not look like the stored one",
			"player", playerId,
			"stored", stored.FullName,
			"scraped", scraped.FullName,
			"similarity", res.NameSimilarity,
		)
	}
	return res, nil
}

func formatNullString(v sql.NullString) string {
	if !v.Valid {
		return "NULL"
	}
	return v.String
}

func formatNullInt(v sql.NullInt64) string {
	if !v.Valid {
		return "NULL"
	}
	return strconv.FormatInt(v.Int64, 10)
}

func compareRecords(stored, scraped Record) []FieldComparison {
	compare := func(field, stored, scraped string) FieldComparison {
		return FieldComparison{
			Field:   field,
			Stored:  stored,
			Scraped: scraped,
			Match:   stored == scraped,
		}
	}
	return []FieldComparison{
		compare("shoots", formatNullString(stored.Shoots), formatNullString(scraped.Shoots)),
		compare("draft_round", formatNullInt(stored.DraftRound), formatNullInt(scraped.DraftRound)),
		compare("draft_pick", formatNullInt(stored.DraftPick), formatNullInt(scraped.DraftPick)),
		compare("draft_team", formatNullString(stored.DraftTeam), formatNullString(scraped.DraftTeam)),
		compare("draft_year", formatNullInt(stored.DraftYear), formatNullInt(scraped.DraftYear)),
	}
}
