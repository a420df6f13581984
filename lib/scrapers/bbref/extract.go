package bbref

import (
	"context"
	"database/sql"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"hoopsdb/lib/htmlutil"
	"hoopsdb/lib/nba"

	"github.com/PuerkitoBio/goquery"
)

// Profile is the biographical slice of a player page. Nullable fields
// stay invalid when the page doesn't state them.
type Profile struct {
	PlayerId   string
	Name       string
	Shoots     sql.NullString
	DraftYear  sql.NullInt64
	DraftRound sql.NullInt64
	DraftPick  sql.NullInt64
	DraftTeam  sql.NullString
}

var (
	shootsRegex     = regexp.MustCompile(`Shoots:\s*(\S+)`)
	draftTeamRegex  = regexp.MustCompile(`Draft:\s*(.+?),`)
	draftRoundRegex = regexp.MustCompile(`(\d+)\w*\s*round`)
	draftPickRegex  = regexp.MustCompile(`(\d+)\w*\s*pick`)
	draftYearRegex  = regexp.MustCompile(`(\d{4})\s*NBA\s*Draft`)
)

// ExtractProfile pulls the name, shooting hand and draft line out of a
// player page. A missing field is never an error, a page without the
// heading or meta section just comes back mostly empty. When the meta
// section repeats a marker the last occurrence wins.
func ExtractProfile(ctx context.Context, doc *goquery.Document, playerId string) Profile {
	profile := Profile{PlayerId: playerId}

	heading := doc.Find("h1").First()
	if heading.Length() > 0 {
		span := heading.Find("span").First()
		if span.Length() > 0 {
			profile.Name = htmlutil.CompactText(span)
		} else {
			profile.Name = htmlutil.CompactText(heading)
		}
	}

	doc.Find("div#meta p").Each(func(_ int, paragraph *goquery.Selection) {
		text := htmlutil.CompactText(paragraph)
		if strings.Contains(text, "Shoots:") {
			extractShoots(ctx, text, &profile)
		}
		if strings.Contains(text, "Draft:") {
			extractDraft(ctx, text, &profile)
		}
	})

	return profile
}

func extractShoots(ctx context.Context, text string, profile *Profile) {
	groups := shootsRegex.FindStringSubmatch(text)
	if len(groups) < 2 {
		return
	}
	raw := strings.TrimSpace(groups[1])
	hand := nba.NormalizeShoots(raw)
	profile.Shoots = sql.NullString{String: hand, Valid: true}

	if hand != raw {
		slog.InfoContext(
			ctx, "normalized shooting hand",
			"player", profile.PlayerId,
			"raw", raw,
			"normalized", hand,
		)
	} else {
		slog.DebugContext(
			ctx, "extracted shooting hand",
			"player", profile.PlayerId,
			"shoots", hand,
		)
	}
}

// The four draft patterns are extracted independently, one failing to
// match never blocks the others and a field is only overwritten on a
// match. "Undrafted" overrides everything, including values picked up
// from earlier draft blocks on the same page.
func extractDraft(ctx context.Context, text string, profile *Profile) {
	if strings.Contains(text, "Undrafted") || strings.Contains(text, "undrafted") {
		slog.InfoContext(
			ctx, "player went undrafted, clearing draft fields",
			"player", profile.PlayerId,
		)
		profile.DraftYear = sql.NullInt64{}
		profile.DraftRound = sql.NullInt64{}
		profile.DraftPick = sql.NullInt64{}
		profile.DraftTeam = sql.NullString{}
		return
	}

	if groups := draftTeamRegex.FindStringSubmatch(text); len(groups) >= 2 {
		team := strings.TrimSpace(groups[1])
		profile.DraftTeam = sql.NullString{String: team, Valid: true}
		slog.DebugContext(
			ctx, "extracted draft team",
			"player", profile.PlayerId,
			"team", team,
		)
	}

	if groups := draftRoundRegex.FindStringSubmatch(text); len(groups) >= 2 {
		round, ok := nba.NormalizeDraftRound(groups[1])
		if ok {
			raw, _ := strconv.ParseInt(groups[1], 10, 64)
			if raw != round {
				slog.InfoContext(
					ctx, "capped draft round",
					"player", profile.PlayerId,
					"raw", raw,
					"capped", round,
				)
			} else {
				slog.DebugContext(
					ctx, "extracted draft round",
					"player", profile.PlayerId,
					"round", round,
				)
			}
			profile.DraftRound = sql.NullInt64{Int64: round, Valid: true}
		}
	}

	if groups := draftPickRegex.FindStringSubmatch(text); len(groups) >= 2 {
		pick, err := strconv.ParseInt(groups[1], 10, 64)
		if err == nil {
			profile.DraftPick = sql.NullInt64{Int64: pick, Valid: true}
			slog.DebugContext(
				ctx, "extracted draft pick",
				"player", profile.PlayerId,
				"pick", pick,
			)
		}
	}

	if groups := draftYearRegex.FindStringSubmatch(text); len(groups) >= 2 {
		year, err := strconv.ParseInt(groups[1], 10, 64)
		if err == nil {
			profile.DraftYear = sql.NullInt64{Int64: year, Valid: true}
			slog.DebugContext(
				ctx, "extracted draft year",
				"player", profile.PlayerId,
				"year", year,
			)
		}
	}
}
