package players

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"hoopsdb/lib/nba"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Bucket is one value of a column's distribution. Null marks the
// bucket of rows where the column has no value.
type Bucket struct {
	Value string
	Null  bool
	Count int64
}

// ShootsDistribution returns how many players fall on each recorded
// shooting hand, including a bucket for the players without one.
func (s Store) ShootsDistribution(ctx context.Context) ([]Bucket, error) {
	ctx, span := tracer.Start(ctx, "ShootsDistribution")
	defer span.End()

	rows, err := s.db.QueryContext(ctx, `
		SELECT shoots, COUNT(*) FROM players
		GROUP BY shoots ORDER BY shoots`,
	)
	if err != nil {
		return nil, fmt.Errorf("shoots distribution: %w", err)
	}
	defer rows.Close()

	var out []Bucket
	for rows.Next() {
		var value sql.NullString
		var count int64
		err := rows.Scan(&value, &count)
		if err != nil {
			return nil, err
		}
		out = append(out, Bucket{Value: value.String, Null: !value.Valid, Count: count})
	}
	return out, rows.Err()
}

// DraftRoundDistribution returns how many players were drafted in each
// round, including a bucket for the players without one.
func (s Store) DraftRoundDistribution(ctx context.Context) ([]Bucket, error) {
	ctx, span := tracer.Start(ctx, "DraftRoundDistribution")
	defer span.End()

	rows, err := s.db.QueryContext(ctx, `
		SELECT draft_round, COUNT(*) FROM players
		GROUP BY draft_round ORDER BY draft_round`,
	)
	if err != nil {
		return nil, fmt.Errorf("draft round distribution: %w", err)
	}
	defer rows.Close()

	var out []Bucket
	for rows.Next() {
		var value sql.NullInt64
		var count int64
		err := rows.Scan(&value, &count)
		if err != nil {
			return nil, err
		}
		b := Bucket{Null: !value.Valid, Count: count}
		if value.Valid {
			b.Value = strconv.FormatInt(value.Int64, 10)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func bucketLabel(b Bucket, nullLabel string) string {
	if b.Null {
		return nullLabel
	}
	return b.Value
}

// RenderDistributions renders the verification report. The report is
// purely informational, reading it is the verification.
func RenderDistributions(shoots, rounds []Bucket) string {
	var out strings.Builder

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetTitle("shoots distribution")
	t.AppendHeader(table.Row{"Shoots", "Players"})
	for _, b := range shoots {
		t.AppendRow(table.Row{bucketLabel(b, "NULL"), b.Count})
	}
	out.WriteString(t.Render())
	out.WriteString("\n\n")

	t = table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetTitle("draft round distribution")
	t.AppendHeader(table.Row{"Round", "Players"})
	for _, b := range rounds {
		t.AppendRow(table.Row{bucketLabel(b, "NULL (undrafted)"), b.Count})
	}
	out.WriteString(t.Render())
	out.WriteString("\n")

	return out.String()
}

// RenderRepairResult renders every fix Repair applied with its literal
// before and after values.
func RenderRepairResult(res RepairResult) string {
	var out strings.Builder

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetTitle(fmt.Sprintf("draft rounds capped: %d", res.RoundsCapped))
	t.AppendHeader(table.Row{"Player", "Name", "Old", "New"})
	for _, fix := range res.RoundFixes {
		t.AppendRow(table.Row{fix.PlayerId, fix.FullName, fix.Old, nba.MaxDraftRound})
	}
	out.WriteString(t.Render())
	out.WriteString("\n\n")

	t = table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetTitle(fmt.Sprintf("shooting hands normalized: %d", res.ShootsFixed))
	t.AppendHeader(table.Row{"Player", "Name", "Old", "New"})
	for _, fix := range res.ShootsFixes {
		t.AppendRow(table.Row{fix.PlayerId, fix.FullName, fix.Old, fix.New})
	}
	out.WriteString(t.Render())
	out.WriteString("\n\n")

	out.WriteString(fmt.Sprintf("players without a draft round: %d\n", res.Undrafted))
	return out.String()
}

// RenderSpotCheck renders a stored-versus-scraped comparison.
func RenderSpotCheck(res SpotCheckResult) string {
	var out strings.Builder

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetTitle(fmt.Sprintf("%s (%s)", res.Stored.FullName, res.PlayerId))
	t.AppendHeader(table.Row{"Field", "Stored", "Scraped", "Match"})
	for _, f := range res.Fields {
		t.AppendRow(table.Row{f.Field, f.Stored, f.Scraped, f.Match})
	}
	out.WriteString(t.Render())
	out.WriteString("\n\n")

	out.WriteString(fmt.Sprintf(
		"name similarity: %.3f (stored %q, scraped %q)\n",
		res.NameSimilarity, res.Stored.FullName, res.Scraped.FullName,
	))
	return out.String()
}
