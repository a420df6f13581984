package players

import (
	"context"
	"fmt"
	"log/slog"

	"hoopsdb/lib/scrapers/bbref"

	"go.opentelemetry.io/otel/codes"
)

// Rescrape refreshes the stored rows for the given players from their
// live profile pages. Players are independent of each other, a failed
// scrape is logged and skipped while the batch continues. A storage
// failure aborts the batch.
func (s Store) Rescrape(ctx context.Context, client *bbref.Client, playerIds []string) error {
	ctx, span := tracer.Start(ctx, "Rescrape")
	defer span.End()

	var failed int
	for _, playerId := range playerIds {
		profile, err := client.Player(ctx, playerId)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			slog.WarnContext(
				ctx, "failed to scrape player, skipping",
				"player", playerId,
				"err", err,
			)
			failed++
			continue
		}

		err = s.Upsert(ctx, FromProfile(profile))
		if err != nil {
			err = fmt.Errorf("store player %s: %w", playerId, err)
			span.RecordError(err)
			span.SetStatus(codes.Error, "upsert failed")
			return err
		}
		slog.InfoContext(ctx, "rescraped player", "player", playerId, "name", profile.Name)
	}

	if failed > 0 {
		return fmt.Errorf("failed to scrape %d of %d players", failed, len(playerIds))
	}
	return nil
}
