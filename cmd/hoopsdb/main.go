package main

import (
	"context"
	"errors"
	"os"

	"hoopsdb/cmd/hoopsdb/commands"
	"hoopsdb/lib/serviceutil"
	"hoopsdb/lib/telemetry"
)

func main() {
	ctx := serviceutil.SignalContext()

	// running without a telemetry.json5 is fine, logging still works
	tel, err := telemetry.SetupFromEnv(ctx, "hoopsdb")
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		serviceutil.Fatal("failed to set up telemetry", err)
	}
	defer tel.Shutdown(context.Background())
	telemetry.InstrumentPerfStats(ctx)

	commands.ExecuteContext(ctx)
}
