package main

import (
	"context"
	"os"

	"github.com/suryaprakash-sp/mybillbook-scrape/cmd/billbook-cli/commands"
	"github.com/suryaprakash-sp/mybillbook-scrape/lib/serviceutil"
	"github.com/suryaprakash-sp/mybillbook-scrape/lib/telemetry"
)

func main() {
	ctx := serviceutil.SignalContext()

	// a missing telemetry.json5 just means no exporters
	tel, err := telemetry.SetupFromEnv(ctx, "billbook-cli")
	if err != nil && !os.IsNotExist(err) {
		serviceutil.Fatal("failed to set up telemetry", err)
	}
	defer tel.Shutdown(context.Background())

	commands.ExecuteContext(ctx)
}
