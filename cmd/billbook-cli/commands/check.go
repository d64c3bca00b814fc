package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/suryaprakash-sp/mybillbook-scrape/lib/scrapers/billbook"
	"github.com/suryaprakash-sp/mybillbook-scrape/lib/serviceutil"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verifies the captured session credentials against the live API.",
	Run: func(cmd *cobra.Command, args []string) {
		session, err := loadSession()
		if err != nil {
			serviceutil.Fatal("failed to load session credentials", err)
		}
		client, err := billbook.NewClient(billbook.ClientOptions{Session: session})
		if err != nil {
			serviceutil.Fatal("failed to initialize client", err)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), time.Second*30)
		defer cancel()

		err = client.Probe(ctx)
		var authErr *billbook.AuthenticationError
		if errors.As(err, &authErr) {
			serviceutil.Fatal("session rejected, capture fresh credentials from the browser", err)
		}
		if err != nil {
			serviceutil.Fatal("probe failed", err)
		}
		slog.Info("session accepted")
	},
}
