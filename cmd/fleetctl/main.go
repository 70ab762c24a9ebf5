// Command fleetctl works with the fleet store from a terminal: CSV
// import/export, reminders, the dashboard and clearing all data.
package main

import (
	"context"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-maintenance/internal/app"
	"github.com/ukydev/fleet-maintenance/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}
	cfg.ConfigureLogging()
	log.SetOutput(os.Stderr)

	open := func(ctx context.Context) (*app.App, error) {
		return app.Open(ctx, cfg)
	}
	if err := newRootCmd(open).Execute(); err != nil {
		os.Exit(1)
	}
}
