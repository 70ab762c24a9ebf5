// Package app wires configuration into a ready fleet store. Both the server
// and the command-line tool start from here.
package app

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-maintenance/internal/advisor"
	"github.com/ukydev/fleet-maintenance/internal/config"
	"github.com/ukydev/fleet-maintenance/internal/db"
	"github.com/ukydev/fleet-maintenance/internal/notify"
	"github.com/ukydev/fleet-maintenance/internal/store"
)

// App is an opened store plus everything that must be closed with it.
type App struct {
	Store   *store.Store
	Advisor advisor.Advisor

	slots db.SlotStore
	mqtt  *notify.MQTTNotifier
}

// Open connects the configured slot backend and, when a broker is set, MQTT.
// An unreachable broker is logged and events are dropped.
func Open(ctx context.Context, cfg config.Config) (*App, error) {
	slots, err := db.Open(ctx, cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Store.Backend, err)
	}
	log.WithField("backend", cfg.Store.Backend).Info("Slot store opened")

	a := &App{slots: slots, Advisor: advisor.Unavailable{}}
	if cfg.AdvisorEnabled {
		a.Advisor = advisor.Static{}
	}

	var n notify.Notifier = notify.Nop{}
	if cfg.MQTT.Broker != "" {
		m, err := notify.DialMQTT(cfg.MQTT)
		if err != nil {
			log.WithError(err).WithField("broker", cfg.MQTT.Broker).Warn("MQTT unavailable, change events disabled")
		} else {
			a.mqtt = m
			n = m
		}
	}

	a.Store = store.New(ctx, slots, store.WithNotifier(n))
	return a, nil
}

// Close releases the backend connections.
func (a *App) Close(ctx context.Context) error {
	if a.mqtt != nil {
		a.mqtt.Close()
	}
	return a.slots.Close(ctx)
}
