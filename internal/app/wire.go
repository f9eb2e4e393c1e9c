//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tair/retail-dashboard/pkg/config"
)

// InitializeApp builds the service on top of opened stores and an event stream
func InitializeApp(cfg *config.Config, stores *Stores, events Events, reg *prometheus.Registry) (*App, error) {
	wire.Build(
		AllHandlersSet,
		NewApp,
	)
	return nil, nil
}
