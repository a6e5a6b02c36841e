//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"SwingSignal/pkg/config"
	"SwingSignal/pkg/server"
)

// InitializeApp wires the HTTP server, the scan consumer and the backtest
// queue workers.
func InitializeApp(cfg *config.Config) (*server.App, func(), error) {
	wire.Build(CoreSet, ServerSet)
	return nil, nil, nil
}

// InitializeServices wires only the use cases, for one-shot CLI commands.
func InitializeServices(cfg *config.Config) (*Services, func(), error) {
	wire.Build(CoreSet)
	return nil, nil, nil
}
