package main

import (
	"fmt"

	log "github.com/charmbracelet/log"

	"github.com/MaeliPalharini/bankledger/infra/initializer"
	"github.com/MaeliPalharini/bankledger/pkg/config"
	"github.com/MaeliPalharini/bankledger/webapi"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	fiberApp := webapi.SetupApp(deps.Ledger, deps.Auth, cfg)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	deps.Logger.Info("starting server",
		"env", cfg.Env,
		"address", addr,
	)

	return fiberApp.Listen(addr)
}
