// Package initializer wires the application dependencies: logger, database,
// unit of work and services.
package initializer

import (
	"fmt"
	"log/slog"

	"github.com/MaeliPalharini/bankledger/infra"
	infrarepository "github.com/MaeliPalharini/bankledger/infra/repository"
	"github.com/MaeliPalharini/bankledger/infra/repository/model"
	"github.com/MaeliPalharini/bankledger/pkg/config"
	"github.com/MaeliPalharini/bankledger/pkg/repository"
	"github.com/MaeliPalharini/bankledger/pkg/service/auth"
	"github.com/MaeliPalharini/bankledger/pkg/service/ledger"
)

// Deps holds everything a binary needs to serve requests.
type Deps struct {
	Logger *slog.Logger
	Uow    repository.UnitOfWork
	Ledger *ledger.Service
	Auth   *auth.Service
}

// InitializeDependencies builds the dependency graph from configuration:
// logger, database connection, schema migration, unit of work, services.
func InitializeDependencies(cfg *config.App) (*Deps, error) {
	logger := setupLogger(cfg.Log)

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		logger.Error("failed to initialize database", "error", err)
		return nil, err
	}

	if err := db.AutoMigrate(
		&model.Client{},
		&model.Account{},
		&model.Transaction{},
		&model.User{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	uow := infrarepository.NewUoW(db)

	return &Deps{
		Logger: logger,
		Uow:    uow,
		Ledger: ledger.New(uow, logger),
		Auth:   auth.New(uow, cfg.Jwt, cfg.Auth, logger),
	}, nil
}
