package webapi

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/MaeliPalharini/bankledger/pkg/config"
	"github.com/MaeliPalharini/bankledger/pkg/domain"
	"github.com/MaeliPalharini/bankledger/pkg/dto"
	"github.com/MaeliPalharini/bankledger/pkg/middleware"
	"github.com/MaeliPalharini/bankledger/pkg/money"
	"github.com/MaeliPalharini/bankledger/pkg/service/auth"
	"github.com/MaeliPalharini/bankledger/pkg/service/ledger"
)

// OpenAccountInput is the request body of POST /clients/:cpf/accounts.
// InitialBalance is a decimal string; it defaults to zero.
type OpenAccountInput struct {
	Number         int64  `json:"number" validate:"required,gt=0"`
	InitialBalance string `json:"initial_balance" validate:"omitempty"`
}

// AmountInput is the request body of deposit and withdraw. Amount is a
// decimal string such as "100.00"; binary floats never touch balances.
type AmountInput struct {
	Amount string `json:"amount" validate:"required"`
}

// AccountRoutes registers the account operation endpoints. All routes
// require a valid JWT.
//
// Routes:
//   - POST /clients/:cpf/accounts  : Open an account for the client.
//   - GET  /clients/:cpf/accounts  : List the client's accounts.
//   - POST /clients/:cpf/deposit   : Deposit into the client's account.
//   - POST /clients/:cpf/withdraw  : Withdraw from the client's account.
//   - GET  /clients/:cpf/statement : Full transaction history.
func AccountRoutes(app *fiber.App, ledgerSvc *ledger.Service, authSvc *auth.Service, cfg *config.App) {
	protected := middleware.JwtProtected(cfg.Jwt)
	app.Post("/clients/:cpf/accounts", protected, OpenAccount(ledgerSvc, authSvc))
	app.Get("/clients/:cpf/accounts", protected, ListAccounts(ledgerSvc, authSvc))
	app.Post("/clients/:cpf/deposit", protected, Deposit(ledgerSvc, authSvc))
	app.Post("/clients/:cpf/withdraw", protected, Withdraw(ledgerSvc, authSvc))
	app.Get("/clients/:cpf/statement", protected, Statement(ledgerSvc, authSvc))
}

// OpenAccount opens an account for the client identified by the cpf path
// parameter.
func OpenAccount(ledgerSvc *ledger.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := currentPrincipal(c, authSvc)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		input, err := BindAndValidate[OpenAccountInput](c)
		if err != nil {
			return nil
		}
		initial := money.Zero()
		if input.InitialBalance != "" {
			initial, err = money.Parse(input.InitialBalance)
			if err != nil {
				return DomainErrorJSON(c, err)
			}
		}
		acct, err := ledgerSvc.OpenAccount(c.Context(), p, c.Params("cpf"), input.Number, initial)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(Response{
			Status:  fiber.StatusCreated,
			Message: "Account opened",
			Data:    acct,
		})
	}
}

// ListAccounts lists every account owned by the client.
func ListAccounts(ledgerSvc *ledger.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := currentPrincipal(c, authSvc)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		accts, err := ledgerSvc.Accounts(c.Context(), p, c.Params("cpf"))
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Accounts listed",
			Data:    accts,
		})
	}
}

// Deposit credits the client's account.
func Deposit(ledgerSvc *ledger.Service, authSvc *auth.Service) fiber.Handler {
	return mutation(authSvc, "Deposit registered", ledgerSvc.Deposit)
}

// Withdraw debits the client's account. Fails with 422 when funds are
// insufficient.
func Withdraw(ledgerSvc *ledger.Service, authSvc *auth.Service) fiber.Handler {
	return mutation(authSvc, "Withdrawal registered", ledgerSvc.Withdraw)
}

func mutation(
	authSvc *auth.Service,
	message string,
	op func(ctx context.Context, p domain.Principal, cpf string, amount money.Money) (*dto.TransactionRead, error),
) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := currentPrincipal(c, authSvc)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		input, err := BindAndValidate[AmountInput](c)
		if err != nil {
			return nil
		}
		amount, err := money.Parse(input.Amount)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		tx, err := op(c.Context(), p, c.Params("cpf"), amount)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(Response{
			Status:  fiber.StatusCreated,
			Message: message,
			Data:    tx,
		})
	}
}

// Statement returns the account's full transaction history in chronological
// order.
func Statement(ledgerSvc *ledger.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := currentPrincipal(c, authSvc)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		txs, err := ledgerSvc.Statement(c.Context(), p, c.Params("cpf"))
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Statement",
			Data:    txs,
		})
	}
}
