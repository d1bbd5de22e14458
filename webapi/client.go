package webapi

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/MaeliPalharini/bankledger/pkg/config"
	"github.com/MaeliPalharini/bankledger/pkg/middleware"
	"github.com/MaeliPalharini/bankledger/pkg/service/auth"
	"github.com/MaeliPalharini/bankledger/pkg/service/ledger"
)

// CreateClientInput is the request body of POST /clients.
type CreateClientInput struct {
	CPF       string `json:"cpf" validate:"required,len=11,numeric"`
	Name      string `json:"name" validate:"required"`
	BirthDate string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Address   string `json:"address" validate:"omitempty,max=255"`
}

// ClientRoutes registers the client endpoints. All routes require a valid
// JWT.
//
// Routes:
//   - POST /clients       : Register a new client.
//   - GET  /clients/:cpf  : Fetch a client by CPF.
func ClientRoutes(app *fiber.App, ledgerSvc *ledger.Service, authSvc *auth.Service, cfg *config.App) {
	protected := middleware.JwtProtected(cfg.Jwt)
	app.Post("/clients", protected, CreateClient(ledgerSvc, authSvc))
	app.Get("/clients/:cpf", protected, GetClient(ledgerSvc, authSvc))
}

// CreateClient registers a new client identified by CPF.
func CreateClient(ledgerSvc *ledger.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := currentPrincipal(c, authSvc)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		input, err := BindAndValidate[CreateClientInput](c)
		if err != nil {
			return nil
		}
		var birthDate time.Time
		if input.BirthDate != "" {
			birthDate, err = time.Parse("2006-01-02", input.BirthDate)
			if err != nil {
				return ErrorResponseJSON(c, fiber.StatusBadRequest, "Validation failed", err.Error())
			}
		}
		client, err := ledgerSvc.RegisterClient(c.Context(), p, input.CPF, input.Name, birthDate, input.Address)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(Response{
			Status:  fiber.StatusCreated,
			Message: "Client created",
			Data:    client,
		})
	}
}

// GetClient fetches a client by CPF.
func GetClient(ledgerSvc *ledger.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := currentPrincipal(c, authSvc)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		client, err := ledgerSvc.GetClient(c.Context(), p, c.Params("cpf"))
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Client found",
			Data:    client,
		})
	}
}
