package webapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/MaeliPalharini/bankledger/pkg/domain"
	"github.com/MaeliPalharini/bankledger/pkg/service/auth"
)

// LoginInput is the request body of POST /login.
type LoginInput struct {
	Identity string `json:"identity" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// CreateUserInput is the request body of POST /users.
type CreateUserInput struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// AuthRoutes registers the authentication endpoints.
//
// Routes:
//   - POST /login : Authenticate and receive a JWT.
//   - POST /users : Register API credentials.
func AuthRoutes(app *fiber.App, authSvc *auth.Service) {
	app.Post("/login", Login(authSvc))
	app.Post("/users", RegisterUser(authSvc))
}

// Login authenticates a user by identity (username or email) and password
// and returns a signed JWT.
func Login(authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[LoginInput](c)
		if err != nil {
			return nil
		}
		user, err := authSvc.Login(c.Context(), input.Identity, input.Password)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		token, err := authSvc.GenerateToken(user)
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusInternalServerError, "Internal Server Error", err.Error())
		}
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Success login",
			Data:    fiber.Map{"token": token},
		})
	}
}

// RegisterUser creates new API credentials.
func RegisterUser(authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[CreateUserInput](c)
		if err != nil {
			return nil
		}
		user, err := authSvc.Register(c.Context(), input.Username, input.Email, input.Password)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(Response{
			Status:  fiber.StatusCreated,
			Message: "User created",
			Data:    user,
		})
	}
}

// currentPrincipal resolves the JWT placed in the request context by the
// auth middleware into the caller's principal.
func currentPrincipal(c *fiber.Ctx, authSvc *auth.Service) (domain.Principal, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return domain.Principal{}, domain.ErrUnauthorized
	}
	return authSvc.Principal(c.Context(), token)
}
