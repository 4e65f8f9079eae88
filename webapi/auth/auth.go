package auth

import (
	"github.com/amirasaad/brokerage/pkg/mapper"
	authsvc "github.com/amirasaad/brokerage/pkg/service/auth"
	customersvc "github.com/amirasaad/brokerage/pkg/service/customer"
	"github.com/amirasaad/brokerage/webapi/common"
	"github.com/gofiber/fiber/v2"
)

func Routes(app *fiber.App, authSvc *authsvc.Service, customerSvc *customersvc.Service) {
	app.Post("/auth/login", Login(authSvc))
	app.Post("/auth/signup", Signup(authSvc, customerSvc))
}

// Login handles customer authentication and returns a JWT token.
// @Summary Customer login
// @Description Authenticate with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginInput true "Login credentials"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 429 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /auth/login [post]
func Login(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[LoginInput](c)
		if input == nil {
			return err
		}
		customer, err := authSvc.Login(c.Context(), input.Email, input.Password)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid email or password", err)
		}
		token, err := authSvc.GenerateToken(c.Context(), customer)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Success login", fiber.Map{"token": token})
	}
}

// Signup creates a customer with a default USDT account.
// @Summary Customer signup
// @Description Register a customer; the response carries a token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignupInput true "Customer data"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /auth/signup [post]
func Signup(authSvc *authsvc.Service, customerSvc *customersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[SignupInput](c)
		if input == nil {
			return err
		}
		customer, acc, err := customerSvc.Signup(c.Context(), customersvc.SignupRequest{
			Email:    input.Email,
			Name:     input.Name,
			Password: input.Password,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create customer", err)
		}
		token, err := authSvc.GenerateToken(c.Context(), customer)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Created customer", fiber.Map{
			"customer": mapper.Customer(customer),
			"account":  mapper.Account(acc),
			"token":    token,
		})
	}
}
