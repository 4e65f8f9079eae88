package customer

import (
	"github.com/amirasaad/brokerage/pkg/config"
	"github.com/amirasaad/brokerage/pkg/domain/customer"
	"github.com/amirasaad/brokerage/pkg/mapper"
	"github.com/amirasaad/brokerage/pkg/middleware"
	authsvc "github.com/amirasaad/brokerage/pkg/service/auth"
	customersvc "github.com/amirasaad/brokerage/pkg/service/customer"
	"github.com/amirasaad/brokerage/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func Routes(app *fiber.App, customerSvc *customersvc.Service, authSvc *authsvc.Service, jwtCfg *config.Jwt) {
	g := app.Group("/customer", middleware.JwtProtected(jwtCfg))
	g.Get("/me", Profile(customerSvc, authSvc))
	g.Get("/accounts", Accounts(customerSvc, authSvc))
	g.Put("/password", ChangePassword(customerSvc, authSvc))
	g.Get("/withdraw-password", HasWithdrawPassword(customerSvc, authSvc))
	g.Post("/withdraw-password", SetWithdrawPassword(customerSvc, authSvc))
	g.Post("/withdraw-password/check", CheckWithdrawPassword(customerSvc, authSvc))
}

// Profile returns the authenticated customer.
// @Summary Current customer
// @Tags customer
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Router /customer/me [get]
// @Security Bearer
func Profile(customerSvc *customersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.CurrentCustomerID(c, authSvc)
		if id == uuid.Nil {
			return err
		}
		cust, err := customerSvc.Get(c.Context(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Customer not found", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Customer found", mapper.Customer(cust))
	}
}

// Accounts lists the customer's currency accounts.
// @Summary List accounts
// @Tags customer
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Router /customer/accounts [get]
// @Security Bearer
func Accounts(customerSvc *customersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.CurrentCustomerID(c, authSvc)
		if id == uuid.Nil {
			return err
		}
		accounts, err := customerSvc.Accounts(c.Context(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list accounts", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Accounts fetched", mapper.All(accounts, mapper.Account))
	}
}

// ChangePassword replaces the login or the withdraw password.
// @Summary Change password
// @Tags customer
// @Accept json
// @Produce json
// @Param request body ChangePasswordInput true "Password change"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Router /customer/password [put]
// @Security Bearer
func ChangePassword(customerSvc *customersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[ChangePasswordInput](c)
		if input == nil {
			return err
		}
		id, err := common.CurrentCustomerID(c, authSvc)
		if id == uuid.Nil {
			return err
		}
		kind, err := customer.ParsePasswordKind(input.Kind)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid password kind", err)
		}
		err = customerSvc.ChangePassword(c.Context(), id, customer.PasswordChange{
			Kind:    kind,
			Current: input.CurrentPassword,
			New:     input.NewPassword,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't change password", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Password updated", nil)
	}
}

// HasWithdrawPassword reports whether a withdraw password is set.
// @Summary Withdraw password status
// @Tags customer
// @Produce json
// @Success 200 {object} common.Response
// @Router /customer/withdraw-password [get]
// @Security Bearer
func HasWithdrawPassword(customerSvc *customersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.CurrentCustomerID(c, authSvc)
		if id == uuid.Nil {
			return err
		}
		set, err := customerSvc.HasWithdrawPassword(c.Context(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Customer not found", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Withdraw password status", fiber.Map{"is_set": set})
	}
}

// SetWithdrawPassword sets the withdraw password once.
// @Summary Set withdraw password
// @Tags customer
// @Accept json
// @Produce json
// @Param request body WithdrawPasswordInput true "Withdraw password"
// @Success 201 {object} common.Response
// @Failure 409 {object} common.ProblemDetails
// @Router /customer/withdraw-password [post]
// @Security Bearer
func SetWithdrawPassword(customerSvc *customersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[WithdrawPasswordInput](c)
		if input == nil {
			return err
		}
		id, err := common.CurrentCustomerID(c, authSvc)
		if id == uuid.Nil {
			return err
		}
		if err := customerSvc.SetWithdrawPassword(c.Context(), id, input.Password); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't set withdraw password", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Withdraw password set", nil)
	}
}

// CheckWithdrawPassword verifies the withdraw password.
// @Summary Check withdraw password
// @Tags customer
// @Accept json
// @Produce json
// @Param request body WithdrawPasswordInput true "Withdraw password"
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Router /customer/withdraw-password/check [post]
// @Security Bearer
func CheckWithdrawPassword(customerSvc *customersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[WithdrawPasswordInput](c)
		if input == nil {
			return err
		}
		id, err := common.CurrentCustomerID(c, authSvc)
		if id == uuid.Nil {
			return err
		}
		if err := customerSvc.CheckWithdrawPassword(c.Context(), id, input.Password); err != nil {
			return common.ProblemDetailsJSON(c, "Withdraw password rejected", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Withdraw password accepted", nil)
	}
}
