package review

import (
	"github.com/amirasaad/brokerage/pkg/config"
	"github.com/amirasaad/brokerage/pkg/mapper"
	"github.com/amirasaad/brokerage/pkg/middleware"
	authsvc "github.com/amirasaad/brokerage/pkg/service/auth"
	customersvc "github.com/amirasaad/brokerage/pkg/service/customer"
	reviewsvc "github.com/amirasaad/brokerage/pkg/service/review"
	"github.com/amirasaad/brokerage/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func Routes(
	app *fiber.App,
	reviewSvc *reviewsvc.Service,
	customerSvc *customersvc.Service,
	authSvc *authsvc.Service,
	jwtCfg *config.Jwt,
) {
	protected := middleware.JwtProtected(jwtCfg)
	app.Post("/deposits", protected, RequestDeposit(reviewSvc, authSvc))
	app.Post("/withdrawals", protected, RequestWithdrawal(reviewSvc, customerSvc, authSvc))
	app.Post("/exchanges", protected, RequestExchange(reviewSvc, authSvc))
	app.Get("/exchanges", protected, ListExchanges(reviewSvc, authSvc))
	app.Get("/transactions", protected, ListTransactions(reviewSvc, authSvc))
	app.Get("/transactions/:id", protected, GetTransaction(reviewSvc, authSvc))
}

// RequestDeposit stores a deposit that waits for admin review.
// @Summary Request a deposit
// @Tags review
// @Accept json
// @Produce json
// @Param request body DepositInput true "Deposit"
// @Success 202 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Router /deposits [post]
// @Security Bearer
func RequestDeposit(reviewSvc *reviewsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[DepositInput](c)
		if input == nil {
			return err
		}
		id, err := common.CurrentCustomerID(c, authSvc)
		if id == uuid.Nil {
			return err
		}
		tx, err := reviewSvc.RequestDeposit(c.Context(), reviewsvc.DepositRequest{
			CustomerID:  id,
			Currency:    input.Currency,
			Amount:      input.Amount,
			ProofRef:    input.ProofRef,
			Description: input.Description,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't request deposit", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusAccepted, "Deposit awaits review", mapper.Transaction(tx))
	}
}

// RequestWithdrawal checks the withdraw password and stores a withdrawal that
// waits for admin review.
// @Summary Request a withdrawal
// @Tags review
// @Accept json
// @Produce json
// @Param request body WithdrawalInput true "Withdrawal"
// @Success 202 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Router /withdrawals [post]
// @Security Bearer
func RequestWithdrawal(
	reviewSvc *reviewsvc.Service,
	customerSvc *customersvc.Service,
	authSvc *authsvc.Service,
) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[WithdrawalInput](c)
		if input == nil {
			return err
		}
		id, err := common.CurrentCustomerID(c, authSvc)
		if id == uuid.Nil {
			return err
		}
		if err := customerSvc.CheckWithdrawPassword(c.Context(), id, input.WithdrawPassword); err != nil {
			return common.ProblemDetailsJSON(c, "Withdraw password rejected", err)
		}
		tx, err := reviewSvc.RequestWithdrawal(c.Context(), reviewsvc.WithdrawalRequest{
			CustomerID: id,
			Currency:   input.Currency,
			Amount:     input.Amount,
			Address:    input.Address,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't request withdrawal", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusAccepted, "Withdrawal awaits review", mapper.Transaction(tx))
	}
}

// RequestExchange converts between two currencies. Depending on the exchange
// policy the exchange settles at once or waits for review.
// @Summary Request an exchange
// @Tags review
// @Accept json
// @Produce json
// @Param request body ExchangeInput true "Exchange"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Failure 503 {object} common.ProblemDetails
// @Router /exchanges [post]
// @Security Bearer
func RequestExchange(reviewSvc *reviewsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[ExchangeInput](c)
		if input == nil {
			return err
		}
		id, err := common.CurrentCustomerID(c, authSvc)
		if id == uuid.Nil {
			return err
		}
		ex, err := reviewSvc.RequestExchange(c.Context(), reviewsvc.ExchangeRequest{
			CustomerID:   id,
			FromCurrency: input.FromCurrency,
			ToCurrency:   input.ToCurrency,
			Amount:       input.Amount,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't exchange", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Exchange "+string(ex.Status), mapper.Exchange(ex))
	}
}

// ListTransactions lists the customer's deposits and withdrawals.
// @Summary List transactions
// @Tags review
// @Produce json
// @Param type query string false "DEPOSIT or WITHDRAWAL"
// @Param status query string false "PENDING, COMPLETED or FAILED"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} common.Response
// @Router /transactions [get]
// @Security Bearer
func ListTransactions(reviewSvc *reviewsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.CurrentCustomerID(c, authSvc)
		if id == uuid.Nil {
			return err
		}
		filter := common.ListFilter(c)
		filter.CustomerID = id
		txs, err := reviewSvc.ListTransactions(c.Context(), filter)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list transactions", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transactions fetched", mapper.All(txs, mapper.Transaction))
	}
}

// GetTransaction returns one of the customer's deposits or withdrawals.
// @Summary Get a transaction
// @Tags review
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /transactions/{id} [get]
// @Security Bearer
func GetTransaction(reviewSvc *reviewsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		txID, err := common.ParseID(c, "id")
		if txID == uuid.Nil {
			return err
		}
		id, err := common.CurrentCustomerID(c, authSvc)
		if id == uuid.Nil {
			return err
		}
		tx, err := reviewSvc.Transaction(c.Context(), txID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Transaction not found", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transaction found", mapper.Transaction(tx))
	}
}

// ListExchanges lists the customer's exchanges.
// @Summary List exchanges
// @Tags review
// @Produce json
// @Param status query string false "PENDING, COMPLETED or FAILED"
// @Success 200 {object} common.Response
// @Router /exchanges [get]
// @Security Bearer
func ListExchanges(reviewSvc *reviewsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.CurrentCustomerID(c, authSvc)
		if id == uuid.Nil {
			return err
		}
		filter := common.ListFilter(c)
		filter.CustomerID = id
		list, err := reviewSvc.ListExchanges(c.Context(), filter)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list exchanges", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Exchanges fetched", mapper.All(list, mapper.Exchange))
	}
}
