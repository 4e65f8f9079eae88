package trade

import (
	"github.com/amirasaad/brokerage/pkg/config"
	"github.com/amirasaad/brokerage/pkg/mapper"
	"github.com/amirasaad/brokerage/pkg/middleware"
	authsvc "github.com/amirasaad/brokerage/pkg/service/auth"
	settingsvc "github.com/amirasaad/brokerage/pkg/service/setting"
	tradesvc "github.com/amirasaad/brokerage/pkg/service/trade"
	"github.com/amirasaad/brokerage/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func Routes(
	app *fiber.App,
	tradeSvc *tradesvc.Service,
	settingSvc *settingsvc.Service,
	authSvc *authsvc.Service,
	jwtCfg *config.Jwt,
) {
	app.Get("/trading/settings", TradingSettings(settingSvc))

	g := app.Group("/trades", middleware.JwtProtected(jwtCfg))
	g.Post("/", CreateTrade(tradeSvc, settingSvc, authSvc))
	g.Get("/", ListTrades(tradeSvc, authSvc))
	g.Get("/:id", GetTrade(tradeSvc, authSvc))
	g.Post("/:id/settle", SettleTrade(tradeSvc, settingSvc, authSvc))
}

// TradingSettings lists payout percentages per period and direction.
// @Summary Trading settings
// @Tags trading
// @Produce json
// @Success 200 {object} common.Response
// @Router /trading/settings [get]
func TradingSettings(settingSvc *settingsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		settings, err := settingSvc.TradingSettings(c.Context())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to load trading settings", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Trading settings", mapper.All(settings, mapper.TradingSetting))
	}
}

// CreateTrade opens a PENDING trade. No funds move until settlement.
// @Summary Open a trade
// @Tags trading
// @Accept json
// @Produce json
// @Param request body CreateTradeInput true "Trade"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Router /trades [post]
// @Security Bearer
func CreateTrade(tradeSvc *tradesvc.Service, settingSvc *settingsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateTradeInput](c)
		if input == nil {
			return err
		}
		id, err := common.CurrentCustomerID(c, authSvc)
		if id == uuid.Nil {
			return err
		}
		flags, err := settingSvc.Flags(c.Context())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to load settings", err)
		}
		res, err := tradeSvc.CreateTrade(c.Context(), tradesvc.CreateTradeRequest{
			CustomerID: id,
			Currency:   input.Currency,
			TradeType:  input.TradeType,
			Period:     input.Period,
			Quantity:   input.Quantity,
		}, flags)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't open trade", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Trade opened", mapper.TradeOpened(res))
	}
}

// SettleTrade settles one of the customer's trades. The engine draws the
// outcome unless one is already stored; customers cannot choose it.
// @Summary Settle a trade
// @Tags trading
// @Produce json
// @Param id path string true "Trade ID"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Router /trades/{id}/settle [post]
// @Security Bearer
func SettleTrade(tradeSvc *tradesvc.Service, settingSvc *settingsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tradeID, err := common.ParseID(c, "id")
		if tradeID == uuid.Nil {
			return err
		}
		id, err := common.CurrentCustomerID(c, authSvc)
		if id == uuid.Nil {
			return err
		}
		flags, err := settingSvc.Flags(c.Context())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to load settings", err)
		}
		res, err := tradeSvc.SettleTrade(c.Context(), tradesvc.SettleTradeRequest{
			CustomerID: id,
			TradeID:    tradeID,
		}, flags)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't settle trade", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Trade settled", mapper.TradeSettled(res))
	}
}

// GetTrade returns one of the customer's trades.
// @Summary Get a trade
// @Tags trading
// @Produce json
// @Param id path string true "Trade ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /trades/{id} [get]
// @Security Bearer
func GetTrade(tradeSvc *tradesvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tradeID, err := common.ParseID(c, "id")
		if tradeID == uuid.Nil {
			return err
		}
		id, err := common.CurrentCustomerID(c, authSvc)
		if id == uuid.Nil {
			return err
		}
		t, err := tradeSvc.Get(c.Context(), tradeID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Trade not found", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Trade found", mapper.Trade(t))
	}
}

// ListTrades lists the customer's trades, newest first.
// @Summary List trades
// @Tags trading
// @Produce json
// @Param status query string false "PENDING, COMPLETED or FAILED"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} common.Response
// @Router /trades [get]
// @Security Bearer
func ListTrades(tradeSvc *tradesvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.CurrentCustomerID(c, authSvc)
		if id == uuid.Nil {
			return err
		}
		filter := common.ListFilter(c)
		filter.CustomerID = id
		trades, err := tradeSvc.List(c.Context(), filter)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list trades", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Trades fetched", mapper.All(trades, mapper.Trade))
	}
}
