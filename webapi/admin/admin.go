// Package admin exposes the back office: trade decisions, review
// resolution, settings and the dashboard.
package admin

import (
	"strings"
	"time"

	"github.com/amirasaad/brokerage/pkg/app"
	"github.com/amirasaad/brokerage/pkg/domain/review"
	"github.com/amirasaad/brokerage/pkg/domain/trade"
	"github.com/amirasaad/brokerage/pkg/mapper"
	"github.com/amirasaad/brokerage/pkg/middleware"
	"github.com/amirasaad/brokerage/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func Routes(fiberApp *fiber.App, a *app.App) {
	g := fiberApp.Group("/admin", middleware.AdminProtected(a.Config.Admin))

	g.Get("/dashboard", Dashboard(a))

	g.Get("/trades", ListTrades(a))
	g.Post("/trades/sweep", Sweep(a))
	g.Post("/trades/:id/decide", DecideTrade(a))
	g.Post("/trades/:id/settle", SettleTrade(a))
	g.Post("/trades/:id/fail", FailTrade(a))

	g.Get("/settings/trading", TradingSettings(a))
	g.Put("/settings/trading", UpdateTradingSetting(a))
	g.Get("/settings/flags", Flags(a))
	g.Put("/settings/flags", SetFlag(a))
	g.Get("/customers/:id/winrate", CustomerWinRate(a))
	g.Put("/customers/:id/winrate", SetCustomerWinRate(a))

	g.Get("/transactions", ListTransactions(a))
	g.Get("/exchanges", ListExchanges(a))
	g.Post("/reviews/:kind/:id/resolve", Resolve(a))
	g.Post("/withdrawals/:id/sent", MarkWithdrawalSent(a))

	g.Get("/notifications", Notifications(a))
	g.Post("/notifications/read", MarkAllRead(a))
	g.Post("/notifications/:id/read", MarkRead(a))
}

// Dashboard returns the back office counters.
// @Summary Dashboard
// @Tags admin
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Router /admin/dashboard [get]
// @Security ApiKey
func Dashboard(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		d, err := a.ReportService.Dashboard(c.Context())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to build dashboard", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Dashboard", d)
	}
}

// ListTrades lists trades of every customer.
// @Summary List all trades
// @Tags admin
// @Produce json
// @Param status query string false "PENDING, COMPLETED or FAILED"
// @Param customer_id query string false "Customer ID"
// @Success 200 {object} common.Response
// @Router /admin/trades [get]
// @Security ApiKey
func ListTrades(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter, ok := adminFilter(c)
		if !ok {
			return nil
		}
		trades, err := a.TradeService.List(c.Context(), filter)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list trades", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Trades fetched", mapper.All(trades, mapper.Trade))
	}
}

// DecideTrade sets the result of a PENDING trade while automatic decisions
// are off.
// @Summary Decide a trade
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Trade ID"
// @Param request body DecideInput true "Outcome"
// @Success 200 {object} common.Response
// @Failure 409 {object} common.ProblemDetails
// @Router /admin/trades/{id}/decide [post]
// @Security ApiKey
func DecideTrade(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c, "id")
		if id == uuid.Nil {
			return err
		}
		input, err := common.BindAndValidate[DecideInput](c)
		if input == nil {
			return err
		}
		outcome, err := trade.ParseOutcome(input.Outcome)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid outcome", err)
		}
		flags, err := a.SettingService.Flags(c.Context())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to load settings", err)
		}
		t, err := a.TradeService.DecideTrade(c.Context(), id, outcome, flags)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't decide trade", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Trade decided", mapper.Trade(t))
	}
}

// SettleTrade settles a PENDING trade with the given outcome and applies
// the profit immediately, whatever the automatic-decision flag says.
// @Summary Settle a trade with an outcome
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Trade ID"
// @Param request body DecideInput true "Outcome"
// @Success 200 {object} common.Response
// @Failure 409 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Router /admin/trades/{id}/settle [post]
// @Security ApiKey
func SettleTrade(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c, "id")
		if id == uuid.Nil {
			return err
		}
		input, err := common.BindAndValidate[DecideInput](c)
		if input == nil {
			return err
		}
		outcome, err := trade.ParseOutcome(input.Outcome)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid outcome", err)
		}
		flags, err := a.SettingService.Flags(c.Context())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to load settings", err)
		}
		res, err := a.TradeService.OverrideTrade(c.Context(), id, outcome, flags)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't settle trade", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Trade settled", mapper.TradeSettled(res))
	}
}

// FailTrade moves a PENDING trade to FAILED.
// @Summary Fail a trade
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Trade ID"
// @Param request body FailInput false "Reason"
// @Success 200 {object} common.Response
// @Failure 409 {object} common.ProblemDetails
// @Router /admin/trades/{id}/fail [post]
// @Security ApiKey
func FailTrade(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c, "id")
		if id == uuid.Nil {
			return err
		}
		reason := "admin"
		if len(c.Body()) > 0 {
			input, err := common.BindAndValidate[FailInput](c)
			if input == nil {
				return err
			}
			if input.Reason != "" {
				reason = input.Reason
			}
		}
		t, err := a.TradeService.FailTrade(c.Context(), id, reason)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't fail trade", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Trade failed", mapper.Trade(t))
	}
}

// Sweep fails every expired PENDING trade now.
// @Summary Sweep expired trades
// @Tags admin
// @Produce json
// @Success 200 {object} common.Response
// @Router /admin/trades/sweep [post]
// @Security ApiKey
func Sweep(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		n, err := a.TradeService.Sweep(c.Context(), time.Now())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Sweep failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Sweep finished", fiber.Map{"failed": n})
	}
}

// TradingSettings lists every trading setting including win rates.
// @Summary Trading settings
// @Tags admin
// @Produce json
// @Success 200 {object} common.Response
// @Router /admin/settings/trading [get]
// @Security ApiKey
func TradingSettings(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		settings, err := a.SettingService.TradingSettings(c.Context())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to load trading settings", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Trading settings", mapper.All(settings, mapper.TradingSetting))
	}
}

// UpdateTradingSetting changes the payout or win rate of a pair.
// @Summary Update a trading setting
// @Tags admin
// @Accept json
// @Produce json
// @Param request body TradingSettingInput true "Setting"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /admin/settings/trading [put]
// @Security ApiKey
func UpdateTradingSetting(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[TradingSettingInput](c)
		if input == nil {
			return err
		}
		typ, err := trade.ParseType(input.TradeType)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid trade type", err)
		}
		ts, err := a.SettingService.UpdateTradingSetting(c.Context(), settingUpdate(input, typ))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't update trading setting", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Trading setting updated", mapper.TradingSetting(ts))
	}
}

// Flags returns the effective general flags.
// @Summary General flags
// @Tags admin
// @Produce json
// @Success 200 {object} common.Response
// @Router /admin/settings/flags [get]
// @Security ApiKey
func Flags(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		flags, err := a.SettingService.Flags(c.Context())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to load settings", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Flags", mapper.Flags(flags))
	}
}

// SetFlag stores a general flag.
// @Summary Set a general flag
// @Tags admin
// @Accept json
// @Produce json
// @Param request body FlagInput true "Flag"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /admin/settings/flags [put]
// @Security ApiKey
func SetFlag(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[FlagInput](c)
		if input == nil {
			return err
		}
		if err := a.SettingService.SetFlag(c.Context(), input.Name, input.Value); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't set flag", err)
		}
		flags, err := a.SettingService.Flags(c.Context())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to load settings", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Flag updated", mapper.Flags(flags))
	}
}

// CustomerWinRate returns the win rate applied to one customer.
// @Summary Customer win rate
// @Tags admin
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} common.Response
// @Router /admin/customers/{id}/winrate [get]
// @Security ApiKey
func CustomerWinRate(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c, "id")
		if id == uuid.Nil {
			return err
		}
		rate, err := a.SettingService.CustomerWinRate(c.Context(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to load win rate", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Win rate", fiber.Map{"customer_id": id, "win_rate": rate})
	}
}

// SetCustomerWinRate overrides the win rate of one customer.
// @Summary Set customer win rate
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Customer ID"
// @Param request body WinRateInput true "Win rate"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /admin/customers/{id}/winrate [put]
// @Security ApiKey
func SetCustomerWinRate(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c, "id")
		if id == uuid.Nil {
			return err
		}
		input, err := common.BindAndValidate[WinRateInput](c)
		if input == nil {
			return err
		}
		if err := a.SettingService.SetCustomerWinRate(c.Context(), id, input.WinRate); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't set win rate", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Win rate updated", fiber.Map{"customer_id": id, "win_rate": input.WinRate})
	}
}

// ListTransactions lists deposits and withdrawals of every customer.
// @Summary List all transactions
// @Tags admin
// @Produce json
// @Param type query string false "DEPOSIT or WITHDRAWAL"
// @Param status query string false "PENDING, COMPLETED or FAILED"
// @Success 200 {object} common.Response
// @Router /admin/transactions [get]
// @Security ApiKey
func ListTransactions(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter, ok := adminFilter(c)
		if !ok {
			return nil
		}
		txs, err := a.ReviewService.ListTransactions(c.Context(), filter)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list transactions", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transactions fetched", mapper.All(txs, mapper.Transaction))
	}
}

// ListExchanges lists exchanges of every customer.
// @Summary List all exchanges
// @Tags admin
// @Produce json
// @Param status query string false "PENDING, COMPLETED or FAILED"
// @Success 200 {object} common.Response
// @Router /admin/exchanges [get]
// @Security ApiKey
func ListExchanges(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter, ok := adminFilter(c)
		if !ok {
			return nil
		}
		list, err := a.ReviewService.ListExchanges(c.Context(), filter)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list exchanges", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Exchanges fetched", mapper.All(list, mapper.Exchange))
	}
}

// Resolve approves or rejects a pending deposit, withdrawal or exchange.
// @Summary Resolve a review
// @Tags admin
// @Accept json
// @Produce json
// @Param kind path string true "deposit, withdrawal or exchange"
// @Param id path string true "Record ID"
// @Param request body ResolveInput true "Decision"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Router /admin/reviews/{kind}/{id}/resolve [post]
// @Security ApiKey
func Resolve(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c, "id")
		if id == uuid.Nil {
			return err
		}
		input, err := common.BindAndValidate[ResolveInput](c)
		if input == nil {
			return err
		}
		decision, err := review.ParseDecision(input.Decision)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid decision", err)
		}
		kind := review.Kind(strings.ToUpper(c.Params("kind")))
		res, err := a.ReviewService.Resolve(c.Context(), kind, id, decision)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't resolve review", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Review resolved", mapper.Resolution(res))
	}
}

// MarkWithdrawalSent records the payout of a completed withdrawal.
// @Summary Mark withdrawal sent
// @Tags admin
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} common.Response
// @Failure 409 {object} common.ProblemDetails
// @Router /admin/withdrawals/{id}/sent [post]
// @Security ApiKey
func MarkWithdrawalSent(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c, "id")
		if id == uuid.Nil {
			return err
		}
		tx, err := a.ReviewService.MarkWithdrawalSent(c.Context(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't mark withdrawal sent", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Withdrawal marked sent", mapper.Transaction(tx))
	}
}

// Notifications lists back office notifications, newest first.
// @Summary Notifications
// @Tags admin
// @Produce json
// @Param unread query bool false "Only unread"
// @Param limit query int false "Page size"
// @Success 200 {object} common.Response
// @Router /admin/notifications [get]
// @Security ApiKey
func Notifications(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := a.NotificationService.List(c.Context(), c.QueryBool("unread"), c.QueryInt("limit"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list notifications", err)
		}
		unread, err := a.NotificationService.CountUnread(c.Context())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to count notifications", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Notifications fetched", fiber.Map{
			"unread":        unread,
			"notifications": mapper.All(list, mapper.Notification),
		})
	}
}

// MarkRead marks one notification read.
// @Summary Mark notification read
// @Tags admin
// @Param id path string true "Notification ID"
// @Success 200 {object} common.Response
// @Router /admin/notifications/{id}/read [post]
// @Security ApiKey
func MarkRead(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c, "id")
		if id == uuid.Nil {
			return err
		}
		if err := a.NotificationService.MarkRead(c.Context(), id); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't mark notification read", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Notification read", nil)
	}
}

// MarkAllRead marks every notification read.
// @Summary Mark all notifications read
// @Tags admin
// @Success 200 {object} common.Response
// @Router /admin/notifications/read [post]
// @Security ApiKey
func MarkAllRead(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := a.NotificationService.MarkAllRead(c.Context()); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't mark notifications read", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Notifications read", nil)
	}
}
