package app

import (
	"errors"
	"log/slog"

	"github.com/amirasaad/brokerage/pkg/config"
	"github.com/amirasaad/brokerage/pkg/domain/review"
	"github.com/amirasaad/brokerage/pkg/eventbus"
	"github.com/amirasaad/brokerage/pkg/metrics"
	"github.com/amirasaad/brokerage/pkg/provider"
	"github.com/amirasaad/brokerage/pkg/repository"
	"github.com/amirasaad/brokerage/pkg/service/auth"
	"github.com/amirasaad/brokerage/pkg/service/balance"
	"github.com/amirasaad/brokerage/pkg/service/customer"
	"github.com/amirasaad/brokerage/pkg/service/notification"
	"github.com/amirasaad/brokerage/pkg/service/pricing"
	"github.com/amirasaad/brokerage/pkg/service/report"
	reviewsvc "github.com/amirasaad/brokerage/pkg/service/review"
	"github.com/amirasaad/brokerage/pkg/service/setting"
	"github.com/amirasaad/brokerage/pkg/service/trade"
	"github.com/prometheus/client_golang/prometheus"
)

// Deps contains the infrastructure the services are built on.
type Deps struct {
	Uow      repository.UnitOfWork
	Oracle   provider.PriceOracle
	EventBus eventbus.Bus
	// Sender forwards notifications to a chat; nil keeps them in the inbox only.
	Sender  notification.Sender
	Metrics metrics.Recorder
	// Gatherer backs the /metrics endpoint; nil disables it.
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
	// Closers run in reverse order on shutdown.
	Closers []func() error
}

// Close releases the infrastructure in reverse order of creation.
func (d *Deps) Close() error {
	var errs []error
	for i := len(d.Closers) - 1; i >= 0; i-- {
		if err := d.Closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	d.Closers = nil
	return errors.Join(errs...)
}

type App struct {
	Deps                *Deps
	Config              *config.App
	AuthService         *auth.Service
	CustomerService     *customer.Service
	SettingService      *setting.Service
	TradeService        *trade.Service
	ReviewService       *reviewsvc.Service
	NotificationService *notification.Service
	ReportService       *report.Service
	Quoter              *pricing.Quoter
}

func New(deps *Deps, cfg *config.App) (*App, error) {
	logger := deps.Logger
	rec := deps.Metrics
	if rec == nil {
		rec = metrics.NoOp{}
	}

	policy := review.PolicyImmediate
	fee := reviewsvc.DefaultWithdrawalFee
	if cfg.Review != nil {
		p, err := review.ParsePolicy(cfg.Review.ExchangePolicy)
		if err != nil {
			return nil, err
		}
		policy = p
	}
	if cfg.Fee != nil {
		fee = cfg.Fee.WithdrawalFeePercent
	}
	trading := cfg.Trading
	if trading == nil {
		trading = &config.Trading{OpenToTrade: true, AutoDecideWinLose: true, SweepGrace: defaultSweepGrace}
	}

	quoterOpts := []pricing.Option{pricing.WithMetrics(rec)}
	if o := cfg.Oracle; o != nil {
		quoterOpts = append(quoterOpts, pricing.WithTimeout(o.Timeout), pricing.WithPriced(o.PricedCurrencies))
	}
	quoter := pricing.New(deps.Oracle, logger, quoterOpts...)
	mutator := balance.New(logger)

	app := &App{
		Deps:            deps,
		Config:          cfg,
		Quoter:          quoter,
		CustomerService: customer.New(deps.Uow, logger),
		SettingService:  setting.New(deps.Uow, trading, logger),
		TradeService: trade.New(deps.Uow, quoter, mutator, deps.EventBus, logger,
			trade.WithMetrics(rec),
			trade.WithSweepGrace(trading.SweepGrace),
		),
		ReviewService: reviewsvc.New(deps.Uow, quoter, mutator, deps.EventBus, logger,
			reviewsvc.WithPolicy(policy),
			reviewsvc.WithWithdrawalFee(fee),
			reviewsvc.WithMetrics(rec),
		),
		NotificationService: notification.New(deps.Uow, deps.Sender, logger),
		ReportService:       report.New(deps.Uow, logger),
	}
	if cfg.Auth != nil && cfg.Auth.Jwt != nil {
		app.AuthService = auth.NewWithJWT(deps.Uow, cfg.Auth.Jwt, logger)
	} else {
		app.AuthService = auth.NewWithBasic(deps.Uow, logger)
	}
	app.setupEventBus()
	return app, nil
}
