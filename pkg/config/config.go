package config

import (
	"time"

	"github.com/shopspring/decimal"
)

type DB struct {
	// Url is a postgres DSN.
	Url     string `envconfig:"URL"`
	Migrate bool   `envconfig:"MIGRATE" default:"true"`
}

type Jwt struct {
	Secret string        `envconfig:"SECRET" required:"true"`
	Expiry time.Duration `envconfig:"EXPIRY" default:"24h"`
}

type Auth struct {
	Jwt *Jwt `envconfig:"JWT"`
}

// Admin protects the back office routes with a static key sent as X-API-Key.
type Admin struct {
	APIKey string `envconfig:"API_KEY"`
}

type Redis struct {
	URL          string        `envconfig:"URL" default:"redis://localhost:6379/0"`
	KeyPrefix    string        `envconfig:"KEY_PREFIX" default:""`
	PoolSize     int           `envconfig:"POOL_SIZE" default:"10"`
	DialTimeout  time.Duration `envconfig:"DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"3s"`
}

type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

type EventBus struct {
	Driver      string   `envconfig:"DRIVER" default:"memory"`
	Stream      string   `envconfig:"STREAM" default:"brokerage:events"`
	Group       string   `envconfig:"GROUP" default:"brokerage"`
	Brokers     []string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	TopicPrefix string   `envconfig:"KAFKA_TOPIC_PREFIX" default:"brokerage"`
}

type Breaker struct {
	MaxRequests      uint32        `envconfig:"MAX_REQUESTS" default:"1"`
	Interval         time.Duration `envconfig:"INTERVAL" default:"1m"`
	Timeout          time.Duration `envconfig:"TIMEOUT" default:"30s"`
	FailureThreshold uint32        `envconfig:"FAILURE_THRESHOLD" default:"5"`
}

//revive:disable
type Oracle struct {
	Provider         string        `envconfig:"PROVIDER" default:"cryptocompare"`
	BaseURL          string        `envconfig:"BASE_URL" default:""`
	ApiKey           string        `envconfig:"API_KEY"`
	Timeout          time.Duration `envconfig:"TIMEOUT" default:"5s"`
	PricedCurrencies []string      `envconfig:"PRICED_CURRENCIES" default:"BTC,ETH,USDT,USDC"`
	RequestsPerSec   float64       `envconfig:"REQUESTS_PER_SECOND" default:"5"`
	Burst            int           `envconfig:"BURST" default:"10"`
	Breaker          *Breaker      `envconfig:"BREAKER"`
}

//revive:enable

type PriceCache struct {
	Driver string        `envconfig:"DRIVER" default:"memory"`
	TTL    time.Duration `envconfig:"TTL" default:"1m"`
	Prefix string        `envconfig:"PREFIX" default:"brokerage:price:"`
}

// Trading holds the defaults for the general setting flags. Values stored in
// the general_settings table win over these.
type Trading struct {
	OpenToTrade       bool          `envconfig:"OPEN_TO_TRADE" default:"true"`
	AutoDecideWinLose bool          `envconfig:"AUTO_DECIDE_WIN_LOSE" default:"true"`
	SweepEnabled      bool          `envconfig:"SWEEP_ENABLED" default:"true"`
	SweepSchedule     string        `envconfig:"SWEEP_SCHEDULE" default:"0 0 * * *"`
	SweepGrace        time.Duration `envconfig:"SWEEP_GRACE" default:"1m"`
}

type Review struct {
	ExchangePolicy string `envconfig:"EXCHANGE_POLICY" default:"immediate"`
}

type Fee struct {
	WithdrawalFeePercent decimal.Decimal `envconfig:"WITHDRAWAL_PERCENT" default:"1"`
}

type Telegram struct {
	Token  string `envconfig:"BOT_TOKEN"`
	ChatID int64  `envconfig:"CHAT_ID"`
}

type Metrics struct {
	Enabled   bool   `envconfig:"ENABLED" default:"true"`
	Namespace string `envconfig:"NAMESPACE" default:"brokerage"`
	Path      string `envconfig:"ENDPOINT" default:"/metrics"`
}

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"json"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[brokerage]"`
}

type Server struct {
	Scheme string `envconfig:"SCHEME" default:"http"`
	Host   string `envconfig:"HOST" default:"localhost"`
	Port   int    `envconfig:"PORT" default:"3000"`
}

type App struct {
	Env        string      `envconfig:"APP_ENV" default:"development"`
	Server     *Server     `envconfig:"SERVER"`
	Log        *Log        `envconfig:"LOG"`
	DB         *DB         `envconfig:"DATABASE"`
	Auth       *Auth       `envconfig:"AUTH"`
	Admin      *Admin      `envconfig:"ADMIN"`
	Redis      *Redis      `envconfig:"REDIS"`
	RateLimit  *RateLimit  `envconfig:"RATE_LIMIT"`
	EventBus   *EventBus   `envconfig:"EVENT_BUS"`
	Oracle     *Oracle     `envconfig:"ORACLE"`
	PriceCache *PriceCache `envconfig:"PRICE_CACHE"`
	Trading    *Trading    `envconfig:"TRADING"`
	Review     *Review     `envconfig:"REVIEW"`
	Fee        *Fee        `envconfig:"FEE"`
	Telegram   *Telegram   `envconfig:"TELEGRAM"`
	Metrics    *Metrics    `envconfig:"METRICS"`
}

// IsProduction reports whether the app runs with APP_ENV=production.
func (a *App) IsProduction() bool {
	return a.Env == "production"
}
