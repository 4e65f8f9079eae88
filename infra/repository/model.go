package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Customer represents a customer record in the database.
type Customer struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email                string    `gorm:"uniqueIndex;not null;size:255"`
	Name                 string    `gorm:"size:255"`
	PasswordHash         string    `gorm:"not null"`
	WithdrawPasswordHash string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Account represents an account record in the database.
type Account struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_accounts_customer_currency"`
	AccountNo       string          `gorm:"size:32;not null;uniqueIndex"`
	Currency        string          `gorm:"size:10;not null;uniqueIndex:idx_accounts_customer_currency"`
	Balance         decimal.Decimal `gorm:"type:numeric(20,8);not null;default:0"`
	InreviewBalance decimal.Decimal `gorm:"type:numeric(20,8);not null;default:0"`
	IsActive        bool            `gorm:"not null;default:true"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Trade represents a trade record in the database.
type Trade struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	AccountID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Currency      string          `gorm:"size:10;not null"`
	TradeType     string          `gorm:"size:8;not null"`
	Period        int             `gorm:"not null"`
	TradeQuantity decimal.Decimal `gorm:"type:numeric(20,8);not null"`
	TradingStatus string          `gorm:"size:16;not null;index"`
	IsSuccess     *bool
	Profit        decimal.Decimal `gorm:"type:numeric(20,8);not null;default:0"`
	ProfitApplied bool            `gorm:"not null;default:false"`
	SettledAt     *time.Time
	CreatedAt     time.Time `gorm:"index"`
	UpdatedAt     time.Time
}

// TradingSetting represents the payout and win rate of a (seconds, type) pair.
type TradingSetting struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Seconds     int             `gorm:"not null;uniqueIndex:idx_trading_settings_pair"`
	TradingType string          `gorm:"size:8;not null;uniqueIndex:idx_trading_settings_pair"`
	Percentage  decimal.Decimal `gorm:"type:numeric(10,4);not null"`
	WinRate     float64         `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Winrate represents a per-customer win probability override.
type Winrate struct {
	CustomerID uuid.UUID `gorm:"type:uuid;primaryKey"`
	WinRate    float64   `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// GeneralSetting is a global name/value flag.
type GeneralSetting struct {
	Name      string `gorm:"primaryKey;size:64"`
	Value     string `gorm:"not null"`
	UpdatedAt time.Time
}

// Transaction represents a deposit or withdrawal record in the database.
type Transaction struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	AccountID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	TransactionRef string          `gorm:"size:32;not null;uniqueIndex"`
	Type           string          `gorm:"size:16;not null;index"`
	Amount         decimal.Decimal `gorm:"type:numeric(20,8);not null"`
	Fee            decimal.Decimal `gorm:"type:numeric(20,8);not null;default:0"`
	NetAmount      decimal.Decimal `gorm:"type:numeric(20,8);not null"`
	Currency       string          `gorm:"size:10;not null"`
	Status         string          `gorm:"size:16;not null;index"`
	Address        string
	ProofRef       string
	Description    string
	Sent           bool `gorm:"not null;default:false"`
	ResolvedAt     *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Exchange represents a currency exchange record in the database.
type Exchange struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	FromAccountID   uuid.UUID       `gorm:"type:uuid;not null"`
	ToAccountID     uuid.UUID       `gorm:"type:uuid;not null"`
	FromAccountNo   string          `gorm:"size:32;not null"`
	ToAccountNo     string          `gorm:"size:32;not null"`
	FromCurrency    string          `gorm:"size:10;not null"`
	ToCurrency      string          `gorm:"size:10;not null"`
	Amount          decimal.Decimal `gorm:"type:numeric(20,8);not null"`
	ExchangedAmount decimal.Decimal `gorm:"type:numeric(20,8);not null"`
	ExchangeRate    decimal.Decimal `gorm:"type:numeric(30,12);not null"`
	ExchangeType    string          `gorm:"size:8;not null"`
	ExchangeStatus  string          `gorm:"size:16;not null;index"`
	Policy          string          `gorm:"size:16;not null"`
	ResolvedAt      *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Notification represents an admin inbox entry.
type Notification struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID uuid.UUID `gorm:"type:uuid;index"`
	Kind       string    `gorm:"size:64;not null"`
	Message    string    `gorm:"not null"`
	Read       bool      `gorm:"not null;default:false;index"`
	CreatedAt  time.Time
}

// Models lists every table for AutoMigrate in tests and local runs.
func Models() []any {
	return []any{
		&Customer{},
		&Account{},
		&Trade{},
		&TradingSetting{},
		&Winrate{},
		&GeneralSetting{},
		&Transaction{},
		&Exchange{},
		&Notification{},
	}
}
