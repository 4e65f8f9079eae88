package repository

import (
	"context"
	"time"

	"github.com/amirasaad/brokerage/pkg/domain/trade"
	"github.com/amirasaad/brokerage/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type settingRepository struct {
	db *gorm.DB
}

// NewSettingRepository creates a settings repository on the given session.
func NewSettingRepository(db *gorm.DB) repository.SettingRepository {
	return &settingRepository{db: db}
}

// TradingSetting implements repository.SettingRepository.
func (r *settingRepository) TradingSetting(
	ctx context.Context,
	period int,
	tradeType trade.Type,
) (*trade.Setting, error) {
	if err := trade.ValidatePair(tradeType, period); err != nil {
		return nil, err
	}
	row := mapSettingToModel(trade.DefaultSetting(period, tradeType))
	err := WrapError(func() error {
		return r.db.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "seconds"}, {Name: "trading_type"}},
				DoNothing: true,
			}).
			Create(&row).Error
	})
	if err != nil {
		return nil, err
	}
	var stored TradingSetting
	err = WrapError(func() error {
		return r.db.WithContext(ctx).
			Where("seconds = ? AND trading_type = ?", period, string(tradeType)).
			First(&stored).Error
	})
	if err != nil {
		return nil, err
	}
	return mapSettingToDomain(&stored), nil
}

// ListTradingSettings implements repository.SettingRepository.
func (r *settingRepository) ListTradingSettings(ctx context.Context) ([]*trade.Setting, error) {
	var rows []TradingSetting
	err := WrapError(func() error {
		return r.db.WithContext(ctx).Order("seconds, trading_type").Find(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	out := make([]*trade.Setting, 0, len(rows))
	for i := range rows {
		out = append(out, mapSettingToDomain(&rows[i]))
	}
	return out, nil
}

// SaveTradingSetting implements repository.SettingRepository.
func (r *settingRepository) SaveTradingSetting(ctx context.Context, s *trade.Setting) error {
	return WrapError(func() error {
		return r.db.WithContext(ctx).
			Model(&TradingSetting{}).
			Where("seconds = ? AND trading_type = ?", s.Seconds, string(s.Type)).
			Updates(map[string]any{
				"percentage": s.Percentage,
				"win_rate":   s.WinRate,
				"updated_at": time.Now().UTC(),
			}).Error
	})
}

// CustomerWinRate implements repository.SettingRepository.
func (r *settingRepository) CustomerWinRate(ctx context.Context, customerID uuid.UUID) (float64, error) {
	now := time.Now().UTC()
	row := Winrate{CustomerID: customerID, WinRate: trade.DefaultWinRate, CreatedAt: now, UpdatedAt: now}
	err := WrapError(func() error {
		return r.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&row).Error
	})
	if err != nil {
		return 0, err
	}
	var stored Winrate
	err = WrapError(func() error {
		return r.db.WithContext(ctx).Where("customer_id = ?", customerID).First(&stored).Error
	})
	if err != nil {
		return 0, err
	}
	return stored.WinRate, nil
}

// SetCustomerWinRate implements repository.SettingRepository.
func (r *settingRepository) SetCustomerWinRate(ctx context.Context, customerID uuid.UUID, rate float64) error {
	now := time.Now().UTC()
	row := Winrate{CustomerID: customerID, WinRate: rate, CreatedAt: now, UpdatedAt: now}
	return WrapError(func() error {
		return r.db.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "customer_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"win_rate", "updated_at"}),
			}).
			Create(&row).Error
	})
}

// Values implements repository.SettingRepository.
func (r *settingRepository) Values(ctx context.Context) (map[string]string, error) {
	var rows []GeneralSetting
	err := WrapError(func() error {
		return r.db.WithContext(ctx).Find(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(rows))
	for _, row := range rows {
		out[row.Name] = row.Value
	}
	return out, nil
}

// SetValue implements repository.SettingRepository.
func (r *settingRepository) SetValue(ctx context.Context, name, value string) error {
	row := GeneralSetting{Name: name, Value: value, UpdatedAt: time.Now().UTC()}
	return WrapError(func() error {
		return r.db.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "name"}},
				DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
			}).
			Create(&row).Error
	})
}

func mapSettingToModel(s *trade.Setting) TradingSetting {
	return TradingSetting{
		ID:          s.ID,
		Seconds:     s.Seconds,
		TradingType: string(s.Type),
		Percentage:  s.Percentage,
		WinRate:     s.WinRate,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func mapSettingToDomain(row *TradingSetting) *trade.Setting {
	return &trade.Setting{
		ID:         row.ID,
		Seconds:    row.Seconds,
		Type:       trade.Type(row.TradingType),
		Percentage: row.Percentage,
		WinRate:    row.WinRate,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}
