package admin

import (
	"github.com/amirasaad/brokerage/pkg/domain"
	"github.com/amirasaad/brokerage/pkg/domain/trade"
	"github.com/amirasaad/brokerage/pkg/repository"
	settingsvc "github.com/amirasaad/brokerage/pkg/service/setting"
	"github.com/amirasaad/brokerage/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// adminFilter is common.ListFilter plus an optional customer_id query. When
// the id is malformed the 400 is already written and ok is false.
func adminFilter(c *fiber.Ctx) (repository.ListFilter, bool) {
	filter := common.ListFilter(c)
	raw := c.Query("customer_id")
	if raw == "" {
		return filter, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		_ = common.ProblemDetailsJSON(c, "Invalid customer_id", domain.Validationf("customer_id must be a valid UUID"), fiber.StatusBadRequest)
		return filter, false
	}
	filter.CustomerID = id
	return filter, true
}

func settingUpdate(in *TradingSettingInput, typ trade.Type) settingsvc.UpdateTradingSetting {
	return settingsvc.UpdateTradingSetting{
		Period:     in.Period,
		Type:       typ,
		Percentage: in.Percentage,
		WinRate:    in.WinRate,
	}
}
