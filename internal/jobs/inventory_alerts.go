package jobs

import (
	"context"
	"fmt"

	"inventorymanager/internal/services"

	"github.com/rs/zerolog/log"
)

type LowStockMonitor struct {
	stockService services.StockService
	threshold    int
}

type LowStockAlert struct {
	WarehouseID  int
	ItemName     string
	CurrentStock int
	Threshold    int
}

func NewLowStockMonitor(stockService services.StockService, threshold int) *LowStockMonitor {
	return &LowStockMonitor{
		stockService: stockService,
		threshold:    threshold,
	}
}

// CheckLowStock returns one alert per stock row at or below the threshold.
func (m *LowStockMonitor) CheckLowStock(ctx context.Context) ([]LowStockAlert, error) {
	rows, err := m.stockService.LowStock(ctx, m.threshold)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}

	alerts := make([]LowStockAlert, 0, len(rows))
	for _, s := range rows {
		alerts = append(alerts, LowStockAlert{
			WarehouseID:  s.WarehouseID,
			ItemName:     s.ItemName,
			CurrentStock: s.Quantity,
			Threshold:    m.threshold,
		})
	}
	return alerts, nil
}

func (m *LowStockMonitor) LogLowStockAlerts(alerts []LowStockAlert) {
	if len(alerts) == 0 {
		log.Debug().Int("threshold", m.threshold).Msg("no low stock")
		return
	}
	for _, a := range alerts {
		log.Warn().
			Int("warehouse_id", a.WarehouseID).
			Str("item", a.ItemName).
			Int("quantity", a.CurrentStock).
			Int("threshold", a.Threshold).
			Msg("low stock")
	}
}

// Run is the scheduled entry point.
func (m *LowStockMonitor) Run(ctx context.Context) error {
	alerts, err := m.CheckLowStock(ctx)
	if err != nil {
		return err
	}
	m.LogLowStockAlerts(alerts)
	return nil
}
