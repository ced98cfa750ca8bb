package jobs

import (
	"context"
	"fmt"
	"time"

	"inventorymanager/internal/services"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// StockSnapshot is the document written to the bucket.
type StockSnapshot struct {
	ID      string        `json:"snapshot_id"`
	TakenAt time.Time     `json:"taken_at"`
	Stocks  []SnapshotRow `json:"stocks"`
}

type SnapshotRow struct {
	WarehouseID int              `json:"warehouse_id"`
	ItemID      int              `json:"item_id"`
	ItemName    string           `json:"item_name"`
	Quantity    int              `json:"quantity"`
	ShelfPrice  *decimal.Decimal `json:"shelf_price"`
}

type SnapshotExporter struct {
	stockService services.StockService
	store        services.SnapshotStore
	now          func() time.Time
}

func NewSnapshotExporter(stockService services.StockService, store services.SnapshotStore) *SnapshotExporter {
	return &SnapshotExporter{
		stockService: stockService,
		store:        store,
		now:          time.Now,
	}
}

// Export uploads every stock row and returns the object name.
func (e *SnapshotExporter) Export(ctx context.Context) (string, error) {
	stocks, err := e.stockService.List(ctx)
	if err != nil {
		return "", fmt.Errorf("list stock: %w", err)
	}

	snap := StockSnapshot{
		ID:      uuid.NewString(),
		TakenAt: e.now().UTC(),
		Stocks:  make([]SnapshotRow, 0, len(stocks)),
	}
	for _, s := range stocks {
		snap.Stocks = append(snap.Stocks, SnapshotRow{
			WarehouseID: s.WarehouseID,
			ItemID:      s.ItemID,
			ItemName:    s.ItemName,
			Quantity:    s.Quantity,
			ShelfPrice:  s.ShelfPrice,
		})
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}

	name := fmt.Sprintf("stock/%s/%s.json", snap.TakenAt.Format("2006/01/02"), snap.ID)
	if err := e.store.Upload(ctx, name, data); err != nil {
		return "", fmt.Errorf("upload snapshot %s: %w", name, err)
	}
	log.Info().Str("object", name).Int("rows", len(snap.Stocks)).Msg("stock snapshot exported")
	return name, nil
}

func (e *SnapshotExporter) Run(ctx context.Context) error {
	_, err := e.Export(ctx)
	return err
}
