package receipt

import (
	"github.com/hokkori/kifukin/internal/receipt/domain"
	"github.com/hokkori/kifukin/internal/receipt/repository"
	"github.com/hokkori/kifukin/internal/receipt/service"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("receipt.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
	fx.Invoke(ensureTable),
)

// ensureTable idempotently creates the receipts table. No migration
// versioning; the schema is created as-is when absent.
func ensureTable(conn *gorm.DB) error {
	return conn.AutoMigrate(&domain.DonationReceipt{})
}
