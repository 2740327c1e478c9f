package filecache

import (
	"github.com/hokkori/kifukin/internal/clock"
	"github.com/hokkori/kifukin/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("filecache",
	fx.Provide(NewFromConfig),
)

func NewFromConfig(cfg config.Config, clk clock.Clock, log *zap.Logger) (*Cache, error) {
	return New(cfg.ReceiptDir, clk, log)
}
