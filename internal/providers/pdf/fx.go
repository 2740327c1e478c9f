package pdf

import (
	"github.com/hokkori/kifukin/internal/config"
	"go.uber.org/fx"
)

var Module = fx.Module("providers.pdf",
	fx.Provide(NewFromConfig),
)

func NewFromConfig(cfg config.Config) Provider {
	return NewMaroto(Config{
		FontPath:           cfg.PDFFontPath,
		SealImagePath:      cfg.SealImagePath,
		SignatureImagePath: cfg.SignatureImagePath,
	})
}
