package main

import (
	"github.com/hokkori/kifukin/internal/clock"
	"github.com/hokkori/kifukin/internal/config"
	"github.com/hokkori/kifukin/internal/filecache"
	"github.com/hokkori/kifukin/internal/observability"
	"github.com/hokkori/kifukin/internal/providers/email"
	"github.com/hokkori/kifukin/internal/providers/pdf"
	"github.com/hokkori/kifukin/internal/receipt"
	"github.com/hokkori/kifukin/internal/server"
	"github.com/hokkori/kifukin/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		observability.Module,
		clock.Module,
		db.Module,

		// Providers
		email.Module,
		pdf.Module,
		filecache.Module,

		// Domain
		receipt.Module,

		// HTTP surface
		server.Module,
	)
	app.Run()
}
