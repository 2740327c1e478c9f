package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	// Create inserts the record with a temporary certificate number,
	// reads back the generated id and writes the final certificate
	// number derived from it. Two round-trips; a crash in between
	// leaves the placeholder in place.
	Create(ctx context.Context, db *gorm.DB, receipt *DonationReceipt) error

	// UpdateStatus sets the status unconditionally and the download
	// token only when non-nil. Last writer wins.
	UpdateStatus(ctx context.Context, db *gorm.DB, id int64, status Status, token *string) error

	FindByID(ctx context.Context, db *gorm.DB, id int64) (*DonationReceipt, error)

	// Recent returns the newest rows for the diagnostics endpoint.
	Recent(ctx context.Context, db *gorm.DB, limit int) ([]*DonationReceipt, error)

	Count(ctx context.Context, db *gorm.DB) (int64, error)
}
