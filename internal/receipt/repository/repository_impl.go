package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/hokkori/kifukin/internal/receipt/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, receipt *domain.DonationReceipt) error {
	// certificate_no is VARCHAR(32) and unique, so the placeholder must
	// fit and never collide before the real number exists.
	receipt.CertificateNo = tempCertificateNo()
	if receipt.Status == "" {
		receipt.Status = domain.StatusCreated
	}

	if err := db.WithContext(ctx).Create(receipt).Error; err != nil {
		return fmt.Errorf("insert receipt: %w", err)
	}

	certificateNo := fmt.Sprintf("RCPT-%d-%06d", receipt.DonatedAt.Year(), receipt.ID)
	if err := db.WithContext(ctx).Exec(
		`UPDATE donation_receipts SET certificate_no = ? WHERE id = ?`,
		certificateNo,
		receipt.ID,
	).Error; err != nil {
		return fmt.Errorf("assign certificate number: %w", err)
	}

	receipt.CertificateNo = certificateNo
	return nil
}

func (r *repo) UpdateStatus(ctx context.Context, db *gorm.DB, id int64, status domain.Status, token *string) error {
	return db.WithContext(ctx).Exec(
		`UPDATE donation_receipts
		 SET status = ?, download_token = COALESCE(?, download_token)
		 WHERE id = ?`,
		status,
		token,
		id,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.DonationReceipt, error) {
	var receipt domain.DonationReceipt
	err := db.WithContext(ctx).
		Where("id = ?", id).
		First(&receipt).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &receipt, nil
}

func (r *repo) Recent(ctx context.Context, db *gorm.DB, limit int) ([]*domain.DonationReceipt, error) {
	var receipts []*domain.DonationReceipt
	err := db.WithContext(ctx).
		Order("id desc").
		Limit(limit).
		Find(&receipts).Error
	if err != nil {
		return nil, err
	}
	return receipts, nil
}

func (r *repo) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.DonationReceipt{}).
		Count(&total).Error
	return total, err
}

func tempCertificateNo() string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "TEMP-" + hex[:27]
}
