package domain

import (
	"strings"
	"time"
)

// Status is the lifecycle state of a receipt record. A record moves
// from created to exactly one of issued or mail_failed.
type Status string

const (
	StatusCreated    Status = "created"
	StatusIssued     Status = "issued"
	StatusMailFailed Status = "mail_failed"
)

// PaymentKind is the normalized payment category. The submitted
// payment method text is stored verbatim alongside it.
type PaymentKind string

const (
	PaymentBankTransfer PaymentKind = "bank_transfer"
	PaymentCreditCard   PaymentKind = "credit_card"
	PaymentCash         PaymentKind = "cash"
)

// NormalizePaymentMethod maps the free-text payment method to a
// category by exact match. Anything unrecognized counts as cash.
func NormalizePaymentMethod(method string) PaymentKind {
	switch strings.TrimSpace(method) {
	case "銀行振込", "振込", "振り込み":
		return PaymentBankTransfer
	case "クレジットカード":
		return PaymentCreditCard
	default:
		return PaymentCash
	}
}

// DonationReceipt is one row per donation submission. The certificate
// number is derived from the autoincrement id, so rows are created in
// two phases: inserted with a temporary placeholder, then updated once
// the id is known.
type DonationReceipt struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CertificateNo string    `gorm:"size:32;not null;uniqueIndex:uk_certificate_no" json:"certificate_no"`
	DonorName     string    `gorm:"size:255;not null" json:"donor_name"`
	DonorAddress  string    `gorm:"size:255;not null" json:"donor_address"`
	DonorEmail    string    `gorm:"size:255;not null" json:"donor_email"`
	AmountYen     string    `gorm:"size:64;not null" json:"amount_yen"`
	PaymentMethod string    `gorm:"size:64;not null" json:"payment_method"`
	DonatedAt     time.Time `gorm:"not null" json:"donated_at"`
	DownloadToken *string   `gorm:"size:64;uniqueIndex:uk_download_token" json:"download_token,omitempty"`
	Status        Status    `gorm:"size:32;not null;default:created" json:"status"`
	CreatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (DonationReceipt) TableName() string {
	return "donation_receipts"
}
