package pdf

import (
	"context"
	"time"
)

// ReceiptData carries everything drawn on the receipt document.
type ReceiptData struct {
	CertificateNo string
	DonorName     string
	DonorAddress  string
	AmountYen     string
	PaymentMethod string
	DonatedAt     time.Time
}

type Provider interface {
	RenderReceipt(ctx context.Context, data ReceiptData) ([]byte, error)
}
