package domain

import "context"

// SubmitRequest carries the raw donation form fields.
type SubmitRequest struct {
	Name          string
	Address       string
	Email         string
	Amount        string
	PaymentMethod string

	// BaseURL is the scheme://host of the inbound request, used to
	// build the card entry link when no external URL is configured.
	BaseURL string
}

// SubmitResult describes a completed submission.
type SubmitResult struct {
	ReceiptID     int64
	CertificateNo string
	DonorName     string
	PaymentMethod string
	PaymentKind   PaymentKind

	// DownloadToken is the file-cache key for the generated PDF.
	DownloadToken string

	// CreditCardInputURL is the card entry page carrying the
	// certificate number; the caller redirects there for card payments.
	CreditCardInputURL string
}

type Service interface {
	Submit(ctx context.Context, req SubmitRequest) (*SubmitResult, error)
}
