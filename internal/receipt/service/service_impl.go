package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/hokkori/kifukin/internal/clock"
	"github.com/hokkori/kifukin/internal/config"
	"github.com/hokkori/kifukin/internal/filecache"
	"github.com/hokkori/kifukin/internal/providers/email"
	"github.com/hokkori/kifukin/internal/providers/pdf"
	"github.com/hokkori/kifukin/internal/receipt/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	anonymousDonor        = "匿名"
	unspecifiedMethod     = "未指定"
	mailSubject           = "【NPO法人ほっこり】寄付受領書"
	attachmentName        = "寄付受領書.pdf"
	missingBankInfoNotice = "振込先情報が未設定です。運営までお問い合わせください。"
)

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Cfg   config.Config
	Clock clock.Clock
	Repo  domain.Repository
	PDF   pdf.Provider
	Mail  email.Provider
	Files *filecache.Cache
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	cfg   config.Config
	clock clock.Clock
	repo  domain.Repository
	pdf   pdf.Provider
	mail  email.Provider
	files *filecache.Cache
}

func New(p ServiceParam) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("receipt.service"),
		cfg:   p.Cfg,
		clock: p.Clock,
		repo:  p.Repo,
		pdf:   p.PDF,
		mail:  p.Mail,
		files: p.Files,
	}
}

// Submit runs one donation submission start to finish: create the
// record, render the receipt PDF, mail it, persist the file and mark
// the record issued. Every external call is attempted exactly once.
func (s *Service) Submit(ctx context.Context, req domain.SubmitRequest) (*domain.SubmitResult, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = anonymousDonor
	}
	address := strings.TrimSpace(req.Address)
	emailAddr := strings.TrimSpace(req.Email)
	amount := strings.TrimSpace(req.Amount)
	paymentMethod := strings.TrimSpace(req.PaymentMethod)
	if paymentMethod == "" {
		paymentMethod = unspecifiedMethod
	}

	switch {
	case address == "":
		return nil, domain.NewValidationError("address")
	case emailAddr == "":
		return nil, domain.NewValidationError("email")
	case amount == "":
		return nil, domain.NewValidationError("amount")
	}

	donatedAt := s.clock.Now()

	rec := &domain.DonationReceipt{
		DonorName:     name,
		DonorAddress:  address,
		DonorEmail:    emailAddr,
		AmountYen:     amount,
		PaymentMethod: paymentMethod,
		DonatedAt:     donatedAt,
		Status:        domain.StatusCreated,
	}
	if err := s.repo.Create(ctx, s.db, rec); err != nil {
		s.log.Error("failed to create receipt record", zap.Error(err))
		return nil, fmt.Errorf("create receipt record: %w", err)
	}

	pdfBytes, err := s.pdf.RenderReceipt(ctx, pdf.ReceiptData{
		CertificateNo: rec.CertificateNo,
		DonorName:     name,
		DonorAddress:  address,
		AmountYen:     amount,
		PaymentMethod: paymentMethod,
		DonatedAt:     donatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("render receipt pdf: %w", err)
	}

	kind := domain.NormalizePaymentMethod(paymentMethod)
	linkURL := s.creditCardInputURL(req.BaseURL, rec.CertificateNo)

	if err := s.mail.Send(ctx, email.Message{
		To:             emailAddr,
		Subject:        mailSubject,
		Body:           s.buildMailBody(name, kind, linkURL),
		Attachment:     pdfBytes,
		AttachmentName: attachmentName,
	}); err != nil {
		s.log.Error("failed to send receipt email",
			zap.Int64("receipt_id", rec.ID),
			zap.Error(err),
		)
		if uerr := s.repo.UpdateStatus(ctx, s.db, rec.ID, domain.StatusMailFailed, nil); uerr != nil {
			s.log.Error("failed to mark receipt mail_failed",
				zap.Int64("receipt_id", rec.ID),
				zap.Error(uerr),
			)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrMailDelivery, err)
	}

	token, err := s.files.Save(pdfBytes)
	if err != nil {
		return nil, fmt.Errorf("persist receipt pdf: %w", err)
	}

	// The email already went out; a failed status update must not turn
	// the submission into an error.
	if err := s.repo.UpdateStatus(ctx, s.db, rec.ID, domain.StatusIssued, &token); err != nil {
		s.log.Error("failed to update receipt status",
			zap.Int64("receipt_id", rec.ID),
			zap.Error(err),
		)
	}

	s.log.Info("receipt issued",
		zap.Int64("receipt_id", rec.ID),
		zap.String("certificate_no", rec.CertificateNo),
		zap.String("payment_kind", string(kind)),
	)

	return &domain.SubmitResult{
		ReceiptID:          rec.ID,
		CertificateNo:      rec.CertificateNo,
		DonorName:          name,
		PaymentMethod:      paymentMethod,
		PaymentKind:        kind,
		DownloadToken:      token,
		CreditCardInputURL: linkURL,
	}, nil
}
