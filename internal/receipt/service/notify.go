package service

import (
	"net/url"
	"strings"

	"github.com/hokkori/kifukin/internal/receipt/domain"
)

// buildMailBody composes the plain-text confirmation mail. The body
// varies with the normalized payment method: transfer details for bank
// transfers, the card entry link for card payments, neither for cash.
func (s *Service) buildMailBody(name string, kind domain.PaymentKind, cardInputURL string) string {
	lines := []string{
		name + " 様",
		"",
		"この度はご寄附ありがとうございます。",
		"受領書をPDFにてお送りいたします。",
		"",
	}

	switch kind {
	case domain.PaymentBankTransfer:
		info := s.cfg.BankTransferInfo
		if info == "" {
			info = missingBankInfoNotice
		}
		lines = append(lines,
			"【お振込先情報】",
			info,
			"",
		)
	case domain.PaymentCreditCard:
		lines = append(lines,
			"【クレジットカード情報入力】",
			"以下のページからカード情報をご入力ください。",
			cardInputURL,
			"",
		)
	}

	lines = append(lines, "NPO法人ほっこり")
	return strings.Join(lines, "\n")
}

// creditCardInputURL builds the card entry link carrying the
// certificate number. The configured external URL wins; otherwise the
// service's own card entry page under the request host is used.
func (s *Service) creditCardInputURL(baseURL, certificateNo string) string {
	base := s.cfg.CreditCardInputURL
	if base == "" {
		base = strings.TrimRight(baseURL, "/") + "/payment/credit-card"
	}

	separator := "?"
	if strings.Contains(base, "?") {
		separator = "&"
	}
	return base + separator + "certificate_no=" + url.QueryEscape(certificateNo)
}
