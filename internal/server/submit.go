package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	receiptdomain "github.com/hokkori/kifukin/internal/receipt/domain"
)

// Submit handles one donation form submission.
func (s *Server) Submit(c *gin.Context) {
	req := receiptdomain.SubmitRequest{
		Name:          c.PostForm("name"),
		Address:       c.PostForm("address"),
		Email:         c.PostForm("email"),
		Amount:        c.PostForm("amount"),
		PaymentMethod: c.PostForm("payment_method"),
		BaseURL:       requestBaseURL(c),
	}

	res, err := s.receipts.Submit(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	// Card payments continue on the card entry page instead of the
	// confirmation page.
	if res.PaymentKind == receiptdomain.PaymentCreditCard {
		c.Redirect(http.StatusFound, res.CreditCardInputURL)
		return
	}

	c.HTML(http.StatusOK, "thanks.html", gin.H{
		"name":               res.DonorName,
		"token":              res.DownloadToken,
		"certificate_no":     res.CertificateNo,
		"payment_method":     res.PaymentMethod,
		"payment_kind":       string(res.PaymentKind),
		"bank_transfer_info": s.cfg.BankTransferInfo,
	})
}

func requestBaseURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host
}
