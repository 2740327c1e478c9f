package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CreditCardInputPage renders the card entry page pre-filled with the
// certificate number from the confirmation redirect.
func (s *Server) CreditCardInputPage(c *gin.Context) {
	c.HTML(http.StatusOK, "credit_card.html", gin.H{
		"certificate_no": strings.TrimSpace(c.Query("certificate_no")),
	})
}
