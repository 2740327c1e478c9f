package server

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// DownloadReceipt streams a stored PDF as an attachment. The token is
// the sole lookup key; anything unknown or expired is a 404.
func (s *Server) DownloadReceipt(c *gin.Context) {
	token := c.Param("token")

	path, err := s.files.Path(token)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	filename := fmt.Sprintf("寄付受領書_%s.pdf", s.clock.Now().Format("20060102_150405"))
	c.FileAttachment(path, filename)
}
