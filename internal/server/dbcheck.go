package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// DBCheck reports database connectivity and whether the receipts table
// exists. Diagnostic only, not authenticated.
func (s *Server) DBCheck(c *gin.Context) {
	ctx := c.Request.Context()

	var ok int
	if err := s.db.WithContext(ctx).Raw("SELECT 1").Scan(&ok).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":                       true,
		"database":                 s.cfg.DB.Name,
		"donation_receipts_exists": s.db.WithContext(ctx).Migrator().HasTable("donation_receipts"),
	})
}

// DBCheckReceipts returns the row count and the most recent rows.
func (s *Server) DBCheckReceipts(c *gin.Context) {
	ctx := c.Request.Context()

	total, err := s.repo.Count(ctx, s.db)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	rows, err := s.repo.Recent(ctx, s.db, 20)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":    true,
		"total": total,
		"rows":  rows,
	})
}
