package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	calllogdomain "github.com/haulware/carriergate/internal/calllog/domain"
)

// DashboardEnabled gates the public dashboard behind PUBLIC_DASHBOARD.
func (s *Server) DashboardEnabled() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.cfg.PublicDashboard {
			AbortWithError(c, ErrForbidden)
			return
		}
		c.Next()
	}
}

func (s *Server) DashboardPage(c *gin.Context) {
	c.File("./public/dashboard.html")
}

func (s *Server) DashboardData(c *gin.Context) {
	report, err := s.calllogSvc.Query(c.Request.Context(), calllogdomain.QueryRequest{
		From: c.Query("from"),
		To:   c.Query("to"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
