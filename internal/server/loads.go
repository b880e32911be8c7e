package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	loadboarddomain "github.com/haulware/carriergate/internal/loadboard/domain"
)

func (s *Server) ListLoads(c *gin.Context) {
	var query struct {
		Origin      string `form:"origin"`
		Destination string `form:"destination"`
		MaxMiles    string `form:"max_miles"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	maxMiles, err := parseOptionalFloat(query.MaxMiles)
	if err != nil {
		AbortWithError(c, newValidationError("max_miles", "invalid_max_miles", "invalid max_miles"))
		return
	}

	loads, err := s.loadboardSvc.List(c.Request.Context(), loadboarddomain.ListLoadsRequest{
		Origin:      strings.TrimSpace(query.Origin),
		Destination: strings.TrimSpace(query.Destination),
		MaxMiles:    maxMiles,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, loads)
}
