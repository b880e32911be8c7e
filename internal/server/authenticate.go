package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	obscontext "github.com/haulware/carriergate/internal/observability/context"
)

type authenticateRequest struct {
	MCNumber string `json:"mc_number"`
}

// Authenticate resolves a carrier's authority snapshot and its operating
// verdict. The lookup itself never fails the request; registry outages are
// absorbed by the fallback snapshot.
func (s *Server) Authenticate(c *gin.Context) {
	var req authenticateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	mcNumber := strings.TrimSpace(req.MCNumber)
	if mcNumber == "" {
		AbortWithError(c, newValidationError("mc_number", "required", "mc_number is required"))
		return
	}

	ctx := obscontext.WithMCNumber(c.Request.Context(), mcNumber)
	snapshot, err := s.eligibilitySvc.Lookup(ctx, mcNumber)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.obsMetrics.RecordCarrierCall(ctx, snapshot.Source)

	c.JSON(http.StatusOK, gin.H{
		"eligible": snapshot.Eligible(),
		"carrier":  snapshot,
	})
}
