package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/haulware/carriergate/internal/money"
	negotiationdomain "github.com/haulware/carriergate/internal/negotiation/domain"
	obscontext "github.com/haulware/carriergate/internal/observability/context"
)

type negotiateRequest struct {
	MCNumber string       `json:"mc_number"`
	LoadID   string       `json:"load_id"`
	Offer    money.Amount `json:"offer"`
}

func (s *Server) Negotiate(c *gin.Context) {
	var req negotiateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	mcNumber := strings.TrimSpace(req.MCNumber)
	loadID := strings.TrimSpace(req.LoadID)
	if mcNumber == "" {
		AbortWithError(c, newValidationError("mc_number", "required", "mc_number is required"))
		return
	}
	if loadID == "" {
		AbortWithError(c, newValidationError("load_id", "required", "load_id is required"))
		return
	}

	ctx := obscontext.WithMCNumber(c.Request.Context(), mcNumber)
	ctx = obscontext.WithLoadID(ctx, loadID)

	outcome, err := s.negotiationSvc.Evaluate(ctx, negotiationdomain.EvaluateRequest{
		MCNumber: mcNumber,
		LoadID:   loadID,
		Offer:    req.Offer,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, outcome)
}
