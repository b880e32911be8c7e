package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	calllogdomain "github.com/haulware/carriergate/internal/calllog/domain"
	"github.com/haulware/carriergate/internal/money"
)

type callResultRequest struct {
	Transcript *string      `json:"transcript"`
	MCNumber   string       `json:"mc_number"`
	LoadID     string       `json:"load_id"`
	FinalPrice money.Amount `json:"final_price"`
	Accepted   *bool        `json:"accepted"`
}

// RecordCallResult appends one finished call to the ledger. Everything but
// the transcript is optional; an empty transcript is still a valid call.
func (s *Server) RecordCallResult(c *gin.Context) {
	var req callResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if req.Transcript == nil {
		AbortWithError(c, newValidationError("transcript", "required", "transcript is required"))
		return
	}

	record, err := s.calllogSvc.Append(c.Request.Context(), calllogdomain.AppendRequest{
		MCNumber:   req.MCNumber,
		LoadID:     req.LoadID,
		FinalPrice: req.FinalPrice,
		Accepted:   req.Accepted,
		Transcript: *req.Transcript,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "summary": record})
}
