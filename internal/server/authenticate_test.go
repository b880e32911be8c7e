package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	eligibilitydomain "github.com/haulware/carriergate/internal/eligibility/domain"
)

func newAuthenticateRouter(eligibility *fakeEligibilityService) *gin.Engine {
	srv := &Server{eligibilitySvc: eligibility}

	router := gin.New()
	router.Use(ErrorHandlingMiddleware())
	router.POST("/api/authenticate", srv.Authenticate)
	return router
}

func TestAuthenticateReturnsVerdictAndSnapshot(t *testing.T) {
	gin.SetMode(gin.TestMode)

	eligibility := &fakeEligibilityService{
		snapshot: eligibilitydomain.Snapshot{
			MCNumber:       "123456",
			LegalName:      "Sunbelt Freight LLC",
			AllowToOperate: "Y",
			OutOfService:   "N",
			SnapshotDate:   "2025-06-01T12:00:00Z",
			Source:         eligibilitydomain.SourceLive,
		},
	}
	router := newAuthenticateRouter(eligibility)

	req := httptest.NewRequest(http.MethodPost, "/api/authenticate", bytes.NewBufferString(`{"mc_number":"123456"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var payload struct {
		Eligible bool                       `json:"eligible"`
		Carrier  eligibilitydomain.Snapshot `json:"carrier"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !payload.Eligible {
		t.Fatal("expected carrier to be eligible")
	}
	if payload.Carrier.LegalName != "Sunbelt Freight LLC" {
		t.Fatalf("unexpected carrier name %q", payload.Carrier.LegalName)
	}
	if len(eligibility.lookups) != 1 || eligibility.lookups[0] != "123456" {
		t.Fatalf("unexpected lookups: %v", eligibility.lookups)
	}
}

func TestAuthenticateReportsIneligibleCarrier(t *testing.T) {
	gin.SetMode(gin.TestMode)

	eligibility := &fakeEligibilityService{
		snapshot: eligibilitydomain.Snapshot{
			MCNumber:       "123456",
			AllowToOperate: "N",
			OutOfService:   "Y",
			Source:         eligibilitydomain.SourceLive,
		},
	}
	router := newAuthenticateRouter(eligibility)

	req := httptest.NewRequest(http.MethodPost, "/api/authenticate", bytes.NewBufferString(`{"mc_number":"123456"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var payload struct {
		Eligible bool `json:"eligible"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Eligible {
		t.Fatal("expected carrier to be ineligible")
	}
}

func TestAuthenticateRequiresMCNumber(t *testing.T) {
	gin.SetMode(gin.TestMode)

	eligibility := &fakeEligibilityService{}
	router := newAuthenticateRouter(eligibility)

	req := httptest.NewRequest(http.MethodPost, "/api/authenticate", bytes.NewBufferString(`{"mc_number":"  "}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
	if len(eligibility.lookups) != 0 {
		t.Fatalf("expected no lookups, got %v", eligibility.lookups)
	}
}

func TestAuthenticateRejectsMalformedBody(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := newAuthenticateRouter(&fakeEligibilityService{})

	req := httptest.NewRequest(http.MethodPost, "/api/authenticate", bytes.NewBufferString(`{"mc_number":`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
	errType, _ := decodeErrorBody(t, resp.Body.Bytes())
	if errType != "validation_error" {
		t.Fatalf("expected validation_error, got %q", errType)
	}
}
