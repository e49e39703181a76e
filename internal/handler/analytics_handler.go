package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/techtornix/techtornix-api/internal/service"
	"github.com/techtornix/techtornix-api/internal/utils"
)

const (
	visitorCookie    = "tx_visitor"
	visitorSigCookie = "tx_visitor_sig"
	visitorCookieTTL = 365 * 24 * 3600
)

// AnalyticsHandler handles page-view ingest and the admin traffic summary.
type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
	visitorSecret    string
}

// NewAnalyticsHandler constructs an AnalyticsHandler.
func NewAnalyticsHandler(analyticsService *service.AnalyticsService, visitorSecret string) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		visitorSecret:    visitorSecret,
	}
}

// RecordView handles POST /v1/analytics/views (public)
func (h *AnalyticsHandler) RecordView(c *gin.Context) {
	var req struct {
		Path     string `json:"path" binding:"required"`
		Referrer string `json:"referrer"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Path is required")
		return
	}

	visitorID := h.resolveVisitor(c)
	err := h.analyticsService.RecordView(c.Request.Context(), req.Path, req.Referrer, visitorID, c.Request.UserAgent())
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to record view")
		return
	}
	c.Status(http.StatusNoContent)
}

// resolveVisitor returns the signed visitor ID from the request cookies,
// minting a fresh one when the cookie is missing or its signature fails.
func (h *AnalyticsHandler) resolveVisitor(c *gin.Context) string {
	id, idErr := c.Cookie(visitorCookie)
	sig, sigErr := c.Cookie(visitorSigCookie)
	if idErr == nil && sigErr == nil && utils.VerifyVisitorID(id, sig, h.visitorSecret) {
		return id
	}

	id = uuid.NewString()
	sig = utils.SignVisitorID(id, h.visitorSecret)
	c.SetCookie(visitorCookie, id, visitorCookieTTL, "/", "", false, true)
	c.SetCookie(visitorSigCookie, sig, visitorCookieTTL, "/", "", false, true)
	return id
}

// Summary handles GET /v1/admin/analytics/summary
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))

	summary, err := h.analyticsService.GetSummary(days)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to build analytics summary")
		return
	}
	utils.Success(c, 200, "Analytics summary retrieved", summary)
}
