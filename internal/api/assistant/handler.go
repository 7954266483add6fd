package assistant

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/afubot/afu-assistant/internal/domain"
	"github.com/afubot/afu-assistant/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler handles the public assistant widget API
type Handler struct {
	assistantService *service.AssistantService
	feedbackService  *service.FeedbackService
	analyticsService *service.AnalyticsService
	logger           *zap.Logger
}

// NewHandler creates a new assistant handler
func NewHandler(
	assistantService *service.AssistantService,
	feedbackService *service.FeedbackService,
	analyticsService *service.AnalyticsService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		assistantService: assistantService,
		feedbackService:  feedbackService,
		analyticsService: analyticsService,
		logger:           logger,
	}
}

// RegisterRoutes registers assistant routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/query", h.Query)
	r.POST("/recommend", h.Recommend)
	r.POST("/feedback", h.SubmitFeedback)
	r.GET("/feedback", h.FeedbackStats)
	r.POST("/analytics", h.RecordAnalytics)
	r.GET("/analytics", h.AnalyticsStats)
}

// Query answers a widget question
func (h *Handler) Query(c *gin.Context) {
	var req domain.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is missing"})
		return
	}

	resp, err := h.assistantService.Query(c.Request.Context(), req.Query)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Recommend suggests follow-up questions for a query
func (h *Handler) Recommend(c *gin.Context) {
	var req domain.RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is missing"})
		return
	}

	actions, err := h.assistantService.Recommend(c.Request.Context(), req.Query, req.Exclude)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, domain.RecommendResponse{Recommendations: actions})
}

// SubmitFeedback records one feedback verdict
func (h *Handler) SubmitFeedback(c *gin.Context) {
	var req domain.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields"})
		return
	}

	if _, err := h.feedbackService.Record(c.Request.Context(), &req); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "feedback recorded successfully",
	})
}

// FeedbackStats returns feedback aggregates, optionally filtered
func (h *Handler) FeedbackStats(c *gin.Context) {
	filter := domain.FeedbackFilter{}
	echo := domain.FilterEcho{
		Reason:    c.Query("reason"),
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
	}

	if echo.Reason != "" && echo.Reason != "all" {
		filter.Reason = echo.Reason
	}

	var err error
	if filter.StartDate, filter.EndDate, err = parseDateRange(echo.StartDate, echo.EndDate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stats, err := h.feedbackService.Stats(c.Request.Context(), filter, echo)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// RecordAnalytics records one recommendation view/click event
func (h *Handler) RecordAnalytics(c *gin.Context) {
	var req domain.AnalyticsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields"})
		return
	}

	if _, err := h.analyticsService.Record(c.Request.Context(), &req); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "analytics recorded successfully",
	})
}

// AnalyticsStats returns recommendation aggregates, optionally filtered
func (h *Handler) AnalyticsStats(c *gin.Context) {
	filter := domain.AnalyticsFilter{}
	echo := domain.FilterEcho{
		Context:   c.Query("context"),
		Action:    c.Query("action"),
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
	}

	if echo.Context != "" && echo.Context != "all" {
		filter.Context = echo.Context
	}
	if echo.Action != "" && echo.Action != "all" {
		filter.Action = echo.Action
	}

	var err error
	if filter.StartDate, filter.EndDate, err = parseDateRange(echo.StartDate, echo.EndDate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stats, err := h.analyticsService.Stats(c.Request.Context(), filter, echo)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *Handler) respondError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrInvalidRequest) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.logger.Error("assistant request failed", zap.Error(err), zap.String("path", c.FullPath()))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "an unexpected server error occurred"})
}

// parseDateRange parses the optional startDate/endDate query parameters,
// accepting RFC3339 timestamps or bare dates.
func parseDateRange(start, end string) (time.Time, time.Time, error) {
	var startDate, endDate time.Time
	var err error

	if start != "" {
		if startDate, err = parseDate(start); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid startDate: %s", start)
		}
	}
	if end != "" {
		if endDate, err = parseDate(end); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid endDate: %s", end)
		}
	}
	return startDate, endDate, nil
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
