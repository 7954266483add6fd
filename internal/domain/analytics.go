package domain

import "time"

// Analytics actions
const (
	ActionViewed  = "viewed"
	ActionClicked = "clicked"
)

// AnalyticsEvent records a recommendation being shown to or clicked by a
// user. Viewed and clicked events for the same impression share MessageID
// and RecommendationText; there is no stronger correlation.
type AnalyticsEvent struct {
	ID                 string    `json:"id"`
	RecommendationText string    `json:"recommendationText"`
	RecommendationURL  string    `json:"recommendationUrl"`
	Context            string    `json:"context"`
	Priority           string    `json:"priority"`
	UserQuery          string    `json:"userQuery"`
	SessionID          string    `json:"sessionId"`
	Timestamp          time.Time `json:"timestamp"`
	Action             string    `json:"action"`
	MessageID          string    `json:"messageId"`
}

// AnalyticsRequest is the event submission payload.
type AnalyticsRequest struct {
	RecommendationText string `json:"recommendationText" binding:"required"`
	RecommendationURL  string `json:"recommendationUrl" binding:"required"`
	Context            string `json:"context,omitempty"`
	Priority           string `json:"priority,omitempty"`
	UserQuery          string `json:"userQuery" binding:"required"`
	SessionID          string `json:"sessionId" binding:"required"`
	Action             string `json:"action" binding:"required"`
	MessageID          string `json:"messageId" binding:"required"`
}

// AnalyticsFilter narrows analytics stats queries. Zero values mean no
// filtering on that dimension.
type AnalyticsFilter struct {
	Context   string
	Action    string
	StartDate time.Time
	EndDate   time.Time
}

// RecommendationPerformance aggregates views/clicks per distinct
// recommendation text.
type RecommendationPerformance struct {
	Text     string `json:"text"`
	URL      string `json:"url"`
	Context  string `json:"context"`
	Priority string `json:"priority"`
	Views    int    `json:"views"`
	Clicks   int    `json:"clicks"`
	CTR      int    `json:"ctr"`
}

// AnalyticsStats is the aggregate view over recorded events.
type AnalyticsStats struct {
	TotalViews                int                         `json:"totalViews"`
	TotalClicks               int                         `json:"totalClicks"`
	ClickThroughRate          int                         `json:"clickThroughRate"`
	RecommendationPerformance []RecommendationPerformance `json:"recommendationPerformance"`
	RecentAnalytics           []AnalyticsEvent            `json:"recentAnalytics"`
	Filters                   FilterEcho                  `json:"filters"`
}
