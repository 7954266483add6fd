package domain

import "time"

// Feedback values
const (
	FeedbackHelpful    = "helpful"
	FeedbackNotHelpful = "not-helpful"
)

// Feedback reasons (given only with not-helpful feedback)
const (
	ReasonContentUnclear    = "content-unclear"
	ReasonContentIncomplete = "content-incomplete"
	ReasonWrongURL          = "wrong-url"
	ReasonIrrelevantAnswer  = "irrelevant-answer"
	ReasonOther             = "other"
)

// FeedbackReasons lists the allowed reasons in display order.
var FeedbackReasons = []string{
	ReasonContentUnclear,
	ReasonContentIncomplete,
	ReasonWrongURL,
	ReasonIrrelevantAnswer,
	ReasonOther,
}

// FeedbackRecord is one user verdict on an assistant answer. Records are
// append-only; the admin UI's review status lives client-side.
type FeedbackRecord struct {
	MessageID    string    `json:"messageId"`
	Feedback     string    `json:"feedback"`
	Reason       string    `json:"reason,omitempty"`
	CustomReason string    `json:"customReason,omitempty"`
	Query        string    `json:"query"`
	Answer       string    `json:"answer"`
	Timestamp    time.Time `json:"timestamp"`
	SessionID    string    `json:"sessionId,omitempty"`
}

// FeedbackRequest is the feedback submission payload.
type FeedbackRequest struct {
	MessageID    string `json:"messageId" binding:"required"`
	Feedback     string `json:"feedback" binding:"required"`
	Reason       string `json:"reason,omitempty"`
	CustomReason string `json:"customReason,omitempty"`
	Query        string `json:"query" binding:"required"`
	Answer       string `json:"answer" binding:"required"`
	SessionID    string `json:"sessionId,omitempty"`
}

// FeedbackFilter narrows feedback stats queries. Zero values mean no
// filtering on that dimension.
type FeedbackFilter struct {
	Reason    string
	StartDate time.Time
	EndDate   time.Time
}

// FeedbackStats is the aggregate view over recorded feedback.
type FeedbackStats struct {
	Total             int              `json:"total"`
	Helpful           int              `json:"helpful"`
	NotHelpful        int              `json:"notHelpful"`
	HelpfulPercentage int              `json:"helpfulPercentage"`
	ReasonStats       map[string]int   `json:"reasonStats"`
	RecentFeedback    []FeedbackRecord `json:"recentFeedback"`
	Filters           FilterEcho       `json:"filters"`
}

// FilterEcho repeats the filters a stats query was computed with.
type FilterEcho struct {
	Reason    string `json:"reason,omitempty"`
	Context   string `json:"context,omitempty"`
	Action    string `json:"action,omitempty"`
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
}
