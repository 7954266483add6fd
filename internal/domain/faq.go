package domain

// FaqEntry is one knowledge-base question/answer unit with matching tags.
// Entries are loaded once at startup and never mutated.
type FaqEntry struct {
	ID              string           `json:"id"`
	Category        string           `json:"category"`
	Tags            []string         `json:"tags"`
	Question        string           `json:"question"`
	AnswerHTML      string           `json:"answer_html"`
	QuickActions    []QuickAction    `json:"quick_actions"`
	Recommendations []Recommendation `json:"recommendations,omitempty"`
}

// QuickAction is a follow-up offered beneath an answer: either an external
// link (URL set) or a canned question re-submitted to the assistant (Action
// or bare Text set).
type QuickAction struct {
	Text   string `json:"text"`
	URL    string `json:"url,omitempty"`
	Action string `json:"action,omitempty"`
}

// Recommendation is a cross-sell suggestion surfaced alongside certain
// answers and tracked for view/click analytics.
type Recommendation struct {
	Text     string `json:"text"`
	URL      string `json:"url"`
	Priority string `json:"priority"`
	Context  string `json:"context"`
}

// QueryRequest is the assistant query payload.
type QueryRequest struct {
	Query string `json:"query" binding:"required"`
}

// QueryResponse is the assistant answer for a query.
type QueryResponse struct {
	AnswerHTML      string           `json:"answer_html"`
	QuickActions    []QuickAction    `json:"quick_actions"`
	Recommendations []Recommendation `json:"recommendations"`
}

// RecommendRequest asks for follow-up question suggestions for a query.
// Exclude carries question texts already shown or clicked in the session.
type RecommendRequest struct {
	Query   string   `json:"query" binding:"required"`
	Exclude []string `json:"exclude,omitempty"`
}

// RecommendResponse carries up to three suggested follow-up questions.
type RecommendResponse struct {
	Recommendations []QuickAction `json:"recommendations"`
}
