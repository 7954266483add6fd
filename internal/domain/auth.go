package domain

// LoginRequest is the admin login payload.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is returned on successful admin login. The token is also
// set as an HTTP-only cookie.
type LoginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	Message string `json:"message"`
}

// Stats summarizes the system for the admin dashboard.
type Stats struct {
	TotalEntries    int `json:"total_entries"`
	TotalCategories int `json:"total_categories"`
	TotalFeedback   int `json:"total_feedback"`
	HelpfulPercent  int `json:"helpful_percentage"`
	TotalViews      int `json:"total_views"`
	TotalClicks     int `json:"total_clicks"`
	ClickThrough    int `json:"click_through_rate"`
}
