package dto

type ErrorResponse struct {
	Error    bool   `json:"error"`
	Message  string `json:"message"`
	LoginURL string `json:"login_url,omitempty"`
}

// ValidationErrorResponse lets a client re-render the submitted form.
type ValidationErrorResponse struct {
	Error   bool              `json:"error"`
	Message string            `json:"message"`
	Errors  []string          `json:"errors"`
	Values  map[string]string `json:"values"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type ReadinessResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
