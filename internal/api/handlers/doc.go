package handlers

// StatusResponse is the liveness probe body.
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// HealthResponse is the body of the legacy /health alias.
type HealthResponse struct {
	OK bool `json:"ok" example:"true"`
}
