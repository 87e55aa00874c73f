package types

// SuccessResponse is the body returned when a submission was accepted and
// its notification dispatched.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ErrorResponse is the body returned for every failed request. The site's
// forms render the Error string directly.
type ErrorResponse struct {
	Error string `json:"error"`
}
