package dto

// StatusResponse is the body of operations that return no payload.
type StatusResponse struct {
	Success bool `json:"success"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Error builds a failure body.
func Error(message string) ErrorResponse {
	return ErrorResponse{Success: false, Message: message}
}
