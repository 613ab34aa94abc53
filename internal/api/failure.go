package api

import (
	"encoding/json"
	"fmt"

	"unitip-client/internal/domain"
)

// errorEnvelope is the structured error body the backend sends alongside a
// non-success status. Some endpoints use "message", older ones "error".
type errorEnvelope struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// MapFailure converts a non-success status plus the raw error body into the
// uniform Failure value. It never panics and always yields a non-empty
// message: a missing or unparseable body falls back to a status-derived one.
func MapFailure(statusCode int, body []byte) *domain.Failure {
	failure := &domain.Failure{Code: statusCode}

	if len(body) > 0 {
		var envelope errorEnvelope
		if err := json.Unmarshal(body, &envelope); err == nil {
			switch {
			case envelope.Message != "":
				failure.Message = envelope.Message
			case envelope.Error != "":
				failure.Message = envelope.Error
			}
		}
	}

	if failure.Message == "" {
		failure.Message = fmt.Sprintf("request failed with status %d", statusCode)
	}
	return failure
}
