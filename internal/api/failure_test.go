package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapFailure(t *testing.T) {
	tests := []struct {
		name        string
		statusCode  int
		body        string
		wantMessage string
	}{
		{
			name:        "structured_message",
			statusCode:  400,
			body:        `{"message":"price too low"}`,
			wantMessage: "price too low",
		},
		{
			name:        "legacy_error_field",
			statusCode:  401,
			body:        `{"error":"invalid or expired session"}`,
			wantMessage: "invalid or expired session",
		},
		{
			name:        "message_wins_over_error",
			statusCode:  400,
			body:        `{"message":"primary","error":"secondary"}`,
			wantMessage: "primary",
		},
		{
			name:        "empty_body_falls_back_to_status",
			statusCode:  500,
			body:        "",
			wantMessage: "request failed with status 500",
		},
		{
			name:        "unparseable_body_falls_back_to_status",
			statusCode:  502,
			body:        "<html>bad gateway</html>",
			wantMessage: "request failed with status 502",
		},
		{
			name:        "structured_body_without_known_fields",
			statusCode:  404,
			body:        `{"detail":"gone"}`,
			wantMessage: "request failed with status 404",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			failure := MapFailure(tt.statusCode, []byte(tt.body))

			assert.NotEmpty(t, failure.Message)
			assert.Equal(t, tt.wantMessage, failure.Message)
			assert.Equal(t, tt.statusCode, failure.Code)
		})
	}
}
