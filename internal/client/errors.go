package client

import (
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"
)

// APIError is a non-2xx response from the platform. The body is kept so
// callers can surface the server's own message.
type APIError struct {
	StatusCode int
	Status     string
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	if len(e.Message) > 0 {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Status)
}

// checkStatus converts a non-2xx response into an *APIError, pulling the
// error_message field out of the body when the server provides one.
func checkStatus(resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}

	apiErr := &APIError{
		StatusCode: resp.StatusCode(),
		Status:     resp.Status(),
		Body:       resp.Body(),
	}

	var payload struct {
		ErrorMessage string `json:"error_message"`
		Error        string `json:"error"`
	}
	if err := json.Unmarshal(resp.Body(), &payload); err == nil {
		if len(payload.ErrorMessage) > 0 {
			apiErr.Message = payload.ErrorMessage
		} else if len(payload.Error) > 0 {
			apiErr.Message = payload.Error
		}
	}

	return apiErr
}
