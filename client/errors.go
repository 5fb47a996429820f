package client

import (
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/grupo-nexus/planner/internal/model"
)

// TransportError reports a non-2xx response from the planner service.
type TransportError struct {
	StatusCode int
	Message    string
}

func (e *TransportError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("planner service returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("planner service returned %d", e.StatusCode)
}

// errorFromResponse rebuilds a typed error from an error response body. Auth
// failures carry a "kind" field and become model.AuthError so callers can
// branch on the failure class the same way server-side code does.
func errorFromResponse(resp *resty.Response) error {
	var body struct {
		Error string `json:"error"`
		Kind  string `json:"kind"`
	}
	_ = json.Unmarshal(resp.Body(), &body)

	if body.Kind != "" {
		return &model.AuthError{
			Kind: model.AuthErrorKind(body.Kind),
			Err:  fmt.Errorf("%s", body.Error),
		}
	}
	return &TransportError{StatusCode: resp.StatusCode(), Message: body.Error}
}
