package compute

import (
	"encoding/json"
	"fmt"
)

// maxErrorBody bounds the body excerpt kept in a ServiceError.
const maxErrorBody = 1 << 10

// ServiceError is a response with a status outside 2xx.
type ServiceError struct {
	Method string
	Path   string
	Status int
	Body   string // excerpt of the response body
}

func (e *ServiceError) Error() string {
	if d := e.Detail(); d != "" {
		return fmt.Sprintf("compute: %s %s: status %d: %s", e.Method, e.Path, e.Status, d)
	}
	return fmt.Sprintf("compute: %s %s: status %d", e.Method, e.Path, e.Status)
}

// Detail returns the "detail" field of a JSON error body, or the raw
// excerpt when the body has none.
func (e *ServiceError) Detail() string {
	var body struct {
		Detail json.RawMessage `json:"detail"`
	}
	if json.Unmarshal([]byte(e.Body), &body) != nil || len(body.Detail) == 0 {
		return e.Body
	}
	var s string
	if json.Unmarshal(body.Detail, &s) == nil {
		return s
	}
	return string(body.Detail)
}

func newServiceError(method, path string, status int, body []byte) *ServiceError {
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	return &ServiceError{Method: method, Path: path, Status: status, Body: string(body)}
}
