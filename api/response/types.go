/*
Package response is the api layer's uniform response handling.

Design rules:
 1. HTTP status mapping lives here, never in the domain or application
    layers.
 2. Error responses expose stable error codes, not internal details;
    stacks and raw errors go to the log only.
 3. Every response carries the request id for log correlation.
 4. Internal failures answer with a generic "internal server error".
*/
package response

// RequestIDKey is the gin context key holding the request id.
const RequestIDKey = "request_id"

// Response is the uniform response envelope.
type Response struct {
	Success   bool           `json:"success"`
	Data      interface{}    `json:"data,omitempty"`
	Error     string         `json:"error,omitempty"` // error code, not details
	Details   map[string]any `json:"details,omitempty"`
	Code      int            `json:"code"`    // HTTP status
	Message   string         `json:"message"` // user-facing message
	RequestID string         `json:"request_id,omitempty"`
}

// PaginatedResponse wraps list payloads with paging metadata.
type PaginatedResponse struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
	Message    string      `json:"message"`
	Code       int         `json:"code"`
	RequestID  string      `json:"request_id,omitempty"`
}

// Pagination carries paging metadata.
type Pagination struct {
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
	TotalItems int64 `json:"total_items"`
}
