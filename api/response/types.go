// Package response renders the uniform HTTP envelope. Status code
// mapping lives here so the domain and application layers never see
// HTTP. Internal errors reach the client as a generic message; the
// real error, with its origin stack, goes to the log only.
package response

// RequestIDKey is the gin context key the request id middleware sets.
const RequestIDKey = "request_id"

// Response is the single-object envelope.
type Response struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
	Code      int         `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"request_id,omitempty"`
}

// PaginatedResponse is the list envelope.
type PaginatedResponse struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
	Message    string      `json:"message"`
	Code       int         `json:"code"`
	RequestID  string      `json:"request_id,omitempty"`
}

// Pagination mirrors the page the query returned.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}
