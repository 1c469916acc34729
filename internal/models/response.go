package models

// ExtractResponse is returned by POST /extract-code. Code holds either the
// activation code or the not-found message.
type ExtractResponse struct {
	Code string `json:"code"`
}

// ErrorResponse is returned for failed requests
type ErrorResponse struct {
	Error string `json:"error"`
}
