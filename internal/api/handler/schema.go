package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx
// responses. Detail carries machine-readable fields where the client needs
// to react to specifics, such as which product ran out of stock.
type errorResponse struct {
	Error  string         `json:"error"`
	Detail map[string]any `json:"detail,omitempty"`
}

// paginationResponse is the envelope shared by all list endpoints.
type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}
