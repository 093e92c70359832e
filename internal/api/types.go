// Package api defines the response envelopes shared by every HTTP handler.
package api

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is a plain acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}

// StatusResponse is returned by the health, readiness and liveness endpoints.
type StatusResponse struct {
	Status  string `json:"status"`
	Service string `json:"service,omitempty"`
}

// InfoResponse is returned by the root endpoint.
type InfoResponse struct {
	App     string `json:"app"`
	Version string `json:"version"`
	Docs    string `json:"docs"`
}
