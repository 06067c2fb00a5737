// Package types holds the wire envelopes shared by every storefront
// endpoint. Handlers never write bare payloads; success data rides under
// "data" and failures under "error".
package types

type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the public error shape. Details is only populated for
// validation and upstream failures.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
