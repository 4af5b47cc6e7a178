package api

import (
	"github.com/danielgtaylor/huma/v2"
)

// Envelope versioning. Bump only on breaking envelope-shape changes;
// payload schema changes ride on API versioning instead.
const envelopeVersion = 1

// successEnvelope wraps successful responses.
type successEnvelope struct {
	V       int  `json:"v"`
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

// simpleErrorEnvelope wraps errors that carry only a message.
type simpleErrorEnvelope struct {
	V       int    `json:"v"`
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// detailedErrorEnvelope wraps errors with a machine-readable code.
type detailedErrorEnvelope struct {
	V       int    `json:"v"`
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// EnvelopeTransformer wraps every response body in the versioned envelope:
//
//	success:        {"v":1,"success":true,"data":...}
//	simple error:   {"v":1,"success":false,"error":"..."}
//	detailed error: {"v":1,"success":false,"code":"...","message":"...","details":...}
//
// The version field is named exactly "v"; clients match on it.
func EnvelopeTransformer(_ huma.Context, _ string, v any) (any, error) {
	if apiErr, ok := v.(*APIError); ok {
		if apiErr.Code == "" {
			return &simpleErrorEnvelope{
				V:       envelopeVersion,
				Success: false,
				Error:   apiErr.Message,
			}, nil
		}
		return &detailedErrorEnvelope{
			V:       envelopeVersion,
			Success: false,
			Code:    apiErr.Code,
			Message: apiErr.Message,
			Details: apiErr.Details,
		}, nil
	}

	if statusErr, ok := v.(huma.StatusError); ok {
		return &simpleErrorEnvelope{
			V:       envelopeVersion,
			Success: false,
			Error:   statusErr.Error(),
		}, nil
	}

	return &successEnvelope{
		V:       envelopeVersion,
		Success: true,
		Data:    v,
	}, nil
}
