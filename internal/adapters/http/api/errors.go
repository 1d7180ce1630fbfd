package api

import "errors"

// ErrBadRequest marks request validation failures.
var ErrBadRequest = errors.New("bad request")

// Machine-readable error codes returned in the error envelope.
const (
	codeValidation       = "VALIDATION_ERROR"
	codeInvalidRequest   = "INVALID_REQUEST"
	codeModelNotReady    = "MODEL_NOT_READY"
	codeInternal         = "INTERNAL_ERROR"
	codeStatus           = "STATUS_ERROR"
	codeNotFound         = "NOT_FOUND"
	codeMethodNotAllowed = "METHOD_NOT_ALLOWED"
)
