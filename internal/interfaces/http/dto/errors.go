package dto

import "net/http"

// General error codes
const (
	ErrCodeInternal   = "INTERNAL"
	ErrCodeBadRequest = "BAD_REQUEST"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Validation failures map to 400, missing resources to 404, uniqueness
// conflicts to 409 and business rule violations to 422.
var errorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,

	"INVALID_TYPE":         http.StatusBadRequest,
	"INVALID_NUMBER":       http.StatusBadRequest,
	"INVALID_LINE":         http.StatusBadRequest,
	"INVALID_QUANTITY":     http.StatusBadRequest,
	"INVALID_PRODUCT":      http.StatusBadRequest,
	"INVALID_PRICE":        http.StatusBadRequest,
	"INVALID_DISCOUNT":     http.StatusBadRequest,
	"INVALID_DELIVERY_FEE": http.StatusBadRequest,
	"INVALID_STAMP_DUTY":   http.StatusBadRequest,
	"INVALID_STATUS":       http.StatusBadRequest,
	"INVALID_NAME":         http.StatusBadRequest,
	"INVALID_REFERENCE":    http.StatusBadRequest,

	"NOT_FOUND": http.StatusNotFound,

	"DUPLICATE_NUMBER":     http.StatusConflict,
	"DUPLICATE_REFERENCE":  http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,

	"INVALID_STATE":      http.StatusUnprocessableEntity,
	"INSUFFICIENT_STOCK": http.StatusUnprocessableEntity,
	"UNKNOWN_PRODUCT":    http.StatusUnprocessableEntity,
	"NO_STATUS_FLOW":     http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes default to 500 Internal Server Error.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
