package errors

import "net/http"

var ErrStoreUnavailable = &Exception{
	Message:    "store temporarily unavailable",
	StatusCode: http.StatusServiceUnavailable,
}
