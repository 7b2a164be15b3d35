package errors

import "net/http"

var ErrNotBidOwner = &Exception{
	Message:    "not authorized to act on this bid",
	StatusCode: http.StatusForbidden,
}
