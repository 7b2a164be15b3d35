package errors

import "net/http"

var ErrBidNotPending = &Exception{
	Message:    "bid has already been processed",
	StatusCode: http.StatusBadRequest,
}
