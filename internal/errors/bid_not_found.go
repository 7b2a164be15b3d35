package errors

import "net/http"

var ErrBidNotFound = &Exception{
	Message:    "bid not found",
	StatusCode: http.StatusNotFound,
}
