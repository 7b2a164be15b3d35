package errors

import "net/http"

var ErrGigNotOpen = &Exception{
	Message:    "gig is no longer accepting bids",
	StatusCode: http.StatusBadRequest,
}
