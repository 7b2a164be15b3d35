package errors

import "net/http"

var ErrOwnGigBid = &Exception{
	Message:    "cannot bid on your own gig",
	StatusCode: http.StatusBadRequest,
}
