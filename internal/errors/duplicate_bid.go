package errors

import "net/http"

var ErrDuplicateBid = &Exception{
	Message:    "a bid for this gig already exists",
	StatusCode: http.StatusConflict,
}
