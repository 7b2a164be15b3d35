package errors

import "net/http"

var ErrGigAlreadyDecided = &Exception{
	Message:    "gig has already been assigned",
	StatusCode: http.StatusConflict,
}
