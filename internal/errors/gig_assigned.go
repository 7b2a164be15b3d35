package errors

import "net/http"

var ErrGigAssigned = &Exception{
	Message:    "cannot modify an assigned gig",
	StatusCode: http.StatusBadRequest,
}
