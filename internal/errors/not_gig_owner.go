package errors

import "net/http"

var ErrNotGigOwner = &Exception{
	Message:    "not authorized to act on this gig",
	StatusCode: http.StatusForbidden,
}
