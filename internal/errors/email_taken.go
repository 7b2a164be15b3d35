package errors

import "net/http"

var ErrEmailTaken = &Exception{
	Message:    "user already exists with this email",
	StatusCode: http.StatusBadRequest,
}
