package errors

// Exception is a sentinel error carrying the HTTP status it maps to at the
// transport boundary.
type Exception struct {
	Message    string
	StatusCode int
}

func (e *Exception) Error() string {
	return e.Message
}
