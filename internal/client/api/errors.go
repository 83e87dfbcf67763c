package api

import "fmt"

// Error is a structured API rejection: the server answered with a non-2xx
// status and (usually) a JSON body carrying a message and, for the
// unverified-account case, the pending user id. Callers inspect
// StatusCode/UserID to branch (e.g. redirect to 2FA verification) and
// show Message to the user.
type Error struct {
	StatusCode int
	Message    string
	UserID     int64
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.StatusCode)
}

// errorPayload is the wire shape of an API rejection body.
type errorPayload struct {
	Message string `json:"message"`
	UserID  int64  `json:"userId"`
}
