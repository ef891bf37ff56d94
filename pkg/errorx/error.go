package errorx

import "fmt"

type Error struct {
	Code    Code
	Message string
}

func (e Error) Error() string {
	return e.Message
}

var Unknown = Error{Code: 100000, Message: "Request failed"}

// New formats a client-facing error. The message is sent to the client as-is,
// so it must never contain internal detail.
func New(code Code, format string, args ...any) Error {
	return Error{Code: code, Message: fmt.Sprintf(format, args...)}
}
