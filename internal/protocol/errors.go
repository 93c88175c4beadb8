package protocol

import "fmt"

const (
	msgInvalidFetchMode = "Invalid fetch type. Must be 'all' or 'unread'"
	msgMissingResponse  = "Invalid server response: missing 'response' field"
)

// ProtocolError is the single error kind raised by the codec. Callers tell
// failures apart by Msg only.
type ProtocolError struct {
	Msg string
	Err error
}

func (e *ProtocolError) Error() string {
	return e.Msg
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}

func decodeError(err error) *ProtocolError {
	return &ProtocolError{Msg: fmt.Sprintf("Failed to decode JSON: %v", err), Err: err}
}

func processingError(err error) *ProtocolError {
	return &ProtocolError{Msg: fmt.Sprintf("Error processing server response: %v", err), Err: err}
}
