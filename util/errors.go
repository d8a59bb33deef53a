package util

import "fmt"

type KurasaError struct {
	Message string
	Err     error
}

func (e *KurasaError) Error() string {
	return e.Message
}

func (e *KurasaError) Unwrap() error {
	return e.Err
}

// InitError means session or buffer registration setup failed. Fatal, not retried.
type InitError struct {
	*KurasaError
}

// SubmissionError means an operation could not be queued: the submission
// queue was full, the buffer handle was unknown, or the session was closed.
type SubmissionError struct {
	*KurasaError
}

// WaitError means a completion was observed carrying a failure.
type WaitError struct {
	*KurasaError
}

// NoFreePagesError means the pool had no unbound frame left to serve a miss.
type NoFreePagesError struct {
	*KurasaError
}

func NewInitError(msg string, err error) *InitError {
	return &InitError{&KurasaError{Message: msg, Err: err}}
}

func NewSubmissionError(msg string, err error) *SubmissionError {
	return &SubmissionError{&KurasaError{Message: msg, Err: err}}
}

func NewWaitError(msg string, err error) *WaitError {
	return &WaitError{&KurasaError{Message: msg, Err: err}}
}

func NewNoFreePagesError(pageId int64) *NoFreePagesError {
	return &NoFreePagesError{&KurasaError{
		Message: fmt.Sprintf("no free frame left to cache page %d", pageId),
	}}
}
