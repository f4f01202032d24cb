package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrAlreadyProcessed  = errors.New("payment already processed")
)

// InvalidTransitionError reports an action that is not legal from Status.
// It matches ErrInvalidTransition with errors.Is.
type InvalidTransitionError struct {
	Status Status
	Action Action
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition: action %q not allowed from status %s", e.Action, e.Status)
}

func (e *InvalidTransitionError) Is(target error) bool { return target == ErrInvalidTransition }

// TransportError is any failure not described by the API's error taxonomy:
// network errors, 5xx, unexpected statuses and undecodable bodies.
type TransportError struct {
	Op     string
	Status int // 0 when no response arrived
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: transport error (status %d): %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: transport error: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// APIError is a structured error answer. It unwraps to the matching SDK error.
type APIError struct {
	Status  int
	Code    string
	Message string
	cause   error
}

func (e *APIError) Error() string { return fmt.Sprintf("%s (%d %s)", e.Message, e.Status, e.Code) }

func (e *APIError) Unwrap() error { return e.cause }

type errorBody struct {
	Error string         `json:"error"`
	Code  string         `json:"code"`
	Meta  map[string]any `json:"meta"`
}

// decodeError maps a non-2xx response body.
func decodeError(op string, status int, body []byte) error {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil || eb.Code == "" {
		return &TransportError{Op: op, Status: status, Err: fmt.Errorf("unexpected response: %s", http.StatusText(status))}
	}
	apiErr := &APIError{Status: status, Code: eb.Code, Message: eb.Error}
	switch eb.Code {
	case "invalid_transition":
		estado, _ := eb.Meta["estado"].(string)
		accion, _ := eb.Meta["accion"].(string)
		apiErr.cause = &InvalidTransitionError{Status: Status(estado), Action: Action(accion)}
	case "already_processed":
		apiErr.cause = ErrAlreadyProcessed
	case "not_found":
		apiErr.cause = ErrNotFound
	case "invalid_input", "validation_failed", "invalid_body":
		apiErr.cause = ErrInvalidInput
	default:
		if status >= http.StatusInternalServerError {
			return &TransportError{Op: op, Status: status, Err: apiErr}
		}
	}
	return apiErr
}
