package service

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrRes interface error message returned
type ErrRes struct {
	Error string `json:"error"` //Error message
}

// ValidationError the caller sent something unusable, answered with 400
type ValidationError struct {
	Msg     string
	Invalid []string //Offending values, if any
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func invalidColors(values []string) *ValidationError {
	return &ValidationError{
		Msg:     "Invalid hex colors: " + strings.Join(values, ", "),
		Invalid: values,
	}
}

// ErrorKind names the failure a relay request ended with.
type ErrorKind int

const (
	BadRequest ErrorKind = iota + 1
	SenderResolutionError
	RecipientResolutionError
	PublishError
	MintSubmissionError
	MintConfirmationError
)

var kindNames = map[ErrorKind]string{
	BadRequest:               "bad_request",
	SenderResolutionError:    "sender_resolution",
	RecipientResolutionError: "recipient_resolution",
	PublishError:             "publish",
	MintSubmissionError:      "mint_submission",
	MintConfirmationError:    "mint_confirmation",
}

// kindMessages are the only error strings a relay caller sees for downstream failures.
var kindMessages = map[ErrorKind]string{
	SenderResolutionError:    "Failed to decode transaction sender",
	RecipientResolutionError: "Failed to fetch NFT owners for hex colors",
	PublishError:             "Failed to upload to IPFS",
	MintSubmissionError:      "Failed to mint NFT on contract",
	MintConfirmationError:    "Mint transaction was submitted but not confirmed; manual intervention required",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// RelayError is the single error shape returned by the relay workflow.
type RelayError struct {
	Kind  ErrorKind
	State State //State the workflow was in when it failed
	Err   error
	// Pending is set when a mint was broadcast but never confirmed, so an operator can follow it up.
	Pending *PendingMint
}

func (e *RelayError) Error() string {
	return fmt.Sprintf("%s failed in %s: %v", e.Kind, e.State, e.Err)
}

func (e *RelayError) Unwrap() error {
	return e.Err
}

// Status maps the failure to the HTTP status of the relay endpoint.
func (e *RelayError) Status() int {
	if e.Kind == BadRequest {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Message is the user visible error string. Validation messages are passed through, everything
// else collapses to a fixed string per kind.
func (e *RelayError) Message() string {
	if e.Kind == BadRequest {
		var v *ValidationError
		if errors.As(e.Err, &v) {
			return v.Msg
		}
		return "Invalid request"
	}
	return kindMessages[e.Kind]
}
