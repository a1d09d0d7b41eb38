package model

import "github.com/google/uuid"

// ActionResult is the uniform outcome of every mutation surface. Failures of
// any kind are converted to this shape at the action boundary; nothing
// propagates to the caller as an unhandled fault.
type ActionResult struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	OrderID *uuid.UUID `json:"orderId,omitempty"`
}

// Failure builds a failed result from any error, preferring the user-facing
// message of domain errors and hiding internal detail otherwise.
func Failure(err error) ActionResult {
	if de, ok := err.(*DomainError); ok {
		return ActionResult{Success: false, Message: de.Message}
	}
	return ActionResult{Success: false, Message: "An unexpected error occurred. Please try again."}
}
