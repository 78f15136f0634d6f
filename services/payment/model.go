package payment

import "fmt"

type IntentStatus string

const (
	IntentSucceeded      IntentStatus = "succeeded"
	IntentRequiresAction IntentStatus = "requires_action"
	IntentFailed         IntentStatus = "failed"
	IntentCancelled      IntentStatus = "cancelled"
)

// IntentResult is the closed set of outcomes a processor call can have.
type IntentResult struct {
	Status    IntentStatus
	IntentUID string
	// Reason and Message are set for failed and cancelled outcomes.
	Reason  FailureReason
	Message string
}

type FailureReason string

const (
	ReasonCardDeclined    FailureReason = "card_declined"
	ReasonInvalidNumber   FailureReason = "invalid_number"
	ReasonInvalidExpiry   FailureReason = "invalid_expiry"
	ReasonInvalidCVC      FailureReason = "invalid_cvc"
	ReasonAuthFailed      FailureReason = "authentication_failed"
	ReasonUserCancelled   FailureReason = "user_cancelled"
	ReasonProcessingError FailureReason = "processing_error"
)

// Error is a structured tokenization/confirmation failure. The message is
// the processor's own wording, passed through untouched.
type Error struct {
	Reason  FailureReason
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason, e.Message)
}

func NewError(reason FailureReason, message string) *Error {
	return &Error{
		Reason:  reason,
		Message: message,
	}
}

// ReasonOf extracts the structured reason from an error, falling back to
// processing_error for anything unrecognized.
func ReasonOf(err error) FailureReason {
	perr, ok := err.(*Error)
	if ok {
		return perr.Reason
	}
	return ReasonProcessingError
}
