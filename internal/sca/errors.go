package sca

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSMSChannel indicates the bank offered no mobile-SMS OTP channel
	// for the operation.
	ErrNoSMSChannel = errors.New("sca: no SMS_MOBILE otp channel available")

	// ErrNotAuthenticated indicates the session status check after pin
	// submission came back unauthenticated.
	ErrNotAuthenticated = errors.New("sca: session not authenticated")

	// ErrOTPRejected indicates the bank did not acknowledge the submitted
	// OTP code.
	ErrOTPRejected = errors.New("sca: otp not acknowledged")
)

// SequenceError reports a flow step invoked out of order. The step is
// rejected locally; no request reaches the bank.
type SequenceError struct {
	Step  string
	State string
}

func (e *SequenceError) Error() string {
	return fmt.Sprintf("sca: step %s called in state %s", e.Step, e.State)
}
