package sca

import (
	"context"

	"github.com/scabridge/scabridge/internal/keypad"
)

type loginState int

const (
	loginInit loginState = iota
	loginCredentialsSubmitted
	loginKeypadFetched
	loginPinSubmitted
	loginConfirmed
)

func (s loginState) String() string {
	switch s {
	case loginInit:
		return "INIT"
	case loginCredentialsSubmitted:
		return "CREDENTIALS_SUBMITTED"
	case loginKeypadFetched:
		return "KEYPAD_FETCHED"
	case loginPinSubmitted:
		return "PIN_SUBMITTED"
	case loginConfirmed:
		return "SESSION_CONFIRMED"
	}
	return "UNKNOWN"
}

// LoginFlow drives the initial authentication sequence: credentials, keypad
// challenge, pin clicks, session confirmation. Steps must run in order; an
// out-of-order call fails locally without touching the network.
type LoginFlow struct {
	ctrl       *Controller
	state      loginState
	internalID string
	positions  []int
	clicks     []keypad.Click
}

// NewLogin starts a login flow in INIT.
func (c *Controller) NewLogin() *LoginFlow {
	return &LoginFlow{ctrl: c}
}

// InternalID returns the customer identifier the bank assigned at credential
// submission, retained for the session.
func (f *LoginFlow) InternalID() string {
	return f.internalID
}

// SubmitCredentials posts the customer identifier and birthdate. The
// response seeds the session cookie.
func (f *LoginFlow) SubmitCredentials(ctx context.Context) error {
	if f.state != loginInit {
		return &SequenceError{Step: "SubmitCredentials", State: f.state.String()}
	}
	var resp struct {
		InternalID string `json:"internalId"`
	}
	body := map[string]any{
		"cif":       f.ctrl.creds.CIF,
		"birthDate": f.ctrl.creds.BirthDate,
	}
	if err := f.ctrl.api.PostJSON(ctx, "login/cif", body, &resp); err != nil {
		return err
	}
	f.internalID = resp.InternalID
	f.state = loginCredentialsSubmitted
	return nil
}

// FetchKeypad requests the challenge metadata and the keypad image, then
// classifies the image and computes the clicks for the requested positions.
func (f *LoginFlow) FetchKeypad(ctx context.Context) error {
	if f.state != loginCredentialsSubmitted {
		return &SequenceError{Step: "FetchKeypad", State: f.state.String()}
	}
	var challenge struct {
		PinPositions []int `json:"pinPositions"`
	}
	if err := f.ctrl.api.PostJSON(ctx, "login/keypad", map[string]any{"keyPadSize": declaredKeyPadSize}, &challenge); err != nil {
		return err
	}

	raw, err := f.ctrl.api.GetBytes(ctx, "keypad/newkeypad.png")
	if err != nil {
		return err
	}

	clicks, err := f.ctrl.solveKeypad(raw, challenge.PinPositions)
	if err != nil {
		return err
	}

	f.positions = challenge.PinPositions
	f.clicks = clicks
	f.state = loginKeypadFetched
	return nil
}

// SubmitPIN posts the synthesized click coordinates.
func (f *LoginFlow) SubmitPIN(ctx context.Context) error {
	if f.state != loginKeypadFetched {
		return &SequenceError{Step: "SubmitPIN", State: f.state.String()}
	}
	body := map[string]any{"clickPositions": clickPairs(f.clicks)}
	if err := f.ctrl.api.PostJSON(ctx, "login/sca/pin", body, nil); err != nil {
		return err
	}
	f.state = loginPinSubmitted
	return nil
}

// ConfirmSession queries the session status and completes the flow.
func (f *LoginFlow) ConfirmSession(ctx context.Context) error {
	if f.state != loginPinSubmitted {
		return &SequenceError{Step: "ConfirmSession", State: f.state.String()}
	}
	var status struct {
		Authenticated bool `json:"authenticated"`
	}
	if err := f.ctrl.api.GetJSON(ctx, "session", &status); err != nil {
		return err
	}
	if !status.Authenticated {
		return ErrNotAuthenticated
	}
	f.state = loginConfirmed
	return nil
}

// Run drives the whole login sequence. A failed step aborts the flow; the
// caller restarts from a fresh flow since a fetched challenge may be
// single-use.
func (f *LoginFlow) Run(ctx context.Context) error {
	if err := f.SubmitCredentials(ctx); err != nil {
		return err
	}
	if err := f.FetchKeypad(ctx); err != nil {
		return err
	}
	if err := f.SubmitPIN(ctx); err != nil {
		return err
	}
	return f.ConfirmSession(ctx)
}
