package sca

import (
	"context"
	"fmt"

	"github.com/scabridge/scabridge/internal/keypad"
)

type opState int

const (
	opInit opState = iota
	opKeypadFetched
	opPinSubmitted
	opChannelSelected
	opOTPSent
	opConfirmed
)

func (s opState) String() string {
	switch s {
	case opInit:
		return "INIT"
	case opKeypadFetched:
		return "KEYPAD_FETCHED"
	case opPinSubmitted:
		return "PIN_SUBMITTED"
	case opChannelSelected:
		return "CHANNEL_SELECTED"
	case opOTPSent:
		return "OTP_SENT"
	case opConfirmed:
		return "CONFIRMED"
	}
	return "UNKNOWN"
}

// OperationFlow drives one sensitive operation through its SCA sequence:
// action-keyed keypad challenge, pin clicks, OTP channel selection, OTP
// dispatch, and finally confirmation once the caller has the received code.
// The operation context created before the flow rides along unmodified.
type OperationFlow struct {
	ctrl       *Controller
	action     Action
	opCtx      OperationContext
	state      opState
	positions  []int
	clicks     []keypad.Click
	secretCode string
	channel    Channel
}

// NewOperation starts a sensitive-operation flow in INIT. The context shape
// is checked against the action up front so a mismatch never reaches the
// bank.
func (c *Controller) NewOperation(action Action, opCtx OperationContext) (*OperationFlow, error) {
	if err := attachContext(map[string]any{}, action, opCtx); err != nil {
		return nil, err
	}
	return &OperationFlow{ctrl: c, action: action, opCtx: opCtx}, nil
}

// Action returns the flow's sensitive-operation action.
func (f *OperationFlow) Action() Action { return f.action }

// Context returns the operation context the flow was created with.
func (f *OperationFlow) Context() OperationContext { return f.opCtx }

// Channel returns the selected OTP channel, meaningful once the flow has
// passed CHANNEL_SELECTED.
func (f *OperationFlow) Channel() Channel { return f.channel }

// FetchKeypad requests the action-specific challenge metadata and image, then
// classifies and solves it. Sensitive-operation keypads come back on a
// larger canvas than the login keypad; the multiplier is taken from the
// image itself.
func (f *OperationFlow) FetchKeypad(ctx context.Context) error {
	if f.state != opInit {
		return &SequenceError{Step: "FetchKeypad", State: f.state.String()}
	}
	var challenge struct {
		PinPositions []int  `json:"pinPositions"`
		KeyPadURL    string `json:"keyPadUrl"`
	}
	body := map[string]any{
		"keyPadSize":               declaredKeyPadSize,
		"sensitiveOperationAction": f.action.Wire(),
	}
	if err := f.ctrl.api.PostJSON(ctx, "sca/keyPad", body, &challenge); err != nil {
		return err
	}

	raw, err := f.ctrl.api.GetBytes(ctx, challenge.KeyPadURL)
	if err != nil {
		return err
	}

	clicks, err := f.ctrl.solveKeypad(raw, challenge.PinPositions)
	if err != nil {
		return err
	}

	f.positions = challenge.PinPositions
	f.clicks = clicks
	f.state = opKeypadFetched
	return nil
}

// SubmitPIN posts the clicks together with the action and its context. The
// response carries the short-lived secret code authorizing OTP dispatch.
func (f *OperationFlow) SubmitPIN(ctx context.Context) error {
	if f.state != opKeypadFetched {
		return &SequenceError{Step: "SubmitPIN", State: f.state.String()}
	}
	body := map[string]any{
		"keyPad":                   map[string]any{"clickPositions": clickPairs(f.clicks)},
		"sensitiveOperationAction": f.action.Wire(),
	}
	if err := attachContext(body, f.action, f.opCtx); err != nil {
		return err
	}

	var resp struct {
		SecretCode string `json:"secretCode"`
		Validated  bool   `json:"validated"`
	}
	if err := f.ctrl.api.PostJSON(ctx, "sca/validatePin", body, &resp); err != nil {
		return err
	}
	if !resp.Validated || resp.SecretCode == "" {
		return fmt.Errorf("sca: pin not validated for %s", f.action)
	}
	f.secretCode = resp.SecretCode
	f.state = opPinSubmitted
	return nil
}

// SelectChannel fetches the OTP channels offered for the action and picks
// the first mobile-SMS one, in returned order.
func (f *OperationFlow) SelectChannel(ctx context.Context) error {
	if f.state != opPinSubmitted {
		return &SequenceError{Step: "SelectChannel", State: f.state.String()}
	}
	var channels []Channel
	path := "sensitiveoperation/" + f.action.Wire() + "/otpChannels"
	if err := f.ctrl.api.GetJSON(ctx, path, &channels); err != nil {
		return err
	}
	for _, ch := range channels {
		if ch.Type == channelTypeSMSMobile {
			f.channel = ch
			f.state = opChannelSelected
			return nil
		}
	}
	return ErrNoSMSChannel
}

// SendOTP dispatches the one-time password over the selected channel using
// the secret code from pin validation.
func (f *OperationFlow) SendOTP(ctx context.Context) error {
	if f.state != opChannelSelected {
		return &SequenceError{Step: "SendOTP", State: f.state.String()}
	}
	body := map[string]any{
		"sensitiveOperationAction": f.action.Wire(),
		"secretCode":               f.secretCode,
		"channelValue":             f.channel.Phone,
		"channelType":              f.channel.Type,
	}
	if err := attachContext(body, f.action, f.opCtx); err != nil {
		return err
	}

	var resp struct {
		Acknowledged bool `json:"acknowledged"`
	}
	if err := f.ctrl.api.PostJSON(ctx, "sca/sendOtp", body, &resp); err != nil {
		return err
	}
	if !resp.Acknowledged {
		return fmt.Errorf("sca: otp dispatch not acknowledged for %s", f.action)
	}
	f.state = opOTPSent
	return nil
}

// Confirm submits the code the customer received, completing the operation.
func (f *OperationFlow) Confirm(ctx context.Context, code string) error {
	if f.state != opOTPSent {
		return &SequenceError{Step: "Confirm", State: f.state.String()}
	}
	body := map[string]any{
		"sensitiveOperationAction": f.action.Wire(),
		"otp":                      code,
	}
	if err := attachContext(body, f.action, f.opCtx); err != nil {
		return err
	}

	var resp struct {
		Acknowledged bool `json:"acknowledged"`
	}
	if err := f.ctrl.api.PostJSON(ctx, "sca/confirmOtp", body, &resp); err != nil {
		return err
	}
	if !resp.Acknowledged {
		return ErrOTPRejected
	}
	f.state = opConfirmed
	return nil
}

// Start drives the flow from INIT through OTP_SENT. Confirmation happens
// separately once the caller has received the code.
func (f *OperationFlow) Start(ctx context.Context) error {
	if err := f.FetchKeypad(ctx); err != nil {
		return err
	}
	if err := f.SubmitPIN(ctx); err != nil {
		return err
	}
	if err := f.SelectChannel(ctx); err != nil {
		return err
	}
	return f.SendOTP(ctx)
}
