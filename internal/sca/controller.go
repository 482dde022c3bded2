package sca

import (
	"context"
	"log/slog"

	"github.com/scabridge/scabridge/internal/bankapi"
	"github.com/scabridge/scabridge/internal/keypad"
)

// declaredKeyPadSize is the virtual keypad canvas the bank expects in
// challenge metadata requests. It is the canonical 484x190 canvas at
// multiplier 8; the actual multiplier of each fetched image is derived from
// the image itself.
const declaredKeyPadSize = "3800x1520"

const channelTypeSMSMobile = "SMS_MOBILE"

// Credentials are the customer-supplied secrets driving every flow.
type Credentials struct {
	CIF       string
	BirthDate string
	Password  string
}

// Controller builds and sequences SCA flows. It owns the shared transport,
// the digit template library and the click solver; flows created from one
// controller share one session.
type Controller struct {
	api       *bankapi.Client
	creds     Credentials
	templates *keypad.TemplateLibrary
	layout    keypad.Layout
	solver    *keypad.Solver
	logger    *slog.Logger
}

// NewController wires a flow controller. A nil solver gets a time-seeded one.
func NewController(api *bankapi.Client, creds Credentials, templates *keypad.TemplateLibrary, solver *keypad.Solver, logger *slog.Logger) *Controller {
	if solver == nil {
		solver = keypad.NewSolver(nil)
	}
	return &Controller{
		api:       api,
		creds:     creds,
		templates: templates,
		layout:    keypad.Default(),
		solver:    solver,
		logger:    logger,
	}
}

// API exposes the shared transport for read-side collaborators.
func (c *Controller) API() *bankapi.Client {
	return c.api
}

// ServiceToken returns the token for the bank's secondary (insurance)
// service, deriving it on first use and caching it on the session for the
// session's lifetime. It is never refreshed unless the caller clears it.
func (c *Controller) ServiceToken(ctx context.Context) (string, error) {
	if token, ok := c.api.Session().ServiceToken(); ok {
		return token, nil
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.api.PostJSON(ctx, "services/insurance/token", nil, &resp); err != nil {
		return "", err
	}
	c.api.Session().SetServiceToken(resp.Token)
	return resp.Token, nil
}

// Channel is one OTP delivery channel offered by the bank.
type Channel struct {
	Phone string `json:"phone"`
	Type  string `json:"type"`
}

// solveKeypad decodes a fetched keypad image, classifies its cells and
// synthesizes clicks for the requested password positions. The image's own
// height decides the scale multiplier, so login and sensitive-operation
// keypads go through the same path.
func (c *Controller) solveKeypad(raw []byte, positions []int) ([]keypad.Click, error) {
	img, err := decodePNG(raw)
	if err != nil {
		return nil, err
	}

	multiplier, err := keypad.MultiplierFor(img.Bounds().Dy())
	if err != nil {
		return nil, err
	}
	layout, err := c.layout.Scale(multiplier)
	if err != nil {
		return nil, err
	}

	classified, err := keypad.Classify(img, layout, c.templates)
	if err != nil {
		return nil, err
	}

	clicks, err := c.solver.Solve(classified, layout, positions, c.creds.Password)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("keypad solved",
		slog.Int("multiplier", multiplier),
		slog.Int("positions", len(positions)),
	)
	return clicks, nil
}

// clickPairs flattens clicks to the [[x,y], ...] wire shape.
func clickPairs(clicks []keypad.Click) [][2]float64 {
	pairs := make([][2]float64, len(clicks))
	for i, cl := range clicks {
		pairs[i] = [2]float64{cl.X, cl.Y}
	}
	return pairs
}
