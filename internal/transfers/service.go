package transfers

import (
	"context"
	"errors"
	"fmt"

	"github.com/scabridge/scabridge/internal/operations"
	"github.com/scabridge/scabridge/internal/sca"
)

// ErrInvalidTransfer indicates the transfer request failed local validation
// before any flow was started.
var ErrInvalidTransfer = errors.New("transfers: invalid transfer request")

// Service runs the EXTERNAL_TRANSFER sensitive operation: it builds the
// transfer context, drives the SCA flow to OTP_SENT and hands the pending
// operation to the operations service for confirmation.
type Service struct {
	flows *sca.Controller
	ops   *operations.Service
}

// NewService constructs a transfer service.
func NewService(flows *sca.Controller, ops *operations.Service) *Service {
	return &Service{flows: flows, ops: ops}
}

// Input captures the data needed to move funds to an external account.
type Input struct {
	FromAccount   string
	ToAccount     string
	Amount        float64
	Label         string
	ExecutionDate string
}

func (in Input) validate() error {
	if in.FromAccount == "" || in.ToAccount == "" {
		return fmt.Errorf("%w: source and destination accounts are required", ErrInvalidTransfer)
	}
	if in.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidTransfer)
	}
	return nil
}

// Initiate validates the input, runs the SCA flow through OTP dispatch and
// returns the confirmation ticket. The transfer context created here rides
// through the whole flow unmodified.
func (s *Service) Initiate(ctx context.Context, input Input) (operations.Ticket, error) {
	if err := input.validate(); err != nil {
		return operations.Ticket{}, err
	}

	opCtx := sca.TransferContext{
		FromAccount:   input.FromAccount,
		ToAccount:     input.ToAccount,
		Amount:        input.Amount,
		Label:         input.Label,
		ExecutionDate: input.ExecutionDate,
	}

	flow, err := s.flows.NewOperation(sca.ActionExternalTransfer, opCtx)
	if err != nil {
		return operations.Ticket{}, err
	}
	if err := flow.Start(ctx); err != nil {
		return operations.Ticket{}, err
	}

	return s.ops.Track(flow, input.Label, input.Amount, input.ToAccount), nil
}
