package beneficiaries

import (
	"context"
	"errors"
	"fmt"

	"github.com/scabridge/scabridge/internal/bankapi"
	"github.com/scabridge/scabridge/internal/operations"
	"github.com/scabridge/scabridge/internal/sca"
)

// ErrInvalidBeneficiary indicates the request failed local validation before
// the bank was consulted.
var ErrInvalidBeneficiary = errors.New("beneficiaries: invalid beneficiary request")

// Service runs the ADD_TRANSFER_BENEFICIARY sensitive operation. The bank
// validates the external account (IBAN format, duplicates) before any keypad
// challenge; only a successful validation yields the operation context the
// SCA flow carries.
type Service struct {
	api   *bankapi.Client
	flows *sca.Controller
	ops   *operations.Service
}

// NewService constructs a beneficiary service.
func NewService(api *bankapi.Client, flows *sca.Controller, ops *operations.Service) *Service {
	return &Service{api: api, flows: flows, ops: ops}
}

// Input captures the external account to register.
type Input struct {
	AccountHolderName string
	BankName          string
	BIC               string
	IBAN              string
}

func (in Input) validate() error {
	if in.AccountHolderName == "" {
		return fmt.Errorf("%w: account holder name is required", ErrInvalidBeneficiary)
	}
	if in.IBAN == "" {
		return fmt.Errorf("%w: iban is required", ErrInvalidBeneficiary)
	}
	return nil
}

// validateExternal asks the bank to validate the account and returns the
// operation context it produced. A bank-side rejection (bad IBAN format,
// duplicate external account) comes back as a *bankapi.BusinessError and
// short-circuits the flow before any keypad request.
func (s *Service) validateExternal(ctx context.Context, input Input) (sca.BeneficiaryContext, error) {
	request := sca.BeneficiaryContext{
		AccountHolderName: input.AccountHolderName,
		BankName:          input.BankName,
		BIC:               input.BIC,
		IBAN:              input.IBAN,
	}

	var resp struct {
		ExternalAccountsRequest *sca.BeneficiaryContext `json:"externalAccountsRequest"`
	}
	body := map[string]any{"externalAccountsRequest": request}
	if err := s.api.PostJSON(ctx, "externalaccounts/validate", body, &resp); err != nil {
		return sca.BeneficiaryContext{}, err
	}
	if resp.ExternalAccountsRequest == nil {
		return sca.BeneficiaryContext{}, fmt.Errorf("beneficiaries: validation returned no context")
	}
	return *resp.ExternalAccountsRequest, nil
}

// Initiate validates the external account with the bank, then drives the SCA
// flow through OTP dispatch. The context returned by validation is the one
// carried to confirmation.
func (s *Service) Initiate(ctx context.Context, input Input) (operations.Ticket, error) {
	if err := input.validate(); err != nil {
		return operations.Ticket{}, err
	}

	opCtx, err := s.validateExternal(ctx, input)
	if err != nil {
		return operations.Ticket{}, err
	}

	flow, err := s.flows.NewOperation(sca.ActionAddBeneficiary, opCtx)
	if err != nil {
		return operations.Ticket{}, err
	}
	if err := flow.Start(ctx); err != nil {
		return operations.Ticket{}, err
	}

	return s.ops.Track(flow, opCtx.AccountHolderName, 0, opCtx.IBAN), nil
}
