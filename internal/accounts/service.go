package accounts

import (
	"context"
	"net/url"

	"github.com/scabridge/scabridge/internal/bankapi"
	"github.com/scabridge/scabridge/internal/operations"
	"github.com/scabridge/scabridge/internal/sca"
)

// Service exposes the read side of the bank: accounts, transactions and
// insurance contracts. Extended transaction history is a sensitive operation
// and goes through the SCA flow like a transfer does.
type Service struct {
	api   *bankapi.Client
	flows *sca.Controller
	ops   *operations.Service
}

// NewService builds an accounts service.
func NewService(api *bankapi.Client, flows *sca.Controller, ops *operations.Service) *Service {
	return &Service{api: api, flows: flows, ops: ops}
}

// List fetches the customer's accounts.
func (s *Service) List(ctx context.Context) ([]Account, error) {
	var resp struct {
		Accounts []Account `json:"accounts"`
	}
	if err := s.api.GetJSON(ctx, "accounts", &resp); err != nil {
		return nil, err
	}
	return resp.Accounts, nil
}

// Transactions fetches the recent movements of one account. Only the default
// history window is available without a fresh SCA challenge.
func (s *Service) Transactions(ctx context.Context, accountID string) ([]Transaction, error) {
	var resp struct {
		Transactions []Transaction `json:"transactions"`
	}
	path := "accounts/" + url.PathEscape(accountID) + "/transactions"
	if err := s.api.GetJSON(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Transactions, nil
}

// ExtendedHistory starts the DISPLAY_TRANSACTIONS sensitive operation for an
// account and returns the OTP ticket. The history itself becomes readable
// through Transactions once the operation is confirmed.
func (s *Service) ExtendedHistory(ctx context.Context, accountID string) (operations.Ticket, error) {
	flow, err := s.flows.NewOperation(sca.ActionDisplayTransactions, nil)
	if err != nil {
		return operations.Ticket{}, err
	}
	if err := flow.Start(ctx); err != nil {
		return operations.Ticket{}, err
	}
	return s.ops.Track(flow, "extended history "+accountID, 0, accountID), nil
}

// InsuranceContracts fetches life-insurance contracts from the bank's
// secondary service, deriving the service token on first use.
func (s *Service) InsuranceContracts(ctx context.Context) ([]InsuranceContract, error) {
	token, err := s.flows.ServiceToken(ctx)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Contracts []InsuranceContract `json:"contracts"`
	}
	path := "insurance/contracts?token=" + url.QueryEscape(token)
	if err := s.api.GetJSON(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Contracts, nil
}
