package sca

import "fmt"

// Action identifies a sensitive operation requiring a fresh SCA challenge
// beyond the initial login. Login itself uses a distinct, action-less path.
type Action int

const (
	ActionExternalTransfer Action = iota
	ActionAddBeneficiary
	ActionDisplayTransactions
)

// Wire returns the action value as the bank API spells it.
func (a Action) Wire() string {
	switch a {
	case ActionExternalTransfer:
		return "EXTERNAL_TRANSFER"
	case ActionAddBeneficiary:
		return "ADD_TRANSFER_BENEFICIARY"
	case ActionDisplayTransactions:
		return "DISPLAY_TRANSACTIONS"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

func (a Action) String() string { return a.Wire() }

// ParseAction maps a wire value back to an Action.
func ParseAction(s string) (Action, error) {
	switch s {
	case "EXTERNAL_TRANSFER":
		return ActionExternalTransfer, nil
	case "ADD_TRANSFER_BENEFICIARY":
		return ActionAddBeneficiary, nil
	case "DISPLAY_TRANSACTIONS":
		return ActionDisplayTransactions, nil
	}
	return 0, fmt.Errorf("sca: unknown action %q", s)
}
