package sca

import "fmt"

// OperationContext is the action-specific payload carried unmodified from its
// point of creation through pin validation, OTP dispatch and OTP
// confirmation. EXTERNAL_TRANSFER carries a TransferContext,
// ADD_TRANSFER_BENEFICIARY a BeneficiaryContext, DISPLAY_TRANSACTIONS and
// login carry none (nil).
type OperationContext interface {
	operationContext()
}

// TransferContext describes the external transfer being authorized. It is
// created by transfer pre-validation.
type TransferContext struct {
	FromAccount   string  `json:"fromAccount"`
	ToAccount     string  `json:"toAccount"`
	Amount        float64 `json:"amount"`
	Label         string  `json:"label"`
	ExecutionDate string  `json:"executionDate"`
}

func (TransferContext) operationContext() {}

// BeneficiaryContext describes the external account being added. It is
// created by the bank's external-account validation pre-step.
type BeneficiaryContext struct {
	AccountHolderName string `json:"accountHolderName"`
	BankName          string `json:"bankName"`
	BIC               string `json:"bic"`
	IBAN              string `json:"iban"`
}

func (BeneficiaryContext) operationContext() {}

// attachContext adds the action's context payload to a request body under the
// field name the bank expects, after checking the context shape matches the
// action.
func attachContext(body map[string]any, action Action, opCtx OperationContext) error {
	switch action {
	case ActionExternalTransfer:
		tc, ok := opCtx.(TransferContext)
		if !ok {
			return fmt.Errorf("sca: %s requires a TransferContext, got %T", action, opCtx)
		}
		body["transactionRequest"] = tc
	case ActionAddBeneficiary:
		bc, ok := opCtx.(BeneficiaryContext)
		if !ok {
			return fmt.Errorf("sca: %s requires a BeneficiaryContext, got %T", action, opCtx)
		}
		body["externalAccountsRequest"] = bc
	case ActionDisplayTransactions:
		if opCtx != nil {
			return fmt.Errorf("sca: %s carries no context, got %T", action, opCtx)
		}
	default:
		return fmt.Errorf("sca: unknown action %v", action)
	}
	return nil
}
