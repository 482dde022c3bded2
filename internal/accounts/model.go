package accounts

// Account is one product visible on the customer's dashboard.
type Account struct {
	ID       string  `json:"id"`
	Label    string  `json:"label"`
	IBAN     string  `json:"iban"`
	Balance  float64 `json:"balance"`
	Currency string  `json:"currency"`
}

// Transaction is one booked movement on an account.
type Transaction struct {
	ID     string  `json:"id"`
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
	Date   string  `json:"date"`
}

// InsuranceContract is one life-insurance contract held with the bank's
// secondary service.
type InsuranceContract struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	Value float64 `json:"value"`
}
