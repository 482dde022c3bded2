package bankapi

import "fmt"

// TransportError reports a network-level failure or a non-2xx response from
// the bank. Flows treat it as fatal; the bridge never retries.
type TransportError struct {
	Path   string
	Status int
	Body   string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("bankapi: %s returned %d: %s", e.Path, e.Status, e.Body)
}

// BusinessError is a bank-side rejection delivered inside a 200 response:
// invalid credential combination, malformed IBAN, duplicate external account,
// SCA step-ordering violations. It is surfaced to the caller untouched.
type BusinessError struct {
	Code    string
	Message string
	Context map[string]any
}

func (e *BusinessError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("bankapi: business error %s", e.Code)
	}
	return fmt.Sprintf("bankapi: business error %s: %s", e.Code, e.Message)
}
