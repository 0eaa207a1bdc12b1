package pricing

import "fmt"

// ValidationError reports a malformed simulation request. Nothing is computed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NoDataError means the product has no match records yet; scoring has to run first.
type NoDataError struct {
	ProductID string
}

func (e *NoDataError) Error() string {
	if e.ProductID == "" {
		return "no match records for product"
	}
	return fmt.Sprintf("no match records for product %s", e.ProductID)
}
