package economy

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownUnlock means the unlock id is not in the catalog.
	ErrUnknownUnlock = errors.New("unknown unlock")

	// ErrAlreadyOwned means a purchase targeted an unlock the account
	// already owns. Callers should treat the attempt as an activation
	// instead of re-charging.
	ErrAlreadyOwned = errors.New("unlock already owned")

	// ErrNotOwned means an activation targeted an unowned unlock.
	ErrNotOwned = errors.New("unlock not owned")

	// ErrNonPositiveAmount is a contract violation: credits must carry
	// a positive amount.
	ErrNonPositiveAmount = errors.New("credit amount must be positive")
)

// InsufficientFundsError carries how far the balance fell short.
type InsufficientFundsError struct {
	Price   int64
	Balance int64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: need %d more", e.Missing())
}

// Missing returns the shortfall.
func (e *InsufficientFundsError) Missing() int64 {
	return e.Price - e.Balance
}

// IsInsufficientFunds checks if an error is an InsufficientFundsError.
func IsInsufficientFunds(err error) bool {
	var ife *InsufficientFundsError
	return errors.As(err, &ife)
}
