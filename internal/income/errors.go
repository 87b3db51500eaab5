package income

import "errors"

var (
	// ErrNoSettings means no commission settings row exists for the
	// package name. Fatal to the whole distribution call.
	ErrNoSettings = errors.New("income: no commission settings for package")

	// ErrAlreadyDistributed means the purchase was claimed by an earlier
	// distribution run; nothing is credited twice.
	ErrAlreadyDistributed = errors.New("income: purchase already distributed")

	// ErrPurchaseState means the purchase is not in the approved state.
	ErrPurchaseState = errors.New("income: purchase not approved")

	ErrBadAmount    = errors.New("income: credit amount must be positive")
	ErrUserNotFound = errors.New("income: user not found")
)
