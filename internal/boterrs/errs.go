package boterrs

import "errors"

var (
	ErrAlreadyBound     = errors.New("user already has a bound account")
	ErrInvalidAccountID = errors.New("invalid account id")
	ErrNotBound         = errors.New("user has no bound account")
	ErrAlreadyRedeemed  = errors.New("code already redeemed by user")
	ErrRedeemInFlight   = errors.New("identical redemption already in flight")
)
