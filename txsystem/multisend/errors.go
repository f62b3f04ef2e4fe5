package multisend

import (
	"errors"

	"github.com/alphabill-org/alphabill-multisend/types"
)

// Rejection reasons. The calculator wraps one of these with the details of the
// offending account / denom, use errors.Is to classify the rejection.
var (
	ErrConservationMismatch = errors.New("input and output totals do not match")
	ErrUnknownDenomination  = errors.New("unknown denomination")
	ErrMissingBalance       = errors.New("missing balance")
	ErrInsufficientBalance  = errors.New("insufficient balance")
	ErrInvalidInput         = errors.New("invalid input")
)

/*
RejectionKind returns short name of the rejection class of the "err", empty
string when err is nil or not produced by the calculator.
*/
func RejectionKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrConservationMismatch):
		return "ConservationMismatch"
	case errors.Is(err, ErrUnknownDenomination):
		return "UnknownDenomination"
	case errors.Is(err, ErrMissingBalance):
		return "MissingBalance"
	case errors.Is(err, ErrInsufficientBalance):
		return "InsufficientBalance"
	case errors.Is(err, types.ErrAmountOverflow):
		return "AmountOverflow"
	case errors.Is(err, ErrInvalidInput):
		return "InvalidInput"
	default:
		return ""
	}
}
