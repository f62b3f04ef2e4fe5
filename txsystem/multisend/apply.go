package multisend

import (
	"fmt"

	"github.com/alphabill-org/alphabill-multisend/types"
	"github.com/alphabill-org/alphabill-multisend/util"
)

/*
ApplyDeltas returns new balances snapshot with the "deltas" added to the
"balances". Accounts which end up with zero balance in all denoms are not
included, neither are zero coins. Result is sorted by address and denom.

It is an error when a delta would make any balance negative.
*/
func ApplyDeltas(balances, deltas []types.Balance) ([]types.Balance, error) {
	book := newDeltaBook()
	for _, list := range [][]types.Balance{balances, deltas} {
		for _, b := range list {
			for _, c := range b.Coins {
				if err := book.add(b.Address, c.Denom, c.Amount); err != nil {
					return nil, err
				}
			}
		}
	}

	for _, addr := range util.SortedKeys(book) {
		for _, denom := range util.SortedKeys(book[addr]) {
			if v := book[addr][denom]; v.Sign() < 0 {
				return nil, fmt.Errorf("%w: %s would have balance %s of %s", ErrInsufficientBalance, addr, v, denom)
			}
		}
	}
	return book.balances(), nil
}
