package multisend

import (
	"fmt"

	"github.com/alphabill-org/alphabill-multisend/types"
	"github.com/alphabill-org/alphabill-multisend/util"
)

// deltaBook accumulates signed amounts per account and denom.
type deltaBook map[string]map[string]types.Amount

func newDeltaBook() deltaBook {
	return make(deltaBook)
}

func (db deltaBook) get(address, denom string) types.Amount {
	return db[address][denom]
}

func (db deltaBook) add(address, denom string, amount types.Amount) error {
	coins, ok := db[address]
	if !ok {
		coins = make(map[string]types.Amount)
		db[address] = coins
	}
	v, err := coins[denom].Add(amount)
	if err != nil {
		return fmt.Errorf("balance change of %s for %s: %w", denom, address, err)
	}
	coins[denom] = v
	return nil
}

func (db deltaBook) sub(address, denom string, amount types.Amount) error {
	neg, err := amount.Neg()
	if err != nil {
		return fmt.Errorf("balance change of %s for %s: %w", denom, address, err)
	}
	return db.add(address, denom, neg)
}

// balances returns non-zero entries of the book sorted by address and denom.
func (db deltaBook) balances() []types.Balance {
	var res []types.Balance
	for _, addr := range util.SortedKeys(db) {
		coins := nonZeroCoins(db[addr])
		if len(coins) == 0 {
			continue
		}
		res = append(res, types.Balance{Address: addr, Coins: coins})
	}
	return res
}

// coins flattens the book into denom totals, the book is expected to be keyed
// by denom on both levels.
func (db deltaBook) coins() []types.Coin {
	var res []types.Coin
	for _, denom := range util.SortedKeys(db) {
		if v := db[denom][denom]; !v.IsZero() {
			res = append(res, types.Coin{Denom: denom, Amount: v})
		}
	}
	return res
}

func nonZeroCoins(m map[string]types.Amount) []types.Coin {
	var res []types.Coin
	for _, denom := range util.SortedKeys(m) {
		if !m[denom].IsZero() {
			res = append(res, types.Coin{Denom: denom, Amount: m[denom]})
		}
	}
	return res
}
