package types

import (
	"fmt"
)

type (
	// Coin is an amount of a single denomination.
	Coin struct {
		_      struct{} `cbor:",toarray"`
		Denom  string   `json:"denom" yaml:"denom"`
		Amount Amount   `json:"amount" yaml:"amount"`
	}

	/*
	Balance is a list of coins associated with an address. Depending on the
	context it is either the holding of the account or movements of funds
	(transaction input/output, balance delta).
	*/
	Balance struct {
		_       struct{} `cbor:",toarray"`
		Address string   `json:"address" yaml:"address"`
		Coins   []Coin   `json:"coins" yaml:"coins"`
	}
)

func NewCoin(denom string, amount int64) Coin {
	return Coin{Denom: denom, Amount: NewAmount(amount)}
}

func NewBalance(address string, coins ...Coin) Balance {
	return Balance{Address: address, Coins: coins}
}

func (c Coin) String() string {
	return fmt.Sprintf("%s%s", c.Amount, c.Denom)
}

// AmountOf returns the amount of the denom in the balance, second return value is false
// when the balance doesn't list the denom.
func (b Balance) AmountOf(denom string) (Amount, bool) {
	for _, c := range b.Coins {
		if c.Denom == denom {
			return c.Amount, true
		}
	}
	return Amount{}, false
}

// IsZero returns true when all the coins in the balance have zero amount.
func (b Balance) IsZero() bool {
	for _, c := range b.Coins {
		if !c.Amount.IsZero() {
			return false
		}
	}
	return true
}

// FindBalance returns the first balance of the "address" in the list or nil when not found.
func FindBalance(balances []Balance, address string) *Balance {
	for i := range balances {
		if balances[i].Address == address {
			return &balances[i]
		}
	}
	return nil
}
