package testutils

import (
	"testing"

	"github.com/alphabill-org/alphabill-multisend/types"
	"github.com/stretchr/testify/require"
)

type Option func(*types.MultiSend)

// NewMultiSend returns transaction without any inputs or outputs, use options to add them.
func NewMultiSend(opts ...Option) *types.MultiSend {
	tx := &types.MultiSend{}
	for _, o := range opts {
		o(tx)
	}
	return tx
}

func WithInput(address string, coins ...types.Coin) Option {
	return func(tx *types.MultiSend) {
		tx.Inputs = append(tx.Inputs, types.NewBalance(address, coins...))
	}
}

func WithOutput(address string, coins ...types.Coin) Option {
	return func(tx *types.MultiSend) {
		tx.Outputs = append(tx.Outputs, types.NewBalance(address, coins...))
	}
}

// WithTransfer adds the same coins as input of "from" and output of "to".
func WithTransfer(from, to string, coins ...types.Coin) Option {
	return func(tx *types.MultiSend) {
		WithInput(from, coins...)(tx)
		WithOutput(to, coins...)(tx)
	}
}

func Definition(denom, issuer string, burnRate, commissionRate float64) types.DenomDefinition {
	return types.DenomDefinition{Denom: denom, Issuer: issuer, BurnRate: burnRate, CommissionRate: commissionRate}
}

// Coin is shorthand for types.NewCoin.
func Coin(denom string, amount int64) types.Coin {
	return types.NewCoin(denom, amount)
}

// BigCoin returns coin with the amount parsed from base 10 string, fails the test on error.
func BigCoin(t *testing.T, denom, amount string) types.Coin {
	t.Helper()
	a, err := types.ParseAmount(amount)
	require.NoError(t, err)
	return types.Coin{Denom: denom, Amount: a}
}

// RequireAmount checks that the balance has exactly "amount" of "denom".
func RequireAmount(t *testing.T, b *types.Balance, denom string, amount int64) {
	t.Helper()
	require.NotNil(t, b)
	v, ok := b.AmountOf(denom)
	require.True(t, ok, "%s has no %s", b.Address, denom)
	require.Equal(t, types.NewAmount(amount).String(), v.String(), "amount of %s for %s", denom, b.Address)
}

// RequireDeltas compares balances against expected address -> denom -> amount table, the
// balances must not contain anything not listed in the table.
func RequireDeltas(t *testing.T, expected map[string]map[string]int64, actual []types.Balance) {
	t.Helper()
	require.Len(t, actual, len(expected), "number of accounts in %v", actual)
	for addr, coins := range expected {
		b := types.FindBalance(actual, addr)
		require.NotNil(t, b, "missing balance change for %s", addr)
		require.Len(t, b.Coins, len(coins), "number of coins for %s: %v", addr, b.Coins)
		for denom, amount := range coins {
			RequireAmount(t, b, denom, amount)
		}
	}
}
