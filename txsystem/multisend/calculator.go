package multisend

import (
	"fmt"

	"github.com/alphabill-org/alphabill-multisend/logger"
	"github.com/alphabill-org/alphabill-multisend/types"
	"github.com/alphabill-org/alphabill-multisend/util"
)

var log = logger.CreateForPackage()

type (
	/*
	Calculator computes balance changes of MultiSend transactions. It doesn't
	hold any state between the calls so a single instance can be shared by
	goroutines.
	*/
	Calculator struct {
		log logger.Logger
	}

	// Settlement is the outcome of an accepted MultiSend transaction.
	Settlement struct {
		// Deltas are signed balance changes per account, sorted by address,
		// coins sorted by denom. Zero changes are omitted.
		Deltas []types.Balance
		// Burned is the amount destroyed per denom.
		Burned []types.Coin
		// Commissions is the amount credited to the issuer per denom.
		Commissions []types.Coin
	}
)

func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{log: log}
	for _, o := range opts {
		o(c)
	}
	return c
}

/*
CalculateBalanceChanges returns balance changes which must be applied to the
accounts (negative amount is deduction, positive is addition) when "tx" is
executed. Error means that the transaction must be rejected, see Err* values
of the package for the rejection reasons.
*/
func CalculateBalanceChanges(balances []types.Balance, definitions []types.DenomDefinition, tx *types.MultiSend) ([]types.Balance, error) {
	return NewCalculator().Calculate(balances, definitions, tx)
}

// Calculate is like Settle but returns only the balance changes.
func (c *Calculator) Calculate(balances []types.Balance, definitions []types.DenomDefinition, tx *types.MultiSend) ([]types.Balance, error) {
	s, err := c.Settle(balances, definitions, tx)
	if err != nil {
		return nil, err
	}
	return s.Deltas, nil
}

/*
Settle validates the transaction against the balances snapshot and the
denomination definitions and computes the balance changes together with the
burned and commission totals.

Inputs are not modified.
*/
func (c *Calculator) Settle(balances []types.Balance, definitions []types.DenomDefinition, tx *types.MultiSend) (*Settlement, error) {
	s, err := c.settle(balances, definitions, tx)
	if err != nil {
		c.log.Debug("multisend rejected: %v", err)
		return nil, err
	}
	c.log.Debug("multisend settled: %d accounts changed, burned %v, commissions %v", len(s.Deltas), s.Burned, s.Commissions)
	return s, nil
}

func (c *Calculator) settle(balances []types.Balance, definitions []types.DenomDefinition, tx *types.MultiSend) (*Settlement, error) {
	if tx == nil {
		return nil, fmt.Errorf("%w: transaction is nil", ErrInvalidInput)
	}
	if err := validateAmounts(tx); err != nil {
		return nil, err
	}
	if err := checkConservation(tx); err != nil {
		return nil, err
	}
	defs, err := indexDefinitions(definitions, tx.Denoms())
	if err != nil {
		return nil, err
	}
	surcharges, err := newSurcharges(defs, tx)
	if err != nil {
		return nil, err
	}
	holdings, err := indexBalances(balances)
	if err != nil {
		return nil, err
	}

	deltas := newDeltaBook()
	debits := newDeltaBook()
	burned := newDeltaBook()
	commissions := newDeltaBook()
	for _, in := range tx.Inputs {
		held, ok := holdings[in.Address]
		if !ok {
			return nil, fmt.Errorf("%w: no original balance for %s", ErrMissingBalance, in.Address)
		}
		for _, coin := range in.Coins {
			burn, commission, err := surcharges[coin.Denom].shares(in.Address, coin.Amount)
			if err != nil {
				return nil, err
			}
			c.log.Trace("%s pays %s of %s: burn %s, commission %s", in.Address, coin.Amount, coin.Denom, burn, commission)
			debit, err := sum(coin.Amount, burn, commission)
			if err != nil {
				return nil, fmt.Errorf("total debit of %s for %s: %w", coin.Denom, in.Address, err)
			}
			// the same account may pay the same denom more than once
			if err := debits.add(in.Address, coin.Denom, debit); err != nil {
				return nil, err
			}
			balance, ok := held[coin.Denom]
			if !ok || balance.Cmp(debits.get(in.Address, coin.Denom)) < 0 {
				return nil, fmt.Errorf("%w: %s does not have enough balance for %s", ErrInsufficientBalance, in.Address, coin.Denom)
			}
			if err := deltas.sub(in.Address, coin.Denom, debit); err != nil {
				return nil, err
			}
			if err := burned.add(coin.Denom, coin.Denom, burn); err != nil {
				return nil, err
			}
			if err := commissions.add(coin.Denom, coin.Denom, commission); err != nil {
				return nil, err
			}
		}
	}

	for _, out := range tx.Outputs {
		for _, coin := range out.Coins {
			if err := deltas.add(out.Address, coin.Denom, coin.Amount); err != nil {
				return nil, err
			}
		}
	}

	commissionTotals := commissions.coins()
	for _, coin := range commissionTotals {
		if err := deltas.add(defs[coin.Denom].Issuer, coin.Denom, coin.Amount); err != nil {
			return nil, err
		}
	}

	return &Settlement{
		Deltas:      deltas.balances(),
		Burned:      burned.coins(),
		Commissions: commissionTotals,
	}, nil
}

func validateAmounts(tx *types.MultiSend) error {
	check := func(side string, list []types.Balance) error {
		for i, b := range list {
			for _, c := range b.Coins {
				if c.Amount.Sign() < 0 {
					return fmt.Errorf("%w: negative amount %s of %s in %s %d (%s)", ErrInvalidInput, c.Amount, c.Denom, side, i, b.Address)
				}
			}
		}
		return nil
	}
	if err := check("input", tx.Inputs); err != nil {
		return err
	}
	return check("output", tx.Outputs)
}

func checkConservation(tx *types.MultiSend) error {
	inputs, err := totalsByDenom(tx.Inputs)
	if err != nil {
		return fmt.Errorf("summing inputs: %w", err)
	}
	outputs, err := totalsByDenom(tx.Outputs)
	if err != nil {
		return fmt.Errorf("summing outputs: %w", err)
	}
	for _, denom := range util.SortedKeys(tx.Denoms()) {
		// denom missing on one side counts as zero
		in, out := inputs[denom], outputs[denom]
		if in.Cmp(out) != 0 {
			return fmt.Errorf("%w: %s inputs %s, outputs %s", ErrConservationMismatch, denom, in, out)
		}
	}
	return nil
}

func totalsByDenom(list []types.Balance) (map[string]types.Amount, error) {
	totals := make(map[string]types.Amount)
	for _, b := range list {
		for _, c := range b.Coins {
			v, err := totals[c.Denom].Add(c.Amount)
			if err != nil {
				return nil, fmt.Errorf("denom %s: %w", c.Denom, err)
			}
			totals[c.Denom] = v
		}
	}
	return totals, nil
}

/*
indexDefinitions returns definitions of the denoms referenced by the
transaction. Definitions of other denoms are not validated.
*/
func indexDefinitions(definitions []types.DenomDefinition, referenced map[string]struct{}) (map[string]*types.DenomDefinition, error) {
	all := make(map[string]*types.DenomDefinition, len(definitions))
	for i := range definitions {
		d := &definitions[i]
		if _, ok := all[d.Denom]; ok {
			return nil, fmt.Errorf("%w: duplicate definition of denom %q", ErrInvalidInput, d.Denom)
		}
		all[d.Denom] = d
	}

	defs := make(map[string]*types.DenomDefinition, len(referenced))
	for _, denom := range util.SortedKeys(referenced) {
		d, ok := all[denom]
		if !ok {
			return nil, fmt.Errorf("%w: no definition for %q", ErrUnknownDenomination, denom)
		}
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		defs[denom] = d
	}
	return defs, nil
}

// indexBalances returns the balances snapshot as address -> denom -> amount lookup.
func indexBalances(balances []types.Balance) (map[string]map[string]types.Amount, error) {
	idx := make(map[string]map[string]types.Amount, len(balances))
	for _, b := range balances {
		if _, ok := idx[b.Address]; ok {
			return nil, fmt.Errorf("%w: duplicate balance record of %s", ErrInvalidInput, b.Address)
		}
		coins := make(map[string]types.Amount, len(b.Coins))
		for _, c := range b.Coins {
			if _, ok := coins[c.Denom]; ok {
				return nil, fmt.Errorf("%w: duplicate balance of %s for %s", ErrInvalidInput, c.Denom, b.Address)
			}
			coins[c.Denom] = c.Amount
		}
		idx[b.Address] = coins
	}
	return idx, nil
}

func sum(amounts ...types.Amount) (types.Amount, error) {
	var total types.Amount
	for _, a := range amounts {
		var err error
		if total, err = total.Add(a); err != nil {
			return types.Amount{}, err
		}
	}
	return total, nil
}
