package multisend

import (
	"fmt"

	"github.com/alphabill-org/alphabill-multisend/types"
)

/*
commissionEpsilon is subtracted from the commission share before rounding up
so that floating point representation error of an exact integer share
doesn't add one unit of commission. Burn share is rounded up without it.
*/
const commissionEpsilon = 1e-10

/*
surcharge holds the per denom figures the burn and commission shares of the
individual inputs are derived from.
*/
type surcharge struct {
	def *types.DenomDefinition
	// sums of the amounts sent by / sent to accounts other than the issuer
	nonIssuerInputs  types.Amount
	nonIssuerOutputs types.Amount
	// base is the volume transferred between non-issuer parties, the smaller of
	// nonIssuerInputs and nonIssuerOutputs
	base types.Amount
}

func newSurcharges(defs map[string]*types.DenomDefinition, tx *types.MultiSend) (map[string]*surcharge, error) {
	sc := make(map[string]*surcharge, len(defs))
	for denom, def := range defs {
		sc[denom] = &surcharge{def: def}
	}
	for _, in := range tx.Inputs {
		for _, c := range in.Coins {
			s := sc[c.Denom]
			if s.def.IsIssuer(in.Address) {
				continue
			}
			var err error
			if s.nonIssuerInputs, err = s.nonIssuerInputs.Add(c.Amount); err != nil {
				return nil, fmt.Errorf("summing non-issuer inputs of %s: %w", c.Denom, err)
			}
		}
	}
	for _, out := range tx.Outputs {
		for _, c := range out.Coins {
			s := sc[c.Denom]
			if s.def.IsIssuer(out.Address) {
				continue
			}
			var err error
			if s.nonIssuerOutputs, err = s.nonIssuerOutputs.Add(c.Amount); err != nil {
				return nil, fmt.Errorf("summing non-issuer outputs of %s: %w", c.Denom, err)
			}
		}
	}
	for _, s := range sc {
		s.base = s.nonIssuerInputs
		if s.nonIssuerOutputs.Cmp(s.base) < 0 {
			s.base = s.nonIssuerOutputs
		}
	}
	return sc, nil
}

/*
shares returns burn and commission the "payer" owes on top of sending "amount".

Each share is the payer's proportion of base*rate rounded up independently,
so the sum of the shares over all payers may exceed the unrounded total by
less than one unit per payer. The issuer never pays.
*/
func (s *surcharge) shares(payer string, amount types.Amount) (burn, commission types.Amount, err error) {
	if s.def.IsIssuer(payer) || s.nonIssuerInputs.IsZero() {
		return types.Amount{}, types.Amount{}, nil
	}
	base, total, a := s.base.Float64(), s.nonIssuerInputs.Float64(), amount.Float64()

	burnShare := float64(base * s.def.BurnRate * a / total)
	if burn, err = types.CeilAmount(burnShare); err != nil {
		return burn, commission, fmt.Errorf("burn share of %s for %s: %w", s.def.Denom, payer, err)
	}
	commissionShare := float64(base * s.def.CommissionRate * a / total)
	if commission, err = types.CeilAmount(commissionShare - commissionEpsilon); err != nil {
		return burn, commission, fmt.Errorf("commission share of %s for %s: %w", s.def.Denom, payer, err)
	}
	return burn, commission, nil
}
