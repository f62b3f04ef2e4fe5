package types

import (
	"errors"
	"fmt"
	"math"
)

type (
	/*
	DenomDefinition describes the denomination and the surcharges applied on
	every transfer of it.

	BurnRate is the share of the transferred value destroyed on top of the
	transferred amount, CommissionRate is computed the same way but the value
	goes to the Issuer. Neither applies to the transfers of the Issuer itself.
	*/
	DenomDefinition struct {
		_              struct{} `cbor:",toarray"`
		Denom          string   `json:"denom" yaml:"denom"`
		Issuer         string   `json:"issuer" yaml:"issuer"`
		BurnRate       float64  `json:"burnRate" yaml:"burnRate"`
		CommissionRate float64  `json:"commissionRate" yaml:"commissionRate"`
	}

	/*
	MultiSend transfers coins of (possibly) multiple denominations from
	multiple input addresses to multiple output addresses. Sum of the input
	and output coins must match for every denom.
	*/
	MultiSend struct {
		_       struct{}  `cbor:",toarray"`
		Inputs  []Balance `json:"inputs" yaml:"inputs"`
		Outputs []Balance `json:"outputs" yaml:"outputs"`
	}
)

// IsIssuer returns true when "address" is the issuer of the denom.
func (d *DenomDefinition) IsIssuer(address string) bool {
	return d.Issuer == address
}

// Validate checks that the rates of the definition can be used in surcharge calculations.
func (d *DenomDefinition) Validate() error {
	if d.Denom == "" {
		return errors.New("denom is empty")
	}
	if err := validRate(d.BurnRate); err != nil {
		return fmt.Errorf("invalid burn rate of %q: %w", d.Denom, err)
	}
	if err := validRate(d.CommissionRate); err != nil {
		return fmt.Errorf("invalid commission rate of %q: %w", d.Denom, err)
	}
	return nil
}

func validRate(r float64) error {
	switch {
	case math.IsNaN(r):
		return errors.New("rate is NaN")
	case math.IsInf(r, 0):
		return errors.New("rate is infinite")
	case r < 0:
		return fmt.Errorf("rate is negative: %v", r)
	}
	return nil
}

// Denoms returns set of denominations referenced by the inputs and outputs of the transaction.
func (tx *MultiSend) Denoms() map[string]struct{} {
	denoms := make(map[string]struct{})
	for _, list := range [][]Balance{tx.Inputs, tx.Outputs} {
		for _, b := range list {
			for _, c := range b.Coins {
				denoms[c.Denom] = struct{}{}
			}
		}
	}
	return denoms
}
