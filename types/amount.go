package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"

	"github.com/holiman/uint256"
	"gopkg.in/yaml.v3"
)

var (
	ErrAmountOverflow = errors.New("amount overflows 128 bit signed integer")
	ErrInvalidAmount  = errors.New("invalid amount")
)

var (
	// two's complement bounds of the int128 range inside a 256 bit word
	maxAmount = new(uint256.Int).Sub(new(uint256.Int).Lsh(uint256.NewInt(1), 127), uint256.NewInt(1))
	minAmount = new(uint256.Int).Neg(new(uint256.Int).Lsh(uint256.NewInt(1), 127))

	maxAmountBig = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	minAmountBig = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
)

/*
Amount is a signed 128 bit quantity of some denomination.

The value is kept in two's complement form in a 256 bit word and every
arithmetic operation checks that the result stays inside the int128 range,
so there is no silent wrap around. Zero value of the type is a valid zero
amount.
*/
type Amount struct {
	v uint256.Int
}

func NewAmount(n int64) Amount {
	var a Amount
	if n >= 0 {
		a.v.SetUint64(uint64(n))
		return a
	}
	// -(n+1)+1 avoids overflow on math.MinInt64
	a.v.SetUint64(uint64(-(n+1)) + 1)
	a.v.Neg(&a.v)
	return a
}

// ParseAmount parses base 10 string representation of the amount, ie "-1200".
func ParseAmount(s string) (Amount, error) {
	b, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Amount{}, fmt.Errorf("%w: %q is not a base 10 integer", ErrInvalidAmount, s)
	}
	return AmountFromBig(b)
}

func AmountFromBig(b *big.Int) (Amount, error) {
	if b == nil {
		return Amount{}, fmt.Errorf("%w: nil big integer", ErrInvalidAmount)
	}
	if b.Cmp(maxAmountBig) > 0 || b.Cmp(minAmountBig) < 0 {
		return Amount{}, fmt.Errorf("%w: %s", ErrAmountOverflow, b)
	}
	var a Amount
	abs, overflow := uint256.FromBig(new(big.Int).Abs(b))
	if overflow {
		return Amount{}, fmt.Errorf("%w: %s", ErrAmountOverflow, b)
	}
	a.v.Set(abs)
	if b.Sign() < 0 {
		a.v.Neg(&a.v)
	}
	return a, nil
}

/*
CeilAmount converts float "f" rounded up to the nearest integer into Amount.
NaN and infinities are rejected, as are values outside of int128 range.
*/
func CeilAmount(f float64) (Amount, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Amount{}, fmt.Errorf("%w: %v", ErrInvalidAmount, f)
	}
	f = math.Ceil(f)
	if f >= math.MinInt64 && f < math.MaxInt64 {
		return NewAmount(int64(f)), nil
	}
	b, _ := new(big.Float).SetFloat64(f).Int(nil)
	return AmountFromBig(b)
}

func (a Amount) inRange() bool {
	return !a.v.Sgt(maxAmount) && !a.v.Slt(minAmount)
}

func (a Amount) Add(b Amount) (Amount, error) {
	var r Amount
	r.v.Add(&a.v, &b.v)
	if !r.inRange() {
		return Amount{}, fmt.Errorf("%w: %s + %s", ErrAmountOverflow, a, b)
	}
	return r, nil
}

func (a Amount) Sub(b Amount) (Amount, error) {
	var r Amount
	r.v.Sub(&a.v, &b.v)
	if !r.inRange() {
		return Amount{}, fmt.Errorf("%w: %s - %s", ErrAmountOverflow, a, b)
	}
	return r, nil
}

func (a Amount) Neg() (Amount, error) {
	var r Amount
	r.v.Neg(&a.v)
	if !r.inRange() {
		return Amount{}, fmt.Errorf("%w: -(%s)", ErrAmountOverflow, a)
	}
	return r, nil
}

// Cmp returns -1 if a < b, 0 if a == b and +1 if a > b.
func (a Amount) Cmp(b Amount) int {
	switch {
	case a.v.Slt(&b.v):
		return -1
	case a.v.Sgt(&b.v):
		return 1
	default:
		return 0
	}
}

func (a Amount) Sign() int {
	return a.v.Sign()
}

func (a Amount) IsZero() bool {
	return a.v.IsZero()
}

// Big returns the amount as a new big integer.
func (a Amount) Big() *big.Int {
	if a.v.Sign() >= 0 {
		return a.v.ToBig()
	}
	var abs uint256.Int
	abs.Neg(&a.v)
	return new(big.Int).Neg(abs.ToBig())
}

/*
Float64 returns the float64 value nearest to the amount (ties to even), the
same value a native integer to double conversion would produce.
*/
func (a Amount) Float64() float64 {
	b := a.Big()
	if b.IsInt64() {
		return float64(b.Int64())
	}
	f, _ := new(big.Float).SetInt(b).Float64()
	return f
}

func (a Amount) String() string {
	return a.Big().String()
}

func (a Amount) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Amount) UnmarshalText(text []byte) error {
	v, err := ParseAmount(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// MarshalJSON encodes the amount as JSON number (not limited to the float64 precision).
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalJSON accepts both JSON number and string containing base 10 integer.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decoding amount string: %w", err)
		}
		return a.UnmarshalText([]byte(s))
	}
	return a.UnmarshalText(data)
}

func (a Amount) MarshalYAML() (interface{}, error) {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: a.String()}, nil
}

func (a *Amount) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: expected scalar node, got kind %d", ErrInvalidAmount, value.Kind)
	}
	return a.UnmarshalText([]byte(value.Value))
}

// MarshalCBOR encodes the amount as CBOR integer, values outside of int64 range become bignums.
func (a Amount) MarshalCBOR() ([]byte, error) {
	return Cbor.Marshal(a.Big())
}

func (a *Amount) UnmarshalCBOR(data []byte) error {
	var b big.Int
	if err := Cbor.Unmarshal(data, &b); err != nil {
		return fmt.Errorf("decoding amount: %w", err)
	}
	v, err := AmountFromBig(&b)
	if err != nil {
		return err
	}
	*a = v
	return nil
}
