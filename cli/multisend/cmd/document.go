package cmd

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/alphabill-org/alphabill-multisend/types"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
	formatCBOR = "cbor"
)

type (
	// document is the input of the commands: balances snapshot, denom definitions and the transaction.
	document struct {
		Balances    []types.Balance   `json:"balances" yaml:"balances" cbor:"balances"`
		Definitions []denomDefinition `json:"definitions" yaml:"definitions" cbor:"definitions"`
		Transaction *types.MultiSend  `json:"transaction" yaml:"transaction" cbor:"transaction"`
	}

	// denomDefinition carries the rates as decimal strings so that "0.08" in the
	// document is exactly what gets range checked.
	denomDefinition struct {
		Denom          string `json:"denom" yaml:"denom" cbor:"denom"`
		Issuer         string `json:"issuer" yaml:"issuer" cbor:"issuer"`
		BurnRate       rate   `json:"burnRate" yaml:"burnRate" cbor:"burnRate"`
		CommissionRate rate   `json:"commissionRate" yaml:"commissionRate" cbor:"commissionRate"`
	}

	rate struct {
		decimal.Decimal
	}
)

// MarshalCBOR encodes the rate as text string, ie "0.08".
func (r rate) MarshalCBOR() ([]byte, error) {
	return types.Cbor.Marshal(r.String())
}

func (r *rate) UnmarshalCBOR(data []byte) error {
	var s string
	if err := types.Cbor.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("decoding rate: %w", err)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("decoding rate %q: %w", s, err)
	}
	r.Decimal = d
	return nil
}

func (r rate) nonNegativeFloat64() (float64, error) {
	if r.IsNegative() {
		return 0, fmt.Errorf("rate must not be negative, got %s", r)
	}
	return r.InexactFloat64(), nil
}

func (d *denomDefinition) toDefinition() (types.DenomDefinition, error) {
	burn, err := d.BurnRate.nonNegativeFloat64()
	if err != nil {
		return types.DenomDefinition{}, fmt.Errorf("burn rate of %q: %w", d.Denom, err)
	}
	commission, err := d.CommissionRate.nonNegativeFloat64()
	if err != nil {
		return types.DenomDefinition{}, fmt.Errorf("commission rate of %q: %w", d.Denom, err)
	}
	return types.DenomDefinition{Denom: d.Denom, Issuer: d.Issuer, BurnRate: burn, CommissionRate: commission}, nil
}

func (doc *document) definitions() ([]types.DenomDefinition, error) {
	defs := make([]types.DenomDefinition, 0, len(doc.Definitions))
	for i := range doc.Definitions {
		d, err := doc.Definitions[i].toDefinition()
		if err != nil {
			return nil, fmt.Errorf("definition %d: %w", i, err)
		}
		defs = append(defs, d)
	}
	return defs, nil
}

/*
readDocument loads the document from file. When "format" is empty it is
derived from the file extension. CBOR documents may be binary or hex encoded.
*/
func readDocument(filename, format string) (*document, error) {
	if filename == "" {
		return nil, errors.New("input file is required")
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading input file: %w", err)
	}
	if format == "" {
		if format, err = formatFromExt(filename); err != nil {
			return nil, err
		}
	}
	doc, err := decodeDocument(data, format)
	if err != nil {
		return nil, fmt.Errorf("decoding %s document %s: %w", format, filename, err)
	}
	return doc, nil
}

func formatFromExt(filename string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".json":
		return formatJSON, nil
	case ".yaml", ".yml":
		return formatYAML, nil
	case ".cbor":
		return formatCBOR, nil
	default:
		return "", fmt.Errorf("can't determine input format from file extension %q, use --%s flag", ext, flagNameInputFormat)
	}
}

func decodeDocument(data []byte, format string) (*document, error) {
	doc := &document{}
	switch format {
	case formatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(doc); err != nil {
			return nil, err
		}
	case formatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(doc); err != nil {
			return nil, err
		}
	case formatCBOR:
		if raw, err := hex.DecodeString(strings.TrimSpace(string(data))); err == nil {
			data = raw
		}
		if err := types.Cbor.Unmarshal(data, doc); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
	if doc.Transaction == nil {
		return nil, errors.New("document has no transaction")
	}
	return doc, nil
}
