package cmd

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/alphabill-org/alphabill-multisend/types"
)

const (
	flagNameInput        = "input"
	flagNameInputFormat  = "input-format"
	flagNameOutputFormat = "output-format"
)

type ioConfig struct {
	Input        string
	InputFormat  string
	OutputFormat string
}

func (c *ioConfig) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&c.Input, flagNameInput, "i", "", "document with balances, denom definitions and the transaction")
	cmd.Flags().StringVar(&c.InputFormat, flagNameInputFormat, "", "input document format, one of: json, yaml, cbor (default is derived from the file extension)")
	cmd.Flags().StringVar(&c.OutputFormat, flagNameOutputFormat, formatJSON, "output format, one of: json, yaml, cbor (hex encoded)")
}

func writeOutput(w io.Writer, format string, v any) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case formatCBOR:
		data, err := types.Cbor.Marshal(v)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, hex.EncodeToString(data))
		return err
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// nonNil returns empty slice instead of nil so that JSON output is [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
