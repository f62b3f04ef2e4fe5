package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alphabill-org/alphabill-multisend/logger"
	"github.com/alphabill-org/alphabill-multisend/txsystem/multisend"
	"github.com/alphabill-org/alphabill-multisend/types"
)

var log = logger.CreateForPackage()

type (
	calculateConfig struct {
		Base   *baseConfiguration
		IO     ioConfig
		Report bool
	}

	calculateResult struct {
		Deltas      []types.Balance `json:"deltas" yaml:"deltas" cbor:"deltas"`
		Burned      []types.Coin    `json:"burned,omitempty" yaml:"burned,omitempty" cbor:"burned,omitempty"`
		Commissions []types.Coin    `json:"commissions,omitempty" yaml:"commissions,omitempty" cbor:"commissions,omitempty"`
	}
)

func newCalculateCmd(baseConfig *baseConfiguration) *cobra.Command {
	config := &calculateConfig{Base: baseConfig}
	var cmd = &cobra.Command{
		Use:   "calculate",
		Short: "Calculates balance changes of the transaction",
		RunE: func(cmd *cobra.Command, args []string) error {
			return calculateRun(cmd, config)
		},
	}
	config.IO.addFlags(cmd)
	cmd.Flags().BoolVar(&config.Report, "report", false, "include burned and commission totals per denom")
	return cmd
}

func calculateRun(cmd *cobra.Command, config *calculateConfig) error {
	doc, defs, err := loadInput(&config.IO)
	if err != nil {
		return err
	}
	s, err := multisend.NewCalculator().Settle(doc.Balances, defs, doc.Transaction)
	if err != nil {
		return fmt.Errorf("transaction rejected: %w", err)
	}
	log.Info("transaction accepted, %d accounts changed", len(s.Deltas))

	res := calculateResult{Deltas: nonNil(s.Deltas)}
	if config.Report {
		res.Burned = s.Burned
		res.Commissions = s.Commissions
	}
	return writeOutput(cmd.OutOrStdout(), config.IO.OutputFormat, res)
}

func loadInput(c *ioConfig) (*document, []types.DenomDefinition, error) {
	doc, err := readDocument(c.Input, c.InputFormat)
	if err != nil {
		return nil, nil, err
	}
	defs, err := doc.definitions()
	if err != nil {
		return nil, nil, fmt.Errorf("invalid denom definitions: %w", err)
	}
	log.Debug("loaded %s: %d balances, %d definitions, %d inputs, %d outputs", c.Input, len(doc.Balances), len(defs), len(doc.Transaction.Inputs), len(doc.Transaction.Outputs))
	return doc, defs, nil
}
