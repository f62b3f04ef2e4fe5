package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alphabill-org/alphabill-multisend/txsystem/multisend"
	"github.com/alphabill-org/alphabill-multisend/types"
)

type applyResult struct {
	Balances []types.Balance `json:"balances" yaml:"balances" cbor:"balances"`
}

func newApplyCmd(baseConfig *baseConfiguration) *cobra.Command {
	config := &ioConfig{}
	var cmd = &cobra.Command{
		Use:   "apply",
		Short: "Prints the balances snapshot after executing the transaction",
		Long:  `Calculates balance changes of the transaction and adds them to the balances snapshot of the input document. The input document is not modified.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return applyRun(cmd, config)
		},
	}
	config.addFlags(cmd)
	return cmd
}

func applyRun(cmd *cobra.Command, config *ioConfig) error {
	doc, defs, err := loadInput(config)
	if err != nil {
		return err
	}
	deltas, err := multisend.NewCalculator().Calculate(doc.Balances, defs, doc.Transaction)
	if err != nil {
		return fmt.Errorf("transaction rejected: %w", err)
	}
	balances, err := multisend.ApplyDeltas(doc.Balances, deltas)
	if err != nil {
		return fmt.Errorf("applying balance changes: %w", err)
	}
	log.Info("transaction applied, %d accounts in the snapshot", len(balances))
	return writeOutput(cmd.OutOrStdout(), config.OutputFormat, applyResult{Balances: nonNil(balances)})
}
