package cmd

import (
	"github.com/spf13/cobra"

	"github.com/alphabill-org/alphabill-multisend/txsystem/multisend"
)

type checkResult struct {
	Accepted  bool   `json:"accepted" yaml:"accepted" cbor:"accepted"`
	Rejection string `json:"rejection,omitempty" yaml:"rejection,omitempty" cbor:"rejection,omitempty"`
	Reason    string `json:"reason,omitempty" yaml:"reason,omitempty" cbor:"reason,omitempty"`
}

/*
newCheckCmd validates the transaction without printing the balance changes.
Rejected transaction is not an error of the command, the outcome is reported
in the output.
*/
func newCheckCmd(baseConfig *baseConfiguration) *cobra.Command {
	config := &ioConfig{}
	var cmd = &cobra.Command{
		Use:   "check",
		Short: "Checks whether the transaction would be accepted",
		RunE: func(cmd *cobra.Command, args []string) error {
			return checkRun(cmd, config)
		},
	}
	config.addFlags(cmd)
	return cmd
}

func checkRun(cmd *cobra.Command, config *ioConfig) error {
	doc, defs, err := loadInput(config)
	if err != nil {
		return err
	}
	res := checkResult{Accepted: true}
	if _, err := multisend.NewCalculator().Calculate(doc.Balances, defs, doc.Transaction); err != nil {
		res = checkResult{Rejection: multisend.RejectionKind(err), Reason: err.Error()}
		log.Info("transaction rejected: %v", err)
	}
	return writeOutput(cmd.OutOrStdout(), config.OutputFormat, res)
}
