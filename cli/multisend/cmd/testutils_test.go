package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const singleTransferYAML = `balances:
  - address: account1
    coins:
      - {denom: denom1, amount: 1000000}
definitions:
  - {denom: denom1, issuer: issuer_account_A, burnRate: "0.08", commissionRate: 0.12}
transaction:
  inputs:
    - address: account1
      coins: [{denom: denom1, amount: 1000}]
  outputs:
    - address: account_recipient
      coins: [{denom: denom1, amount: 1000}]
`

const insufficientBalanceJSON = `{
  "balances": [{"address": "account1", "coins": [{"denom": "denom1", "amount": 1199}]}],
  "definitions": [{"denom": "denom1", "issuer": "issuer_account_A", "burnRate": "0.08", "commissionRate": "0.12"}],
  "transaction": {
    "inputs": [{"address": "account1", "coins": [{"denom": "denom1", "amount": 1000}]}],
    "outputs": [{"address": "account_recipient", "coins": [{"denom": "denom1", "amount": 1000}]}]
  }
}`

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	filename := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(filename, []byte(content), 0600))
	return filename
}

// execute runs the app with the arguments, home dir is set to a fresh temp dir
// unless the args already contain --home.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	if !strings.Contains(strings.Join(args, " "), "--home") {
		args = append(args, "--home", t.TempDir())
	}
	return executeApp(t, New(), args...)
}

func executeApp(t *testing.T, app *multisendApp, args ...string) (string, error) {
	t.Helper()
	out := new(bytes.Buffer)
	app.baseCmd.SetOut(out)
	app.baseCmd.SetArgs(args)
	err := app.Execute(context.Background())
	return out.String(), err
}
