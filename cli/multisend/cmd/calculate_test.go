package cmd

import (
	"encoding/hex"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/alphabill-org/alphabill-multisend/txsystem/multisend"
	"github.com/alphabill-org/alphabill-multisend/types"
)

func TestCalculate(t *testing.T) {
	dir := t.TempDir()
	yamlDoc := writeTestFile(t, dir, "doc.yaml", singleTransferYAML)

	t.Run("ok - json output", func(t *testing.T) {
		out, err := execute(t, "calculate", "-i", yamlDoc)
		require.NoError(t, err)
		require.JSONEq(t, `{"deltas": [
			{"address": "account1", "coins": [{"denom": "denom1", "amount": -1200}]},
			{"address": "account_recipient", "coins": [{"denom": "denom1", "amount": 1000}]},
			{"address": "issuer_account_A", "coins": [{"denom": "denom1", "amount": 120}]}
		]}`, out)
	})

	t.Run("ok - report", func(t *testing.T) {
		out, err := execute(t, "calculate", "-i", yamlDoc, "--report")
		require.NoError(t, err)
		var res calculateResult
		require.NoError(t, json.Unmarshal([]byte(out), &res))
		require.Equal(t, []types.Coin{types.NewCoin("denom1", 80)}, res.Burned)
		require.Equal(t, []types.Coin{types.NewCoin("denom1", 120)}, res.Commissions)
		require.Len(t, res.Deltas, 3)
	})

	t.Run("ok - yaml output", func(t *testing.T) {
		out, err := execute(t, "calculate", "-i", yamlDoc, "--output-format", "yaml")
		require.NoError(t, err)
		var res calculateResult
		require.NoError(t, yaml.Unmarshal([]byte(out), &res))
		require.Equal(t, types.NewBalance("account1", types.NewCoin("denom1", -1200)), res.Deltas[0])
	})

	t.Run("ok - cbor output", func(t *testing.T) {
		out, err := execute(t, "calculate", "-i", yamlDoc, "--output-format", "cbor")
		require.NoError(t, err)
		data, err := hex.DecodeString(strings.TrimSpace(out))
		require.NoError(t, err)
		var res calculateResult
		require.NoError(t, types.Cbor.Unmarshal(data, &res))
		require.Equal(t, types.NewBalance("issuer_account_A", types.NewCoin("denom1", 120)), res.Deltas[2])
	})

	t.Run("ok - zero amounts give empty deltas", func(t *testing.T) {
		doc := writeTestFile(t, t.TempDir(), "zero.json", `{
			"balances": [{"address": "account1", "coins": [{"denom": "denom1", "amount": 0}]}],
			"definitions": [{"denom": "denom1", "issuer": "issuer_account_A", "burnRate": "210000", "commissionRate": "0.12"}],
			"transaction": {
				"inputs": [{"address": "account1", "coins": [{"denom": "denom1", "amount": 0}]}],
				"outputs": [{"address": "account_recipient", "coins": [{"denom": "denom1", "amount": 0}]}]
			}}`)
		out, err := execute(t, "calculate", "-i", doc)
		require.NoError(t, err)
		require.JSONEq(t, `{"deltas": []}`, out)
	})

	t.Run("err - rejected", func(t *testing.T) {
		doc := writeTestFile(t, t.TempDir(), "doc.json", insufficientBalanceJSON)
		out, err := execute(t, "calculate", "-i", doc)
		require.ErrorIs(t, err, multisend.ErrInsufficientBalance)
		require.ErrorContains(t, err, "transaction rejected: insufficient balance: account1 does not have enough balance for denom1")
		require.Empty(t, out)
	})

	t.Run("err - unsupported output format", func(t *testing.T) {
		_, err := execute(t, "calculate", "-i", yamlDoc, "--output-format", "xml")
		require.EqualError(t, err, `unsupported output format "xml"`)
	})

	t.Run("err - input missing", func(t *testing.T) {
		_, err := execute(t, "calculate")
		require.EqualError(t, err, "input file is required")
	})
}

func TestApply(t *testing.T) {
	doc := writeTestFile(t, t.TempDir(), "doc.yaml", singleTransferYAML)

	out, err := execute(t, "apply", "-i", doc)
	require.NoError(t, err)
	require.JSONEq(t, `{"balances": [
		{"address": "account1", "coins": [{"denom": "denom1", "amount": 998800}]},
		{"address": "account_recipient", "coins": [{"denom": "denom1", "amount": 1000}]},
		{"address": "issuer_account_A", "coins": [{"denom": "denom1", "amount": 120}]}
	]}`, out)

	doc = writeTestFile(t, t.TempDir(), "doc.json", insufficientBalanceJSON)
	_, err = execute(t, "apply", "-i", doc)
	require.ErrorIs(t, err, multisend.ErrInsufficientBalance)
}

func TestCheck(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		doc := writeTestFile(t, t.TempDir(), "doc.yaml", singleTransferYAML)
		out, err := execute(t, "check", "-i", doc)
		require.NoError(t, err)
		require.JSONEq(t, `{"accepted": true}`, out)
	})

	t.Run("rejected", func(t *testing.T) {
		doc := writeTestFile(t, t.TempDir(), "doc.json", insufficientBalanceJSON)
		out, err := execute(t, "check", "-i", doc, "--output-format", "yaml")
		require.NoError(t, err)
		var res checkResult
		require.NoError(t, yaml.Unmarshal([]byte(out), &res))
		require.False(t, res.Accepted)
		require.Equal(t, "InsufficientBalance", res.Rejection)
		require.Equal(t, "insufficient balance: account1 does not have enough balance for denom1", res.Reason)
	})
}
