package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"irohacore/core"
)

var flagTxCount uint64

var transactionCmd = &cobra.Command{
	Use:   "transaction",
	Short: "Submit a previously constructed transaction",
}

var transactionSubmitCmd = &cobra.Command{
	Use:   "submit <file>",
	Short: "Submit a SignedTransaction JSON file (as produced by -o/--output) as a new block",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read transaction file: %w", err)
		}
		var stx core.SignedTransaction
		if err := json.Unmarshal(data, &stx); err != nil {
			return fmt.Errorf("parse transaction file: %w", err)
		}
		return submitOrPrint(cmd, stx.Authority, stx.Instructions)
	},
}

var transactionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the most recent committed transactions in reverse commit order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, store, err := openChain()
		if err != nil {
			return err
		}
		defer store.Close()
		txs, err := store.FindTransactions(flagTxCount)
		if err != nil {
			return err
		}
		for _, tx := range txs {
			fmt.Fprintf(cmd.OutOrStdout(), "authority=%s instructions=%d nonce=%d\n", tx.Authority, len(tx.Instructions), tx.Nonce)
		}
		return nil
	},
}

func init() {
	transactionListCmd.Flags().Uint64Var(&flagTxCount, "count", 10, "number of transactions to print")
	transactionCmd.AddCommand(transactionSubmitCmd, transactionListCmd)
}
