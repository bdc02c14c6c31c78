package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
)

var flagBlockCount uint64

var blocksCmd = &cobra.Command{
	Use:   "blocks",
	Short: "Inspect committed blocks",
}

var blocksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the most recent blocks in reverse height order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, store, err := openChain()
		if err != nil {
			return err
		}
		defer store.Close()

		blocks, err := store.FindBlocks(flagBlockCount)
		if err != nil {
			return err
		}
		for _, b := range blocks {
			h, err := b.Hash()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "#%d\thash=%s\ttxs=%d\tprev=%s\n",
				b.Height, hex.EncodeToString(h[:]), len(b.Transactions), hex.EncodeToString(b.PrevHash))
		}
		return nil
	},
}

var blocksGetCmd = &cobra.Command{
	Use:   "get <height>",
	Short: "Print a single block by its 1-based height",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, store, err := openChain()
		if err != nil {
			return err
		}
		defer store.Close()

		var height uint64
		if _, err := fmt.Sscanf(args[0], "%d", &height); err != nil {
			return fmt.Errorf("invalid height %q", args[0])
		}
		b, err := store.BlockAt(height)
		if err != nil {
			return err
		}
		h, err := b.Hash()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "#%d\thash=%s\ttxs=%d\tprev=%s\n",
			b.Height, hex.EncodeToString(h[:]), len(b.Transactions), hex.EncodeToString(b.PrevHash))
		for i, tx := range b.Transactions {
			fmt.Fprintf(cmd.OutOrStdout(), "  tx[%d] authority=%s instructions=%d\n", i, tx.Authority, len(tx.Instructions))
		}
		return nil
	},
}

func init() {
	blocksListCmd.Flags().Uint64Var(&flagBlockCount, "count", 10, "number of blocks to print")
	blocksCmd.AddCommand(blocksListCmd, blocksGetCmd)
}
