package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"irohacore/core"
)

var nftCmd = &cobra.Command{
	Use:   "nft",
	Short: "Manage non-fungible tokens",
}

var nftRegisterCmd = &cobra.Command{
	Use:   "register <nft-id>",
	Short: "Register an nft, e.g. deed$wonderland",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		authority, err := authorityAccount()
		if err != nil {
			return err
		}
		id, err := core.ParseNftId(args[0])
		if err != nil {
			return err
		}
		content, err := readMetadata()
		if err != nil {
			return err
		}
		return submitOrPrint(cmd, authority, []core.Instruction{
			core.RegisterNft{Id: id, Content: content},
		})
	},
}

var nftUnregisterCmd = &cobra.Command{
	Use:   "unregister <nft-id>",
	Short: "Unregister an nft",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		authority, err := authorityAccount()
		if err != nil {
			return err
		}
		id, err := core.ParseNftId(args[0])
		if err != nil {
			return err
		}
		return submitOrPrint(cmd, authority, []core.Instruction{core.UnregisterNft{Id: id}})
	},
}

var nftTransferCmd = &cobra.Command{
	Use:   "transfer <nft-id> <destination-account-id>",
	Short: "Transfer an nft; the authority must be its current owner",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		authority, err := authorityAccount()
		if err != nil {
			return err
		}
		id, err := core.ParseNftId(args[0])
		if err != nil {
			return err
		}
		destination, err := core.ParseAccountId(args[1])
		if err != nil {
			return err
		}
		return submitOrPrint(cmd, authority, []core.Instruction{
			core.TransferNft{Source: authority, Object: id, Destination: destination},
		})
	},
}

var nftMetaCmd = &cobra.Command{
	Use:   "meta <nft-id> set|remove <key> [value]",
	Short: "Set or remove an nft metadata key; only the domain owner may do this",
	Args:  cobra.RangeArgs(3, 4),
	RunE: func(cmd *cobra.Command, args []string) error {
		authority, err := authorityAccount()
		if err != nil {
			return err
		}
		id, err := core.ParseNftId(args[0])
		if err != nil {
			return err
		}
		key := core.Name(args[2])

		var instr core.Instruction
		switch args[1] {
		case "set":
			if len(args) != 4 {
				return fmt.Errorf("meta set requires a value")
			}
			instr = core.SetKeyValueNft{Id: id, Key: key, Value: core.NewJson(args[3])}
		case "remove":
			instr = core.RemoveKeyValueNft{Id: id, Key: key}
		default:
			return fmt.Errorf("meta: unknown action %q, want set|remove", args[1])
		}
		return submitOrPrint(cmd, authority, []core.Instruction{instr})
	},
}

var nftListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all nfts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		engine, store, err := openChain()
		if err != nil {
			return err
		}
		defer store.Close()
		page, err := core.FindNfts(engine.Snapshot(), core.CompoundPredicate[*core.Nft]{}, 0, "")
		if err != nil {
			return err
		}
		for _, n := range page.Results {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\towned_by=%s\n", n.Id, n.OwnedBy)
		}
		return nil
	},
}

var nftGetCmd = &cobra.Command{
	Use:   "get <nft-id>",
	Short: "Print a single nft",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, store, err := openChain()
		if err != nil {
			return err
		}
		defer store.Close()
		id, err := core.ParseNftId(args[0])
		if err != nil {
			return err
		}
		n, err := engine.Snapshot().Nft(id)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\towned_by=%s\n", n.Id, n.OwnedBy)
		return nil
	},
}

func init() {
	nftCmd.AddCommand(nftRegisterCmd, nftUnregisterCmd, nftTransferCmd, nftMetaCmd, nftListCmd, nftGetCmd)
}
