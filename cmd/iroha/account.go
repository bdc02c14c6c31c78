package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"irohacore/core"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage accounts",
}

var accountRegisterCmd = &cobra.Command{
	Use:   "register <account-id>",
	Short: "Register a new account, e.g. alice@wonderland",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		authority, err := authorityAccount()
		if err != nil {
			return err
		}
		id, err := core.ParseAccountId(args[0])
		if err != nil {
			return err
		}
		meta, err := readMetadata()
		if err != nil {
			return err
		}
		return submitOrPrint(cmd, authority, []core.Instruction{
			core.RegisterAccount{Id: id, Metadata: meta},
		})
	},
}

var accountUnregisterCmd = &cobra.Command{
	Use:   "unregister <account-id>",
	Short: "Unregister an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		authority, err := authorityAccount()
		if err != nil {
			return err
		}
		id, err := core.ParseAccountId(args[0])
		if err != nil {
			return err
		}
		return submitOrPrint(cmd, authority, []core.Instruction{core.UnregisterAccount{Id: id}})
	},
}

var accountListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all accounts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		engine, store, err := openChain()
		if err != nil {
			return err
		}
		defer store.Close()
		page, err := core.FindAccounts(engine.Snapshot(), core.CompoundPredicate[*core.Account]{}, 0, "")
		if err != nil {
			return err
		}
		for _, a := range page.Results {
			fmt.Fprintln(cmd.OutOrStdout(), a.Id)
		}
		return nil
	},
}

var accountGetCmd = &cobra.Command{
	Use:   "get <account-id>",
	Short: "Print a single account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, store, err := openChain()
		if err != nil {
			return err
		}
		defer store.Close()
		id, err := core.ParseAccountId(args[0])
		if err != nil {
			return err
		}
		a, err := engine.Snapshot().Account(id)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), a.Id)
		return nil
	},
}

var accountMetaCmd = &cobra.Command{
	Use:   "meta <account-id> set|remove <key> [value]",
	Short: "Set or remove an account metadata key",
	Args:  cobra.RangeArgs(3, 4),
	RunE: func(cmd *cobra.Command, args []string) error {
		authority, err := authorityAccount()
		if err != nil {
			return err
		}
		id, err := core.ParseAccountId(args[0])
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
			instr = core.SetKeyValueAccount{Id: id, Key: key, Value: core.NewJson(args[3])}
		case "remove":
			instr = core.RemoveKeyValueAccount{Id: id, Key: key}
		default:
			return fmt.Errorf("meta: unknown action %q, want set|remove", args[1])
		}
		return submitOrPrint(cmd, authority, []core.Instruction{instr})
	},
}

func init() {
	accountCmd.AddCommand(accountRegisterCmd, accountUnregisterCmd, accountListCmd, accountGetCmd, accountMetaCmd)
}
