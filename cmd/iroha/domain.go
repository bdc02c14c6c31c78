package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"irohacore/core"
)

var domainCmd = &cobra.Command{
	Use:   "domain",
	Short: "Manage domains",
}

var domainRegisterCmd = &cobra.Command{
	Use:   "register <domain> <owner-account-id>",
	Short: "Register a new domain owned by the given account",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		authority, err := authorityAccount()
		if err != nil {
			return err
		}
		id, err := core.ParseDomainId(args[0])
		if err != nil {
			return err
		}
		owner, err := core.ParseAccountId(args[1])
		if err != nil {
			return err
		}
		meta, err := readMetadata()
		if err != nil {
			return err
		}
		return submitOrPrint(cmd, authority, []core.Instruction{
			core.RegisterDomain{Id: id, OwnedBy: owner, Metadata: meta},
		})
	},
}

var domainUnregisterCmd = &cobra.Command{
	Use:   "unregister <domain>",
	Short: "Unregister a domain",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		authority, err := authorityAccount()
		if err != nil {
			return err
		}
		id, err := core.ParseDomainId(args[0])
		if err != nil {
			return err
		}
		return submitOrPrint(cmd, authority, []core.Instruction{core.UnregisterDomain{Id: id}})
	},
}

var domainListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all domains",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		engine, store, err := openChain()
		if err != nil {
			return err
		}
		defer store.Close()
		page, err := core.FindDomains(engine.Snapshot(), core.CompoundPredicate[*core.Domain]{}, 0, "")
		if err != nil {
			return err
		}
		for _, d := range page.Results {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\towned_by=%s\n", d.Id, d.OwnedBy)
		}
		return nil
	},
}

var domainGetCmd = &cobra.Command{
	Use:   "get <domain>",
	Short: "Print a single domain",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, store, err := openChain()
		if err != nil {
			return err
		}
		defer store.Close()
		id, err := core.ParseDomainId(args[0])
		if err != nil {
			return err
		}
		d, err := engine.Snapshot().Domain(id)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\towned_by=%s\n", d.Id, d.OwnedBy)
		return nil
	},
}

var domainMetaCmd = &cobra.Command{
	Use:   "meta <domain> set|remove <key> [value]",
	Short: "Set or remove a domain metadata key",
	Args:  cobra.RangeArgs(3, 4),
	RunE: func(cmd *cobra.Command, args []string) error {
		authority, err := authorityAccount()
		if err != nil {
			return err
		}
		id, err := core.ParseDomainId(args[0])
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
			instr = core.SetKeyValueDomain{Id: id, Key: key, Value: core.NewJson(args[3])}
		case "remove":
			instr = core.RemoveKeyValueDomain{Id: id, Key: key}
		default:
			return fmt.Errorf("meta: unknown action %q, want set|remove", args[1])
		}
		return submitOrPrint(cmd, authority, []core.Instruction{instr})
	},
}

func init() {
	domainCmd.AddCommand(domainRegisterCmd, domainUnregisterCmd, domainListCmd, domainGetCmd, domainMetaCmd)
}
