package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"irohacore/core"
)

var (
	flagDomainFilter  string
	flagOwnedByFilter string
	flagFetchSize     int
	flagCursor        string
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Run iterable or singular queries against a snapshot of the World",
}

var queryExecuteCmd = &cobra.Command{
	Use:   "execute <collection>",
	Short: "Execute an iterable query: domains|accounts|assets|asset-definitions|nfts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, store, err := openChain()
		if err != nil {
			return err
		}
		defer store.Close()
		world := engine.Snapshot()

		switch args[0] {
		case "domains":
			filter := domainPredicate()
			page, err := core.FindDomains(world, filter, flagFetchSize, flagCursor)
			if err != nil {
				return err
			}
			for _, d := range page.Results {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\towned_by=%s\n", d.Id, d.OwnedBy)
			}
			return printCursor(cmd, page.ContinueToken)

		case "accounts":
			filter := accountPredicate()
			page, err := core.FindAccounts(world, filter, flagFetchSize, flagCursor)
			if err != nil {
				return err
			}
			for _, a := range page.Results {
				fmt.Fprintln(cmd.OutOrStdout(), a.Id)
			}
			return printCursor(cmd, page.ContinueToken)

		case "assets":
			filter := assetPredicate()
			page, err := core.FindAssets(world, filter, flagFetchSize, flagCursor)
			if err != nil {
				return err
			}
			for _, a := range page.Results {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", a.Id, a.Value)
			}
			return printCursor(cmd, page.ContinueToken)

		case "asset-definitions":
			filter := assetDefinitionPredicate()
			page, err := core.FindAssetsDefinitions(world, filter, flagFetchSize, flagCursor)
			if err != nil {
				return err
			}
			for _, d := range page.Results {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\tspec=%s\tmintable=%s\ttotal=%s\n", d.Id, d.Spec, d.Mintable, d.TotalQuantity)
			}
			return printCursor(cmd, page.ContinueToken)

		case "nfts":
			filter := nftPredicate()
			page, err := core.FindNfts(world, filter, flagFetchSize, flagCursor)
			if err != nil {
				return err
			}
			for _, n := range page.Results {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\towned_by=%s\n", n.Id, n.OwnedBy)
			}
			return printCursor(cmd, page.ContinueToken)

		default:
			return fmt.Errorf("query execute: unknown collection %q", args[0])
		}
	},
}

func printCursor(cmd *cobra.Command, token string) error {
	if token != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "continue_cursor: %s\n", token)
	}
	return nil
}

func domainPredicate() core.CompoundPredicate[*core.Domain] {
	if flagOwnedByFilter == "" {
		return core.CompoundPredicate[*core.Domain]{}
	}
	owner, err := core.ParseAccountId(flagOwnedByFilter)
	if err != nil {
		return core.And(func(*core.Domain) bool { return false })
	}
	return core.And(func(d *core.Domain) bool { return d.OwnedBy == owner })
}

func accountPredicate() core.CompoundPredicate[*core.Account] {
	if flagDomainFilter == "" {
		return core.CompoundPredicate[*core.Account]{}
	}
	domain, err := core.ParseDomainId(flagDomainFilter)
	if err != nil {
		return core.And(func(*core.Account) bool { return false })
	}
	return core.And(func(a *core.Account) bool { return a.Id.Domain == domain })
}

func assetDefinitionPredicate() core.CompoundPredicate[*core.AssetDefinition] {
	if flagDomainFilter == "" {
		return core.CompoundPredicate[*core.AssetDefinition]{}
	}
	domain, err := core.ParseDomainId(flagDomainFilter)
	if err != nil {
		return core.And(func(*core.AssetDefinition) bool { return false })
	}
	return core.And(func(d *core.AssetDefinition) bool { return d.Id.Domain == domain })
}

func assetPredicate() core.CompoundPredicate[*core.Asset] {
	if flagOwnedByFilter == "" {
		return core.CompoundPredicate[*core.Asset]{}
	}
	owner, err := core.ParseAccountId(flagOwnedByFilter)
	if err != nil {
		return core.And(func(*core.Asset) bool { return false })
	}
	return core.And(func(a *core.Asset) bool { return a.Id.Account == owner })
}

func nftPredicate() core.CompoundPredicate[*core.Nft] {
	if flagOwnedByFilter == "" {
		return core.CompoundPredicate[*core.Nft]{}
	}
	owner, err := core.ParseAccountId(flagOwnedByFilter)
	if err != nil {
		return core.And(func(*core.Nft) bool { return false })
	}
	return core.And(func(n *core.Nft) bool { return n.OwnedBy == owner })
}

func init() {
	queryExecuteCmd.Flags().StringVar(&flagDomainFilter, "domain", "", "filter by domain id")
	queryExecuteCmd.Flags().StringVar(&flagOwnedByFilter, "owned-by", "", "filter by owner account id")
	queryExecuteCmd.Flags().IntVar(&flagFetchSize, "fetch-size", 0, "max rows per page (0 = MAX_FETCH_SIZE)")
	queryExecuteCmd.Flags().StringVar(&flagCursor, "cursor", "", "opaque continue_cursor from a previous page")

	queryCmd.AddCommand(queryExecuteCmd)
}
