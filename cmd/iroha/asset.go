package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"irohacore/core"
)

var (
	flagFractional bool
	flagScaleMax   uint8
	flagMintable   string
	flagLogo       string
)

var assetCmd = &cobra.Command{
	Use:   "asset",
	Short: "Manage asset definitions and balances",
}

func parseMintable(s string) (core.Mintable, error) {
	switch s {
	case "", "infinitely":
		return core.MintableInfinitely, nil
	case "once":
		return core.MintableOnce, nil
	case "not":
		return core.MintableNot, nil
	default:
		return 0, fmt.Errorf("mintable: unknown value %q, want infinitely|once|not", s)
	}
}

var assetRegisterCmd = &cobra.Command{
	Use:   "register <definition-id>",
	Short: "Register an asset definition, e.g. rose#wonderland",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		authority, err := authorityAccount()
		if err != nil {
			return err
		}
		id, err := core.ParseAssetDefinitionId(args[0])
		if err != nil {
			return err
		}
		mintable, err := parseMintable(flagMintable)
		if err != nil {
			return err
		}
		spec := core.UnconstrainedSpec
		if flagFractional {
			spec = core.FractionalSpec(flagScaleMax)
		}
		meta, err := readMetadata()
		if err != nil {
			return err
		}
		return submitOrPrint(cmd, authority, []core.Instruction{
			core.RegisterAssetDefinition{Id: id, Spec: spec, Mintable: mintable, Logo: flagLogo, Metadata: meta},
		})
	},
}

var assetUnregisterCmd = &cobra.Command{
	Use:   "unregister <definition-id>",
	Short: "Unregister an asset definition",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		authority, err := authorityAccount()
		if err != nil {
			return err
		}
		id, err := core.ParseAssetDefinitionId(args[0])
		if err != nil {
			return err
		}
		return submitOrPrint(cmd, authority, []core.Instruction{core.UnregisterAssetDefinition{Id: id}})
	},
}

var assetMintCmd = &cobra.Command{
	Use:   "mint <amount> <asset-id>",
	Short: "Mint amount onto an asset id, e.g. 10.5 rose##alice@wonderland",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		authority, err := authorityAccount()
		if err != nil {
			return err
		}
		amount, err := core.ParseNumeric(args[0])
		if err != nil {
			return err
		}
		id, err := core.ParseAssetId(args[1])
		if err != nil {
			return err
		}
		return submitOrPrint(cmd, authority, []core.Instruction{
			core.MintAsset{Object: amount, Destination: id},
		})
	},
}

var assetBurnCmd = &cobra.Command{
	Use:   "burn <amount> <asset-id>",
	Short: "Burn amount from an asset id",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		authority, err := authorityAccount()
		if err != nil {
			return err
		}
		amount, err := core.ParseNumeric(args[0])
		if err != nil {
			return err
		}
		id, err := core.ParseAssetId(args[1])
		if err != nil {
			return err
		}
		return submitOrPrint(cmd, authority, []core.Instruction{
			core.BurnAsset{Object: amount, Destination: id},
		})
	},
}

var assetTransferCmd = &cobra.Command{
	Use:   "transfer <amount> <source-asset-id> <destination-account-id>",
	Short: "Transfer amount from a source asset id to a destination account",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		authority, err := authorityAccount()
		if err != nil {
			return err
		}
		amount, err := core.ParseNumeric(args[0])
		if err != nil {
			return err
		}
		source, err := core.ParseAssetId(args[1])
		if err != nil {
			return err
		}
		destination, err := core.ParseAccountId(args[2])
		if err != nil {
			return err
		}
		return submitOrPrint(cmd, authority, []core.Instruction{
			core.TransferAsset{Source: source, Object: amount, Destination: destination},
		})
	},
}

var assetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all asset definitions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		engine, store, err := openChain()
		if err != nil {
			return err
		}
		defer store.Close()
		page, err := core.FindAssetsDefinitions(engine.Snapshot(), core.CompoundPredicate[*core.AssetDefinition]{}, 0, "")
		if err != nil {
			return err
		}
		for _, d := range page.Results {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\tspec=%s\tmintable=%s\ttotal=%s\n", d.Id, d.Spec, d.Mintable, d.TotalQuantity)
		}
		return nil
	},
}

var assetGetCmd = &cobra.Command{
	Use:   "get <asset-id>",
	Short: "Print a single asset's balance",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, store, err := openChain()
		if err != nil {
			return err
		}
		defer store.Close()
		id, err := core.ParseAssetId(args[0])
		if err != nil {
			return err
		}
		a, err := engine.Snapshot().Asset(id)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", a.Id, a.Value)
		return nil
	},
}

func init() {
	assetRegisterCmd.Flags().BoolVar(&flagFractional, "fractional", false, "constrain to Fractional(scale-max) instead of Unconstrained")
	assetRegisterCmd.Flags().Uint8Var(&flagScaleMax, "scale-max", 0, "scale_max for --fractional")
	assetRegisterCmd.Flags().StringVar(&flagMintable, "mintable", "infinitely", "infinitely|once|not")
	assetRegisterCmd.Flags().StringVar(&flagLogo, "logo", "", "logo URL or identifier")

	assetCmd.AddCommand(assetRegisterCmd, assetUnregisterCmd, assetMintCmd, assetBurnCmd, assetTransferCmd, assetListCmd, assetGetCmd)
}
