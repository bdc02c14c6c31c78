package main

import (
	"github.com/spf13/cobra"

	"irohacore/core"
)

// notImplemented is shared by every subcommand whose backing collaborator
// (peer discovery, multisig approval, role/permission grants, on-chain
// parameters, triggers, the WASM executor) is out of scope here. The full
// subcommand surface named in the CLI grammar is preserved so a user sees
// "not implemented" rather than "unknown command" for these — but no
// business logic is invented for them.
func notImplemented(cmd *cobra.Command, _ []string) error {
	cmd.SilenceUsage = true
	return core.ErrNotImplemented
}

var peerCmd = &cobra.Command{Use: "peer", Short: "Peer discovery (not implemented)", RunE: notImplemented}
var multisigCmd = &cobra.Command{Use: "multisig", Short: "Multisig approval (not implemented)", RunE: notImplemented}
var roleCmd = &cobra.Command{Use: "role", Short: "Roles and permissions (not implemented)", RunE: notImplemented}
var parameterCmd = &cobra.Command{Use: "parameter", Short: "On-chain parameters (not implemented)", RunE: notImplemented}
var triggerCmd = &cobra.Command{Use: "trigger", Short: "Triggers (not implemented)", RunE: notImplemented}
var executorCmd = &cobra.Command{Use: "executor", Short: "WASM executor data model (not implemented)", RunE: notImplemented}
