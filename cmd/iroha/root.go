package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"irohacore/core"
	"irohacore/kura"
	"irohacore/pkg/config"
)

var (
	flagConfig   string
	flagVerbose  bool
	flagMetadata string
	flagInput    string
	flagOutput   string
	flagAuthority string
)

var rootCmd = &cobra.Command{
	Use:               "iroha",
	Short:             "Construct, sign and submit Iroha transactions and queries",
	PersistentPreRunE: rootPreRun,
	SilenceUsage:      true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "path to config file/environment name")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "verbose diagnostic output")
	rootCmd.PersistentFlags().StringVarP(&flagMetadata, "metadata", "m", "", "path to a JSON metadata file to attach")
	rootCmd.PersistentFlags().StringVarP(&flagInput, "input", "i", "", "read a SignedTransaction JSON envelope (as written by -o) from a file (or - for stdin) and prepend its instructions")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "", "write constructed instructions as JSON to a file (or - for stdout) instead of submitting")
	rootCmd.PersistentFlags().StringVar(&flagAuthority, "authority", "", "account id signing the transaction, e.g. alice@wonderland")

	rootCmd.AddCommand(domainCmd, accountCmd, assetCmd, nftCmd, queryCmd, blocksCmd, transactionCmd, configCmd)
	rootCmd.AddCommand(peerCmd, multisigCmd, roleCmd, parameterCmd, triggerCmd, executorCmd)
}

func rootPreRun(cmd *cobra.Command, _ []string) error {
	if flagVerbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	_ = godotenv.Load() // .env overrides are optional

	if _, err := config.Load(flagConfig); err != nil {
		logrus.WithError(err).Debug("iroha: no config file found, using defaults")
	}
	if config.AppConfig.Storage.BlockStoreDir == "" {
		config.AppConfig.Storage.BlockStoreDir = "./data/blocks"
	}
	return nil
}

// readMetadata loads -m/--metadata into a core.Metadata, or an empty one if
// the flag was not set.
func readMetadata() (core.Metadata, error) {
	if flagMetadata == "" {
		return core.NewMetadata(), nil
	}
	data, err := os.ReadFile(flagMetadata)
	if err != nil {
		return core.Metadata{}, fmt.Errorf("read metadata file: %w", err)
	}
	var meta core.Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return core.Metadata{}, fmt.Errorf("parse metadata file: %w", err)
	}
	return meta, nil
}

// readPrependedInstructions reads the file named by -i/--input (stdin for
// -), if set, and returns the Instructions of the SignedTransaction JSON
// envelope it holds, for prepending to the instructions a command is about
// to submit. A bare JSON instruction array is not accepted.
func readPrependedInstructions() ([]core.Instruction, error) {
	if flagInput == "" {
		return nil, nil
	}
	var data []byte
	var err error
	if flagInput == "-" {
		data, err = readAllStdin()
	} else {
		data, err = os.ReadFile(flagInput)
	}
	if err != nil {
		return nil, fmt.Errorf("read input instructions: %w", err)
	}

	// The input file is the same wire shape submitOrPrint writes with
	// -o/--output: a SignedTransaction envelope. Only its Instructions are
	// used; ChainID/Authority/Nonce are filled in fresh by the command that
	// prepends them.
	var stx core.SignedTransaction
	if err := json.Unmarshal(data, &stx); err != nil {
		return nil, fmt.Errorf("parse input instructions: %w", err)
	}
	return stx.Instructions, nil
}

func readAllStdin() ([]byte, error) {
	return io.ReadAll(os.Stdin)
}

// authorityAccount resolves --authority, defaulting to IROHA_AUTHORITY.
func authorityAccount() (core.AccountId, error) {
	s := flagAuthority
	if s == "" {
		s = os.Getenv("IROHA_AUTHORITY")
	}
	if s == "" {
		return core.AccountId{}, fmt.Errorf("no --authority given and IROHA_AUTHORITY is unset")
	}
	return core.ParseAccountId(s)
}

// openChain replays every committed block in the configured Block Store
// into a fresh Engine, reconstructing the current World the way a node
// would on restart.
func openChain() (*core.Engine, *kura.Store, error) {
	store, err := kura.Open(config.AppConfig.Storage.BlockStoreDir)
	if err != nil {
		return nil, nil, fmt.Errorf("open block store: %w", err)
	}
	engine := core.NewEngine()

	count, err := store.ReadIndexCount()
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	for h := uint64(1); h <= count; h++ {
		block, err := store.BlockAt(h)
		if err != nil {
			store.Close()
			return nil, nil, fmt.Errorf("replay block %d: %w", h, err)
		}
		engine.ApplyBlock(block.Transactions)
	}
	return engine, store, nil
}

// lastBlockHash returns the hash of the chain's current tip, or nil for a
// chain with no committed blocks yet (genesis has no predecessor).
func lastBlockHash(store *kura.Store) ([]byte, error) {
	count, err := store.ReadIndexCount()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}
	tip, err := store.BlockAt(count)
	if err != nil {
		return nil, err
	}
	h, err := tip.Hash()
	if err != nil {
		return nil, err
	}
	return h[:], nil
}

// submitOrPrint either submits instrs as a new block (committing it to
// both the Engine and the Block Store) or, if -o/--output is set, prints
// them as JSON without submitting.
func submitOrPrint(cmd *cobra.Command, authority core.AccountId, instrs []core.Instruction) error {
	if flagOutput != "" {
		return writeInstructionsJSON(cmd, authority, instrs)
	}

	engine, store, err := openChain()
	if err != nil {
		return err
	}
	defer store.Close()

	prepended, err := readPrependedInstructions()
	if err != nil {
		return err
	}
	instrs = append(prepended, instrs...)

	requestId := uuid.New().String()
	stx := core.SignedTransaction{
		ChainID:      config.AppConfig.Chain.ID,
		Authority:    authority,
		Instructions: instrs,
		Nonce:        uint32(time.Now().UnixNano()),
	}

	log := logrus.WithField("request_id", requestId)
	if err := engine.ApplyTransaction(stx.Authority, stx.Instructions); err != nil {
		log.WithError(err).WithField("transaction", fmt.Sprintf("%+v", stx)).Debug("iroha: transaction rejected")
		return fmt.Errorf("apply transaction: %w", err)
	}

	prevHash, err := lastBlockHash(store)
	if err != nil {
		return err
	}
	count, err := store.ReadIndexCount()
	if err != nil {
		return err
	}
	block := core.Block{
		Height:       count + 1,
		PrevHash:     prevHash,
		Timestamp:    time.Now().Unix(),
		Transactions: []core.SignedTransaction{stx},
	}
	if err := store.AppendBlock(block); err != nil {
		return fmt.Errorf("append block: %w", err)
	}
	log.WithField("height", block.Height).Debug("iroha: block committed")

	fmt.Fprintf(cmd.OutOrStdout(), "committed block #%d\n", block.Height)
	return nil
}

func writeInstructionsJSON(cmd *cobra.Command, authority core.AccountId, instrs []core.Instruction) error {
	stx := core.SignedTransaction{
		ChainID:      config.AppConfig.Chain.ID,
		Authority:    authority,
		Instructions: instrs,
	}
	b, err := json.MarshalIndent(stx, "", "  ")
	if err != nil {
		return err
	}
	if flagOutput == "-" {
		fmt.Fprintln(cmd.OutOrStdout(), string(b))
		return nil
	}
	return os.WriteFile(flagOutput, b, 0o644)
}
