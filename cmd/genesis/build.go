package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"ledger-core/blockchain"
	"ledger-core/chaincfg"
	"ledger-core/config"
	"ledger-core/database"
	"ledger-core/txscript"
	"ledger-core/wire"
)

func newBuildCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Builds the genesis block of the network or of a genesis file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			params, err := cfg.Params()
			if err != nil {
				return err
			}

			block, err := blockchain.NewGenesisBlock(params)
			if err != nil {
				return fmt.Errorf("building %s genesis: %w", params.Name, err)
			}

			if cfg.PersistGenesis {
				if err := persistGenesis(cfg.DataDir, block); err != nil {
					return err
				}
			}

			return printBlock(cmd.OutOrStdout(), params, block)
		},
	}

	cmd.Flags().StringVarP(&cfg.GenesisFile, "file", "f", cfg.GenesisFile, "TOML genesis description; overrides --network")
	cmd.Flags().BoolVar(&cfg.PersistGenesis, "persist", cfg.PersistGenesis, "Store the block as block zero of the database in --data-dir")
	cmd.Flags().StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "Database directory")
	return cmd
}

func persistGenesis(dataDir string, block *wire.MsgBlock) error {
	storage, err := database.NewStorage(dataDir)
	if err != nil {
		return err
	}
	defer storage.Close()

	if err := storage.InitGenesis(block); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"data_dir": dataDir,
		"hash":     block.BlockHash().String(),
	}).Info("Genesis block persisted")
	return nil
}

func printBlock(w io.Writer, params *chaincfg.Params, block *wire.MsgBlock) error {
	raw, err := block.Bytes()
	if err != nil {
		return err
	}

	header := block.Header
	coinbase := block.Transactions[0]

	fmt.Fprintf(w, "network:      %s\n", params.Name)
	fmt.Fprintf(w, "hash:         %s\n", block.BlockHash())
	fmt.Fprintf(w, "version:      %d\n", header.Version)
	fmt.Fprintf(w, "merkle root:  %s\n", header.MerkleRoot)
	fmt.Fprintf(w, "timestamp:    %d (%s)\n", header.Timestamp.Unix(), header.Timestamp.UTC().Format(time.RFC3339))
	fmt.Fprintf(w, "bits:         0x%08x\n", header.Bits)
	fmt.Fprintf(w, "coinbase:     %s\n", coinbase.TxHash())
	fmt.Fprintf(w, "outputs:\n")
	for i, out := range coinbase.TxOut {
		fmt.Fprintf(w, "  %d  %d  %s\n", i, out.Value, outputAddress(out.PkScript, params.Bech32HRP))
	}
	fmt.Fprintf(w, "hex:          %s\n", hex.EncodeToString(raw))
	return nil
}

func outputAddress(pkScript []byte, hrp string) string {
	version, program, ok := txscript.ExtractWitnessProgram(pkScript)
	if !ok {
		return hex.EncodeToString(pkScript)
	}
	addr, err := txscript.EncodeSegWitAddress(hrp, version, program)
	if err != nil {
		return hex.EncodeToString(pkScript)
	}
	return addr
}
