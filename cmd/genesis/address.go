package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ledger-core/chaincfg"
	"ledger-core/config"
	"ledger-core/crypto"
	"ledger-core/txscript"
)

func newAddressCmd(cfg *config.Config) *cobra.Command {
	var fromPubKey bool

	cmd := &cobra.Command{
		Use:   "address <hex>",
		Short: "Prints the witness address of a key hash, script hash or public key",
		Long: "Prints the bech32 address of the network for a 20-byte key hash or a\n" +
			"32-byte script hash given in hex.  With --pubkey the argument is a\n" +
			"secp256k1 public key whose hash is used.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := chaincfg.ParamsForNetwork(cfg.Network)
			if err != nil {
				return err
			}

			dest, err := parseDestination(args[0], fromPubKey)
			if err != nil {
				return err
			}

			addr, err := dest.Address(params.Bech32HRP)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), addr)
			return nil
		},
	}

	cmd.Flags().BoolVar(&fromPubKey, "pubkey", false, "Treat the argument as a public key")
	return cmd
}

func parseDestination(arg string, fromPubKey bool) (txscript.Destination, error) {
	if fromPubKey {
		return crypto.PubKeyHashFromHex(arg)
	}
	if len(arg) == 2*txscript.WitnessV0ScriptHashSize {
		return txscript.NewWitnessV0ScriptHashFromHex(arg)
	}
	return txscript.NewWitnessV0KeyHashFromHex(arg)
}
